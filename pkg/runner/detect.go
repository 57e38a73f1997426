package runner

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// sniffSize is how much of a file is read to classify it.
const sniffSize = 4096

// swiftDependencyDirs are checkout directories of Swift package managers.
// enry's vendor list does not cover them.
var swiftDependencyDirs = map[string]bool{
	"Pods":           true,
	"Carthage":       true,
	".build":         true,
	"SourcePackages": true,
}

// isVendored reports whether the directory path holds third-party code that
// should not be reformatted.
func isVendored(relDir string) bool {
	slashed := filepath.ToSlash(relDir)
	for _, part := range strings.Split(slashed, "/") {
		if swiftDependencyDirs[part] {
			return true
		}
	}
	return enry.IsVendor(slashed + "/")
}

// isSwiftScript reports whether an extensionless file is a Swift script.
func isSwiftScript(path string) bool {
	head, err := readHead(path)
	if err != nil || len(head) == 0 || enry.IsBinary(head) {
		return false
	}

	if lang, safe := enry.GetLanguageByShebang(head); safe && lang != "" {
		return lang == "Swift"
	}
	return shebangInterpreter(head) == "swift"
}

// shebangInterpreter returns the interpreter named on a #! line, looking
// through /usr/bin/env.
func shebangInterpreter(head []byte) string {
	if !bytes.HasPrefix(head, []byte("#!")) {
		return ""
	}
	line, _, _ := bytes.Cut(head[2:], []byte("\n"))
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return ""
	}

	interpreter := filepath.Base(fields[0])
	if interpreter == "env" {
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") {
				return filepath.Base(f)
			}
		}
		return ""
	}
	return interpreter
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
