package rules_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// GoldenTestCase represents a single golden file test case.
type GoldenTestCase struct {
	// Name is the test case name derived from the file path.
	Name string

	// InputPath is the absolute path to the input Swift file.
	InputPath string

	// GoldenPath is the absolute path to the expected formatted output.
	GoldenPath string

	// Rule is the rule to test (empty means run all default rules).
	Rule string

	// IsRealWorld indicates this is a real-world test (all rules).
	IsRealWorld bool
}

// discoverTestCases walks the testdata directory and discovers all test cases.
// Directories named after a rule run only that rule. The real-world directory
// runs every default rule.
func discoverTestCases(t *testing.T, baseDir string) []GoldenTestCase {
	t.Helper()

	cases := make([]GoldenTestCase, 0)

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return cases
		}
		t.Fatalf("failed to read testdata directory: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dirName := entry.Name()
		dirPath := filepath.Join(baseDir, dirName)
		isRealWorld := dirName == "real-world"

		inputFiles, err := filepath.Glob(filepath.Join(dirPath, "*.input.swift"))
		if err != nil {
			t.Fatalf("failed to glob input files in %s: %v", dirPath, err)
		}

		for _, inputPath := range inputFiles {
			baseName := strings.TrimSuffix(filepath.Base(inputPath), ".input.swift")

			tc := GoldenTestCase{
				Name:        filepath.Join(dirName, baseName),
				InputPath:   inputPath,
				GoldenPath:  filepath.Join(dirPath, baseName+".golden.swift"),
				IsRealWorld: isRealWorld,
			}
			if !isRealWorld {
				tc.Rule = dirName
			}
			cases = append(cases, tc)
		}
	}

	return cases
}

// loadGoldenFile loads the expected output from a golden file.
// Returns nil if the file doesn't exist.
func loadGoldenFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}

	return data
}

// writeGoldenFile writes content to a golden file.
func writeGoldenFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write golden file %s: %v", path, err)
	}

	t.Logf("Updated golden file: %s", path)
}

// compareWithGolden compares actual bytes with the golden file.
// If update is true, it updates the golden file instead of comparing.
func compareWithGolden(t *testing.T, actualBytes []byte, goldenPath string, update bool) {
	t.Helper()

	if update {
		writeGoldenFile(t, goldenPath, actualBytes)
		return
	}

	expected := loadGoldenFile(t, goldenPath)
	if expected == nil {
		t.Errorf("Golden file does not exist: %s\nRun with -update flag to create it.", goldenPath)
		t.Logf("Actual content:\n%s", string(actualBytes))
		return
	}

	if !bytes.Equal(actualBytes, expected) {
		t.Errorf("Output does not match golden file: %s", goldenPath)
		showDiff(t, expected, actualBytes)
	}
}

// showDiff logs a unified diff between expected and actual content.
func showDiff(t *testing.T, expected, actual []byte) {
	t.Helper()

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(actual)),
		FromFile: "golden",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		t.Logf("failed to compute diff: %v", err)
		return
	}
	t.Logf("Diff:\n%s", diff)
}
