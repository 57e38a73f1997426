package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// reservedKeywords are tokenized as Keyword. Contextual words (get, set,
// actor, some, ...) stay identifiers and are recognized by text.
var reservedKeywords = map[string]struct{}{
	"associatedtype": {}, "class": {}, "deinit": {}, "enum": {}, "extension": {},
	"fileprivate": {}, "func": {}, "import": {}, "init": {}, "inout": {},
	"internal": {}, "let": {}, "open": {}, "operator": {}, "private": {},
	"precedencegroup": {}, "protocol": {}, "public": {}, "rethrows": {},
	"static": {}, "struct": {}, "subscript": {}, "typealias": {}, "var": {},
	"break": {}, "case": {}, "catch": {}, "continue": {}, "default": {},
	"defer": {}, "do": {}, "else": {}, "fallthrough": {}, "for": {},
	"guard": {}, "if": {}, "in": {}, "repeat": {}, "return": {}, "throw": {},
	"switch": {}, "where": {}, "while": {}, "Any": {}, "as": {}, "await": {},
	"false": {}, "is": {}, "nil": {}, "self": {}, "Self": {}, "super": {},
	"throws": {}, "true": {}, "try": {},
}

// IsReservedKeyword reports whether word is tokenized as a keyword.
func IsReservedKeyword(word string) bool {
	_, ok := reservedKeywords[word]
	return ok
}

// Tokenize converts Swift source text into tokens. It never fails: input it
// cannot classify becomes Error tokens, so Render(Tokenize(s)) == s always.
func Tokenize(source string) []Token {
	s := &scanner{input: source}
	for state := lexCode; state != nil; {
		state = state(s)
	}
	for len(s.scopes) > 0 {
		if top, _ := s.top(); top.open == "<" {
			s.demoteGeneric()
			continue
		}
		s.pop()
	}
	return s.tokens
}

type stateFn func(*scanner) stateFn

type scope struct {
	open   string
	index  int  // index of the opening token
	interp bool // "(" that opened a string interpolation
}

type scanner struct {
	input  string
	start  int
	pos    int
	tokens []Token
	scopes []scope
}

func (s *scanner) emit(tok Token) {
	tok.Text = s.input[s.start:s.pos]
	s.tokens = append(s.tokens, tok)
	s.start = s.pos
}

func (s *scanner) emitKind(kind Kind) {
	s.emit(Token{Kind: kind})
}

func (s *scanner) next() rune {
	if s.pos >= len(s.input) {
		return 0
	}
	r, w := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += w
	return r
}

func (s *scanner) peek() rune {
	if s.pos >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return r
}

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.input[s.pos:], prefix)
}

func (s *scanner) top() (scope, bool) {
	if len(s.scopes) == 0 {
		return scope{}, false
	}
	return s.scopes[len(s.scopes)-1], true
}

// push records a scope opened by the next emitted token.
func (s *scanner) push(open string, interp bool) {
	s.scopes = append(s.scopes, scope{open: open, index: len(s.tokens), interp: interp})
}

func (s *scanner) pop() scope {
	sc := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return sc
}

// lastCode returns the most recent token that is not whitespace or comment.
func (s *scanner) lastCode() Token {
	for i := len(s.tokens) - 1; i >= 0; i-- {
		if !s.tokens[i].IsSpaceOrCommentOrLinebreak() {
			return s.tokens[i]
		}
	}
	return Token{}
}

func (s *scanner) last() Token {
	if len(s.tokens) == 0 {
		return Token{}
	}
	return s.tokens[len(s.tokens)-1]
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\v' || r == '\f'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isOperatorRune(r rune) bool {
	return strings.ContainsRune("/=-+!*%<>&|^~?.", r)
}

func lexCode(s *scanner) stateFn {
	s.start = s.pos
	if s.pos >= len(s.input) {
		return nil
	}

	switch r := s.peek(); {
	case r == '\n':
		s.next()
		s.emitKind(KindLinebreak)
	case r == '\r':
		s.next()
		if s.peek() == '\n' {
			s.next()
		}
		s.emitKind(KindLinebreak)
	case isSpaceRune(r):
		scanSpace(s)
	case s.hasPrefix("//"):
		s.pos += 2
		s.emitKind(KindStartOfScope)
		scanLineComment(s)
	case s.hasPrefix("/*"):
		s.pos += 2
		s.emitKind(KindStartOfScope)
		return lexBlockComment(1)
	case r == '"':
		return scanStringOpen(s, "")
	case r == '#':
		return scanHash(s)
	case r == '@':
		s.next()
		if isIdentStart(s.peek()) {
			for isIdentRune(s.peek()) {
				s.next()
			}
			s.emitKind(KindAttribute)
		} else {
			s.emitKind(KindError)
		}
	case r == '`':
		scanBacktick(s)
	case r == '$':
		s.next()
		for isIdentRune(s.peek()) {
			s.next()
		}
		s.emitKind(KindIdentifier)
	case isIdentStart(r):
		scanWord(s)
	case unicode.IsDigit(r):
		scanNumber(s)
	case r == '(' || r == '[' || r == '{':
		s.next()
		s.push(string(r), false)
		s.emitKind(KindStartOfScope)
	case r == ')' || r == ']' || r == '}':
		return scanClose(s, r)
	case r == ',' || r == ';' || r == ':':
		s.next()
		s.emitKind(KindDelimiter)
	case isOperatorRune(r):
		scanOperator(s)
	default:
		s.next()
		s.emitKind(KindError)
	}
	return lexCode
}

func scanSpace(s *scanner) {
	for isSpaceRune(s.peek()) {
		s.next()
	}
	s.emitKind(KindSpace)
}

// scanLineComment emits the body of a // comment, splitting leading and
// trailing whitespace into space tokens.
func scanLineComment(s *scanner) {
	end := strings.IndexAny(s.input[s.pos:], "\r\n")
	if end < 0 {
		end = len(s.input) - s.pos
	}
	emitCommentText(s, s.pos+end)
}

func emitCommentText(s *scanner, end int) {
	text := s.input[s.pos:end]
	trimmedLeft := strings.TrimLeft(text, " \t")
	if lead := len(text) - len(trimmedLeft); lead > 0 {
		s.pos += lead
		s.emitKind(KindSpace)
	}
	body := strings.TrimRight(trimmedLeft, " \t")
	if body != "" {
		s.pos += len(body)
		s.emitKind(KindCommentBody)
	}
	if s.pos < end {
		s.pos = end
		s.emitKind(KindSpace)
	}
}

func lexBlockComment(depth int) stateFn {
	return func(s *scanner) stateFn {
		s.start = s.pos
		if s.pos >= len(s.input) {
			return nil
		}
		switch r := s.peek(); {
		case r == '\n':
			s.next()
			s.emitKind(KindLinebreak)
		case r == '\r':
			s.next()
			if s.peek() == '\n' {
				s.next()
			}
			s.emitKind(KindLinebreak)
		case s.hasPrefix("*/"):
			s.pos += 2
			s.emitKind(KindEndOfScope)
			if depth == 1 {
				return lexCode
			}
			return lexBlockComment(depth - 1)
		case s.hasPrefix("/*"):
			s.pos += 2
			s.emitKind(KindStartOfScope)
			return lexBlockComment(depth + 1)
		default:
			end := s.pos
			for end < len(s.input) {
				rest := s.input[end:]
				if rest[0] == '\n' || rest[0] == '\r' ||
					strings.HasPrefix(rest, "*/") || strings.HasPrefix(rest, "/*") {
					break
				}
				end++
			}
			emitCommentText(s, end)
		}
		return lexBlockComment(depth)
	}
}

func scanBacktick(s *scanner) {
	s.next()
	for {
		r := s.peek()
		if r == 0 || r == '\n' {
			s.emitKind(KindError)
			return
		}
		s.next()
		if r == '`' {
			s.emitKind(KindIdentifier)
			return
		}
	}
}

func scanWord(s *scanner) {
	for isIdentRune(s.peek()) {
		s.next()
	}
	if IsReservedKeyword(s.input[s.start:s.pos]) {
		// `x.default` and `.init` are member names, not keywords
		if prev := s.last(); prev.IsOperator(".") && s.input[s.start:s.pos] != "init" &&
			s.input[s.start:s.pos] != "self" {
			s.emitKind(KindIdentifier)
			return
		}
		s.emitKind(KindKeyword)
		return
	}
	s.emitKind(KindIdentifier)
}

func scanNumber(s *scanner) {
	kind := NumberInteger
	if s.hasPrefix("0x") || s.hasPrefix("0X") {
		kind = NumberHex
		s.pos += 2
	} else if s.hasPrefix("0b") {
		kind = NumberBinary
		s.pos += 2
	} else if s.hasPrefix("0o") {
		kind = NumberOctal
		s.pos += 2
	}
	digits := func() {
		for {
			r := s.peek()
			if unicode.IsDigit(r) || r == '_' || (kind == NumberHex && strings.ContainsRune("abcdefABCDEF", r)) {
				s.next()
				continue
			}
			return
		}
	}
	digits()
	if kind == NumberInteger || kind == NumberHex {
		if s.peek() == '.' && s.pos+1 < len(s.input) && isDigitOrHex(rune(s.input[s.pos+1]), kind) {
			s.next()
			digits()
			if kind == NumberInteger {
				kind = NumberDecimal
			}
		}
		exp := "eE"
		if kind == NumberHex {
			exp = "pP"
		}
		if r := s.peek(); strings.ContainsRune(exp, r) && r != 0 {
			save := s.pos
			s.next()
			if r := s.peek(); r == '+' || r == '-' {
				s.next()
			}
			if unicode.IsDigit(s.peek()) {
				digits()
				if kind == NumberInteger {
					kind = NumberDecimal
				}
			} else {
				s.pos = save
			}
		}
	}
	s.emit(Token{Kind: KindNumber, Number: kind})
}

func isDigitOrHex(r rune, kind NumberKind) bool {
	if kind == NumberHex {
		return unicode.IsDigit(r) || strings.ContainsRune("abcdefABCDEF", r)
	}
	return unicode.IsDigit(r)
}

func scanClose(s *scanner, r rune) stateFn {
	s.next()
	want := map[rune]string{')': "(", ']': "[", '}': "{"}[r]
	// an unterminated generic list never survives to a closing bracket
	for {
		top, ok := s.top()
		if !ok || top.open != "<" {
			break
		}
		s.demoteGeneric()
	}
	top, ok := s.top()
	if !ok || top.open != want {
		s.emitKind(KindError)
		return lexCode
	}
	sc := s.pop()
	s.emitKind(KindEndOfScope)
	if sc.interp {
		return lexString
	}
	return lexCode
}

// scanHash handles raw strings and # directives.
func scanHash(s *scanner) stateFn {
	hashes := 0
	for s.pos+hashes < len(s.input) && s.input[s.pos+hashes] == '#' {
		hashes++
	}
	if s.pos+hashes < len(s.input) && s.input[s.pos+hashes] == '"' {
		return scanStringOpen(s, strings.Repeat("#", hashes))
	}
	s.next()
	for isIdentRune(s.peek()) {
		s.next()
	}
	switch word := s.input[s.start:s.pos]; word {
	case "#":
		s.emitKind(KindError)
	case "#if":
		s.push("#if", false)
		s.emitKind(KindStartOfScope)
	case "#endif":
		if top, ok := s.top(); ok && top.open == "#if" {
			s.pop()
			s.emitKind(KindEndOfScope)
		} else {
			s.emitKind(KindError)
		}
	default:
		s.emitKind(KindKeyword)
	}
	return lexCode
}

func scanStringOpen(s *scanner, hashes string) stateFn {
	s.pos += len(hashes)
	delim := `"`
	if s.hasPrefix(`"""`) {
		delim = `"""`
	}
	s.pos += len(delim)
	s.push(hashes+delim, false)
	s.emitKind(KindStartOfScope)
	return lexString
}

// lexString scans string body text up to an interpolation or the closing delimiter.
func lexString(s *scanner) stateFn {
	s.start = s.pos
	top, _ := s.top()
	hashes := strings.Count(top.open, "#")
	delim := strings.TrimLeft(top.open, "#")
	closing := ClosingScope(top.open)
	multiline := delim == `"""`
	interp := `\` + strings.Repeat("#", hashes) + "("
	escape := `\` + strings.Repeat("#", hashes)

	for s.pos < len(s.input) {
		rest := s.input[s.pos:]
		switch {
		case strings.HasPrefix(rest, closing):
			if s.pos > s.start {
				s.emitKind(KindStringBody)
			}
			s.pos += len(closing)
			s.pop()
			s.emitKind(KindEndOfScope)
			return lexCode
		case strings.HasPrefix(rest, interp):
			s.pos += len(interp) - 1
			s.emitKind(KindStringBody)
			s.next()
			s.push("(", true)
			s.emitKind(KindStartOfScope)
			return lexCode
		case strings.HasPrefix(rest, escape) && len(rest) > len(escape):
			s.pos += len(escape)
			s.next()
		case rest[0] == '\n' || rest[0] == '\r':
			if !multiline {
				if s.pos > s.start {
					s.emitKind(KindStringBody)
				}
				s.unterminated()
				return lexCode
			}
			if s.pos > s.start {
				s.emitKind(KindStringBody)
			}
			if rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n' {
				s.pos += 2
			} else {
				s.pos++
			}
			s.emitKind(KindLinebreak)
		default:
			s.next()
		}
	}
	if s.pos > s.start {
		s.emitKind(KindStringBody)
	}
	s.unterminated()
	return nil
}

// demoteGeneric turns an unclosed generic opener back into an operator.
func (s *scanner) demoteGeneric() {
	sc := s.pop()
	s.tokens[sc.index] = Token{Kind: KindOperator, Text: "<", Position: PositionInfix}
}

// unterminated demotes the opener of the current string to an error token.
func (s *scanner) unterminated() {
	sc := s.pop()
	s.tokens[sc.index].Kind = KindError
}

// scanOperator scans a run of operator characters and classifies its position.
func scanOperator(s *scanner) {
	top, _ := s.top()
	inGeneric := top.open == "<"
	first := s.peek()

	if first == '>' && inGeneric {
		s.next()
		s.pop()
		s.emitKind(KindEndOfScope)
		return
	}
	if first == '<' && startsGenericList(s) {
		s.next()
		s.push("<", false)
		s.emitKind(KindStartOfScope)
		return
	}

	leftBound := s.pos > 0 && !isLeftBoundary(s.input[s.pos-1])
	if (first == '?' || first == '!') && leftBound {
		s.next()
		s.emit(Token{Kind: KindOperator, Position: PositionPostfix})
		return
	}

	prev := rune(0)
	for {
		r := s.peek()
		if !isOperatorRune(r) {
			break
		}
		if s.pos > s.start {
			if r == '.' && first != '.' {
				break
			}
			if s.hasPrefix("//") || s.hasPrefix("/*") {
				break
			}
			if inGeneric && r == '>' && prev != '-' {
				break
			}
		}
		s.next()
		prev = r
	}

	rightBound := s.pos < len(s.input) && !isRightBoundary(s, s.pos)
	text := s.input[s.start:s.pos]
	pos := PositionInfix
	switch {
	case text == ".":
		if !leftBound {
			pos = PositionPrefix
		}
	case leftBound && !rightBound:
		pos = PositionPostfix
	case rightBound && !leftBound:
		pos = PositionPrefix
	}
	if prevCode := s.lastCode(); prevCode.IsKeyword("func") || prevCode.IsKeyword("operator") {
		pos = PositionNone
	}
	s.emit(Token{Kind: KindOperator, Position: pos})
}

func isLeftBoundary(b byte) bool {
	return strings.IndexByte(" \t\r\n([{,;:", b) >= 0
}

func isRightBoundary(s *scanner, at int) bool {
	b := s.input[at]
	if strings.IndexByte(" \t\r\n)]},;:", b) >= 0 {
		return true
	}
	return strings.HasPrefix(s.input[at:], "//") || strings.HasPrefix(s.input[at:], "/*")
}

// startsGenericList decides whether the '<' at the cursor opens a generic
// argument list: it must follow a type-like word directly and be balanced by
// a '>' before any token that cannot appear in a type.
func startsGenericList(s *scanner) bool {
	prev := s.last()
	if !prev.IsIdentifier("") && !prev.IsKeyword("Self") && !prev.IsKeyword("Any") {
		return false
	}
	depth, parens := 0, 0
	for i := s.pos; i < len(s.input); i++ {
		switch c := s.input[i]; c {
		case '(', '[':
			parens++
		case ')', ']':
			if parens == 0 {
				return false
			}
			parens--
		case '<':
			depth++
		case '>':
			if i > 0 && s.input[i-1] == '-' {
				continue
			}
			depth--
			if depth == 0 {
				return true
			}
		case '\n', '\r', ';', '{', '}', '=', '"':
			return false
		case '&':
			if i+1 < len(s.input) && s.input[i+1] == '&' {
				return false
			}
		case '|':
			return false
		}
	}
	return false
}
