// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// lexeme is the type of a lexical token in the JSON grammar.
type lexeme byte

const (
	lexInvalid lexeme = iota // invalid token
	lexLBrace                // left brace "{"
	lexRBrace                // right brace "}"
	lexLSquare               // left square bracket "["
	lexRSquare               // right square bracket "]"
	lexComma                 // comma ","
	lexColon                 // colon ":"
	lexNumber                // number, including hexadecimal integers
	lexString                // quoted string
	lexConst                 // constant: true, false, null
)

var lexemeStr = [...]string{
	lexInvalid: "invalid token",
	lexLBrace:  `"{"`,
	lexRBrace:  `"}"`,
	lexLSquare: `"["`,
	lexRSquare: `"]"`,
	lexComma:   `","`,
	lexColon:   `":"`,
	lexNumber:  "number",
	lexString:  "string",
	lexConst:   "constant",
}

func (t lexeme) String() string {
	if int(t) >= len(lexemeStr) {
		return lexemeStr[lexInvalid]
	}
	return lexemeStr[t]
}

// A lexer reads lexical tokens from a complete input buffer. Each call to next
// advances to the next token, or reports an error.
type lexer struct {
	src      []byte
	comments bool // skip comments rather than rejecting them

	tok      lexeme
	pos, end int // start and end offsets of the current token
}

// next advances to the next token of the input, or reports an error. At the
// end of the input, next returns io.EOF.
func (s *lexer) next() error {
	s.tok = lexInvalid
	for {
		s.pos = s.end
		for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
			s.pos++
		}
		s.end = s.pos
		if s.pos == len(s.src) {
			return io.EOF
		}

		ch := s.src[s.pos]
		if t, ok := selfDelim(ch); ok {
			s.end++
			s.tok = t
			return nil
		}
		if isNumStart(ch) {
			return s.scanNumber()
		}
		if ch == '"' {
			return s.scanString()
		}

		// Comments are discarded; the token stream has no place for them.
		if ch == '/' && s.comments {
			if err := s.scanComment(); err != nil {
				return err
			}
			continue
		}

		var want string
		switch ch {
		case 't':
			want = "true"
		case 'f':
			want = "false"
		case 'n':
			want = "null"
		default:
			return s.failf("unexpected %q", ch)
		}
		s.scanName()
		if got := mem.B(s.src[s.pos:s.end]); !got.EqualString(want) {
			return s.failf("unknown constant %q", got.StringCopy())
		}
		s.tok = lexConst
		return nil
	}
}

// text returns the undecoded text of the current token.
func (s *lexer) text() []byte { return s.src[s.pos:s.end] }

func (s *lexer) scanString() error {
	s.end++ // opening quote
	var esc bool
	for s.end < len(s.src) {
		ch := s.src[s.end]
		if esc {
			// We are awaiting the completion of a \-escape.
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.end++
			case 'u':
				s.end++
				if err := s.readHex4(); err != nil {
					return s.failf("invalid Unicode escape: %w", err)
				}
			default:
				return s.failf("invalid %q after escape", ch)
			}
			esc = false
			continue
		}
		switch {
		case ch == '"':
			s.end++
			s.tok = lexString
			return nil
		case ch < ' ':
			return s.failf("unescaped control %q", ch)
		case ch < utf8.RuneSelf:
			esc = ch == '\\'
			s.end++
		default:
			r, n := utf8.DecodeRune(s.src[s.end:])
			if r == utf8.RuneError && n <= 1 {
				return s.failf("invalid UTF-8 encoding")
			}
			s.end += n
		}
	}
	return s.fail(io.ErrUnexpectedEOF)
}

func (s *lexer) scanNumber() error {
	s.tok = lexNumber
	if s.src[s.end] == '-' {
		// If there is a leading sign, we need at least one digit.
		s.end++
		if s.readWhile(isDigit) == 0 {
			return s.failf("want digit after sign")
		}
	} else if s.hasPrefix("0x") || s.hasPrefix("0X") {
		s.end += 2
		if s.readWhile(isHexDigit) == 0 {
			return s.failf("no digits after hex prefix")
		}
		return s.checkEnd()
	} else {
		s.readWhile(isDigit)
	}

	// Check for extra leading zeroes, which are disallowed by RFC 8259.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.text()) {
		return s.failf("extra leading zeroes")
	}

	// If a decimal point follows, consume a fractional part.
	if s.peek() == '.' {
		s.end++
		if s.readWhile(isDigit) == 0 {
			return s.failf("no digits after decimal point")
		}
	}

	// If an exponent follows, consume it.
	if ch := s.peek(); ch == 'E' || ch == 'e' {
		s.end++
		if ch := s.peek(); ch == '-' || ch == '+' {
			s.end++
		}
		if s.readWhile(isDigit) == 0 {
			return s.failf("missing exponent digits")
		}
	}
	return s.checkEnd()
}

// checkEnd reports an error if a number is immediately followed by a name
// rune, as in "12x" or "0x1g".
func (s *lexer) checkEnd() error {
	if ch := s.peek(); isNameRune(ch) || isDigit(ch) {
		return s.failf("unexpected %q in number", ch)
	}
	return nil
}

func (s *lexer) scanComment() error {
	s.end++ // leading "/"
	switch s.peek() {
	case '/': // line comment to LF
		for s.end < len(s.src) && s.src[s.end] != '\n' {
			s.end++
		}
		return nil

	case '*': // block comment
		i := strings.Index(string(s.src[s.end+1:]), "*/")
		if i < 0 {
			return s.failf("unterminated block comment")
		}
		s.end += i + 3
		return nil

	default:
		return s.failf("invalid %q in comment", s.peek())
	}
}

func (s *lexer) scanName() { s.readWhile(isNameRune) }

func (s *lexer) peek() byte {
	if s.end < len(s.src) {
		return s.src[s.end]
	}
	return 0
}

func (s *lexer) hasPrefix(p string) bool {
	return mem.HasPrefix(mem.B(s.src[s.end:]), mem.S(p))
}

// readWhile consumes bytes matching f from the input until the end of input
// or a byte not matching f is found. It reports the number of bytes consumed.
func (s *lexer) readWhile(f func(byte) bool) int {
	start := s.end
	for s.end < len(s.src) && f(s.src[s.end]) {
		s.end++
	}
	return s.end - start
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *lexer) readHex4() error {
	for i := 0; i < 4; i++ {
		ch := s.peek()
		if !isHexDigit(ch) {
			return fmt.Errorf("not a hex digit: %q", ch)
		}
		s.end++
	}
	return nil
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *lexer) fail(err error) error { return posError{s.end, err} }

func (s *lexer) failf(msg string, args ...any) error {
	return posError{s.end, fmt.Errorf(msg, args...)}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch byte) bool { return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by RFC 8259.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]lexeme{lexLBrace, lexRBrace, lexLSquare, lexRSquare, lexComma, lexColon}

func selfDelim(ch byte) (lexeme, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return lexInvalid, false
}
