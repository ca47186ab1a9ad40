// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Kind is the type of a structural token.
type Kind byte

// Constants defining the valid Kind values.
const (
	Undefined Kind = iota // invalid token
	Object                // object {...}
	Array                 // array [...]
	String                // string, without its quotation marks
	Primitive             // number, true, false, or null
)

var kindStr = [...]string{
	Undefined: "undefined",
	Object:    "object",
	Array:     "array",
	String:    "string",
	Primitive: "primitive",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Undefined]
	}
	return kindStr[k]
}

// A Token is one node of a JSON value, in document order. A token does not
// record its children; they follow it immediately in the token array.
type Token struct {
	Kind  Kind
	Start int // offset of the first byte; for a string, just past the open quote
	End   int // offset past the last byte; for a string, of the close quote
	Size  int // number of immediate children
}

// Text returns the text of t in src. The text of a string is undecoded.
func (t Token) Text(src []byte) []byte { return src[t.Start:t.End] }

// The immediate children of each kind of token are:
//
//	Kind      | Size | Children
//	--------- | ---- | ---------------------------------------
//	Object    | n    | n key strings, each followed by its value
//	Array     | n    | n values
//	String    | 1    | the value, if the string is an object key
//	String    | 0    | none, otherwise
//	Primitive | 0    | none

// Tokenize returns the tokens of the single JSON value in text, with default
// settings.
func Tokenize(text []byte) ([]Token, error) {
	var t Tokenizer
	return t.Tokenize(text)
}

// A Tokenizer converts JSON text into a flat array of tokens.
// A zero value is ready for use and accepts strict JSON, extended to allow
// hexadecimal integers (0x1f).
type Tokenizer struct {
	comments bool // allow comments
	tcomma   bool // allow trailing commas in objects and arrays
}

// AllowComments configures t to skip (true) or reject (false) comments.
// Comments are a non-standard extension of JSON (RFC 8259). If enabled, C++
// style block comments (/* ... */) and line comments (// ...) are discarded.
func (t *Tokenizer) AllowComments(ok bool) { t.comments = ok }

// AllowTrailingCommas configures t to allow (true) or reject (false) trailing
// commas in objects and arrays.
func (t *Tokenizer) AllowTrailingCommas(ok bool) { t.tcomma = ok }

// Tokenize returns the tokens of the single JSON value in text. In case of a
// syntax error, the returned error has type [*SyntaxError].
func (t *Tokenizer) Tokenize(text []byte) (_ []Token, err error) {
	p := &parser{
		lx:     lexer{src: text, comments: t.comments},
		tcomma: t.tcomma,
	}
	defer p.recoverParseError(&err)

	p.advance()
	p.parseElement()
	if err := p.lx.next(); err == nil {
		p.syntaxError(nil, "extra input after value: %v", p.lx.tok)
	} else if err != io.EOF {
		p.syntaxError(err, "%v", err)
	}
	return p.toks, nil
}

type parser struct {
	lx     lexer
	tcomma bool
	toks   []Token
}

func (p *parser) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		if err, ok := serr.(*SyntaxError); ok {
			*errp = err
			return
		}
		panic(serr)
	}
}

// push appends a new token of kind k spanning [start, end) and returns its
// index in the token array.
func (p *parser) push(k Kind, start, end int) int {
	p.toks = append(p.toks, Token{Kind: k, Start: start, End: end})
	return len(p.toks) - 1
}

// parseElement consumes a single value of any type.
// Precondition: the current token is the first token of the value.
func (p *parser) parseElement() {
	switch tok := p.lx.tok; tok {
	case lexLBrace:
		i := p.push(Object, p.lx.pos, -1)
		p.parseMembers(i)
		p.toks[i].End = p.lx.end
	case lexLSquare:
		i := p.push(Array, p.lx.pos, -1)
		p.parseElements(i)
		p.toks[i].End = p.lx.end
	case lexString:
		p.push(String, p.lx.pos+1, p.lx.end-1)
	case lexNumber, lexConst:
		p.push(Primitive, p.lx.pos, p.lx.end)
	case lexRBrace, lexRSquare, lexComma, lexColon:
		p.syntaxError(nil, "unexpected %v", tok)
	default:
		p.syntaxError(nil, "unknown token %v", tok)
	}
}

// parseMembers consumes zero of more key:value object members belonging to
// the object at index obj.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (p *parser) parseMembers(obj int) {
	tok := p.advance(lexRBrace, lexString)
	if tok == lexRBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		key := p.push(String, p.lx.pos+1, p.lx.end-1)
		p.toks[key].Size = 1
		p.toks[obj].Size++
		p.advance(lexColon)
		p.advance()
		p.parseElement()

		// Check whether we have more members (",") or are done ("}").
		tok := p.advance(lexRBrace, lexComma)
		if tok == lexRBrace {
			return // end of object
		} else if p.tcomma {
			// If trailing commas are allowed and the next token is a close
			// bracket, consider this a valid end of the object. Otherwise, it
			// must be a key for a subsequent element.
			if next := p.advance(lexString, lexRBrace); next == lexRBrace {
				return // end of object with trailing comma
			}
		} else {
			p.advance(lexString) // advance to next key
		}
	}
}

// parseElements consumes zero or more comma-separated array values belonging
// to the array at index arr.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (p *parser) parseElements(arr int) {
	if tok := p.advance(); tok == lexRSquare {
		return // end of array
	}
	for {
		p.parseElement()
		p.toks[arr].Size++

		tok := p.advance(lexRSquare, lexComma)
		if tok == lexRSquare {
			return // end of array
		}

		// If trailing commas are allowed and the next token is a close bracket,
		// consider this a valid end of the array; otherwise it will fail on the
		// next element.
		if next := p.advance(); p.tcomma && next == lexRSquare {
			return // end of array with trailing comma
		}
	}
}

// advance reads the next token and checks that it is one of tokens, if any
// are given. At the end of input it reports a syntax error.
func (p *parser) advance(tokens ...lexeme) lexeme {
	if err := p.lx.next(); err == io.EOF {
		p.syntaxError(io.ErrUnexpectedEOF, "%v", tokLabel(tokens, "error: unexpected EOF"))
	} else if err != nil {
		p.syntaxError(err, "%v", err)
	}
	tok := p.lx.tok
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		p.syntaxError(nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (p *parser) syntaxError(err error, msg string, args ...any) {
	pos := p.lx.pos
	var perr posError
	if errors.As(err, &perr) {
		pos = perr.pos
	}
	panic(&SyntaxError{
		Location: Position(p.lx.src, pos),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []lexeme, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected more input, got %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by the tokenizer.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
