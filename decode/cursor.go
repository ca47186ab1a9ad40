// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"fmt"

	"github.com/creachadair/pnobj"
	"github.com/creachadair/pnobj/jtok"
	"go4.org/mem"
)

// A cursor walks the token array of a document in order. Methods that find
// an unexpected token panic with a *pnobj.Error, which the caller of the
// decoder recovers.
type cursor struct {
	text     []byte
	toks     []jtok.Token
	pos      int
	anchor   string // key of the record being decoded, for diagnostics
	maxBytes int    // limit on the length of a decoded byte array
}

// current returns the token at the cursor without consuming it.
func (c *cursor) current() jtok.Token {
	if c.pos >= len(c.toks) {
		c.failf(pnobj.ErrMalformed, "unexpected end of document")
	}
	return c.toks[c.pos]
}

// advance consumes and returns the token at the cursor.
func (c *cursor) advance() jtok.Token {
	tok := c.current()
	c.pos++
	return tok
}

// expect consumes the token at the cursor and checks that it has kind k.
func (c *cursor) expect(k jtok.Kind) jtok.Token {
	tok := c.current()
	if tok.Kind != k {
		c.fail(pnobj.ErrMalformed, tok, "expected %v, got %v", k, tok.Kind)
	}
	c.pos++
	return tok
}

// expectLiteral consumes a string token whose raw text is exactly s.
func (c *cursor) expectLiteral(s string) {
	tok := c.expect(jtok.String)
	if !c.view(tok).EqualString(s) {
		c.fail(pnobj.ErrMalformed, tok, "expected %q", s)
	}
}

// expectSize consumes a token of kind k having exactly n children.
func (c *cursor) expectSize(k jtok.Kind, n int) jtok.Token {
	tok := c.expect(k)
	if tok.Size != n {
		c.fail(pnobj.ErrMalformed, tok, "%v has %d members, want %d", k, tok.Size, n)
	}
	return tok
}

// skip consumes the value at the cursor, including all its descendants.
func (c *cursor) skip() {
	tok := c.advance()
	for range tok.Size {
		c.skip()
	}
}

// view returns a read-only view of the raw text of tok.
func (c *cursor) view(tok jtok.Token) mem.RO { return mem.B(tok.Text(c.text)) }

// line reports the 1-based line number of the start of tok.
func (c *cursor) line(tok jtok.Token) int { return jtok.Position(c.text, tok.Start).Line }

// errorAt constructs an error of the given kind for tok.
func (c *cursor) errorAt(kind error, tok jtok.Token, msg string, args ...any) *pnobj.Error {
	text := tok.Text(c.text)
	switch tok.Kind {
	case jtok.Object, jtok.Array:
		text = text[:1]
	}
	return &pnobj.Error{
		Kind:    kind,
		Line:    c.line(tok),
		Anchor:  c.anchor,
		Text:    string(text),
		Message: fmt.Sprintf(msg, args...),
	}
}

// fail aborts decoding with an error of the given kind for tok.
func (c *cursor) fail(kind error, tok jtok.Token, msg string, args ...any) {
	panic(c.errorAt(kind, tok, msg, args...))
}

// failf aborts decoding with an error that is not tied to a token.
func (c *cursor) failf(kind error, msg string, args ...any) {
	panic(&pnobj.Error{
		Kind:    kind,
		Line:    jtok.Position(c.text, len(c.text)).Line,
		Anchor:  c.anchor,
		Message: fmt.Sprintf(msg, args...),
	})
}
