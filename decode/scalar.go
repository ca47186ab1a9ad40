// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"github.com/creachadair/pnobj"
	"github.com/creachadair/pnobj/internal/escape"
	"github.com/creachadair/pnobj/jtok"
	"go4.org/mem"
)

// number consumes a primitive token and parses it as an unsigned integer of
// the given bit width. A "0x" prefix selects hexadecimal.
func (c *cursor) number(bits int) uint64 {
	tok := c.expect(jtok.Primitive)
	v, err := mem.ParseUint(c.view(tok), 0, bits)
	if err != nil {
		c.fail(pnobj.ErrNumeric, tok, "not a %d-bit unsigned integer", bits)
	}
	return v
}

func (c *cursor) u32() uint32 { return uint32(c.number(32)) }

func (c *cursor) u8() byte { return byte(c.number(8)) }

// str consumes a string token and returns its decoded value.
func (c *cursor) str() string {
	tok := c.expect(jtok.String)
	s, err := escape.Unquote(c.view(tok))
	if err != nil {
		c.fail(pnobj.ErrMalformed, tok, "invalid string: %v", err)
	}
	return string(s)
}

// field consumes the key of an object member, which must be name.
// The cursor is left at the value of the member.
func (c *cursor) field(name string) { c.expectLiteral(name) }

// decodeArray consumes an array and decodes each of its elements with one,
// in document order. It returns nil for an empty array.
func decodeArray[T any](c *cursor, one func() T) []T {
	arr := c.expect(jtok.Array)
	if arr.Size == 0 {
		return nil
	}
	out := make([]T, 0, arr.Size)
	for range arr.Size {
		out = append(out, one())
	}
	return out
}

// bytes consumes a byte array. The array is either a flat list of bytes, or
// a pair of arrays giving the values and lengths of runs.
func (c *cursor) bytes() []byte {
	arr := c.expect(jtok.Array)
	if arr.Size == 0 {
		return nil
	}
	if arr.Size == 2 && c.current().Kind == jtok.Array {
		values := decodeArray(c, c.u8)
		if c.current().Kind != jtok.Array {
			c.fail(pnobj.ErrMalformed, c.current(), "expected run lengths")
		}
		ltok := c.current()
		lengths := decodeArray(c, c.u32)
		var total uint64
		for _, n := range lengths {
			total += uint64(n)
		}
		c.checkLen(ltok, total)
		out, ok := pnobj.DecodeRLE(values, lengths)
		if !ok {
			c.fail(pnobj.ErrMalformed, arr, "invalid run-length encoding (%d values, %d lengths)",
				len(values), len(lengths))
		} else if len(out) == 0 {
			return nil
		}
		return out
	}
	c.checkLen(arr, uint64(arr.Size))
	out := make([]byte, arr.Size)
	for i := range out {
		out[i] = c.u8()
	}
	return out
}

// checkLen fails if n bytes exceeds the allocation limit of c.
func (c *cursor) checkLen(tok jtok.Token, n uint64) {
	if n > uint64(c.maxBytes) {
		c.fail(pnobj.ErrTooLarge, tok, "%d bytes exceeds limit %d", n, c.maxBytes)
	}
}
