package jtok

import (
	"bytes"
	"fmt"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// Position returns the line and column of the given byte offset in text.
// Offsets past the end of text are clamped to the end.
func Position(text []byte, offset int) LineCol {
	offset = min(max(offset, 0), len(text))
	head := text[:offset]
	return LineCol{
		Line:   bytes.Count(head, []byte{'\n'}) + 1,
		Column: offset - (bytes.LastIndexByte(head, '\n') + 1),
	}
}
