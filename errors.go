// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds reported when decoding a document. Use errors.Is to test an
// error for one of these kinds.
var (
	// ErrMalformed means a token had the wrong kind or shape for its position.
	ErrMalformed = errors.New("malformed document")

	// ErrUnknownSymbol means a string did not name a member of a closed
	// enumeration: a category, packet type, operator or property type.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrNumeric means a number was not a valid integer for its field.
	ErrNumeric = errors.New("invalid number")

	// ErrDangling means a reference named an object that does not exist.
	ErrDangling = errors.New("dangling reference")

	// ErrCategoryMismatch means a reference named an object of a category the
	// field does not accept.
	ErrCategoryMismatch = errors.New("category mismatch")

	// ErrDuplicate means two objects of the same category share a name.
	ErrDuplicate = errors.New("duplicate object")

	// ErrTooLarge means a byte array or packet buffer would exceed the
	// allocation limit of the decoder.
	ErrTooLarge = errors.New("object too large")
)

// Error is the concrete type of errors reported while decoding a document.
type Error struct {
	Kind    error  // one of the Err* kinds
	Line    int    // line number of the offending token, 1-based; 0 if unknown
	Anchor  string // key of the record being decoded, if any
	Text    string // text of the offending token, if any
	Message string
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&sb, "at line %d: ", e.Line)
	}
	if e.Anchor != "" {
		fmt.Fprintf(&sb, "in %q: ", e.Anchor)
	}
	sb.WriteString(e.Kind.Error())
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Text != "" {
		fmt.Fprintf(&sb, " (got %q)", e.Text)
	}
	return sb.String()
}

// Unwrap reports the kind of e.
func (e *Error) Unwrap() error { return e.Kind }
