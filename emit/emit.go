// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package emit implements a low-level writer for compact JSON text.
//
// A Writer accumulates text from a sequence of structural calls. It inserts
// the commas and colons required between elements, and panics if the calls
// are not balanced or a value appears where a key is required.
package emit

import (
	"strconv"

	"github.com/creachadair/pnobj/internal/escape"
	"go4.org/mem"
)

// A Writer accumulates JSON text. The zero value is ready for use as an empty
// writer.
type Writer struct {
	buf   []byte
	stack []frame
	done  bool // a complete top-level value has been written
}

type frame struct {
	obj  bool // object (true) or array (false)
	n    int  // number of elements or keys written
	vkey bool // in an object, a key awaits its value
}

// BeginObject opens a new object value.
func (w *Writer) BeginObject() { w.open(true, '{') }

// EndObject closes the innermost open object.
func (w *Writer) EndObject() { w.close(true, '}') }

// BeginArray opens a new array value.
func (w *Writer) BeginArray() { w.open(false, '[') }

// EndArray closes the innermost open array.
func (w *Writer) EndArray() { w.close(false, ']') }

// Key writes an object key. It must be followed by exactly one value.
func (w *Writer) Key(s string) {
	f := w.top()
	if f == nil || !f.obj {
		panic("emit: key outside an object")
	} else if f.vkey {
		panic("emit: key " + strconv.Quote(s) + " follows a key")
	}
	if f.n > 0 {
		w.buf = append(w.buf, ',')
	}
	w.buf = escape.AppendQuote(w.buf, mem.S(s))
	w.buf = append(w.buf, ':')
	f.n++
	f.vkey = true
}

// Uint writes an unsigned integer value.
func (w *Writer) Uint(v uint64) {
	w.value()
	w.buf = strconv.AppendUint(w.buf, v, 10)
}

// Int writes a signed integer value.
func (w *Writer) Int(v int64) {
	w.value()
	w.buf = strconv.AppendInt(w.buf, v, 10)
}

// String writes a string value.
func (w *Writer) String(s string) {
	w.value()
	w.buf = escape.AppendQuote(w.buf, mem.S(s))
}

// Null writes a null value.
func (w *Writer) Null() {
	w.value()
	w.buf = append(w.buf, "null"...)
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the text written. It panics if any object or array remains
// open. The writer retains ownership of the slice.
func (w *Writer) Bytes() []byte {
	if len(w.stack) != 0 {
		panic("emit: unclosed object or array")
	}
	return w.buf
}

// Reset discards the contents of w and leaves it empty.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.stack = w.stack[:0]
	w.done = false
}

func (w *Writer) top() *frame {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

// value prepares w to receive a value at the current position.
func (w *Writer) value() {
	f := w.top()
	switch {
	case f == nil:
		if w.done {
			panic("emit: multiple top-level values")
		}
		w.done = true
	case f.obj:
		if !f.vkey {
			panic("emit: object value without a key")
		}
		f.vkey = false
	default:
		if f.n > 0 {
			w.buf = append(w.buf, ',')
		}
		f.n++
	}
}

func (w *Writer) open(obj bool, b byte) {
	w.value()
	w.buf = append(w.buf, b)
	w.stack = append(w.stack, frame{obj: obj})
}

func (w *Writer) close(obj bool, b byte) {
	f := w.top()
	if f == nil || f.obj != obj {
		panic("emit: unbalanced " + string(b))
	} else if f.vkey {
		panic("emit: key without a value")
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.buf = append(w.buf, b)
}
