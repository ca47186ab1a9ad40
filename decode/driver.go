// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package decode constructs a panel object graph from a JSON document.
//
// A document is a JSON object whose keys are category section names (see
// [pnobj.Category.Path]). Each section is an object mapping record keys to
// records, and each record begins with a header naming its type and name:
//
//	{"MAPTBL": {"t1": {"pnobj": {"type": "MAPTBL", "name": "t1"}, ...}}}
//
// The fields of each record must appear in a fixed order. A reference from
// one record to another has the form {"$ref": "#/<section>/<name>"}, or {}
// when absent. The target of a reference must be decoded before the record
// that refers to it, except for the members of a sequence, which may refer
// to records anywhere in the document.
package decode

import (
	"fmt"

	"github.com/creachadair/pnobj"
	"github.com/creachadair/pnobj/jtok"
)

// Options control the behaviour of Decode. A nil *Options provides default
// values.
type Options struct {
	// Funcs is the table of functions that FUNC records and function
	// references may name. If nil, pnobj.DefaultFuncs is used.
	Funcs pnobj.FuncTable

	// AllowComments permits JavaScript-style comments in the document.
	AllowComments bool

	// AllowTrailingCommas permits a trailing comma in objects and arrays.
	AllowTrailingCommas bool

	// MaxBytes bounds the length of any single byte array or packet buffer
	// the document describes. If zero, DefaultMaxBytes is used.
	MaxBytes int

	// If set, Logf receives warnings about records that decode successfully
	// but are probably not what the author intended.
	Logf func(msg string, args ...any)
}

// DefaultMaxBytes is the default limit on the size of a byte array or packet
// buffer, used when Options.MaxBytes is zero.
const DefaultMaxBytes = 1 << 20

func (o *Options) maxBytes() int {
	if o == nil || o.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return o.MaxBytes
}

func (o *Options) funcs() pnobj.FuncTable {
	if o == nil || o.Funcs == nil {
		return pnobj.DefaultFuncs
	}
	return o.Funcs
}

func (o *Options) logf(msg string, args ...any) {
	if o != nil && o.Logf != nil {
		o.Logf(msg, args...)
	}
}

func (o *Options) tokenizer() *jtok.Tokenizer {
	var t jtok.Tokenizer
	if o != nil {
		t.AllowComments(o.AllowComments)
		t.AllowTrailingCommas(o.AllowTrailingCommas)
	}
	return &t
}

// A decoder holds the state of a single call to Decode.
type decoder struct {
	cursor

	reg     *pnobj.Registry
	funcs   pnobj.FuncTable
	logf    func(string, ...any)
	pending []pendingSeq
}

// Decode decodes the document in text and adds its records to reg.
//
// Decoding is atomic: if any record of the document cannot be decoded, Decode
// removes every record it added to reg and reports an error. Errors in the
// structure of the document have concrete type [*pnobj.Error], whose Kind
// reports the reason. A document that is not valid JSON reports an error
// that wraps [pnobj.ErrMalformed] and a [*jtok.SyntaxError].
func Decode(text []byte, reg *pnobj.Registry, opts *Options) (err error) {
	toks, err := opts.tokenizer().Tokenize(text)
	if err != nil {
		return fmt.Errorf("%w: %w", pnobj.ErrMalformed, err)
	}
	d := &decoder{
		cursor: cursor{text: text, toks: toks, maxBytes: opts.maxBytes()},
		reg:    reg,
		funcs:  opts.funcs(),
		logf:   opts.logf,
	}
	mark := reg.Mark()
	defer d.recoverDecodeError(mark, &err)

	d.document()
	d.bindSequences()
	return nil
}

// Parse decodes the document in text into a new registry.
func Parse(text []byte, opts *Options) (*pnobj.Registry, error) {
	reg := pnobj.NewRegistry()
	if err := Decode(text, reg, opts); err != nil {
		return nil, err
	}
	return reg, nil
}

func (d *decoder) recoverDecodeError(mark pnobj.Mark, errp *error) {
	if x := recover(); x != nil {
		perr, ok := x.(*pnobj.Error)
		if !ok {
			panic(x)
		}
		d.reg.Rollback(mark)
		*errp = perr
	}
}

// document decodes each section of the document in order.
func (d *decoder) document() {
	root := d.expect(jtok.Object)
	for range root.Size {
		d.anchor = ""
		tok := d.expect(jtok.String)
		cat, ok := pnobj.CategoryByPath(d.view(tok).StringCopy())
		if !ok {
			d.fail(pnobj.ErrUnknownSymbol, tok, "unknown section")
		}
		sec := d.expect(jtok.Object)
		for range sec.Size {
			d.record(cat)
		}
	}
}

// record decodes a single record of the section for cat and registers it.
func (d *decoder) record(cat pnobj.Category) {
	d.anchor = ""
	key := d.current()
	d.anchor = d.str()

	rec := d.expect(jtok.Object)
	if rec.Size == 0 {
		d.fail(pnobj.ErrMalformed, rec, "missing record header")
	}
	h := d.header()
	if h.Cat != cat {
		d.fail(pnobj.ErrCategoryMismatch, key, "%v record in %s section", h.Cat, cat.Path())
	}

	obj := recordDecoders[cat](d, h, rec)
	if f, ok := obj.(*pnobj.Function); ok {
		if !d.reg.AddFunction(f) {
			d.logf("skipped duplicate function %q", f.Name)
		}
	} else if err := d.reg.Add(obj); err != nil {
		d.fail(pnobj.ErrDuplicate, key, "%v %q already defined", h.Cat, h.Name)
	}
}

// header decodes the common header of a record.
func (d *decoder) header() pnobj.Header {
	d.field("pnobj")
	d.expectSize(jtok.Object, 2)
	d.field("type")
	tok := d.current()
	cat, ok := pnobj.CategoryByType(d.str())
	if !ok {
		d.fail(pnobj.ErrUnknownSymbol, tok, "invalid type")
	}
	d.field("name")
	tok = d.current()
	name := d.str()
	if name == "" {
		d.fail(pnobj.ErrMalformed, tok, "empty name")
	}
	return pnobj.Header{Cat: cat, Name: name}
}
