// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"slices"
	"strings"

	"github.com/creachadair/pnobj"
	"github.com/creachadair/pnobj/jtok"
)

// refPrefix begins the text of every reference.
const refPrefix = "#/"

// A stub is a reference whose resolution is deferred until every record of
// the document has been registered.
type stub struct {
	cat  pnobj.Category
	name string
	tok  jtok.Token // of the reference, for diagnostics
}

// A pendingSeq is a sequence whose members have not yet been bound.
type pendingSeq struct {
	seq    *pnobj.Sequence
	anchor string
	stubs  []stub
}

// ref consumes a reference object and returns its target. It reports false
// for an empty object, or for a reference with an empty name.
func (d *decoder) ref() (stub, bool) {
	obj := d.expect(jtok.Object)
	if obj.Size == 0 {
		return stub{}, false
	} else if obj.Size != 1 {
		d.fail(pnobj.ErrMalformed, obj, "reference has %d members, want 1", obj.Size)
	}
	d.field("$ref")
	tok := d.current()
	rest, ok := strings.CutPrefix(d.str(), refPrefix)
	if !ok {
		d.fail(pnobj.ErrMalformed, tok, "reference must begin with %q", refPrefix)
	}
	path, name, ok := strings.Cut(rest, "/")
	if !ok {
		d.fail(pnobj.ErrMalformed, tok, "reference has no name")
	} else if name == "" {
		return stub{}, false
	}
	cat, ok := pnobj.CategoryByPath(path)
	if !ok {
		d.fail(pnobj.ErrUnknownSymbol, tok, "unknown reference path %q", path)
	}
	return stub{cat: cat, name: name, tok: tok}, true
}

// find looks up the target of s. A function that has no record of its own is
// taken from the function table and registered on first use.
func (d *decoder) find(s stub) (pnobj.Object, bool) {
	if obj, ok := d.reg.Find(s.cat, s.name); ok {
		return obj, true
	}
	if s.cat == pnobj.CatFunc {
		if fn, ok := d.funcs.Lookup(s.name); ok {
			f := pnobj.NewFunction(s.name, fn)
			d.reg.AddFunction(f)
			return f, true
		}
	}
	return nil, false
}

// resolve looks up the target of s, which must exist and have one of the
// wanted categories.
func (d *decoder) resolve(s stub, want ...pnobj.Category) pnobj.Object {
	obj, ok := d.find(s)
	if !ok {
		d.fail(pnobj.ErrDangling, s.tok, "no %v named %q", s.cat, s.name)
	}
	if len(want) != 0 && !slices.Contains(want, s.cat) {
		d.fail(pnobj.ErrCategoryMismatch, s.tok, "%v %q is not a %v", s.cat, s.name, want[0])
	}
	return obj
}

// refTo consumes a reference to an existing record of one of the wanted
// categories. It returns nil if the reference is empty.
func refTo[T pnobj.Object](d *decoder, want ...pnobj.Category) T {
	var zero T
	s, ok := d.ref()
	if !ok {
		return zero
	}
	return d.resolve(s, want...).(T)
}

// mustRefTo is as refTo, but the reference may not be empty.
func mustRefTo[T pnobj.Object](d *decoder, want ...pnobj.Category) T {
	tok := d.current()
	s, ok := d.ref()
	if !ok {
		d.fail(pnobj.ErrMalformed, tok, "missing reference to %v", want[0])
	}
	return d.resolve(s, want...).(T)
}

// bindSequences resolves the members of every sequence decoded so far.
func (d *decoder) bindSequences() {
	for _, p := range d.pending {
		d.anchor = p.anchor
		if len(p.stubs) != 0 {
			p.seq.Cmds = make([]pnobj.Object, len(p.stubs))
		}
		for i, s := range p.stubs {
			p.seq.Cmds[i] = d.resolve(s)
		}
	}
	d.pending = nil
}
