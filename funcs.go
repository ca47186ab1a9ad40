// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

import (
	"encoding/hex"
	"fmt"
	"maps"
)

// A Func is the implementation of a named hook. It is called with the object
// on whose behalf it runs, and its integer result is meaningful for index
// selectors and condition operands.
type Func func(obj Object) (int, error)

// A FuncTable maps hook names to their implementations. Function records are
// bound by name against a table when a document is decoded.
type FuncTable map[string]Func

// Lookup returns the implementation of name, if t has one.
func (t FuncTable) Lookup(name string) (Func, bool) {
	fn, ok := t[name]
	return fn, ok
}

// With returns a copy of t extended with the entries of other. Entries of
// other replace those of t with the same name.
func (t FuncTable) With(other FuncTable) FuncTable {
	out := maps.Clone(t)
	if out == nil {
		out = make(FuncTable, len(other))
	}
	maps.Copy(out, other)
	return out
}

// DefaultFuncs is the table of generic hooks used when no other table is
// supplied.
var DefaultFuncs = FuncTable{
	"maptbl_init_default":   maptblInitDefault,
	"maptbl_getidx_default": func(Object) (int, error) { return 0, nil },
	"maptbl_copy_default":   maptblCopyDefault,
	"dump_show_hexdump":     dumpShowHexdump,
	"cond_true":             func(Object) (int, error) { return 1, nil },
	"cond_false":            func(Object) (int, error) { return 0, nil },
}

func maptblInitDefault(obj Object) (int, error) {
	m, ok := obj.(*Maptbl)
	if !ok {
		return 0, fmt.Errorf("init: %v is not a lookup table", obj.Head())
	}
	if m.Size() != len(m.Data) {
		return 0, fmt.Errorf("init: %s has %d bytes for %d cells", m.Name, len(m.Data), m.Size())
	}
	return 0, nil
}

func maptblCopyDefault(obj Object) (int, error) {
	m, ok := obj.(*Maptbl)
	if !ok {
		return 0, fmt.Errorf("copy: %v is not a lookup table", obj.Head())
	}
	n := len(m.Shape.Dims)
	if n == 0 {
		return 0, nil
	}
	return int(m.Shape.Dims[n-1]), nil
}

func dumpShowHexdump(obj Object) (int, error) {
	d, ok := obj.(*Dump)
	if !ok || d.Res == nil {
		return 0, fmt.Errorf("dump: %v has no resource", obj.Head())
	}
	fmt.Print(hex.Dump(d.Res.Data))
	return len(d.Res.Data), nil
}
