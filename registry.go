// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

import "fmt"

type objKey struct {
	cat  Category
	name string
}

// A Registry holds the objects of a panel command set in insertion order.
// Functions are kept in a separate namespace keyed by name only.
//
// A Registry is not safe for concurrent use without external synchronization.
type Registry struct {
	objs  []Object
	index map[objKey]Object

	funcs  []*Function
	findex map[string]*Function
}

// NewRegistry constructs a new empty registry. A zero Registry is also ready
// for use.
func NewRegistry() *Registry {
	return &Registry{
		index:  make(map[objKey]Object),
		findex: make(map[string]*Function),
	}
}

// Add inserts o into r. It reports an error wrapping ErrDuplicate if r already
// contains an object with the same category and name. Adding a *Function
// behaves as AddFunction and never fails.
func (r *Registry) Add(o Object) error {
	if f, ok := o.(*Function); ok {
		r.AddFunction(f)
		return nil
	}
	h := o.Head()
	if !h.Cat.Valid() {
		return fmt.Errorf("add %q: invalid category %d", h.Name, h.Cat)
	}
	if r.index == nil {
		r.index = make(map[objKey]Object)
	}
	key := objKey{h.Cat, h.Name}
	if _, ok := r.index[key]; ok {
		return fmt.Errorf("add %v: %w", h, ErrDuplicate)
	}
	r.index[key] = o
	r.objs = append(r.objs, o)
	return nil
}

// AddFunction inserts f into the function namespace of r, and reports whether
// it was added. If a function with the same name is already present, f is
// discarded and AddFunction returns false.
func (r *Registry) AddFunction(f *Function) bool {
	if r.findex == nil {
		r.findex = make(map[string]*Function)
	}
	if _, ok := r.findex[f.Name]; ok {
		return false
	}
	r.findex[f.Name] = f
	r.funcs = append(r.funcs, f)
	return true
}

// Find returns the object of category c with the given name, if one exists.
// For CatFunc it searches the function namespace.
func (r *Registry) Find(c Category, name string) (Object, bool) {
	if c == CatFunc {
		f, ok := r.findex[name]
		return f, ok
	}
	o, ok := r.index[objKey{c, name}]
	return o, ok
}

// Function returns the function with the given name, if one exists.
func (r *Registry) Function(name string) (*Function, bool) {
	f, ok := r.findex[name]
	return f, ok
}

// Functions returns the functions of r in insertion order.
func (r *Registry) Functions() []*Function { return append([]*Function(nil), r.funcs...) }

// Objects returns the non-function objects of r in insertion order.
func (r *Registry) Objects() []Object { return append([]Object(nil), r.objs...) }

// ByCategory returns the objects of category c in insertion order.
func (r *Registry) ByCategory(c Category) []Object {
	if c == CatFunc {
		out := make([]Object, len(r.funcs))
		for i, f := range r.funcs {
			out[i] = f
		}
		return out
	}
	var out []Object
	for _, o := range r.objs {
		if o.Head().Cat == c {
			out = append(out, o)
		}
	}
	return out
}

// Sequences returns the sequences of r in insertion order.
func (r *Registry) Sequences() []*Sequence {
	var out []*Sequence
	for _, o := range r.objs {
		if s, ok := o.(*Sequence); ok {
			out = append(out, s)
		}
	}
	return out
}

// Len reports the total number of objects in r, including functions.
func (r *Registry) Len() int { return len(r.objs) + len(r.funcs) }

// A Mark records the size of a registry so that later insertions can be
// discarded by Rollback.
type Mark struct{ nobj, nfunc int }

// Mark returns a mark for the current contents of r.
func (r *Registry) Mark() Mark { return Mark{nobj: len(r.objs), nfunc: len(r.funcs)} }

// Rollback discards every object added to r since m was taken.
func (r *Registry) Rollback(m Mark) {
	for _, o := range r.objs[m.nobj:] {
		h := o.Head()
		delete(r.index, objKey{h.Cat, h.Name})
	}
	for _, f := range r.funcs[m.nfunc:] {
		delete(r.findex, f.Name)
	}
	clear(r.objs[m.nobj:])
	clear(r.funcs[m.nfunc:])
	r.objs = r.objs[:m.nobj]
	r.funcs = r.funcs[:m.nfunc]
}
