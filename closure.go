// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

import "github.com/creachadair/mds/mapset"

// CommandList returns root followed by every object it depends on, each
// exactly once, in depth-first order of first visit. The dependencies of an
// object are the objects the driver must have available to execute it: the
// packet of a key, the delay of a timer start, the lookup tables updating a
// packet, the resource of a dump, the read descriptors filling a resource,
// and the members of a sequence. Functions and properties are not included.
func CommandList(root Object) []Object {
	if root == nil {
		return nil
	}
	var out []Object
	seen := mapset.New[Object]()
	var visit func(Object)
	visit = func(o Object) {
		if o == nil || seen.Has(o) {
			return
		}
		seen.Add(o)
		out = append(out, o)
		for _, dep := range dependencies(o) {
			visit(dep)
		}
	}
	visit(root)
	return out
}

func dependencies(o Object) []Object {
	var out []Object
	switch t := o.(type) {
	case *Key:
		if t.Packet != nil {
			out = append(out, t.Packet)
		}
	case *TimerDelayBegin:
		if t.Delay != nil {
			out = append(out, t.Delay)
		}
	case *TxPacket:
		for _, u := range t.Updates {
			if u.Maptbl != nil {
				out = append(out, u.Maptbl)
			}
		}
	case *Dump:
		if t.Res != nil {
			out = append(out, t.Res)
		}
	case *Resource:
		for _, u := range t.Updates {
			if u.Rx != nil {
				out = append(out, u.Rx)
			}
		}
	case *Sequence:
		out = t.Cmds
	}
	return out
}
