// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

import (
	"errors"
	"fmt"

	"github.com/creachadair/mds/mapset"
)

// Validate checks the invariants of r that decoding does not enforce, and
// returns an error describing every violation found, or nil.
//
// These are: update offsets of packets and resources lie inside their
// payloads, lookup tables hold exactly one byte per cell, ranged properties
// have Min <= Max, enumerated properties have distinct item names, keys have
// a packet, dumps have a resource, and sequence members are non-nil.
func (r *Registry) Validate() error {
	var errs []error
	report := func(o Object, msg string, args ...any) {
		errs = append(errs, fmt.Errorf("%v: %s", o.Head(), fmt.Sprintf(msg, args...)))
	}
	for _, o := range r.objs {
		switch t := o.(type) {
		case *Property:
			switch t.Type {
			case PropRange:
				if t.Min > t.Max {
					report(o, "range min %d > max %d", t.Min, t.Max)
				}
			case PropEnum:
				names := mapset.New[string]()
				for _, it := range t.Items {
					if names.Has(it.Name) {
						report(o, "duplicate item %q", it.Name)
					}
					names.Add(it.Name)
				}
			default:
				report(o, "invalid property type %v", t.Type)
			}
		case *Maptbl:
			if n := t.Size(); n < 0 {
				report(o, "table shape %v overflows", t.Shape.Dims)
			} else if n != len(t.Data) {
				report(o, "table has %d bytes for %d cells", len(t.Data), n)
			}
		case *TxPacket:
			for i, u := range t.Updates {
				if int(u.Offset) >= len(t.Init) {
					report(o, "update %d offset %d outside payload (n=%d)", i, u.Offset, len(t.Init))
				}
			}
		case *Resource:
			for i, u := range t.Updates {
				if int(u.Offset) >= len(t.Data) {
					report(o, "update %d offset %d outside payload (n=%d)", i, u.Offset, len(t.Data))
				} else if u.Rx != nil && int(u.Offset)+int(u.Rx.Len) > len(t.Data) {
					report(o, "update %d from %s overruns payload (n=%d)", i, u.Rx.Name, len(t.Data))
				}
			}
		case *Key:
			if t.Packet == nil {
				report(o, "key has no packet")
			}
		case *Dump:
			if t.Res == nil {
				report(o, "dump has no resource")
			}
		case *Sequence:
			for i, c := range t.Cmds {
				if c == nil {
					report(o, "command %d is nil", i)
				}
			}
		}
	}
	return errors.Join(errs...)
}
