// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package encode renders a panel object graph as a JSON document in the form
// accepted by package decode.
//
// Sections are written in the canonical category order given by
// [pnobj.Categories], and records within a section in the order they were
// added to the registry. The output of Marshal for a registry produced by
// decoding that same output is identical, byte for byte.
package encode

import (
	"io"

	"github.com/creachadair/mds/value"
	"github.com/creachadair/pnobj"
	"github.com/creachadair/pnobj/emit"
	"github.com/tailscale/hujson"
)

// Options control the formatting of output. A nil *Options is valid and
// provides default values.
type Options struct {
	// If true, format the output with one member per line and indentation.
	// By default the output is compact.
	Indent bool
}

// Marshal renders the contents of reg as a JSON document.
func Marshal(reg *pnobj.Registry, opts *Options) ([]byte, error) {
	var w emit.Writer
	w.BeginObject()
	for _, c := range pnobj.Categories() {
		objs := reg.ByCategory(c)
		if len(objs) == 0 {
			continue
		}
		w.Key(c.Path())
		w.BeginObject()
		for _, obj := range objs {
			record(&w, obj)
		}
		w.EndObject()
	}
	w.EndObject()

	out := w.Bytes()
	if opts != nil && opts.Indent {
		return hujson.Format(out)
	}
	return out, nil
}

// Write renders the contents of reg as a JSON document to w.
func Write(w io.Writer, reg *pnobj.Registry, opts *Options) error {
	out, err := Marshal(reg, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// record writes the key and value of a single record.
func record(w *emit.Writer, obj pnobj.Object) {
	h := obj.Head()
	w.Key(h.Name)
	w.BeginObject()
	w.Key("pnobj")
	w.BeginObject()
	w.Key("type")
	w.String(h.Cat.String())
	w.Key("name")
	w.String(h.Name)
	w.EndObject()

	switch o := obj.(type) {
	case *pnobj.Function:
		// no fields
	case *pnobj.Property:
		writeProperty(w, o)
	case *pnobj.Maptbl:
		writeMaptbl(w, o)
	case *pnobj.Delay:
		uintField(w, "usec", o.Usec)
		uintField(w, "nframe", o.Frames)
		uintField(w, "nvsync", o.Vsyncs)
	case *pnobj.TimerDelayBegin:
		w.Key("delay")
		ref(w, o.Delay)
	case *pnobj.Condition:
		w.Key("rule")
		w.BeginArray()
		for _, it := range o.Rule {
			writeExprItem(w, it)
		}
		w.EndArray()
	case *pnobj.PowerCtrl:
		w.Key("key")
		w.String(o.Key)
	case *pnobj.Config:
		w.Key("prop")
		ref(w, o.Prop)
		uintField(w, "value", o.Value)
	case *pnobj.RxPacket:
		w.Key("pkt_type")
		w.String(o.Type.String())
		uintField(w, "addr", o.Addr)
		uintField(w, "offset", o.Offset)
		uintField(w, "len", o.Len)
	case *pnobj.TxPacket:
		writeTxPacket(w, o)
	case *pnobj.Key:
		uintField(w, "level", o.Level)
		uintField(w, "en", o.Enable)
		w.Key("packet")
		ref(w, o.Packet)
	case *pnobj.Resource:
		writeResource(w, o)
	case *pnobj.Dump:
		writeDump(w, o)
	case *pnobj.Sequence:
		w.Key("cmds")
		w.BeginArray()
		for _, cmd := range o.Cmds {
			refObj(w, cmd)
		}
		w.EndArray()
	default:
		panic("encode: unknown object type " + h.String())
	}
	w.EndObject()
}

func writeProperty(w *emit.Writer, p *pnobj.Property) {
	w.Key("prop_type")
	w.String(p.Type.String())
	switch p.Type {
	case pnobj.PropRange:
		uintField(w, "min", p.Min)
		uintField(w, "max", p.Max)
	case pnobj.PropEnum:
		w.Key("items")
		w.BeginArray()
		for _, it := range p.Items {
			w.BeginObject()
			uintField(w, "value", it.Value)
			w.Key("name")
			w.String(it.Name)
			w.EndObject()
		}
		w.EndArray()
	}
}

func writeMaptbl(w *emit.Writer, m *pnobj.Maptbl) {
	w.Key("shape")
	w.BeginObject()
	uintField(w, "nr_dimen", uint32(len(m.Shape.Dims)))
	w.Key("sz_dimen")
	w.BeginArray()
	for _, d := range m.Shape.Dims {
		w.Uint(uint64(d))
	}
	w.EndArray()
	w.EndObject()

	w.Key("arr")
	byteArray(w, m.Data)

	w.Key("ops")
	w.BeginObject()
	w.Key("init")
	ref(w, m.Ops.Init)
	w.Key("getidx")
	ref(w, m.Ops.GetIndex)
	w.Key("copy")
	ref(w, m.Ops.Copy)
	w.EndObject()

	w.Key("props")
	w.BeginArray()
	for _, p := range m.Props {
		ref(w, p)
	}
	w.EndArray()
}

func writeExprItem(w *emit.Writer, it pnobj.ExprItem) {
	w.BeginObject()
	w.Key("type")
	w.String(it.Kind.String())
	w.Key("value")
	switch it.Kind {
	case pnobj.ExprOperator:
		w.String(it.Op.String())
	case pnobj.ExprProp:
		ref(w, it.Prop)
	case pnobj.ExprFunc:
		ref(w, it.Func)
	default:
		w.Uint(uint64(it.Value))
	}
	w.EndObject()
}

func writeTxPacket(w *emit.Writer, p *pnobj.TxPacket) {
	w.Key("pkt_type")
	w.String(p.Type.String())
	w.Key("data")
	byteArray(w, p.Init)
	uintField(w, "offset", p.Offset)
	w.Key("pktui")
	w.BeginArray()
	for _, u := range p.Updates {
		w.BeginObject()
		uintField(w, "offset", u.Offset)
		w.Key("maptbl")
		ref(w, u.Maptbl)
		w.EndObject()
	}
	w.EndArray()
}

// writeResource writes the payload of a mutable resource as zeroes, since
// its contents are read from the device rather than authored.
func writeResource(w *emit.Writer, r *pnobj.Resource) {
	w.Key("data")
	byteArray(w, value.Cond(r.Mutable(), make([]byte, len(r.Data)), r.Data))
	w.Key("resui")
	w.BeginArray()
	for _, u := range r.Updates {
		w.BeginObject()
		uintField(w, "offset", u.Offset)
		w.Key("rdi")
		ref(w, u.Rx)
		w.EndObject()
	}
	w.EndArray()
}

func writeDump(w *emit.Writer, d *pnobj.Dump) {
	w.Key("res")
	ref(w, d.Res)
	w.Key("callback")
	ref(w, d.Callback)
	w.Key("expects")
	w.BeginArray()
	for _, e := range d.Expects {
		w.BeginObject()
		uintField(w, "offset", e.Offset)
		uintField(w, "mask", uint32(e.Mask))
		uintField(w, "value", uint32(e.Value))
		w.Key("msg")
		w.String(e.Msg)
		w.EndObject()
	}
	w.EndArray()
}

func uintField(w *emit.Writer, key string, v uint32) {
	w.Key(key)
	w.Uint(uint64(v))
}

// byteArray writes data as an array of bytes, run-length encoded when that
// is shorter.
func byteArray(w *emit.Writer, data []byte) {
	w.BeginArray()
	if pnobj.UseRLE(data) {
		vs, ns := pnobj.EncodeRLE(data)
		w.BeginArray()
		for _, v := range vs {
			w.Uint(uint64(v))
		}
		w.EndArray()
		w.BeginArray()
		for _, n := range ns {
			w.Uint(uint64(n))
		}
		w.EndArray()
	} else {
		for _, b := range data {
			w.Uint(uint64(b))
		}
	}
	w.EndArray()
}

// ref writes a reference to p, or an empty object if p is nil.
func ref[T any, P interface {
	*T
	pnobj.Object
}](w *emit.Writer, p P) {
	if p == nil {
		refObj(w, nil)
	} else {
		refObj(w, p)
	}
}

func refObj(w *emit.Writer, o pnobj.Object) {
	w.BeginObject()
	if o != nil {
		h := o.Head()
		w.Key("$ref")
		w.String("#/" + h.Cat.Path() + "/" + h.Name)
	}
	w.EndObject()
}
