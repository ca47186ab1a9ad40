// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"github.com/creachadair/pnobj"
	"github.com/creachadair/pnobj/jtok"
)

// A recordDecoder decodes the fields of a record whose header is h. The
// cursor is at the key of the first field following the header, and rec is
// the token of the record object.
type recordDecoder func(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object

var recordDecoders = [...]recordDecoder{
	pnobj.CatFunc:            decodeFunction,
	pnobj.CatProperty:        decodeProperty,
	pnobj.CatMaptbl:          decodeMaptbl,
	pnobj.CatDelay:           decodeDelay,
	pnobj.CatTimerDelay:      decodeDelay,
	pnobj.CatTimerDelayBegin: decodeTimerDelayBegin,
	pnobj.CatCondIf:          decodeCondition,
	pnobj.CatCondElse:        decodeCondition,
	pnobj.CatCondEnd:         decodeCondition,
	pnobj.CatPowerCtrl:       decodePowerCtrl,
	pnobj.CatConfig:          decodeConfig,
	pnobj.CatRxPacket:        decodeRxPacket,
	pnobj.CatTxPacket:        decodeTxPacket,
	pnobj.CatKey:             decodeKey,
	pnobj.CatResource:        decodeResource,
	pnobj.CatDump:            decodeDump,
	pnobj.CatSequence:        decodeSequence,
}

// fields checks that rec has the header plus exactly n fields.
func (d *decoder) fields(rec jtok.Token, n int) {
	if rec.Size != n+1 {
		d.fail(pnobj.ErrMalformed, rec, "record has %d fields, want %d", rec.Size-1, n)
	}
}

func decodeFunction(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 0)
	fn, ok := d.funcs.Lookup(h.Name)
	if !ok {
		d.fail(pnobj.ErrUnknownSymbol, rec, "no function named %q", h.Name)
	}
	return &pnobj.Function{Header: h, Fn: fn}
}

func decodeProperty(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	p := &pnobj.Property{Header: h}
	d.field("prop_type")
	p.Type = parseSymbol(d, "property type", pnobj.ParsePropType)
	switch p.Type {
	case pnobj.PropRange:
		d.fields(rec, 3)
		d.field("min")
		p.Min = d.u32()
		d.field("max")
		p.Max = d.u32()
	case pnobj.PropEnum:
		d.fields(rec, 2)
		d.field("items")
		p.Items = decodeArray(&d.cursor, func() pnobj.PropItem {
			d.expectSize(jtok.Object, 2)
			var it pnobj.PropItem
			d.field("value")
			it.Value = d.u32()
			d.field("name")
			it.Name = d.str()
			return it
		})
	}
	return p
}

func decodeMaptbl(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 4)
	m := &pnobj.Maptbl{Header: h}

	d.field("shape")
	d.expectSize(jtok.Object, 2)
	d.field("nr_dimen")
	ntok := d.current()
	nd := d.u32()
	d.field("sz_dimen")
	m.Shape.Dims = decodeArray(&d.cursor, d.u32)
	if len(m.Shape.Dims) != int(nd) {
		d.fail(pnobj.ErrMalformed, ntok, "shape has %d dimensions, want %d", len(m.Shape.Dims), nd)
	}

	d.field("arr")
	m.Data = d.bytes()

	d.field("ops")
	d.expectSize(jtok.Object, 3)
	d.field("init")
	m.Ops.Init = refTo[*pnobj.Function](d, pnobj.CatFunc)
	d.field("getidx")
	m.Ops.GetIndex = refTo[*pnobj.Function](d, pnobj.CatFunc)
	d.field("copy")
	m.Ops.Copy = refTo[*pnobj.Function](d, pnobj.CatFunc)

	d.field("props")
	m.Props = decodeArray(&d.cursor, func() *pnobj.Property {
		return refTo[*pnobj.Property](d, pnobj.CatProperty)
	})
	return m
}

func decodeDelay(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 3)
	v := &pnobj.Delay{Header: h}
	d.field("usec")
	v.Usec = d.u32()
	d.field("nframe")
	v.Frames = d.u32()
	d.field("nvsync")
	v.Vsyncs = d.u32()
	return v
}

func decodeTimerDelayBegin(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 1)
	d.field("delay")
	return &pnobj.TimerDelayBegin{
		Header: h,
		Delay:  mustRefTo[*pnobj.Delay](d, pnobj.CatTimerDelay, pnobj.CatDelay),
	}
}

func decodeCondition(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 1)
	d.field("rule")
	return &pnobj.Condition{Header: h, Rule: decodeArray(&d.cursor, d.exprItem)}
}

func (d *decoder) exprItem() pnobj.ExprItem {
	d.expectSize(jtok.Object, 2)
	d.field("type")
	it := pnobj.ExprItem{Kind: parseSymbol(d, "expression item type", pnobj.ParseExprKind)}
	d.field("value")
	switch it.Kind {
	case pnobj.ExprOperator:
		it.Op = parseSymbol(d, "operator", pnobj.ParseOperator)
	case pnobj.ExprInt:
		it.Value = d.u32()
	case pnobj.ExprProp:
		it.Prop = mustRefTo[*pnobj.Property](d, pnobj.CatProperty)
	case pnobj.ExprFunc:
		it.Func = mustRefTo[*pnobj.Function](d, pnobj.CatFunc)
	}
	return it
}

func decodePowerCtrl(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 1)
	d.field("key")
	return &pnobj.PowerCtrl{Header: h, Key: d.str()}
}

func decodeConfig(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 2)
	c := &pnobj.Config{Header: h}
	d.field("prop")
	c.Prop = mustRefTo[*pnobj.Property](d, pnobj.CatProperty)
	d.field("value")
	c.Value = d.u32()
	return c
}

func decodeRxPacket(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 4)
	d.field("pkt_type")
	typ := d.pktType(pnobj.PktType.IsRead)
	d.field("addr")
	addr := d.u32()
	d.field("offset")
	off := d.u32()
	d.field("len")
	ltok := d.current()
	n := d.u32()
	d.checkLen(ltok, uint64(n))
	return pnobj.NewRxPacket(h.Name, typ, addr, off, n)
}

func decodeTxPacket(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 4)
	d.field("pkt_type")
	typ := d.pktType(pnobj.PktType.IsWrite)
	d.field("data")
	data := d.bytes()
	d.field("offset")
	off := d.u32()
	d.field("pktui")
	updates := decodeArray(&d.cursor, func() pnobj.PktUpdate {
		d.expectSize(jtok.Object, 2)
		var u pnobj.PktUpdate
		d.field("offset")
		u.Offset = d.u32()
		d.field("maptbl")
		u.Maptbl = refTo[*pnobj.Maptbl](d, pnobj.CatMaptbl)
		return u
	})
	return pnobj.NewTxPacket(h.Name, typ, data, off, updates)
}

func decodeKey(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 3)
	k := &pnobj.Key{Header: h}
	d.field("level")
	k.Level = d.u32()
	d.field("en")
	k.Enable = d.u32()
	d.field("packet")
	k.Packet = mustRefTo[*pnobj.TxPacket](d, pnobj.CatTxPacket)
	return k
}

func decodeResource(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 2)
	d.field("data")
	data := d.bytes()
	d.field("resui")
	updates := decodeArray(&d.cursor, func() pnobj.ResUpdate {
		d.expectSize(jtok.Object, 2)
		var u pnobj.ResUpdate
		d.field("offset")
		u.Offset = d.u32()
		d.field("rdi")
		u.Rx = refTo[*pnobj.RxPacket](d, pnobj.CatRxPacket)
		return u
	})
	return pnobj.NewResource(h.Name, data, updates)
}

func decodeDump(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 3)
	v := &pnobj.Dump{Header: h}
	d.field("res")
	v.Res = mustRefTo[*pnobj.Resource](d, pnobj.CatResource)
	d.field("callback")
	v.Callback = refTo[*pnobj.Function](d, pnobj.CatFunc)
	d.field("expects")
	v.Expects = decodeArray(&d.cursor, func() pnobj.Expect {
		d.expectSize(jtok.Object, 4)
		var e pnobj.Expect
		d.field("offset")
		e.Offset = d.u32()
		d.field("mask")
		e.Mask = d.u8()
		d.field("value")
		e.Value = d.u8()
		d.field("msg")
		e.Msg = d.str()
		return e
	})
	return v
}

// decodeSequence records the members of a sequence as stubs, to be bound
// after the whole document has been decoded. An empty reference ends the
// member list; any members following it are ignored.
func decodeSequence(d *decoder, h pnobj.Header, rec jtok.Token) pnobj.Object {
	d.fields(rec, 1)
	seq := &pnobj.Sequence{Header: h}
	p := pendingSeq{seq: seq, anchor: d.anchor}

	d.field("cmds")
	arr := d.expect(jtok.Array)
	for i := 0; i < arr.Size; i++ {
		s, ok := d.ref()
		if !ok {
			if rest := arr.Size - i - 1; rest > 0 {
				d.logf("sequence %q: member list ends at %d, skipped %d", h.Name, i, rest)
				for range rest {
					d.skip()
				}
			}
			break
		}
		p.stubs = append(p.stubs, s)
	}
	if len(p.stubs) == 0 {
		d.logf("sequence %q is empty", h.Name)
	}
	d.pending = append(d.pending, p)
	return seq
}

// pktType consumes a packet type name, which must satisfy ok.
func (d *decoder) pktType(ok func(pnobj.PktType) bool) pnobj.PktType {
	tok := d.current()
	typ := parseSymbol(d, "packet type", pnobj.ParsePktType)
	if !ok(typ) {
		d.fail(pnobj.ErrUnknownSymbol, tok, "packet type %v not valid here", typ)
	}
	return typ
}

// parseSymbol consumes a string naming a member of a closed enumeration.
func parseSymbol[T any](d *decoder, what string, parse func(string) (T, bool)) T {
	tok := d.current()
	v, ok := parse(d.str())
	if !ok {
		d.fail(pnobj.ErrUnknownSymbol, tok, "invalid %s", what)
	}
	return v
}
