// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj_test

import (
	"errors"
	"testing"

	"github.com/creachadair/pnobj"
	"github.com/google/go-cmp/cmp"
)

func TestCategories(t *testing.T) {
	cats := pnobj.Categories()
	if len(cats) != 17 {
		t.Errorf("Categories: got %d, want 17", len(cats))
	}
	for i, c := range cats {
		if !c.Valid() {
			t.Errorf("Category %d is not valid", c)
		}
		if i > 0 && cats[i-1] >= c {
			t.Errorf("Categories out of order at %d: %v >= %v", i, cats[i-1], c)
		}
		if got, ok := pnobj.CategoryByType(c.String()); !ok || got != c {
			t.Errorf("CategoryByType(%q): got %v, %v; want %v", c.String(), got, ok, c)
		}
		if got, ok := pnobj.CategoryByPath(c.Path()); !ok || got != c {
			t.Errorf("CategoryByPath(%q): got %v, %v; want %v", c.Path(), got, ok, c)
		}
	}
	if cats[len(cats)-1] != pnobj.CatSequence {
		t.Errorf("Last category: got %v, want SEQUENCE", cats[len(cats)-1])
	}

	for _, c := range []pnobj.Category{pnobj.CatNone, 200} {
		if c.Valid() {
			t.Errorf("Category %d should not be valid", c)
		}
		if c.Path() != "" {
			t.Errorf("Category %d path: got %q, want empty", c, c.Path())
		}
	}
	if got := pnobj.CatPowerCtrl.Path(); got != "POWER_CTRL" {
		t.Errorf("PWRCTRL path: got %q, want POWER_CTRL", got)
	}
	if _, ok := pnobj.CategoryByType("NONE"); ok {
		t.Error("CategoryByType(NONE): unexpectedly found")
	}
}

func TestEnums(t *testing.T) {
	for _, name := range []string{"DSI_PKT_TYPE_WR", "SPI_PKT_TYPE_SETPARAM", "I2C_PKT_TYPE_RD"} {
		p, ok := pnobj.ParsePktType(name)
		if !ok || p.String() != name {
			t.Errorf("ParsePktType(%q): got %v, %v", name, p, ok)
		}
	}
	if p, _ := pnobj.ParsePktType("DSI_PKT_TYPE_WR_PPS"); !p.IsWrite() || p.IsRead() {
		t.Errorf("%v: want write, not read", p)
	}
	if p, _ := pnobj.ParsePktType("DSI_PKT_TYPE_RD_POC"); p.IsWrite() || !p.IsRead() {
		t.Errorf("%v: want read, not write", p)
	}
	if _, ok := pnobj.ParsePktType("PKT_TYPE_INVALID"); ok {
		t.Error("ParsePktType(PKT_TYPE_INVALID): unexpectedly valid")
	}
	if op, ok := pnobj.ParseOperator("BIT_AND"); !ok || op != pnobj.OpBitAnd {
		t.Errorf("ParseOperator(BIT_AND): got %v, %v", op, ok)
	}
	if k, ok := pnobj.ParseExprKind("OPERAND_FUNC"); !ok || k != pnobj.ExprFunc {
		t.Errorf("ParseExprKind(OPERAND_FUNC): got %v, %v", k, ok)
	}
	if _, ok := pnobj.ParsePropType("INVALID"); ok {
		t.Error("ParsePropType(INVALID): unexpectedly valid")
	}
}

func TestMaptbl(t *testing.T) {
	m := &pnobj.Maptbl{
		Header: pnobj.Header{Cat: pnobj.CatMaptbl, Name: "m"},
		Shape:  pnobj.Shape{Dims: []uint32{2, 3, 4}},
		Data:   make([]byte, 24),
	}
	for i := range m.Data {
		m.Data[i] = byte(i)
	}
	if got := m.Size(); got != 24 {
		t.Errorf("Size: got %d, want 24", got)
	}
	for _, tc := range []struct {
		idx  []int
		want int
	}{
		{nil, 0}, {[]int{1}, 12}, {[]int{1, 2}, 20}, {[]int{1, 2, 3}, 23}, {[]int{0, 1, 1}, 5},
	} {
		got, err := m.Index(tc.idx...)
		if err != nil || got != tc.want {
			t.Errorf("Index%v: got %d, %v; want %d", tc.idx, got, err, tc.want)
		}
	}
	for _, idx := range [][]int{{2}, {0, 3}, {0, 0, 0, 0}, {-1}} {
		if got, err := m.Index(idx...); err == nil {
			t.Errorf("Index%v: got %d, want error", idx, got)
		}
	}
	row, err := m.Row(1, 0)
	if err != nil {
		t.Fatalf("Row(1, 0): unexpected error: %v", err)
	}
	if diff := cmp.Diff([]byte{12, 13, 14, 15}, row); diff != "" {
		t.Errorf("Row(1, 0) (-want, +got):\n%s", diff)
	}
	if _, err := m.Row(1); err == nil {
		t.Error("Row(1): got nil error")
	}
	if got := (&pnobj.Maptbl{}).Size(); got != 0 {
		t.Errorf("Empty Size: got %d, want 0", got)
	}

	// 2^64 cells wraps to zero in a machine integer.
	wide := &pnobj.Maptbl{Shape: pnobj.Shape{Dims: []uint32{1 << 16, 1 << 16, 1 << 16, 1 << 16}}}
	if got := wide.Size(); got != -1 {
		t.Errorf("Overflow Size: got %d, want -1", got)
	}
	if got, err := wide.Index(0); err == nil {
		t.Errorf("Overflow Index: got %d, want error", got)
	}
	zero := &pnobj.Maptbl{Shape: pnobj.Shape{Dims: []uint32{1 << 31, 1 << 31, 0}}}
	if got := zero.Size(); got != 0 {
		t.Errorf("Zero Size: got %d, want 0", got)
	}
}

func TestTxBuffer(t *testing.T) {
	data := []byte{1, 2, 3}
	plain := pnobj.NewTxPacket("plain", pnobj.DSIWrite, data, 0, nil)
	if tx := plain.Tx(); tx.Owned() || &tx.Bytes()[0] != &data[0] {
		t.Error("Packet without updates should alias its payload")
	}

	dyn := pnobj.NewTxPacket("dyn", pnobj.DSIWrite, data, 0, []pnobj.PktUpdate{{Offset: 1}})
	tx := dyn.Tx()
	if !tx.Owned() {
		t.Fatal("Packet with updates should own its buffer")
	}
	tx.Bytes()[1] = 99
	if data[1] != 2 {
		t.Errorf("Modifying the transmit buffer changed the payload: %v", data)
	}
	if dyn.Tx().Bytes()[1] != 99 {
		t.Error("Transmit buffer is not retained by the packet")
	}
}

func TestResourceAndDump(t *testing.T) {
	rx := pnobj.NewRxPacket("rd", pnobj.SPIRead, 0xda, 0, 2)
	if len(rx.Buf) != 2 || rx.Buf[0] != 0 {
		t.Errorf("Rx buffer: got %v, want 2 zero bytes", rx.Buf)
	}
	fixed := pnobj.NewResource("fixed", []byte{0x81, 0x02}, nil)
	live := pnobj.NewResource("live", []byte{0, 0}, []pnobj.ResUpdate{{Rx: rx}})
	if fixed.Mutable() || !live.Mutable() {
		t.Errorf("Mutable: fixed=%v live=%v", fixed.Mutable(), live.Mutable())
	}

	d := &pnobj.Dump{
		Header: pnobj.Header{Cat: pnobj.CatDump, Name: "d"},
		Res:    fixed,
		Expects: []pnobj.Expect{
			{Offset: 0, Mask: 0x80, Value: 0x80, Msg: "high bit"},
			{Offset: 1, Mask: 0xff, Value: 0x03, Msg: "second byte"},
			{Offset: 5, Mask: 0xff, Value: 0, Msg: "out of range"},
		},
	}
	if diff := cmp.Diff([]string{"second byte", "out of range"}, d.Check()); diff != "" {
		t.Errorf("Check (-want, +got):\n%s", diff)
	}

	n, err := pnobj.DefaultFuncs["dump_show_hexdump"](&pnobj.Dump{Header: d.Header})
	if err == nil {
		t.Errorf("dump_show_hexdump without resource: got %d, nil", n)
	}
}

func TestError(t *testing.T) {
	err := &pnobj.Error{
		Kind:    pnobj.ErrDangling,
		Line:    12,
		Anchor:  "seq_init",
		Text:    "#/KEY/lv1",
		Message: "no KEY named \"lv1\"",
	}
	const want = `at line 12: in "seq_init": dangling reference: no KEY named "lv1" (got "#/KEY/lv1")`
	if got := err.Error(); got != want {
		t.Errorf("Error:\n got %s\nwant %s", got, want)
	}
	if !errors.Is(err, pnobj.ErrDangling) {
		t.Error("errors.Is: error does not match its kind")
	}
	if got := (&pnobj.Error{Kind: pnobj.ErrMalformed}).Error(); got != "malformed document" {
		t.Errorf("Bare error: got %q", got)
	}
}

func TestFuncTable(t *testing.T) {
	base := pnobj.FuncTable{"a": nil}
	ext := base.With(pnobj.FuncTable{"b": nil})
	if _, ok := base.Lookup("b"); ok {
		t.Error("With modified the receiver")
	}
	for _, name := range []string{"a", "b"} {
		if _, ok := ext.Lookup(name); !ok {
			t.Errorf("Lookup(%q): not found", name)
		}
	}
	if got := pnobj.FuncTable(nil).With(pnobj.FuncTable{"x": nil}); len(got) != 1 {
		t.Errorf("nil.With: got %d entries, want 1", len(got))
	}

	m := &pnobj.Maptbl{Shape: pnobj.Shape{Dims: []uint32{2, 5}}, Data: make([]byte, 10)}
	if n, err := pnobj.DefaultFuncs["maptbl_init_default"](m); err != nil {
		t.Errorf("maptbl_init_default: got %d, %v", n, err)
	}
	if n, err := pnobj.DefaultFuncs["maptbl_copy_default"](m); n != 5 || err != nil {
		t.Errorf("maptbl_copy_default: got %d, %v; want 5, nil", n, err)
	}
	m.Data = m.Data[:3]
	if _, err := pnobj.DefaultFuncs["maptbl_init_default"](m); err == nil {
		t.Error("maptbl_init_default with short data: got nil error")
	}
}
