// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package encode_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/creachadair/pnobj"
	"github.com/creachadair/pnobj/decode"
	"github.com/creachadair/pnobj/encode"
	"github.com/google/go-cmp/cmp"
)

func mustMarshal(t *testing.T, reg *pnobj.Registry, opts *encode.Options) string {
	t.Helper()
	out, err := encode.Marshal(reg, opts)
	if err != nil {
		t.Fatalf("Marshal: unexpected error: %v", err)
	}
	return string(out)
}

func TestRoundTrip(t *testing.T) {
	panel, err := os.ReadFile("../testdata/panel.json")
	if err != nil {
		t.Fatalf("Read input: %v", err)
	}
	tests := []struct {
		name  string
		input string
	}{
		{"Example", `{"MAPTBL":{"t1":{"pnobj":{"type":"MAPTBL","name":"t1"},"shape":{"nr_dimen":2,"sz_dimen":[1,2]},"arr":[0,1],"ops":{"init":{},"getidx":{},"copy":{}},"props":[]}}}`},
		{"Empty", `{}`},
		{"Panel", string(bytes.TrimSpace(panel))},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reg, err := decode.Parse([]byte(test.input), nil)
			if err != nil {
				t.Fatalf("Parse: unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.input, mustMarshal(t, reg, nil)); diff != "" {
				t.Errorf("Marshal (-want, +got):\n%s", diff)
			}

			// Indented output decodes to an equivalent graph.
			pretty := mustMarshal(t, reg, &encode.Options{Indent: true})
			if !strings.HasSuffix(pretty, "\n") {
				t.Errorf("Indented output lacks a final newline: %q", pretty)
			}
			reg2, err := decode.Parse([]byte(pretty), nil)
			if err != nil {
				t.Fatalf("Parse indented: unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.input, mustMarshal(t, reg2, nil)); diff != "" {
				t.Errorf("Marshal after indent (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestCanonicalOrder(t *testing.T) {
	// Sections in the input appear out of canonical order; sequences are
	// written last regardless.
	const input = `{"SEQUENCE":{"s":{"pnobj":{"type":"SEQUENCE","name":"s"},"cmds":[{"$ref":"#/DELAY/d"},{"$ref":"#/FUNCTION/cond_false"}]}},` +
		`"DELAY":{"d":{"pnobj":{"type":"DELAY","name":"d"},"usec":0x0a,"nframe":0,"nvsync":0}}}`
	const want = `{"FUNCTION":{"cond_false":{"pnobj":{"type":"FUNC","name":"cond_false"}}},` +
		`"DELAY":{"d":{"pnobj":{"type":"DELAY","name":"d"},"usec":10,"nframe":0,"nvsync":0}},` +
		`"SEQUENCE":{"s":{"pnobj":{"type":"SEQUENCE","name":"s"},"cmds":[{"$ref":"#/DELAY/d"},{"$ref":"#/FUNCTION/cond_false"}]}}}`

	reg, err := decode.Parse([]byte(input), nil)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, mustMarshal(t, reg, nil)); diff != "" {
		t.Errorf("Marshal (-want, +got):\n%s", diff)
	}
}

func TestMutableResource(t *testing.T) {
	reg := pnobj.NewRegistry()
	rx := pnobj.NewRxPacket("rd", pnobj.SPIRead, 0xda, 0, 3)
	live := pnobj.NewResource("live", []byte{1, 2, 3}, []pnobj.ResUpdate{{Offset: 0, Rx: rx}})
	authored := pnobj.NewResource("authored", []byte{1, 2, 3}, nil)
	for _, obj := range []pnobj.Object{rx, live, authored} {
		if err := reg.Add(obj); err != nil {
			t.Fatalf("Add %v: %v", obj.Head(), err)
		}
	}

	const want = `{"RX_PACKET":{"rd":{"pnobj":{"type":"RX_PACKET","name":"rd"},"pkt_type":"SPI_PKT_TYPE_RD","addr":218,"offset":0,"len":3}},` +
		`"RESOURCE":{"live":{"pnobj":{"type":"RESOURCE","name":"live"},"data":[0,0,0],"resui":[{"offset":0,"rdi":{"$ref":"#/RX_PACKET/rd"}}]},` +
		`"authored":{"pnobj":{"type":"RESOURCE","name":"authored"},"data":[1,2,3],"resui":[]}}}`
	if diff := cmp.Diff(want, mustMarshal(t, reg, nil)); diff != "" {
		t.Errorf("Marshal (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{1, 2, 3}, live.Data); diff != "" {
		t.Errorf("Live data modified (-want, +got):\n%s", diff)
	}

	// Decoding the output yields a mutable resource again.
	back, err := decode.Parse([]byte(want), nil)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	obj, _ := back.Find(pnobj.CatResource, "live")
	if r, ok := obj.(*pnobj.Resource); !ok || !r.Mutable() {
		t.Errorf("Decoded live resource: got %v, want mutable", obj)
	}
}

func TestRLE(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"Short", bytes.Repeat([]byte{5}, 127), "[" + strings.Repeat("5,", 126) + "5]"},
		{"Uniform", bytes.Repeat([]byte{5}, 200), "[[5],[200]]"},
		{"Threshold", bytes.Repeat([]byte{0}, 128), "[[0],[128]]"},
		{"Mixed", append(bytes.Repeat([]byte{1}, 199), 2), "[" + strings.Repeat("1,", 199) + "2]"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reg := pnobj.NewRegistry()
			if err := reg.Add(pnobj.NewResource("r", test.data, nil)); err != nil {
				t.Fatalf("Add: %v", err)
			}
			got := mustMarshal(t, reg, nil)
			want := `{"RESOURCE":{"r":{"pnobj":{"type":"RESOURCE","name":"r"},"data":` + test.want + `,"resui":[]}}}`
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Marshal (-want, +got):\n%s", diff)
			}

			back, err := decode.Parse([]byte(got), nil)
			if err != nil {
				t.Fatalf("Parse: unexpected error: %v", err)
			}
			obj, _ := back.Find(pnobj.CatResource, "r")
			if diff := cmp.Diff(test.data, obj.(*pnobj.Resource).Data); diff != "" {
				t.Errorf("Decoded data (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	reg := pnobj.NewRegistry()
	if err := reg.Add(&pnobj.PowerCtrl{
		Header: pnobj.Header{Cat: pnobj.CatPowerCtrl, Name: "p\"1"},
		Key:    "vdd\t3v3",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	var buf bytes.Buffer
	if err := encode.Write(&buf, reg, nil); err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}
	const want = `{"POWER_CTRL":{"p\"1":{"pnobj":{"type":"PWRCTRL","name":"p\"1"},"key":"vdd\t3v3"}}}`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Write (-want, +got):\n%s", diff)
	}

	back, err := decode.Parse(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	obj, ok := back.Find(pnobj.CatPowerCtrl, `p"1`)
	if !ok || obj.(*pnobj.PowerCtrl).Key != "vdd\t3v3" {
		t.Errorf("Decoded: got %v, want key %q", obj, "vdd\t3v3")
	}
}
