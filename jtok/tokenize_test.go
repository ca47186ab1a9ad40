// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/pnobj/jtok"
	"github.com/google/go-cmp/cmp"
)

// render summarizes toks as "kind/size <text>" lines.
func render(src string, toks []jtok.Token) []string {
	var out []string
	for _, tok := range toks {
		text := string(tok.Text([]byte(src)))
		if tok.Kind == jtok.Object || tok.Kind == jtok.Array {
			text = text[:1]
		}
		out = append(out, fmt.Sprintf("%v/%d <%s>", tok.Kind, tok.Size, text))
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"true", []string{"primitive/0 <true>"}},
		{"  null\n", []string{"primitive/0 <null>"}},
		{`"a b c"`, []string{"string/0 <a b c>"}},
		{`"a\nb c"`, []string{`string/0 <a\nb c>`}},
		{`-6.32e+2`, []string{"primitive/0 <-6.32e+2>"}},
		{`0x1F`, []string{"primitive/0 <0x1F>"}},

		{`{}`, []string{"object/0 <{>"}},
		{`[]`, []string{"array/0 <[>"}},

		{`{"a":15}`, []string{
			"object/1 <{>",
			"string/1 <a>",
			"primitive/0 <15>",
		}},

		{`{"x":null, "y":[true, 0x0a, "s"], "z":{}}`, []string{
			"object/3 <{>",
			"string/1 <x>",
			"primitive/0 <null>",
			"string/1 <y>",
			"array/3 <[>",
			"primitive/0 <true>",
			"primitive/0 <0x0a>",
			"string/0 <s>",
			"string/1 <z>",
			"object/0 <{>",
		}},

		{`[[1, 2], [3]]`, []string{
			"array/2 <[>",
			"array/2 <[>",
			"primitive/0 <1>",
			"primitive/0 <2>",
			"array/1 <[>",
			"primitive/0 <3>",
		}},
	}

	for _, test := range tests {
		toks, err := jtok.Tokenize([]byte(test.input))
		if err != nil {
			t.Errorf("Tokenize %#q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, render(test.input, toks)); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestTokenSpans(t *testing.T) {
	const input = `{"key": [1, "two"]}`
	toks, err := jtok.Tokenize([]byte(input))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []jtok.Token{
		{Kind: jtok.Object, Start: 0, End: 19, Size: 1},
		{Kind: jtok.String, Start: 2, End: 5, Size: 1},
		{Kind: jtok.Array, Start: 8, End: 18, Size: 2},
		{Kind: jtok.Primitive, Start: 9, End: 10},
		{Kind: jtok.String, Start: 13, End: 16},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("Tokens (-want, +got):\n%s", diff)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input string
		estr  string
	}{
		{``, `at 1:0: expected more input, got error: unexpected EOF`},
		{`{`, `at 1:1: expected "}" or string, got error: unexpected EOF`},
		{`}`, `at 1:0: unexpected "}"`},
		{`{false:1}`, `at 1:1: expected "}" or string, got constant`},
		{`{"true":}`, `at 1:8: unexpected "}"`},
		{`[15,]`, `at 1:4: unexpected "]"`},
		{`[1] 2`, `at 1:4: extra input after value: number`},
		{"{\n\"a\": forthright}", `at 2:15: unknown constant "forthright" (offset 17)`},
		{`0x`, `at 1:2: no digits after hex prefix (offset 2)`},
		{`012`, `at 1:3: extra leading zeroes (offset 3)`},
		{`"what did you`, `at 1:13: unexpected EOF (offset 13)`},
		{`// c` + "\n1", `at 1:0: unexpected '/' (offset 0)`},
	}

	for _, test := range tests {
		_, err := jtok.Tokenize([]byte(test.input))
		if err == nil {
			t.Errorf("Tokenize %#q: did not report an error", test.input)
			continue
		}
		var serr *jtok.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Tokenize %#q: got %T, want *SyntaxError", test.input, err)
		}
		if diff := cmp.Diff(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestTokenize_extensions(t *testing.T) {
	const input = `{
  // the answer
  "a": [1, 2,],
  /* trailing */
  "b": true,
}`
	var tz jtok.Tokenizer
	if _, err := tz.Tokenize([]byte(input)); err == nil {
		t.Error("Tokenize with comments: got nil error by default")
	}

	tz.AllowComments(true)
	tz.AllowTrailingCommas(true)
	toks, err := tz.Tokenize([]byte(input))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []string{
		"object/2 <{>",
		"string/1 <a>",
		"array/2 <[>",
		"primitive/0 <1>",
		"primitive/0 <2>",
		"string/1 <b>",
		"primitive/0 <true>",
	}
	if diff := cmp.Diff(want, render(input, toks)); diff != "" {
		t.Errorf("Tokens (-want, +got):\n%s", diff)
	}
}

func TestPosition(t *testing.T) {
	const text = "ab\ncd\n\nef"
	tests := []struct {
		offset int
		want   jtok.LineCol
	}{
		{0, jtok.LineCol{Line: 1, Column: 0}},
		{2, jtok.LineCol{Line: 1, Column: 2}},
		{3, jtok.LineCol{Line: 2, Column: 0}},
		{7, jtok.LineCol{Line: 4, Column: 0}},
		{8, jtok.LineCol{Line: 4, Column: 1}},
		{100, jtok.LineCol{Line: 4, Column: 2}},
	}
	for _, test := range tests {
		if got := jtok.Position([]byte(text), test.offset); got != test.want {
			t.Errorf("Position(%d): got %v, want %v", test.offset, got, test.want)
		}
	}
}

func TestUnexpectedEOF(t *testing.T) {
	_, err := jtok.Tokenize([]byte(`[1, 2`))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Tokenize: got %v, want %v", err, io.ErrUnexpectedEOF)
	}
	if !strings.HasPrefix(err.Error(), "at 1:5:") {
		t.Errorf("Tokenize: error %q has the wrong location", err)
	}
}
