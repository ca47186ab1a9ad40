// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jtok converts JSON text into a flat array of structural tokens.
//
// Each token records its kind, the span of its text in the input, and the
// number of its immediate children. The children of a token follow it in the
// array, so a value and all its descendants occupy a contiguous run of
// tokens, and a reader can walk the document in order without building a
// tree.
//
// The tokenizer accepts strict JSON extended with hexadecimal integers, and
// optionally comments and trailing commas.
package jtok
