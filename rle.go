// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

import "bytes"

// MinRunLength is the shortest byte array for which UseRLE will choose the
// run-length form.
const MinRunLength = 128

// UseRLE reports whether data should be written in run-length form. Only
// arrays of at least MinRunLength bytes holding a single repeated value
// qualify.
//
// TODO: detecting long runs inside mixed arrays needs a break-even length
// derived for the two-array form before the threshold can change.
func UseRLE(data []byte) bool {
	if len(data) < MinRunLength {
		return false
	}
	return bytes.Count(data, data[:1]) == len(data)
}

// EncodeRLE returns the run-length encoding of data as parallel arrays of
// values and run lengths. Adjacent equal bytes form one run.
func EncodeRLE(data []byte) (values []byte, lengths []uint32) {
	for i := 0; i < len(data); {
		j := i + 1
		for j < len(data) && data[j] == data[i] {
			j++
		}
		values = append(values, data[i])
		lengths = append(lengths, uint32(j-i))
		i = j
	}
	return values, lengths
}

// DecodeRLE expands parallel arrays of values and run lengths. It returns
// false if the arrays differ in length or any run length is zero.
func DecodeRLE(values []byte, lengths []uint32) ([]byte, bool) {
	if len(values) != len(lengths) {
		return nil, false
	}
	var n int
	for _, v := range lengths {
		if v == 0 {
			return nil, false
		}
		n += int(v)
	}
	out := make([]byte, 0, n)
	for i, v := range values {
		out = append(out, bytes.Repeat([]byte{v}, int(lengths[i]))...)
	}
	return out, true
}
