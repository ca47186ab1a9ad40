// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

// Category is the closed enumeration of panel object kinds.
type Category byte

// Constants defining the valid Category values. The order of the constants is
// the canonical order in which categories are written to a document: every
// category other than CatSequence refers only to categories listed before it.
const (
	CatNone Category = iota // invalid category

	CatFunc            // named hook
	CatProperty        // panel property
	CatMaptbl          // lookup table
	CatDelay           // delay
	CatTimerDelay      // timer delay
	CatTimerDelayBegin // timer delay start
	CatCondIf          // condition: if
	CatCondElse        // condition: else
	CatCondEnd         // condition: end
	CatPowerCtrl       // power control hook
	CatConfig          // property override
	CatRxPacket        // read descriptor
	CatTxPacket        // write packet
	CatKey             // key toggle
	CatResource        // resource
	CatDump            // resource dump
	CatSequence        // command sequence

	numCategories
)

var catInfo = [...]struct {
	typ, path string
}{
	CatNone:            {"NONE", ""},
	CatFunc:            {"FUNC", "FUNCTION"},
	CatProperty:        {"PROPERTY", "PROPERTY"},
	CatMaptbl:          {"MAPTBL", "MAPTBL"},
	CatDelay:           {"DELAY", "DELAY"},
	CatTimerDelay:      {"TIMER_DELAY", "TIMER_DELAY"},
	CatTimerDelayBegin: {"TIMER_DELAY_BEGIN", "TIMER_DELAY_BEGIN"},
	CatCondIf:          {"COND_IF", "COND_IF"},
	CatCondElse:        {"COND_ELSE", "COND_ELSE"},
	CatCondEnd:         {"COND_END", "COND_END"},
	CatPowerCtrl:       {"PWRCTRL", "POWER_CTRL"},
	CatConfig:          {"CONFIG", "CONFIG"},
	CatRxPacket:        {"RX_PACKET", "RX_PACKET"},
	CatTxPacket:        {"TX_PACKET", "TX_PACKET"},
	CatKey:             {"KEY", "KEY"},
	CatResource:        {"RESOURCE", "RESOURCE"},
	CatDump:            {"DUMP", "DUMP"},
	CatSequence:        {"SEQUENCE", "SEQUENCE"},
}

var (
	byType = make(map[string]Category)
	byPath = make(map[string]Category)
)

func init() {
	for c := CatFunc; c < numCategories; c++ {
		byType[catInfo[c].typ] = c
		byPath[catInfo[c].path] = c
	}
}

// String returns the type string of c, as it appears in an object header.
func (c Category) String() string {
	if c >= numCategories {
		return catInfo[CatNone].typ
	}
	return catInfo[c].typ
}

// Path returns the section key of c, used both for the top-level document
// section holding objects of this category and as the path segment of a
// reference to one of them. It returns "" for CatNone.
func (c Category) Path() string {
	if c >= numCategories {
		return ""
	}
	return catInfo[c].path
}

// Valid reports whether c is a category other than CatNone.
func (c Category) Valid() bool { return c > CatNone && c < numCategories }

// CategoryByType returns the category whose type string is s.
func CategoryByType(s string) (Category, bool) {
	c, ok := byType[s]
	return c, ok
}

// CategoryByPath returns the category whose section path is s.
func CategoryByPath(s string) (Category, bool) {
	c, ok := byPath[s]
	return c, ok
}

// Categories returns all valid categories in canonical order.
func Categories() []Category {
	out := make([]Category, 0, numCategories-1)
	for c := CatFunc; c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}
