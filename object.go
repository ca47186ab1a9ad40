// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

import (
	"fmt"
	"math"
	"slices"
)

// A Header is the part of a record shared by all categories.
type Header struct {
	Cat  Category
	Name string
}

// Head returns h itself. Embedding a Header satisfies the Object interface.
func (h *Header) Head() *Header { return h }

func (h *Header) String() string { return h.Cat.String() + ":" + h.Name }

// An Object is a record of the panel object graph. The concrete type is one of
// the pointer types listed in the package documentation.
type Object interface {
	Head() *Header
}

// NameOf returns the name of o, or "" if o is nil.
func NameOf(o Object) string {
	if o == nil {
		return ""
	}
	return o.Head().Name
}

// CategoryOf returns the category of o, or CatNone if o is nil.
func CategoryOf(o Object) Category {
	if o == nil {
		return CatNone
	}
	return o.Head().Cat
}

// A Function is a named hook. Its implementation comes from a FuncTable, not
// from the document.
type Function struct {
	Header
	Fn Func
}

// NewFunction constructs a function record bound to fn.
func NewFunction(name string, fn Func) *Function {
	return &Function{Header: Header{Cat: CatFunc, Name: name}, Fn: fn}
}

// PropType is the kind of value a Property holds.
type PropType byte

// Constants defining the valid PropType values.
const (
	PropInvalid PropType = iota // invalid
	PropRange                   // integer in [Min, Max]
	PropEnum                    // one of Items
)

var propTypeStr = [...]string{PropInvalid: "INVALID", PropRange: "RANGE", PropEnum: "ENUM"}

func (p PropType) String() string {
	if int(p) >= len(propTypeStr) {
		return propTypeStr[PropInvalid]
	}
	return propTypeStr[p]
}

// ParsePropType returns the PropType named by s.
func ParsePropType(s string) (PropType, bool) {
	return parseEnum[PropType](propTypeStr[:], s)
}

// A PropItem is one symbolic value of an enumerated property.
type PropItem struct {
	Value uint32
	Name  string
}

// A Property is a named panel state variable.
type Property struct {
	Header
	Type     PropType
	Min, Max uint32     // for PropRange
	Items    []PropItem // for PropEnum
}

// Lookup returns the value of the enumerated item with the given name.
func (p *Property) Lookup(name string) (uint32, bool) {
	for _, it := range p.Items {
		if it.Name == name {
			return it.Value, true
		}
	}
	return 0, false
}

// Shape gives the size of each dimension of a lookup table, outermost first.
type Shape struct {
	Dims []uint32
}

// MaptblOps are the optional hooks of a lookup table.
type MaptblOps struct {
	Init     *Function
	GetIndex *Function
	Copy     *Function
}

// A Maptbl is a multi-dimensional lookup table. Props names the property that
// drives each dimension; entries may be nil.
type Maptbl struct {
	Header
	Shape Shape
	Data  []byte
	Ops   MaptblOps
	Props []*Property
}

// Size reports the number of cells described by the shape of m. It returns
// -1 if the number of cells does not fit in an int.
func (m *Maptbl) Size() int {
	if len(m.Shape.Dims) == 0 || slices.Contains(m.Shape.Dims, 0) {
		return 0
	}
	n := 1
	for _, d := range m.Shape.Dims {
		if uint64(n) > uint64(math.MaxInt)/uint64(d) {
			return -1
		}
		n *= int(d)
	}
	return n
}

// Index returns the row-major offset of the cell at the given indices. Fewer
// indices than dimensions address the start of a row.
func (m *Maptbl) Index(idx ...int) (int, error) {
	if len(idx) > len(m.Shape.Dims) {
		return 0, fmt.Errorf("%s: %d indices for %d dimensions", m.Name, len(idx), len(m.Shape.Dims))
	} else if m.Size() < 0 {
		return 0, fmt.Errorf("%s: shape %v overflows", m.Name, m.Shape.Dims)
	}
	var off int
	for i, d := range m.Shape.Dims {
		off *= int(d)
		if i < len(idx) {
			if idx[i] < 0 || idx[i] >= int(d) {
				return 0, fmt.Errorf("%s: index %d out of range (n=%d)", m.Name, idx[i], d)
			}
			off += idx[i]
		}
	}
	return off, nil
}

// Row returns the cells of the innermost row addressed by idx, which must
// give one index for each dimension but the last.
func (m *Maptbl) Row(idx ...int) ([]byte, error) {
	n := len(m.Shape.Dims)
	if n == 0 || len(idx) != n-1 {
		return nil, fmt.Errorf("%s: row needs %d indices", m.Name, max(n-1, 0))
	}
	off, err := m.Index(idx...)
	if err != nil {
		return nil, err
	}
	end := off + int(m.Shape.Dims[n-1])
	if end > len(m.Data) {
		return nil, fmt.Errorf("%s: row [%d:%d] exceeds data (n=%d)", m.Name, off, end, len(m.Data))
	}
	return m.Data[off:end], nil
}

// A Delay waits for a number of microseconds, frames and vsyncs. Its category
// is CatDelay or CatTimerDelay.
type Delay struct {
	Header
	Usec   uint32
	Frames uint32
	Vsyncs uint32
}

// A TimerDelayBegin starts the timer of a delay.
type TimerDelayBegin struct {
	Header
	Delay *Delay
}

// A Condition is a conditional block marker. Its category is CatCondIf,
// CatCondElse or CatCondEnd. Rule holds the infix expression of the condition.
type Condition struct {
	Header
	Rule []ExprItem
}

// A PowerCtrl names an external power-control knob.
type PowerCtrl struct {
	Header
	Key string
}

// A Config forces a property to a value.
type Config struct {
	Header
	Prop  *Property
	Value uint32
}

// An RxPacket describes a register read. Buf receives the data read and is
// zero-filled at construction.
type RxPacket struct {
	Header
	Type   PktType
	Addr   uint32
	Offset uint32
	Len    uint32
	Buf    []byte
}

// NewRxPacket constructs a read descriptor with a zeroed receive buffer.
func NewRxPacket(name string, typ PktType, addr, offset, n uint32) *RxPacket {
	return &RxPacket{
		Header: Header{Cat: CatRxPacket, Name: name},
		Type:   typ,
		Addr:   addr,
		Offset: offset,
		Len:    n,
		Buf:    make([]byte, n),
	}
}

// A PktUpdate says that the bytes of a packet starting at Offset are
// overwritten from a lookup table.
type PktUpdate struct {
	Offset uint32
	Maptbl *Maptbl
}

// A TxBuf is the transmit buffer of a TxPacket. It either owns a private copy
// of the authored payload or aliases it.
type TxBuf struct {
	data  []byte
	owned bool
}

// Bytes returns the contents of the buffer.
func (b TxBuf) Bytes() []byte { return b.data }

// Owned reports whether b holds its own copy of the payload. A buffer that is
// not owned shares storage with the authored payload of its packet.
func (b TxBuf) Owned() bool { return b.owned }

// A TxPacket describes a register write. Init is the payload as authored.
type TxPacket struct {
	Header
	Type    PktType
	Init    []byte
	Offset  uint32
	Updates []PktUpdate

	tx TxBuf
}

// NewTxPacket constructs a write packet. If any updates are given, the packet
// transmits from a private copy of data; otherwise it transmits data itself.
func NewTxPacket(name string, typ PktType, data []byte, offset uint32, updates []PktUpdate) *TxPacket {
	p := &TxPacket{
		Header:  Header{Cat: CatTxPacket, Name: name},
		Type:    typ,
		Init:    data,
		Offset:  offset,
		Updates: updates,
	}
	if len(updates) != 0 {
		p.tx = TxBuf{data: slices.Clone(data), owned: true}
	}
	return p
}

// Tx returns the transmit buffer of p.
func (p *TxPacket) Tx() TxBuf {
	if p.tx.owned {
		return p.tx
	}
	return TxBuf{data: p.Init}
}

// A Key toggles a register access level around its packet.
type Key struct {
	Header
	Level  uint32
	Enable uint32
	Packet *TxPacket
}

// A ResUpdate says that the bytes of a resource starting at Offset are filled
// from a read descriptor.
type ResUpdate struct {
	Offset uint32
	Rx     *RxPacket
}

// A Resource is a byte payload. A resource with updates is mutable: its
// contents reflect device state and are not persisted.
type Resource struct {
	Header
	Data    []byte
	Updates []ResUpdate

	mutable bool
}

// NewResource constructs a resource. It is mutable if updates is non-empty.
func NewResource(name string, data []byte, updates []ResUpdate) *Resource {
	return &Resource{
		Header:  Header{Cat: CatResource, Name: name},
		Data:    data,
		Updates: updates,
		mutable: len(updates) != 0,
	}
}

// Mutable reports whether r is filled from the device.
func (r *Resource) Mutable() bool { return r.mutable }

// An Expect is a check applied to a dumped resource.
type Expect struct {
	Offset uint32
	Mask   byte
	Value  byte
	Msg    string
}

// A Dump reports the contents of a resource through a callback and checks it
// against expectations.
type Dump struct {
	Header
	Res      *Resource
	Callback *Function
	Expects  []Expect
}

// Check applies the expectations of d to the current contents of its
// resource, and returns the messages of those that fail.
func (d *Dump) Check() []string {
	var out []string
	for _, e := range d.Expects {
		if d.Res == nil || int(e.Offset) >= len(d.Res.Data) {
			out = append(out, e.Msg)
			continue
		}
		if d.Res.Data[e.Offset]&e.Mask != e.Value {
			out = append(out, e.Msg)
		}
	}
	return out
}

// A Sequence is an ordered list of commands of any category.
type Sequence struct {
	Header
	Cmds []Object
}
