// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pnobj

import "slices"

// PktType is the wire-protocol sub-type of a packet.
type PktType byte

// Constants defining the valid PktType values.
const (
	PktInvalid PktType = iota // invalid

	DSIWrite     // DSI_PKT_TYPE_WR
	DSIWriteComp // DSI_PKT_TYPE_WR_COMP
	DSIWritePPS  // DSI_PKT_TYPE_WR_PPS
	DSIWriteSR   // DSI_PKT_TYPE_WR_SR
	DSIWriteMem  // DSI_PKT_TYPE_WR_MEM
	SPIWrite     // SPI_PKT_TYPE_WR
	I2CWrite     // I2C_PKT_TYPE_WR
	DSIRead      // DSI_PKT_TYPE_RD
	DSIReadPOC   // DSI_PKT_TYPE_RD_POC
	SPIRead      // SPI_PKT_TYPE_RD
	SPISetParam  // SPI_PKT_TYPE_SETPARAM
	I2CRead      // I2C_PKT_TYPE_RD
	numPktTypes
)

var pktTypeStr = [...]string{
	PktInvalid:   "PKT_TYPE_INVALID",
	DSIWrite:     "DSI_PKT_TYPE_WR",
	DSIWriteComp: "DSI_PKT_TYPE_WR_COMP",
	DSIWritePPS:  "DSI_PKT_TYPE_WR_PPS",
	DSIWriteSR:   "DSI_PKT_TYPE_WR_SR",
	DSIWriteMem:  "DSI_PKT_TYPE_WR_MEM",
	SPIWrite:     "SPI_PKT_TYPE_WR",
	I2CWrite:     "I2C_PKT_TYPE_WR",
	DSIRead:      "DSI_PKT_TYPE_RD",
	DSIReadPOC:   "DSI_PKT_TYPE_RD_POC",
	SPIRead:      "SPI_PKT_TYPE_RD",
	SPISetParam:  "SPI_PKT_TYPE_SETPARAM",
	I2CRead:      "I2C_PKT_TYPE_RD",
}

func (p PktType) String() string {
	if p >= numPktTypes {
		return pktTypeStr[PktInvalid]
	}
	return pktTypeStr[p]
}

// IsRead reports whether p is a read type, valid for an RxPacket.
func (p PktType) IsRead() bool { return p >= DSIRead && p < numPktTypes }

// IsWrite reports whether p is a write type, valid for a TxPacket.
func (p PktType) IsWrite() bool { return p >= DSIWrite && p < DSIRead }

// ParsePktType returns the PktType named by s.
func ParsePktType(s string) (PktType, bool) { return parseEnum[PktType](pktTypeStr[:], s) }

// ExprKind is the kind of an item in a condition rule.
type ExprKind byte

// Constants defining the valid ExprKind values.
const (
	ExprInvalid  ExprKind = iota // invalid
	ExprOperator                 // operator token
	ExprInt                      // literal integer operand
	ExprProp                     // property operand
	ExprFunc                     // function operand
	numExprKinds
)

var exprKindStr = [...]string{
	ExprInvalid:  "INVALID",
	ExprOperator: "OPERATOR",
	ExprInt:      "OPERAND_INT",
	ExprProp:     "OPERAND_PROP",
	ExprFunc:     "OPERAND_FUNC",
}

func (k ExprKind) String() string {
	if k >= numExprKinds {
		return exprKindStr[ExprInvalid]
	}
	return exprKindStr[k]
}

// ParseExprKind returns the ExprKind named by s.
func ParseExprKind(s string) (ExprKind, bool) { return parseEnum[ExprKind](exprKindStr[:], s) }

// Operator is an operator token of a condition rule.
type Operator byte

// Constants defining the valid Operator values.
const (
	OpInvalid    Operator = iota // invalid
	OpEQ                         // ==
	OpNE                         // !=
	OpLT                         // <
	OpGT                         // >
	OpLE                         // <=
	OpGE                         // >=
	OpAnd                        // &&
	OpOr                         // ||
	OpNot                        // !
	OpBitAnd                     // &
	OpLParen                     // (
	OpRParen                     // )
	numOperators
)

var operatorStr = [...]string{
	OpInvalid: "INVALID",
	OpEQ:      "EQ",
	OpNE:      "NE",
	OpLT:      "LT",
	OpGT:      "GT",
	OpLE:      "LE",
	OpGE:      "GE",
	OpAnd:     "AND",
	OpOr:      "OR",
	OpNot:     "NOT",
	OpBitAnd:  "BIT_AND",
	OpLParen:  "LPAREN",
	OpRParen:  "RPAREN",
}

func (o Operator) String() string {
	if o >= numOperators {
		return operatorStr[OpInvalid]
	}
	return operatorStr[o]
}

// ParseOperator returns the Operator named by s.
func ParseOperator(s string) (Operator, bool) { return parseEnum[Operator](operatorStr[:], s) }

// An ExprItem is one token of a condition rule. Which of the operand fields
// is meaningful depends on Kind.
type ExprItem struct {
	Kind  ExprKind
	Op    Operator  // ExprOperator
	Value uint32    // ExprInt
	Prop  *Property // ExprProp
	Func  *Function // ExprFunc
}

// parseEnum looks up s in a table of names whose index 0 is the invalid value.
func parseEnum[T ~byte](names []string, s string) (T, bool) {
	i := slices.Index(names, s)
	if i <= 0 {
		return 0, false
	}
	return T(i), true
}
