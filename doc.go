// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package pnobj defines the object graph of a display panel command set: lookup
// tables, packets, delays, conditions, properties and the sequences that tie
// them together.
//
// # Objects
//
// Every record in the graph implements the Object interface and carries a
// Header giving its Category and name. Names are unique within a category.
// The concrete types are:
//
//	Category           | Type               | Description
//	------------------ | ------------------ | ----------------------------------
//	CatFunc            | *Function          | named hook from a static FuncTable
//	CatProperty        | *Property          | ranged or enumerated integer
//	CatMaptbl          | *Maptbl            | multi-dimensional lookup table
//	CatDelay           | *Delay             | wait in usec, frames and vsyncs
//	CatTimerDelay      | *Delay             | wait measured from a timer start
//	CatTimerDelayBegin | *TimerDelayBegin   | start of a timer delay
//	CatCondIf ...      | *Condition         | conditional block markers
//	CatPowerCtrl       | *PowerCtrl         | external power-control knob
//	CatConfig          | *Config            | forced property value
//	CatRxPacket        | *RxPacket          | register read descriptor
//	CatTxPacket        | *TxPacket          | register write payload
//	CatKey             | *Key               | access-level key toggle
//	CatResource        | *Resource          | byte payload filled from reads
//	CatDump            | *Dump              | resource expectations
//	CatSequence        | *Sequence          | ordered command list
//
// # Registry
//
// A Registry owns every record decoded from a document, in insertion order.
// Functions live in a separate namespace keyed by name alone: inserting a
// duplicate function is silently ignored, while a duplicate of any other
// category is an error.
//
// Documents are decoded into a Registry by package decode and written back
// by package encode.
package pnobj
