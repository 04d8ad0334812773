// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package gadgets

import (
	"fmt"

	"github.com/merl990827/monachan/pkg/util/field"
)

// MemIo wraps the single operand of a memory access.
type MemIo[V any] struct {
	Inner V
}

// MemEvent records one runtime memory access, carrying the block read or
// written.
type MemEvent[F field.Element[F]] = MemIo[Block[F]]

// MemInstr is the static descriptor of one memory instruction: the address
// accessed, the constant memory image at that address (meaningful for the
// write side of constant memory, zero otherwise), the lookup multiplicity,
// and whether the access reads or writes.
type MemInstr[F field.Element[F]] struct {
	Addr Address[F]
	Val  Block[F]
	Mult F
	Kind MemAccessKind
}

// MemVarCols is the main trace row of the memory chip.
type MemVarCols[F field.Element[F]] struct {
	Vals Block[F]
}

// MemPreprocessedCols is the preprocessed trace row of the memory chip.
type MemPreprocessedCols[F field.Element[F]] struct {
	IsReal  F
	Addr    Address[F]
	Val     Block[F]
	Mult    F
	IsRead  F
	IsWrite F
}

// MemChip generates the trace tables of the memory chip.
type MemChip[F field.Element[F]] struct{}

// Name returns the module name of this chip.
func (MemChip[F]) Name() string {
	return "mem"
}

// EventToRow fills the main row for one runtime event, copying the accessed
// block unchanged.
func (MemChip[F]) EventToRow(event MemEvent[F], row *MemVarCols[F]) {
	row.Vals = event.Inner
}

// InstrToRow fills the preprocessed row for one static instruction, marking
// it real, copying address, constant image and multiplicity verbatim, and
// one-hot encoding the access kind.
func (MemChip[F]) InstrToRow(instr MemInstr[F], row *MemPreprocessedCols[F]) {
	row.IsReal = field.One[F]()
	row.Addr = instr.Addr
	row.Val = instr.Val
	row.Mult = instr.Mult
	//
	switch instr.Kind {
	case MemRead:
		row.IsRead = field.One[F]()
	case MemWrite:
		row.IsWrite = field.One[F]()
	default:
		panic(fmt.Sprintf("unknown memory access kind: %d", instr.Kind))
	}
}

// Width returns the number of columns in a main row.
func (MemVarCols[F]) Width() uint {
	return BlockWidth
}

// Flatten writes the row into dst in column layout order.
func (c MemVarCols[F]) Flatten(dst []F) {
	for i := 0; i < BlockWidth; i++ {
		dst[i] = c.Vals.At(i)
	}
}

// Width returns the number of columns in a preprocessed row.
func (MemPreprocessedCols[F]) Width() uint {
	return 5 + BlockWidth
}

// Flatten writes the row into dst in column layout order.
func (c MemPreprocessedCols[F]) Flatten(dst []F) {
	dst[0] = c.IsReal
	dst[1] = c.Addr.Elem
	//
	for i := 0; i < BlockWidth; i++ {
		dst[2+i] = c.Val.At(i)
	}
	//
	dst[2+BlockWidth] = c.Mult
	dst[3+BlockWidth] = c.IsRead
	dst[4+BlockWidth] = c.IsWrite
}
