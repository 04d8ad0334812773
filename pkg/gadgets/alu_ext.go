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

// ExtAluIo gathers the three operand slots of an extension field ALU
// operation.  Values occupy a full Block each, whilst addresses remain
// scalar (a block lives at a single address).
type ExtAluIo[V any] struct {
	Out V
	In1 V
	In2 V
}

// ExtAluEvent records one runtime execution of an extension ALU instruction,
// with the result already computed by the VM.
type ExtAluEvent[F field.Element[F]] = ExtAluIo[Block[F]]

// ExtAluInstr is the static descriptor of one extension ALU instruction.
type ExtAluInstr[F field.Element[F]] struct {
	Opcode ExtAluOpcode
	Mult   F
	Addrs  ExtAluIo[Address[F]]
}

// ExtAluValueCols is the main trace row of the extension ALU chip.
type ExtAluValueCols[F field.Element[F]] struct {
	Vals ExtAluIo[Block[F]]
}

// ExtAluAccessCols is the preprocessed trace row of the extension ALU chip.
// As for the base ALU, the one-hot opcode flags double as the realness
// discriminant.
type ExtAluAccessCols[F field.Element[F]] struct {
	Addrs ExtAluIo[Address[F]]
	IsAdd F
	IsSub F
	IsMul F
	IsDiv F
	Mult  F
}

// ExtAluChip generates the trace tables of the extension field ALU chip.
type ExtAluChip[F field.Element[F]] struct{}

// Name returns the module name of this chip.
func (ExtAluChip[F]) Name() string {
	return "ext_alu"
}

// EventToRow fills the main row for one runtime event, copying all three
// blocks unchanged.
func (ExtAluChip[F]) EventToRow(event ExtAluEvent[F], row *ExtAluValueCols[F]) {
	row.Vals = event
}

// InstrToRow fills the preprocessed row for one static instruction.
func (ExtAluChip[F]) InstrToRow(instr ExtAluInstr[F], row *ExtAluAccessCols[F]) {
	row.Addrs = instr.Addrs
	row.Mult = instr.Mult
	//
	switch instr.Opcode {
	case AddE:
		row.IsAdd = field.One[F]()
	case SubE:
		row.IsSub = field.One[F]()
	case MulE:
		row.IsMul = field.One[F]()
	case DivE:
		row.IsDiv = field.One[F]()
	default:
		panic(fmt.Sprintf("unknown ext alu opcode: %d", instr.Opcode))
	}
}

// Width returns the number of columns in a main row.
func (ExtAluValueCols[F]) Width() uint {
	return 3 * BlockWidth
}

// Flatten writes the row into dst in column layout order, one block per
// operand, limbs innermost.
func (c ExtAluValueCols[F]) Flatten(dst []F) {
	for i := 0; i < BlockWidth; i++ {
		dst[i] = c.Vals.Out.At(i)
		dst[BlockWidth+i] = c.Vals.In1.At(i)
		dst[2*BlockWidth+i] = c.Vals.In2.At(i)
	}
}

// Width returns the number of columns in a preprocessed row.
func (ExtAluAccessCols[F]) Width() uint {
	return 8
}

// Flatten writes the row into dst in column layout order.
func (c ExtAluAccessCols[F]) Flatten(dst []F) {
	dst[0] = c.Addrs.Out.Elem
	dst[1] = c.Addrs.In1.Elem
	dst[2] = c.Addrs.In2.Elem
	dst[3] = c.IsAdd
	dst[4] = c.IsSub
	dst[5] = c.IsMul
	dst[6] = c.IsDiv
	dst[7] = c.Mult
}
