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

// BaseAluIo gathers the three operand slots of a base field ALU operation.
type BaseAluIo[V any] struct {
	Out V
	In1 V
	In2 V
}

// BaseAluEvent records one runtime execution of a base ALU instruction, with
// the result already computed by the VM.
type BaseAluEvent[F field.Element[F]] = BaseAluIo[F]

// BaseAluInstr is the static descriptor of one base ALU instruction.
type BaseAluInstr[F field.Element[F]] struct {
	Opcode BaseAluOpcode
	Mult   F
	Addrs  BaseAluIo[Address[F]]
}

// BaseAluValueCols is the main trace row of the base ALU chip.
type BaseAluValueCols[F field.Element[F]] struct {
	Vals BaseAluIo[F]
}

// BaseAluAccessCols is the preprocessed trace row of the base ALU chip.  The
// opcode is one-hot encoded; exactly one flag is set on a real row, and none
// on a padding row, so the flag sum doubles as the realness discriminant.
type BaseAluAccessCols[F field.Element[F]] struct {
	Addrs BaseAluIo[Address[F]]
	IsAdd F
	IsSub F
	IsMul F
	IsDiv F
	Mult  F
}

// BaseAluChip generates the trace tables of the base field ALU chip.
type BaseAluChip[F field.Element[F]] struct{}

// Name returns the module name of this chip.
func (BaseAluChip[F]) Name() string {
	return "base_alu"
}

// EventToRow fills the main row for one runtime event, copying the payload
// unchanged.
func (BaseAluChip[F]) EventToRow(event BaseAluEvent[F], row *BaseAluValueCols[F]) {
	row.Vals = event
}

// InstrToRow fills the preprocessed row for one static instruction.  The
// address tuple and multiplicity are copied verbatim and the opcode becomes
// a one-hot flag.
func (BaseAluChip[F]) InstrToRow(instr BaseAluInstr[F], row *BaseAluAccessCols[F]) {
	row.Addrs = instr.Addrs
	row.Mult = instr.Mult
	//
	switch instr.Opcode {
	case AddF:
		row.IsAdd = field.One[F]()
	case SubF:
		row.IsSub = field.One[F]()
	case MulF:
		row.IsMul = field.One[F]()
	case DivF:
		row.IsDiv = field.One[F]()
	default:
		panic(fmt.Sprintf("unknown base alu opcode: %d", instr.Opcode))
	}
}

// Width returns the number of columns in a main row.
func (BaseAluValueCols[F]) Width() uint {
	return 3
}

// Flatten writes the row into dst in column layout order.
func (c BaseAluValueCols[F]) Flatten(dst []F) {
	dst[0] = c.Vals.Out
	dst[1] = c.Vals.In1
	dst[2] = c.Vals.In2
}

// Width returns the number of columns in a preprocessed row.
func (BaseAluAccessCols[F]) Width() uint {
	return 8
}

// Flatten writes the row into dst in column layout order.
func (c BaseAluAccessCols[F]) Flatten(dst []F) {
	dst[0] = c.Addrs.Out.Elem
	dst[1] = c.Addrs.In1.Elem
	dst[2] = c.Addrs.In2.Elem
	dst[3] = c.IsAdd
	dst[4] = c.IsSub
	dst[5] = c.IsMul
	dst[6] = c.IsDiv
	dst[7] = c.Mult
}
