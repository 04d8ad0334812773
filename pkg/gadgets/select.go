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

import "github.com/merl990827/monachan/pkg/util/field"

// SelectIo gathers the five operand slots of the select chip: a selection
// bit, two outputs and two inputs.  The select chip routes (in1, in2) to
// (out1, out2) or (out2, out1) according to the bit.  The bundle is generic
// over its payload so that the same declaration describes both the value
// shape (payload F) and the address shape (payload Address[F]); the two can
// therefore never drift apart.
type SelectIo[V any] struct {
	Bit  V
	Out1 V
	Out2 V
	In1  V
	In2  V
}

// SelectEvent records one runtime execution of a select instruction.  The
// payload is already in final columnar form, hence filling a row from it is
// pure repackaging.
type SelectEvent[F field.Element[F]] = SelectIo[F]

// SelectInstr is the static descriptor of one select instruction: the
// addresses of its five operands, plus the lookup multiplicities of the two
// output slots.  Multiplicities are copied verbatim into the preprocessed
// row; whether they match the actual number of uses is an obligation of the
// surrounding constraint system, not of this layer.
type SelectInstr[F field.Element[F]] struct {
	Addrs SelectIo[Address[F]]
	Mult1 F
	Mult2 F
}

// SelectCols is the main trace row of the select chip.
type SelectCols[F field.Element[F]] struct {
	Vals SelectIo[F]
}

// SelectPreprocessedCols is the preprocessed trace row of the select chip.
// IsReal is one on every row produced by InstrToRow and zero on padding
// rows, making it the discriminant the constraint system keys on.
type SelectPreprocessedCols[F field.Element[F]] struct {
	IsReal F
	Addrs  SelectIo[Address[F]]
	Mult1  F
	Mult2  F
}

// SelectChip generates the trace tables of the select chip.  The chip itself
// is stateless; both fill operations are total functions of their single
// input record, safe to invoke concurrently for distinct rows in any order.
type SelectChip[F field.Element[F]] struct{}

// Name returns the module name of this chip.
func (SelectChip[F]) Name() string {
	return "select"
}

// EventToRow fills the main row for one runtime event.  The payload is
// copied unchanged; no derived columns exist for this chip.
func (SelectChip[F]) EventToRow(event SelectEvent[F], row *SelectCols[F]) {
	row.Vals = event
}

// InstrToRow fills the preprocessed row for one static instruction, marking
// it real and copying the address tuple and both multiplicities verbatim.
func (SelectChip[F]) InstrToRow(instr SelectInstr[F], row *SelectPreprocessedCols[F]) {
	row.IsReal = field.One[F]()
	row.Addrs = instr.Addrs
	row.Mult1 = instr.Mult1
	row.Mult2 = instr.Mult2
}

// Width returns the number of columns in a main row.
func (SelectCols[F]) Width() uint {
	return 5
}

// Flatten writes the row into dst in column layout order.
func (c SelectCols[F]) Flatten(dst []F) {
	dst[0] = c.Vals.Bit
	dst[1] = c.Vals.Out1
	dst[2] = c.Vals.Out2
	dst[3] = c.Vals.In1
	dst[4] = c.Vals.In2
}

// Width returns the number of columns in a preprocessed row.
func (SelectPreprocessedCols[F]) Width() uint {
	return 8
}

// Flatten writes the row into dst in column layout order.
func (c SelectPreprocessedCols[F]) Flatten(dst []F) {
	dst[0] = c.IsReal
	dst[1] = c.Addrs.Bit.Elem
	dst[2] = c.Addrs.Out1.Elem
	dst[3] = c.Addrs.Out2.Elem
	dst[4] = c.Addrs.In1.Elem
	dst[5] = c.Addrs.In2.Elem
	dst[6] = c.Mult1
	dst[7] = c.Mult2
}
