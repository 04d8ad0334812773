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

// Package gadgets defines the columnar row schemas of the recursion VM's
// chips, together with the fill operations which populate them.  Every chip
// produces two tables: a preprocessed table holding one row per static
// instruction of the program, and a main table holding one row per runtime
// event.  The corresponding fill operations (InstrToRow and EventToRow) are
// total functions of a single input record.  They read no global state, they
// do not depend on the row index being filled, and they do not depend on any
// other row having been filled before or after.  This is the property which
// allows the generation driver to fill distinct rows from concurrent workers
// without synchronisation, each worker owning a disjoint range of row slots.
//
// Rows beyond the last real instruction or event are padding.  Fill
// operations never produce padding; the table builder zeroes those slots, and
// realness discriminants (an explicit is_real column, or the one-hot opcode
// flags) are the only thing separating a real row from padding downstream.
package gadgets

import "fmt"

// BaseAluOpcode identifies one of the base field ALU operations.
type BaseAluOpcode uint8

const (
	// AddF is addition in the base field.
	AddF BaseAluOpcode = iota
	// SubF is subtraction in the base field.
	SubF
	// MulF is multiplication in the base field.
	MulF
	// DivF is division in the base field.
	DivF
)

func (op BaseAluOpcode) String() string {
	switch op {
	case AddF:
		return "addf"
	case SubF:
		return "subf"
	case MulF:
		return "mulf"
	case DivF:
		return "divf"
	}
	//
	return fmt.Sprintf("BaseAluOpcode(%d)", uint8(op))
}

// ExtAluOpcode identifies one of the extension field ALU operations.
type ExtAluOpcode uint8

const (
	// AddE is addition in the extension field.
	AddE ExtAluOpcode = iota
	// SubE is subtraction in the extension field.
	SubE
	// MulE is multiplication in the extension field.
	MulE
	// DivE is division in the extension field.
	DivE
)

func (op ExtAluOpcode) String() string {
	switch op {
	case AddE:
		return "adde"
	case SubE:
		return "sube"
	case MulE:
		return "mule"
	case DivE:
		return "dive"
	}
	//
	return fmt.Sprintf("ExtAluOpcode(%d)", uint8(op))
}

// MemAccessKind distinguishes reads from writes in memory instructions.
type MemAccessKind uint8

const (
	// MemRead marks an instruction which reads a memory word.
	MemRead MemAccessKind = iota
	// MemWrite marks an instruction which writes a memory word.
	MemWrite
)

func (k MemAccessKind) String() string {
	switch k {
	case MemRead:
		return "read"
	case MemWrite:
		return "write"
	}
	//
	return fmt.Sprintf("MemAccessKind(%d)", uint8(k))
}
