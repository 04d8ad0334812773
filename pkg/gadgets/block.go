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
	"strings"

	"github.com/merl990827/monachan/pkg/util/field"
)

// BlockWidth is the number of base field limbs in a Block, i.e. the degree
// of the extension field the VM operates over.
const BlockWidth = 4

// Block is one element of the degree-4 extension field, laid out as its four
// base field limbs.  Blocks are plain values: they are copied by assignment,
// their zero value is the zero element, and they carry no length-mutation
// operation whatsoever.  Keeping the layout a fixed array is what makes row
// records contiguous, which the binding surface (layout tables, device
// upload, trace artifact) relies upon.
type Block[F field.Element[F]] [BlockWidth]F

// BaseBlock embeds a base field element into the extension field, i.e.
// produces the block (val, 0, 0, 0).
func BaseBlock[F field.Element[F]](val F) Block[F] {
	var block Block[F]
	//
	block[0] = val
	//
	return block
}

// At returns the ith limb of this block.  Out-of-range access is a caller
// contract violation and panics.
func (b Block[F]) At(i int) F {
	return b[i]
}

// Width returns the number of limbs in a block.
func (b Block[F]) Width() uint {
	return BlockWidth
}

// IsZero checks whether this block is the zero element.
func (b Block[F]) IsZero() bool {
	for i := range b {
		if !b[i].IsZero() {
			return false
		}
	}
	//
	return true
}

func (b Block[F]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i := range b {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(b[i].String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// Address identifies a single word of VM memory as a field element.
// Addresses are assigned by the compiler producing the static program, and
// are only ever stored and copied by this layer.
type Address[F field.Element[F]] struct {
	Elem F
}

// AddressOf constructs the address with the given numeric value.
func AddressOf[F field.Element[F]](val uint64) Address[F] {
	return Address[F]{field.Uint64[F](val)}
}

func (a Address[F]) String() string {
	return fmt.Sprintf("@%s", a.Elem.String())
}
