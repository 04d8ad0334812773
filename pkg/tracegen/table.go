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

// Package tracegen drives trace table generation: it owns row storage,
// applies the gadget fill operations across instruction and event batches
// (sequentially or from parallel workers), pads every table to a
// power-of-two height, and converts sealed tables into the columnar form
// consumed by the artifact writer and the device upload seam.
package tracegen

import (
	"fmt"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

// Table holds the row storage of one trace module.  Storage is allocated at
// the padded power-of-two height up front, with one leading slot per real
// instruction or event; slots beyond the real rows are padding and keep
// their zero value.  Every real slot is owned by exactly one fill call,
// which is what makes concurrent filling of distinct slots safe; the table
// tracks filled slots so that sealing can reject a batch which left a real
// slot untouched.
type Table[R any] struct {
	name     string
	rows     []R
	filled   *bitset.BitSet
	realRows uint
	sealed   bool
}

// NewTable constructs an unsealed table with the given number of real row
// slots.
func NewTable[R any](name string, rows uint) *Table[R] {
	return &Table[R]{
		name:     name,
		rows:     make([]R, nextPow2(rows)),
		filled:   bitset.New(rows),
		realRows: rows,
	}
}

// Name returns the module name of this table.
func (t *Table[R]) Name() string {
	return t.name
}

// RealRows returns the number of non-padding row slots.
func (t *Table[R]) RealRows() uint {
	return t.realRows
}

// Height returns the padded height of this table.
func (t *Table[R]) Height() uint {
	return uint(len(t.rows))
}

// PaddingRows returns the number of trailing padding rows.
func (t *Table[R]) PaddingRows() uint {
	return t.Height() - t.realRows
}

// Sealed reports whether this table has been sealed.
func (t *Table[R]) Sealed() bool {
	return t.sealed
}

// Row returns the ith real row slot for filling.  Accessing a padding slot,
// or any slot of a sealed table, is a caller contract violation.
func (t *Table[R]) Row(i uint) *R {
	if t.sealed {
		panic(fmt.Sprintf("table %s: write to sealed table", t.name))
	} else if i >= t.realRows {
		panic(fmt.Sprintf("table %s: row %d out of range %d", t.name, i, t.realRows))
	}
	//
	return &t.rows[i]
}

// Rows returns the full (padded) row storage.  Callers must treat the
// result as read-only once the table is sealed.
func (t *Table[R]) Rows() []R {
	return t.rows
}

// Seal finalises this table: it checks that every real slot was filled, and
// freezes the table against further writes.  Padding slots have never been
// written, hence remain zero rows.
func (t *Table[R]) Seal() error {
	if t.sealed {
		return fmt.Errorf("table %s: already sealed", t.name)
	}
	//
	if i, ok := t.filled.NextClear(0); ok && i < t.realRows {
		return fmt.Errorf("table %s: row %d was never filled", t.name, i)
	}
	//
	t.sealed = true
	//
	return nil
}

// mark records that the ith slot has been filled.  Not safe for concurrent
// use; parallel drivers mark whole ranges after their workers have joined.
func (t *Table[R]) mark(i uint) {
	t.filled.Set(i)
}

// markRange records that slots [lo, hi) have been filled.
func (t *Table[R]) markRange(lo, hi uint) {
	for i := lo; i < hi; i++ {
		t.filled.Set(i)
	}
}

func nextPow2(n uint) uint {
	if n == 0 {
		return 0
	}
	//
	return 1 << bits.Len64(uint64(n-1))
}
