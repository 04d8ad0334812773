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
package tracegen

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Fill populates the ith real slot of the table from the ith input, one
// input at a time.
func Fill[E, R any](table *Table[R], inputs []E, fill func(E, *R)) error {
	if err := checkFillable(table, uint(len(inputs))); err != nil {
		return err
	}
	//
	for i := range inputs {
		fill(inputs[i], table.Row(uint(i)))
		table.mark(uint(i))
	}
	//
	return nil
}

// FillParallel populates the table from the given inputs using the given
// number of concurrent workers, each owning a disjoint contiguous range of
// row slots.  Because fill operations are independent of row index and call
// order, the result is identical to that of Fill regardless of worker count
// and interleaving.  A panicking fill operation (a caller contract
// violation) is reported as an error rather than tearing down the process.
func FillParallel[E, R any](table *Table[R], inputs []E, fill func(E, *R), workers uint) error {
	if err := checkFillable(table, uint(len(inputs))); err != nil {
		return err
	}
	//
	if workers == 0 {
		workers = 1
	}
	//
	var (
		n     = uint(len(inputs))
		chunk = (n + workers - 1) / workers
		group errgroup.Group
	)
	//
	group.SetLimit(int(workers))
	//
	for lo := uint(0); lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		//
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("table %s: fill panicked on rows [%d, %d): %v", table.Name(), lo, hi, r)
				}
			}()
			//
			for i := lo; i < hi; i++ {
				fill(inputs[i], table.Row(i))
			}
			//
			return nil
		})
	}
	//
	if err := group.Wait(); err != nil {
		return err
	}
	// Safe to mark now all workers have joined.
	table.markRange(0, n)
	//
	return nil
}

func checkFillable[R any](table *Table[R], inputs uint) error {
	if table.Sealed() {
		return fmt.Errorf("table %s: already sealed", table.Name())
	} else if inputs != table.RealRows() {
		return fmt.Errorf("table %s: %d inputs for %d row slots", table.Name(), inputs, table.RealRows())
	}
	//
	return nil
}
