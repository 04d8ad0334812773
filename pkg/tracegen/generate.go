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
	"golang.org/x/sync/errgroup"

	"github.com/merl990827/monachan/pkg/gadgets"
	"github.com/merl990827/monachan/pkg/program"
	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util"
	"github.com/merl990827/monachan/pkg/util/field"
)

// TraceSet gathers the eight trace tables produced from one program / record
// pair: a preprocessed table per gadget (derived from the program), and a
// main table per gadget (derived from the record).
type TraceSet[F field.Element[F]] struct {
	SelectPreprocessed  *Table[gadgets.SelectPreprocessedCols[F]]
	Select              *Table[gadgets.SelectCols[F]]
	BaseAluPreprocessed *Table[gadgets.BaseAluAccessCols[F]]
	BaseAlu             *Table[gadgets.BaseAluValueCols[F]]
	ExtAluPreprocessed  *Table[gadgets.ExtAluAccessCols[F]]
	ExtAlu              *Table[gadgets.ExtAluValueCols[F]]
	MemPreprocessed     *Table[gadgets.MemPreprocessedCols[F]]
	Mem                 *Table[gadgets.MemVarCols[F]]
}

// Options configures trace generation.
type Options struct {
	// Workers sets the number of goroutines filling each table (zero selects
	// a single worker).
	Workers uint
}

// Generate produces the full trace set for one program / record pair.  All
// eight tables are generated concurrently, each filled by opts.Workers
// workers; since every row is a pure function of one instruction or event,
// the outcome is deterministic regardless of scheduling.
func Generate[F field.Element[F]](p *program.Program[F], r *program.Record[F], opts Options) (*TraceSet[F], error) {
	var (
		ts    TraceSet[F]
		group errgroup.Group
		//
		selectChip  gadgets.SelectChip[F]
		baseAluChip gadgets.BaseAluChip[F]
		extAluChip  gadgets.ExtAluChip[F]
		memChip     gadgets.MemChip[F]
	)
	// Preprocessed tables (one row per instruction).
	group.Go(func() error {
		return generateTable(&ts.SelectPreprocessed, preprocessedName(selectChip.Name()), p.Select, selectChip.InstrToRow, opts)
	})
	group.Go(func() error {
		return generateTable(&ts.BaseAluPreprocessed, preprocessedName(baseAluChip.Name()), p.BaseAlu, baseAluChip.InstrToRow, opts)
	})
	group.Go(func() error {
		return generateTable(&ts.ExtAluPreprocessed, preprocessedName(extAluChip.Name()), p.ExtAlu, extAluChip.InstrToRow, opts)
	})
	group.Go(func() error {
		return generateTable(&ts.MemPreprocessed, preprocessedName(memChip.Name()), p.Mem, memChip.InstrToRow, opts)
	})
	// Main tables (one row per event).
	group.Go(func() error {
		return generateTable(&ts.Select, selectChip.Name(), r.Select, selectChip.EventToRow, opts)
	})
	group.Go(func() error {
		return generateTable(&ts.BaseAlu, baseAluChip.Name(), r.BaseAlu, baseAluChip.EventToRow, opts)
	})
	group.Go(func() error {
		return generateTable(&ts.ExtAlu, extAluChip.Name(), r.ExtAlu, extAluChip.EventToRow, opts)
	})
	group.Go(func() error {
		return generateTable(&ts.Mem, memChip.Name(), r.Mem, memChip.EventToRow, opts)
	})
	//
	if err := group.Wait(); err != nil {
		return nil, err
	}
	//
	return &ts, nil
}

// Modules flattens every table of this trace set into its columnar module,
// with each preprocessed module immediately ahead of its main module.
func (ts *TraceSet[F]) Modules() ([]trace.Module[F], error) {
	var (
		modules [8]trace.Module[F]
		err     error
	)
	//
	if modules[0], err = ModuleOf[F](ts.SelectPreprocessed); err != nil {
		return nil, err
	}
	//
	if modules[1], err = ModuleOf[F](ts.Select); err != nil {
		return nil, err
	}
	//
	if modules[2], err = ModuleOf[F](ts.BaseAluPreprocessed); err != nil {
		return nil, err
	}
	//
	if modules[3], err = ModuleOf[F](ts.BaseAlu); err != nil {
		return nil, err
	}
	//
	if modules[4], err = ModuleOf[F](ts.ExtAluPreprocessed); err != nil {
		return nil, err
	}
	//
	if modules[5], err = ModuleOf[F](ts.ExtAlu); err != nil {
		return nil, err
	}
	//
	if modules[6], err = ModuleOf[F](ts.MemPreprocessed); err != nil {
		return nil, err
	}
	//
	if modules[7], err = ModuleOf[F](ts.Mem); err != nil {
		return nil, err
	}
	//
	return modules[:], nil
}

// generateTable allocates, fills and seals one table, storing it in dst.
func generateTable[E, R any](dst **Table[R], name string, inputs []E, fill func(E, *R), opts Options) error {
	stats := util.NewPerfStats()
	//
	table := NewTable[R](name, uint(len(inputs)))
	//
	if err := FillParallel(table, inputs, fill, opts.Workers); err != nil {
		return err
	}
	//
	if err := table.Seal(); err != nil {
		return err
	}
	//
	stats.LogRows(name, table.Height())
	//
	*dst = table
	//
	return nil
}

// preprocessedName returns the module name of the preprocessed companion
// table of the named chip.
func preprocessedName(chip string) string {
	return chip + "_preprocessed"
}
