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

// Package trace defines the columnar in-memory representation of generated
// trace data, as handed to the commitment layer and to the binary artifact
// writer.  A trace is a set of modules; a module is a set of equal-height
// columns of field elements.
package trace

import "github.com/merl990827/monachan/pkg/util/field"

// Column is a single named column of field elements.
type Column[F field.Element[F]] struct {
	Name string
	Data []F
}

// Module is one table of the trace: the columns of a single chip, padded to
// a power-of-two height.  RealRows records how many of the leading rows were
// produced from actual instructions or events; all rows beyond that are
// padding.
type Module[F field.Element[F]] struct {
	Name     string
	RealRows uint
	Columns  []Column[F]
}

// Height returns the (padded) number of rows in this module.
func (m *Module[F]) Height() uint {
	if len(m.Columns) == 0 {
		return 0
	}
	//
	return uint(len(m.Columns[0].Data))
}

// Width returns the number of columns in this module.
func (m *Module[F]) Width() uint {
	return uint(len(m.Columns))
}

// PaddingRows returns the number of trailing padding rows.
func (m *Module[F]) PaddingRows() uint {
	return m.Height() - m.RealRows
}

// Column returns the column with the given name, or false if no such column
// exists.
func (m *Module[F]) Column(name string) (Column[F], bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	//
	return Column[F]{}, false
}
