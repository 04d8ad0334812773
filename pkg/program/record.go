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

package program

import (
	"github.com/merl990827/monachan/pkg/gadgets"
	"github.com/merl990827/monachan/pkg/util/field"
)

// Record is the runtime log of one program execution, grouped per gadget.
// Every event yields exactly one trace row holding its values verbatim; the
// events arrive already evaluated, so nothing here recomputes gadget
// semantics.
type Record[F field.Element[F]] struct {
	Select  []gadgets.SelectEvent[F]
	BaseAlu []gadgets.BaseAluEvent[F]
	ExtAlu  []gadgets.ExtAluEvent[F]
	Mem     []gadgets.MemEvent[F]
}

// Events returns the total number of events in this record.
func (r *Record[F]) Events() uint {
	return uint(len(r.Select) + len(r.BaseAlu) + len(r.ExtAlu) + len(r.Mem))
}
