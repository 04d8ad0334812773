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

// Package program defines the two containers crossing the VM boundary: the
// static instruction set fixed before any execution (Program), and the
// runtime event streams produced by executing it (Record).  Both are
// produced upstream, by the compiler respectively the executor; this layer
// only stores, serialises and validates them.
package program

import (
	"golang.org/x/crypto/sha3"

	"github.com/merl990827/monachan/pkg/gadgets"
	"github.com/merl990827/monachan/pkg/util/field"
)

// Program is the static instruction set of one VM program, grouped per
// gadget.  Every instruction yields exactly one preprocessed trace row,
// independent of how many times (if at all) it executes.
type Program[F field.Element[F]] struct {
	Select  []gadgets.SelectInstr[F]
	BaseAlu []gadgets.BaseAluInstr[F]
	ExtAlu  []gadgets.ExtAluInstr[F]
	Mem     []gadgets.MemInstr[F]
}

// Instructions returns the total number of instructions in this program.
func (p *Program[F]) Instructions() uint {
	return uint(len(p.Select) + len(p.BaseAlu) + len(p.ExtAlu) + len(p.Mem))
}

// Digest returns the SHA3-256 digest of this program's canonical encoding.
// The digest is embedded in serialised programs and trace artifacts, and
// checked again on load.
func (p *Program[F]) Digest() ([32]byte, error) {
	var empty [32]byte
	//
	data, err := encMode.Marshal(p)
	if err != nil {
		return empty, err
	}
	//
	return sha3.Sum256(data), nil
}
