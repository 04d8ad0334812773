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

	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util/field"
)

// Target identifies the execution target trace data is generated for.  Row
// layouts and fill semantics are identical for every target; targets differ
// only in where sealed tables end up residing.
type Target uint8

const (
	// TargetHost leaves generated tables in host memory.
	TargetHost Target = iota
	// TargetCUDA additionally uploads sealed tables to a CUDA device.
	TargetCUDA
)

func (t Target) String() string {
	switch t {
	case TargetHost:
		return "host"
	case TargetCUDA:
		return "cuda"
	}
	//
	return fmt.Sprintf("Target(%d)", uint8(t))
}

// ParseTarget parses a target name as given on the command line.
func ParseTarget(name string) (Target, error) {
	switch name {
	case "host":
		return TargetHost, nil
	case "cuda":
		return TargetCUDA, nil
	}
	//
	return TargetHost, fmt.Errorf("unknown target %q (expected host or cuda)", name)
}

// ModuleBytes serialises a module column-major, each element in its
// canonical big-endian form.  This is the exact image uploaded to the
// device, and its stability is part of the layout contract.
func ModuleBytes[F field.Element[F]](module trace.Module[F]) []byte {
	var (
		width = field.Zero[F]().ByteWidth()
		data  = make([]byte, 0, uint(len(module.Columns))*module.Height()*width)
	)
	//
	for _, column := range module.Columns {
		for _, element := range column.Data {
			data = append(data, element.Bytes()...)
		}
	}
	//
	return data
}
