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

//go:build !cuda

package tracegen

import (
	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util/field"
)

// HasCUDA signals whether this binary was compiled with the cuda build tag.
const HasCUDA = false

// DeviceModule is a trace module resident in device memory.  Without the
// cuda build tag no device backend is linked in, so values of this type
// never exist at run time.
type DeviceModule struct {
	Name   string
	Height uint
}

// Upload copies a sealed module's column data to the device.
func Upload[F field.Element[F]](module trace.Module[F]) DeviceModule {
	panic("cuda target requested but program compiled without 'cuda' build tag")
}
