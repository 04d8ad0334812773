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

//go:build cuda

package tracegen

import (
	"fmt"
	"sync"

	icicle_core "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/core"
	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"
	log "github.com/sirupsen/logrus"

	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util/field"
)

// HasCUDA signals whether this binary was compiled with the cuda build tag.
const HasCUDA = true

var onceWarmUpDevice sync.Once

// warmUpDevice performs one-time initialisation of the ICICLE backend and
// warms up all available CUDA devices.  Safe to call any number of times;
// initialisation happens once.
func warmUpDevice() {
	onceWarmUpDevice.Do(func() {
		if err := icicle_runtime.LoadBackendFromEnvOrDefault(); err != icicle_runtime.Success {
			panic(fmt.Sprintf("CUDA backend loading error: %s", err.AsString()))
		}
		//
		nbDev, err := icicle_runtime.GetDeviceCount()
		if err != icicle_runtime.Success {
			panic(fmt.Sprintf("CUDA device count error: %s", err.AsString()))
		}
		//
		log.Debugf("detected %d CUDA device(s)", nbDev)
		//
		for id := 0; id < nbDev; id++ {
			device := icicle_runtime.CreateDevice("CUDA", id)
			//
			icicle_runtime.RunOnDevice(&device, func(args ...any) {
				stream, err := icicle_runtime.CreateStream()
				if err != icicle_runtime.Success {
					panic(fmt.Sprintf("CUDA create stream error: %s", err.AsString()))
				}
				//
				if err := icicle_runtime.WarmUpDevice(stream); err != icicle_runtime.Success {
					panic(fmt.Sprintf("CUDA device warmup error: %s", err.AsString()))
				}
			})
		}
	})
}

// DeviceModule is a trace module resident in device memory: the column-major
// big-endian image of a sealed module, as produced by ModuleBytes.
type DeviceModule struct {
	Name   string
	Height uint
	Data   icicle_core.DeviceSlice
}

// Upload copies a sealed module's column data to the device, returning a
// handle for downstream device-side commitment work.
func Upload[F field.Element[F]](module trace.Module[F]) DeviceModule {
	warmUpDevice()
	//
	var (
		data   = ModuleBytes(module)
		result = DeviceModule{Name: module.Name, Height: module.Height()}
	)
	//
	if len(data) == 0 {
		return result
	}
	//
	host := icicle_core.HostSliceFromElements(data)
	host.CopyToDevice(&result.Data, true)
	//
	return result
}
