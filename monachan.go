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

// Package monachan turns the execution artifacts of a STARK virtual machine
// (a static program, and the event record of one run) into the padded,
// column-ordered trace matrices consumed by a prover.  Trace generation is
// deterministic and embarrassingly parallel: every row is a pure function of
// one instruction or one event, so tables can be filled in any order, across
// any number of workers, and land bit-identical.
package monachan

import "github.com/blang/semver/v4"

// Version of this library, embedded in every serialised artifact.
var Version = semver.MustParse("0.1.0")
