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
package cmd

import (
	"fmt"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/merl990827/monachan/pkg/program"
	"github.com/merl990827/monachan/pkg/trace/lt"
	"github.com/merl990827/monachan/pkg/tracegen"
	"github.com/merl990827/monachan/pkg/util"
	"github.com/merl990827/monachan/pkg/util/field"
	"github.com/merl990827/monachan/pkg/util/field/babybear"
	"github.com/merl990827/monachan/pkg/util/field/bls12_377"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] program_file record_file",
	Short: "generate trace tables from a program / record pair.",
	Long: `Generate the full set of trace tables for a given program and the event record
	 of one of its executions, padding every table to a power-of-two height.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		var (
			output    = GetString(cmd, "output")
			fieldName = GetString(cmd, "field")
			workers   = GetUint(cmd, "workers")
		)
		//
		target, err := tracegen.ParseTarget(GetString(cmd, "target"))
		checkError(err)
		// Reject the device target early when its backend was never built in.
		if target == tracegen.TargetCUDA && !tracegen.HasCUDA {
			fmt.Println("cuda target requested but this binary was compiled without the 'cuda' build tag")
			os.Exit(2)
		}
		//
		switch fieldName {
		case babybear.Name:
			runGenerate[babybear.Element](args[0], args[1], fieldName, output, workers, target)
		case bls12_377.Name:
			runGenerate[bls12_377.Element](args[0], args[1], fieldName, output, workers, target)
		default:
			fmt.Printf("unknown field %q (expected %s or %s)\n", fieldName, babybear.Name, bls12_377.Name)
			os.Exit(2)
		}
	},
}

// runGenerate drives the full pipeline over a concrete field: load the
// program and record, generate all trace tables, then ship the result to the
// requested target and/or trace file.
func runGenerate[F field.Element[F]](programFile string, recordFile string, fieldName string,
	output string, workers uint, target tracegen.Target) {
	stats := util.NewPerfStats()
	// Read program
	p, err := program.ReadProgramFile[F](programFile, fieldName)
	checkError(err)
	// Read record
	r, err := program.ReadRecordFile[F](recordFile, fieldName)
	checkError(err)
	//
	stats.Log("Reading artifacts")
	//
	digest, err := p.Digest()
	checkError(err)
	//
	log.Debugf("generating %d tables for %d instructions / %d events",
		8, p.Instructions(), r.Events())
	//
	stats = util.NewPerfStats()
	// Generate all tables
	traces, err := tracegen.Generate(p, r, tracegen.Options{Workers: workers})
	checkError(err)
	// Flatten into columnar modules
	modules, err := traces.Modules()
	checkError(err)
	//
	stats.Log("Generating trace")
	// Upload to the device (if requested)
	if target == tracegen.TargetCUDA {
		stats = util.NewPerfStats()
		//
		for i := range modules {
			device := tracegen.Upload(modules[i])
			log.Debugf("uploaded module %s (%d rows)", device.Name, device.Height)
		}
		//
		stats.Log("Uploading trace")
	}
	// Write trace file (if requested)
	if output != "" {
		stats = util.NewPerfStats()
		//
		tf, err := lt.NewTraceFile(lt.Metadata{Field: fieldName, ProgramDigest: digest[:]}, modules)
		checkError(err)
		checkError(tf.WriteTraceFile(output))
		//
		stats.Log("Writing trace file")
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "write the generated trace to this file.")
	generateCmd.Flags().String("field", babybear.Name, "field to generate the trace over.")
	generateCmd.Flags().Uint("workers", uint(runtime.NumCPU()), "number of workers filling each table.")
	generateCmd.Flags().String("target", "host", "where generated tables end up (host or cuda).")
}
