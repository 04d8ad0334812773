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
	"encoding/hex"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/merl990827/monachan/pkg/trace/lt"
	"github.com/merl990827/monachan/pkg/util/mmap"
	"github.com/merl990827/monachan/pkg/util/termio"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] trace_file",
	Short: "inspect the shape of a trace file.",
	Long: `Inspect a trace file, reporting its version, provenance and the shape of every
	 module within it, without decoding any column data.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// Memory map the trace file
		f, err := mmap.Open(args[0])
		checkError(err)
		//
		defer f.Close()
		//
		if !lt.IsTraceFile(f.Bytes()) {
			fmt.Printf("%s is not a trace file\n", args[0])
			os.Exit(2)
		}
		//
		summary, err := lt.Summarize(f.Bytes())
		checkError(err)
		//
		printSummary(summary)
	},
}

// printSummary renders a trace file summary as a table on the terminal.
func printSummary(summary lt.Summary) {
	fmt.Printf("format: v%d.%d\n", summary.MajorVersion, summary.MinorVersion)
	fmt.Printf("field: %s\n", summary.Metadata.Field)
	fmt.Printf("program: %s\n", hex.EncodeToString(summary.Metadata.ProgramDigest))
	//
	table := termio.NewTablePrinter(5, uint(len(summary.Modules))+1)
	table.SetRow(0, "module", "height", "rows", "columns", "bytes")
	//
	for i, module := range summary.Modules {
		table.SetRow(uint(i)+1,
			module.Name,
			fmt.Sprintf("%d", module.Height),
			fmt.Sprintf("%d", module.RealRows),
			fmt.Sprintf("%d", module.Width),
			fmt.Sprintf("%d", module.Bytes))
	}
	// Bound column widths by the available terminal
	table.SetMaxWidths(termio.TerminalWidth() / 5)
	table.Print()
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(inspectCmd)
}
