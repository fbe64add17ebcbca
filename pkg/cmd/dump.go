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

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump [flags] program_file",
	Short: "Print the decoded view of every instruction in a program.",
	Long: `Print the decoded view of every instruction in a program, exactly
	as the validator would see it.  Useful for diagnosing unexpected
	validation results.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		program := readProgramFile(args[0])
		//
		units, err := program.Units()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		for _, unit := range units {
			fmt.Printf("%#x: %s\n", unit.Offset, unit.Inst.Opcode)
			spew.Dump(unit.Inst)
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
