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

	"github.com/consensys/go-euval/pkg/eu/validate"
	"github.com/consensys/go-euval/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [flags] program_file",
	Short: "Validate a program against the restrictions of its target platform.",
	Long: `Validate a program against the encoding and regioning restrictions
	of its target platform.  Programs are given as JSON program files.  Every
	violation found is reported; the exit code is non-zero unless all
	instructions are valid.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		program := readProgramFile(args[0])
		// Command-line platform wins over the one named in the file.
		if platform := GetUint(cmd, "platform"); platform != 0 {
			program.Platform = platform
		}

		if GetFlag(cmd, "lowp") {
			program.Lowp = true
		}

		cap := program.Capability()
		log.Debugf("validating %d instruction(s) against gfx%d",
			len(program.Instructions), cap.VerX10)
		//
		units, err := program.Units()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		result := validate.Sequence(cap, units, reportViolation)
		//
		if !result.AllValid {
			os.Exit(1)
		}
	},
}

// Report a single invalid instruction on standard output, colouring the
// location marker when attached to a terminal.
func reportViolation(offset int, size int, message string) {
	location := fmt.Sprintf("[%#x..%#x]", offset, offset+size)
	if termio.IsStdoutTerminal() {
		location = termio.Colour(location, termio.TERM_RED)
	}
	//
	fmt.Printf("%s %s\n", location, message)
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
