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

// Package binfile reads pre-decoded instruction programs from their JSON
// encoding.  The format pairs a target platform with a list of decoded
// instructions, so that streams can be validated without access to the
// bit-level instruction decoder.
package binfile

import (
	"fmt"

	"github.com/consensys/go-euval/pkg/eu"
	"github.com/consensys/go-euval/pkg/eu/validate"
	"github.com/segmentio/encoding/json"
)

// Program is a programmatic representation of an underlying program file: a
// target platform plus the decoded instructions of one instruction stream.
type Program struct {
	// Platform gives the target generation scaled by ten (90, 110, 125, ...).
	Platform uint `json:"platform"`
	// Lowp marks the low-power variant of the platform, which carries extra
	// restrictions.
	Lowp bool `json:"lowp"`
	// Instructions of the stream, in offset order.
	Instructions []jsonInstruction `json:"instructions"`
}

// ProgramFromJson reads a program from a set of bytes representing its JSON
// encoding.
func ProgramFromJson(data []byte) (*Program, error) {
	var p Program
	//
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	//
	if p.Platform == 0 {
		return nil, fmt.Errorf("program file does not name a platform")
	}
	//
	return &p, nil
}

// Capability constructs the capability descriptor for the program's target
// platform.
func (p *Program) Capability() *eu.Capability {
	cap := eu.NewCapability(p.Platform / 10)
	cap.VerX10 = p.Platform
	cap.Is9LP = p.Lowp && cap.Ver == 9
	//
	return cap
}

// Units translates the program's instructions into validation units,
// assigning each its byte offset within the stream.
func (p *Program) Units() ([]validate.Unit, error) {
	var (
		units  []validate.Unit
		offset int
	)
	//
	for i, jinst := range p.Instructions {
		inst, size, err := jinst.translate()
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		//
		units = append(units, validate.Unit{Inst: inst, Offset: offset, Size: size})
		offset += size
	}
	//
	return units, nil
}
