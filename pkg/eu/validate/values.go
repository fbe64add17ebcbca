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
package validate

import (
	"github.com/consensys/go-euval/pkg/eu"
)

// invalidValues checks that the foundational fields of the encoding carry
// legal values: execution size, channel offset, and the register type
// encodings of every operand.
func invalidValues(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	numSources := inst.NumSources()

	switch inst.ExecSize {
	case 1, 2, 4, 8, 16, 32:
	default:
		errs.Add("invalid execution size")
		return
	}

	if cap.RequiresChannelOffsetAlignment() {
		chanOff := inst.ChannelOffset()
		errs.AddIf(chanOff%inst.ExecSize != 0,
			"The execution size must be a factor of the chosen offset")
	}

	if inst.IsSend() {
		return
	}

	if !errs.IsEmpty() {
		return
	}

	if numSources == 3 {
		if inst.AccessMode == eu.Align1 {
			if cap.SupportsAlign1Ternary() {
				errs.AddIf(inst.Dst.Type == eu.TypeInvalid ||
					inst.Src[0].Type == eu.TypeInvalid ||
					inst.Src[1].Type == eu.TypeInvalid ||
					inst.Src[2].Type == eu.TypeInvalid,
					"invalid register type encoding")
			} else {
				errs.Add("Align1 mode not allowed on Gen < 10")
			}
		} else {
			errs.AddIf(inst.Dst.Type == eu.TypeInvalid ||
				inst.Src[0].Type == eu.TypeInvalid,
				"invalid register type encoding")
		}
	} else {
		errs.AddIf((inst.Opcode.HasDst() && inst.Dst.Type == eu.TypeInvalid) ||
			(numSources > 0 && inst.Src[0].Type == eu.TypeInvalid) ||
			(numSources > 1 && inst.Src[1].Type == eu.TypeInvalid),
			"invalid register type encoding")
	}
}

// sourcesNotNull checks that ALU-shaped instructions do not read the null
// register.  3-source instructions can only encode GRF sources, and split
// sends may legitimately carry null where a payload is absent, so neither
// shape has anything to check.
func sourcesNotNull(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	numSources := inst.NumSources()

	if numSources == 3 {
		return
	}

	if inst.IsSplitSend(cap) {
		return
	}

	if numSources >= 1 && inst.Opcode != eu.OpSync {
		errs.AddIf(inst.Src[0].AddrMode == eu.AddressDirect && inst.Src[0].IsNull(),
			"src0 is null")
	}

	if numSources == 2 {
		errs.AddIf(inst.Src[1].IsNull(), "src1 is null")
	}
}

// alignmentSupported rejects the Align16 access mode on generations that
// removed it.
func alignmentSupported(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	errs.AddIf(!cap.SupportsAlign16() && inst.AccessMode == eu.Align16,
		"Align16 not supported")
}
