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

// specialRestrictionsForMixedFloatMode checks the restrictions the manuals
// list under "Special Restrictions for Handling Mixed Mode Float
// Operations", which apply when F and HF are mixed between operands.
func specialRestrictionsForMixedFloatMode(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	numSources := inst.NumSources()
	if numSources >= 3 {
		return
	}

	if !inst.IsMixedFloat(cap) {
		return
	}

	execSize := inst.ExecSize
	isAlign16 := inst.AccessMode == eu.Align16

	src0Type := inst.Src[0].Type
	src1Type := eu.TypeInvalid
	//
	if numSources > 1 {
		src1Type = inst.Src[1].Type
	}

	dstType := inst.Dst.Type
	dstStride := inst.Dst.HStride
	dstIsPacked := eu.IsPacked(execSize*dstStride, execSize, dstStride)

	errs.AddIf(inst.Src[0].AddrMode != eu.AddressDirect ||
		(numSources > 1 && inst.Src[1].AddrMode != eu.AddressDirect),
		"Indirect addressing on source is not supported when source and "+
			"destination data types are mixed float")

	errs.AddIf(execSize > 8 && cap.RestrictsMixedFloatFullWidth() &&
		dstType == eu.TypeF && inst.Opcode != eu.OpMov,
		"Mixed float mode with 32-bit float destination is limited "+
			"to SIMD8")

	if isAlign16 {
		// Align16 has no horizontal stride or width, so the packed-data
		// assumption forces the vertical stride to 4: 0 and 2 would
		// replicate, anything else is already illegal in Align16.
		errs.AddIf(inst.Src[0].File != eu.FileImmediate && inst.Src[0].VStride != 4,
			"Align16 mixed float mode assumes packed data (vstride must be 4")

		errs.AddIf(numSources >= 2 &&
			inst.Src[1].File != eu.FileImmediate && inst.Src[1].VStride != 4,
			"Align16 mixed float mode assumes packed data (vstride must be 4")

		errs.AddIf(execSize > 8, "Align16 mixed float mode is limited to SIMD8")

		errs.AddIf(inst.UsesAccSource(),
			"No accumulator read access for Align16 mixed float")

		return
	}

	errs.AddIf(execSize > 8 && dstIsPacked &&
		dstType == eu.TypeHF && inst.Opcode != eu.OpMov,
		"Align1 mixed float mode is limited to SIMD8 when destination "+
			"is packed half-float")

	// Half-float math inputs must be strided, not scalar broadcast.
	if inst.Opcode == eu.OpMath {
		if src0Type == eu.TypeHF {
			errs.AddIf(inst.Src[0].HStride <= 1,
				"Align1 mixed mode math needs strided half-float inputs")
		}

		if numSources >= 2 && src1Type == eu.TypeHF {
			errs.AddIf(inst.Src[1].HStride <= 1,
				"Align1 mixed mode math needs strided half-float inputs")
		}
	}

	if dstType == eu.TypeHF && dstStride == 1 {
		// Packed half-float output must be oword aligned and must not
		// cross an oword boundary, so the execution size tops out at 8.
		errs.AddIf(inst.Dst.SubReg%16 != 0,
			"Align1 mixed mode packed half-float output must be "+
				"oword aligned")
		errs.AddIf(execSize > 8,
			"Align1 mixed mode packed half-float output must not "+
				"cross oword boundaries (max exec size is 8)")

		if inst.Src[0].IsAcc() &&
			(src0Type == eu.TypeF || src0Type == eu.TypeHF) {
			errs.AddIf(inst.Src[0].SubReg != 0,
				"Mixed float mode requires register-aligned accumulator "+
					"source reads when destination is packed half-float")
		}

		if numSources > 1 && inst.Src[1].IsAcc() &&
			(src1Type == eu.TypeF || src1Type == eu.TypeHF) {
			errs.AddIf(inst.Src[1].SubReg != 0,
				"Mixed float mode requires register-aligned accumulator "+
					"source reads when destination is packed half-float")
		}
	}

	if dstType == eu.TypeHF && inst.UsesAccSource() {
		errs.AddIf(dstStride != 2,
			"Mixed float mode with implicit/explicit accumulator "+
				"source and half-float destination requires a stride "+
				"of 2 on the destination")
	}
}
