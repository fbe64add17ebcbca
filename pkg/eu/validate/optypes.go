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

// generalRestrictionsBasedOnOperandTypes checks the restrictions the
// reference manuals list under "General Restrictions Based on Operand
// Types" in the register region section.
func generalRestrictionsBasedOnOperandTypes(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	numSources := inst.NumSources()
	execSize := inst.ExecSize

	if inst.IsSend() {
		return
	}

	if !cap.SupportsSrc1ByteRegioning() {
		// A register type of B or UB for DPAS actually means 4 bytes packed
		// into a D or UD, so it is allowed there.
		if numSources == 3 && inst.Opcode != eu.OpDpas {
			errs.AddIf(inst.Src[1].Type.SizeBytes() == 1 ||
				inst.Src[2].Type.SizeBytes() == 1,
				"Byte data type is not supported for src1/2 register regioning. This includes "+
					"byte broadcast as well.")
		}

		if numSources == 2 {
			errs.AddIf(inst.Src[1].Type.SizeBytes() == 1,
				"Byte data type is not supported for src1 register regioning. This includes "+
					"byte broadcast as well.")
		}
	}

	dstType := inst.Dst.Type
	if numSources != 3 {
		dstType = inst.DstType(cap)
	}

	errs.AddIf(dstType == eu.TypeDF && !cap.Has64BitFloat,
		"64-bit float destination, but platform does not support it")

	errs.AddIf((dstType == eu.TypeQ || dstType == eu.TypeUQ) && !cap.Has64BitInt,
		"64-bit int destination, but platform does not support it")

	for s := uint(0); s < numSources; s++ {
		srcType := inst.Src[s].Type

		errs.AddIf(srcType == eu.TypeDF && !cap.Has64BitFloat,
			"64-bit float source, but platform does not support it")

		errs.AddIf((srcType == eu.TypeQ || srcType == eu.TypeUQ) && !cap.Has64BitInt,
			"64-bit int source, but platform does not support it")

		// 64-bit elements cannot use the Align16 replicate control.
		if inst.AccessMode == eu.Align16 && numSources == 3 &&
			srcType.SizeBytes() > 4 {
			switch s {
			case 0:
				errs.AddIf(inst.Src[0].RepCtrl, "RepCtrl must be zero for 64-bit source 0")
			case 1:
				errs.AddIf(inst.Src[1].RepCtrl, "RepCtrl must be zero for 64-bit source 1")
			case 2:
				errs.AddIf(inst.Src[2].RepCtrl, "RepCtrl must be zero for 64-bit source 2")
			}
		}
	}

	if numSources == 3 {
		return
	}

	if execSize == 1 {
		return
	}

	if !inst.Opcode.HasDst() || numSources == 0 {
		return
	}

	dstStride := inst.Dst.HStride
	dstTypeIsByte := inst.DstType(cap) == eu.TypeB || inst.DstType(cap) == eu.TypeUB

	if dstTypeIsByte {
		if eu.IsPacked(execSize*dstStride, execSize, dstStride) {
			if !inst.IsRawMove(cap) {
				errs.Add("Only raw MOV supports a packed-byte destination")
			}

			return
		}
	}

	execTypeSize := inst.ExecutionType(cap).SizeBytes()
	dstTypeSize := dstType.SizeBytes()

	if inst.IsByteConversion() {
		// There is no direct conversion between B/UB and any 64-bit type,
		// in either direction.  Listed for MOV in the manuals, but implicit
		// conversions from other instructions hit the same hardware paths.
		src0Type := inst.Src[0].Type
		src1Type := eu.TypeInvalid
		//
		if numSources > 1 {
			src1Type = inst.Src[1].Type
		}

		errs.AddIf(dstTypeSize == 1 &&
			(src0Type.SizeBytes() == 8 ||
				(numSources > 1 && src1Type.SizeBytes() == 8)),
			"There are no direct conversions between 64-bit types and B/UB")

		errs.AddIf(dstTypeSize == 8 &&
			(src0Type.SizeBytes() == 1 ||
				(numSources > 1 && src1Type.SizeBytes() == 1)),
			"There are no direct conversions between 64-bit types and B/UB")
	}

	if inst.IsHalfFloatConversion() {
		src0Type := inst.Src[0].Type
		src1Type := eu.TypeInvalid
		//
		if numSources > 1 {
			src1Type = inst.Src[1].Type
		}

		errs.AddIf(dstType == eu.TypeHF &&
			(src0Type.SizeBytes() == 8 ||
				(numSources > 1 && src1Type.SizeBytes() == 8)),
			"There are no direct conversions between 64-bit types and HF")

		errs.AddIf(dstTypeSize == 8 &&
			(src0Type == eu.TypeHF ||
				(numSources > 1 && src1Type == eu.TypeHF)),
			"There are no direct conversions between 64-bit types and HF")

		// Only checked for Align1: Align16 always requires packed
		// destinations, so the dword-stride rule cannot apply there.
		if inst.AccessMode == eu.Align1 {
			if (dstType == eu.TypeHF &&
				(src0Type.IsInt() ||
					(numSources > 1 && src1Type.IsInt()))) ||
				(dstType.IsInt() &&
					(src0Type == eu.TypeHF ||
						(numSources > 1 && src1Type == eu.TypeHF))) {
				errs.AddIf(dstStride*dstTypeSize != 4,
					"Conversions between integer and half-float must be "+
						"strided by a DWord on the destination")

				errs.AddIf(inst.Dst.SubReg%4 != 0,
					"Conversions between integer and half-float must be "+
						"aligned to a DWord on the destination")
			} else if dstType == eu.TypeHF {
				errs.AddIf(dstStride != 2 &&
					!(inst.IsMixedFloat(cap) &&
						dstStride == 1 && inst.Dst.SubReg%16 == 0),
					"Conversions to HF must have either all words in even "+
						"word locations or all words in odd word locations or "+
						"be mixed-float with Oword-aligned packed destination")
			}
		}
	}

	// Mixed float mode carries its own destination stride rules which
	// override the general ratio rule below.
	if inst.IsMixedFloat(cap) {
		return
	}

	if execTypeSize > dstTypeSize {
		if !(dstTypeIsByte && inst.IsRawMove(cap)) {
			errs.AddIf(dstStride*dstTypeSize != execTypeSize,
				"Destination stride must be equal to the ratio of the sizes "+
					"of the execution data type to the destination type")
		}

		if inst.AccessMode == eu.Align1 && inst.Dst.AddrMode == eu.AddressDirect {
			// The relaxed alignment rule for byte destinations still allows
			// the next lowest byte.
			if dstTypeIsByte {
				errs.AddIf(inst.Dst.SubReg%execTypeSize != 0 &&
					inst.Dst.SubReg%execTypeSize != 1,
					"Destination subreg must be aligned to the size of the "+
						"execution data type (or to the next lowest byte for byte "+
						"destinations)")
			} else {
				errs.AddIf(inst.Dst.SubReg%execTypeSize != 0,
					"Destination subreg must be aligned to the size of the "+
						"execution data type")
			}
		}
	}
}
