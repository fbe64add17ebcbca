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

// specialRequirementsForHandlingDoublePrecisionDataTypes checks the
// regioning and co-issue restrictions that apply when an instruction is
// "double precision": an 8-byte destination or execution type, or an
// integer dword multiply.
func specialRequirementsForHandlingDoublePrecisionDataTypes(cap *eu.Capability,
	inst *eu.Instruction, errs *Diagnostics) {
	numSources := inst.NumSources()

	if numSources == 3 || numSources == 0 || !inst.Opcode.HasDst() {
		return
	}

	// Split sends carry no types, so there are no doubles there.
	if inst.IsSplitSend(cap) {
		return
	}

	execTypeSize := inst.ExecutionType(cap).SizeBytes()

	dstFile := inst.Dst.File
	dstType := inst.DstType(cap)
	dstTypeSize := dstType.SizeBytes()
	dstHStride := inst.Dst.HStride
	dstReg := inst.Dst.Reg
	dstSubReg := inst.Dst.SubReg
	dstAddrMode := inst.Dst.AddrMode

	isIntegerDwordMultiply := inst.Opcode == eu.OpMul &&
		(inst.Src[0].Type == eu.TypeD || inst.Src[0].Type == eu.TypeUD) &&
		(inst.Src[1].Type == eu.TypeD || inst.Src[1].Type == eu.TypeUD)

	isDoublePrecision := dstTypeSize == 8 || execTypeSize == 8 ||
		isIntegerDwordMultiply

	for i := uint(0); i < numSources; i++ {
		src := &inst.Src[i]
		if src.File == eu.FileImmediate {
			continue
		}

		isScalarRegion := src.HasScalarRegion()
		vstride, width, hstride := src.VStride, src.Width, src.HStride
		typeSize := src.Type.SizeBytes()

		hOrV := hstride
		if hOrV == 0 {
			hOrV = vstride
		}

		srcStride := hOrV * typeSize
		dstStride := dstHStride * dstTypeSize

		// The low-power gen9 parts require 64-bit regioning to keep source
		// and destination channels qword aligned and co-located.
		if isDoublePrecision && inst.AccessMode == eu.Align1 && cap.Is9LP {
			errs.AddIf(!isScalarRegion &&
				(srcStride%8 != 0 || dstStride%8 != 0 || srcStride != dstStride),
				"Source and destination horizontal stride must equal and a "+
					"multiple of a qword when the execution type is 64-bit")

			errs.AddIf(vstride != width*hstride,
				"Vstride must be Width * Hstride when the execution type is "+
					"64-bit")

			errs.AddIf(!isScalarRegion && dstSubReg != src.SubReg,
				"Source and destination offset must be the same when the "+
					"execution type is 64-bit")
		}

		if isDoublePrecision && cap.Is9LP {
			errs.AddIf(src.AddrMode == eu.AddressIndirect ||
				dstAddrMode == eu.AddressIndirect,
				"Indirect addressing is not allowed when the execution type "+
					"is 64-bit")
		}

		// The restriction is assumed not to apply to the null register.
		if isDoublePrecision && cap.Is9LP {
			errs.AddIf(inst.Opcode == eu.OpMac ||
				inst.AccWrControl ||
				(src.File == eu.FileArch && src.Reg != eu.ArfNull) ||
				(dstFile == eu.FileArch && dstReg != eu.ArfNull),
				"Architecture registers cannot be used when the execution "+
					"type is 64-bit")
		}

		// On gen12.5+ the same regioning restrictions apply both to
		// all-float destinations and to 64-bit operations: the bit position
		// of a channel's LSB may not move between source and destination.
		if cap.EnforcesRegioningLsbStability() &&
			(dstType.IsFloat() || isDoublePrecision) {
			errs.AddIf(!isScalarRegion &&
				src.AddrMode != eu.AddressIndirect &&
				(!eu.IsLinear(vstride, width, hstride) ||
					srcStride != dstStride ||
					src.SubReg != dstSubReg),
				"Register Regioning patterns where register data bit "+
					"location of the LSB of the channels are changed between "+
					"source and destination are not supported except for "+
					"broadcast of a scalar.")

			errs.AddIf((src.AddrMode == eu.AddressDirect && src.File == eu.FileArch &&
				src.Reg != eu.ArfNull &&
				!(src.Reg >= eu.ArfAccumulator && src.Reg < eu.ArfFlag)) ||
				(dstFile == eu.FileArch && dstReg != eu.ArfNull &&
					(dstReg&0xF0) != eu.ArfAccumulator),
				"Explicit ARF registers except null and accumulator must not "+
					"be used.")
		}

		if cap.EnforcesRegioningLsbStability() &&
			(src.Type.IsFloat() || typeSize == 8) {
			errs.AddIf(src.AddrMode == eu.AddressIndirect && src.VxH,
				"Vx1 and VxH indirect addressing for Float, Half-Float, "+
					"Double-Float and Quad-Word data must not be used")
		}
	}

	if isDoublePrecision {
		src0TypeSize := inst.Src[0].Type.SizeBytes()
		src1TypeSize := src0TypeSize
		//
		if numSources > 1 {
			src1TypeSize = inst.Src[1].Type.SizeBytes()
		}

		errs.AddIf(inst.AccessMode == eu.Align16 &&
			dstTypeSize == 8 &&
			(src0TypeSize != 8 || src1TypeSize != 8) &&
			inst.ExecSize > 2,
			"In Align16 exec size cannot exceed 2 with a QWord destination "+
				"and a non-QWord source")
	}

	if isDoublePrecision && cap.Is9LP {
		errs.AddIf(inst.NoDDCheck || inst.NoDDClear,
			"DepCtrl is not allowed when the execution type is 64-bit")
	}
}
