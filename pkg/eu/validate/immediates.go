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

// vectorImmediateRestrictions checks the destination alignment and stride
// rules that apply when a source is one of the packed-vector immediate
// types (V, UV, VF).
func vectorImmediateRestrictions(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	numSources := inst.NumSources()

	if numSources == 3 || numSources == 0 || !inst.Opcode.HasDst() ||
		(cap.SkipsVectorImmediateSendChecks() && inst.IsSend()) {
		return
	}

	// Only the last source may be an immediate.
	src := &inst.Src[0]
	if numSources == 2 {
		src = &inst.Src[1]
	}

	if src.File != eu.FileImmediate {
		return
	}

	dstTypeSize := inst.DstType(cap).SizeBytes()
	dstStride := inst.Dst.HStride

	dstSubReg := uint(0)
	if inst.AccessMode == eu.Align1 {
		dstSubReg = inst.Dst.SubReg
	}

	switch src.Type {
	case eu.TypeV, eu.TypeUV, eu.TypeVF:
		errs.AddIf(dstSubReg%16 != 0,
			"Destination must be 128-bit aligned in order to use immediate "+
				"vector types")

		if src.Type == eu.TypeVF {
			errs.AddIf(dstTypeSize*dstStride != 4,
				"Destination must have stride equivalent to dword in order "+
					"to use the VF type")
		} else {
			errs.AddIf(dstTypeSize*dstStride != 2,
				"Destination must have stride equivalent to word in order "+
					"to use the V or UV type")
		}
	default:
	}
}
