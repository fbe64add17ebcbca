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

// generalRestrictionsOnRegionParameters checks the restrictions the manuals
// list under "General Restrictions on Regioning Parameters".
func generalRestrictionsOnRegionParameters(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	numSources := inst.NumSources()
	execSize := inst.ExecSize

	if numSources == 3 {
		return
	}

	// Split sends have no region bits to check.
	if inst.IsSplitSend(cap) {
		return
	}

	if inst.AccessMode == eu.Align16 {
		if inst.Opcode.HasDst() && !inst.Dst.IsNull() {
			errs.AddIf(inst.Dst.HStride != 1,
				"Destination Horizontal Stride must be 1")
		}

		if numSources >= 1 {
			errs.AddIf(inst.Src[0].File != eu.FileImmediate &&
				inst.Src[0].VStride != 0 &&
				inst.Src[0].VStride != 2 &&
				inst.Src[0].VStride != 4,
				"In Align16 mode, only VertStride of 0, 2, or 4 is allowed")
		}

		if numSources == 2 {
			errs.AddIf(inst.Src[1].File != eu.FileImmediate &&
				inst.Src[1].VStride != 0 &&
				inst.Src[1].VStride != 2 &&
				inst.Src[1].VStride != 4,
				"In Align16 mode, only VertStride of 0, 2, or 4 is allowed")
		}

		return
	}

	for i := uint(0); i < numSources; i++ {
		src := &inst.Src[i]
		if src.File == eu.FileImmediate {
			continue
		}

		vstride, width, hstride := src.VStride, src.Width, src.HStride
		elementSize := src.Type.SizeBytes()
		subreg := src.SubReg

		errs.AddIf(execSize < width, "ExecSize must be greater than or equal "+
			"to Width")

		if execSize == width && hstride != 0 {
			errs.AddIf(vstride != width*hstride,
				"If ExecSize = Width and HorzStride ≠ 0, "+
					"VertStride must be set to Width * HorzStride")
		}

		if width == 1 {
			errs.AddIf(hstride != 0,
				"If Width = 1, HorzStride must be 0 regardless "+
					"of the values of ExecSize and VertStride")
		}

		if execSize == 1 && width == 1 {
			errs.AddIf(vstride != 0 || hstride != 0,
				"If ExecSize = Width = 1, both VertStride "+
					"and HorzStride must be 0")
		}

		if vstride == 0 && hstride == 0 {
			errs.AddIf(width != 1,
				"If VertStride = HorzStride = 0, Width must be "+
					"1 regardless of the value of ExecSize")
		}

		// Only the vertical stride may cross register boundaries, which
		// implies that the elements within one Width group cannot.
		if width != 0 && execSize >= width {
			window := 2 * cap.RegSizeBytes()
			rowbase := subreg

			for y := uint(0); y < execSize/width; y++ {
				lower, upper := false, false
				offset := rowbase

				for x := uint(0); x < width; x++ {
					for b := uint(0); b < elementSize; b++ {
						if (offset+b)%window < cap.RegSizeBytes() {
							lower = true
						} else {
							upper = true
						}
					}

					offset += hstride * elementSize
				}

				rowbase += vstride * elementSize

				if lower && upper {
					errs.Add("VertStride must be used to cross GRF register boundaries")
					break
				}
			}
		}
	}

	// Dst.HorzStride must not be 0.
	if inst.Opcode.HasDst() && !inst.Dst.IsNull() {
		errs.AddIf(inst.Dst.HStride == 0,
			"Destination Horizontal Stride must not be 0")
	}
}

// regionAlignmentRules checks the restrictions the manuals list under
// "Region Alignment Rules": no direct-addressed operand may span more than
// two adjacent registers, and a MATH destination spanning two registers
// must split its writes evenly between them.
func regionAlignmentRules(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	numSources := inst.NumSources()
	execSize := inst.ExecSize

	if numSources == 3 {
		return
	}

	if inst.AccessMode == eu.Align16 {
		return
	}

	if inst.IsSend() {
		return
	}

	for i := uint(0); i < numSources; i++ {
		src := &inst.Src[i]
		if src.AddrMode != eu.AddressDirect {
			continue
		}

		if src.File == eu.FileImmediate {
			continue
		}

		// Degenerate widths are the business of the region parameter rules.
		if src.Width == 0 || execSize < src.Width {
			continue
		}

		elementSize := src.Type.SizeBytes()
		vstrideElements := (execSize/src.Width - 1) * src.VStride
		hstrideElements := (src.Width - 1) * src.HStride
		offset := (vstrideElements+hstrideElements)*elementSize + src.SubReg

		errs.AddIf(offset >= 2*cap.RegSizeBytes(),
			"A source cannot span more than 2 adjacent GRF registers")
	}

	if !inst.Opcode.HasDst() || inst.Dst.IsNull() {
		return
	}

	stride := inst.Dst.HStride
	elementSize := inst.DstType(cap).SizeBytes()
	subreg := inst.Dst.SubReg
	offset := (execSize-1)*stride*elementSize + subreg

	errs.AddIf(offset >= 2*cap.RegSizeBytes(),
		"A destination cannot span more than 2 adjacent GRF registers")

	if !errs.IsEmpty() {
		return
	}

	var mask eu.AccessMask
	//
	if execSize == 1 {
		mask = eu.BuildAccessMask(execSize, elementSize, subreg,
			0, 1, 0, cap.RegSizeBytes())
	} else {
		mask = eu.BuildAccessMask(execSize, elementSize, subreg,
			execSize*stride, execSize, stride, cap.RegSizeBytes())
	}

	// When a MATH destination spans two registers, the destination elements
	// must be evenly split between them.
	if inst.Opcode == eu.OpMath && mask.RegistersSpanned() == 2 {
		upperWrites, lowerWrites := uint(0), uint(0)

		for i := uint(0); i < execSize; i++ {
			if mask.ChannelInUpperRegister(i) {
				upperWrites++
			} else {
				lowerWrites++
			}
		}

		errs.AddIf(upperWrites != lowerWrites,
			"Writes must be evenly split between the two "+
				"destination registers")
	}
}
