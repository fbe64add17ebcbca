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

// instructionRestrictions dispatches the miscellaneous opcode-specific
// rules that fit no other rule group.
func instructionRestrictions(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	switch inst.Opcode {
	case eu.OpMul:
		checkMul(cap, inst, errs)
	case eu.OpCmp, eu.OpCmpn:
		errs.AddIf(inst.CondModifier == eu.CondNone,
			"CMP (or CMPN) must have a condition.")
	case eu.OpSel:
		errs.AddIf((inst.CondModifier != eu.CondNone) ==
			(inst.PredCtrl != eu.PredNone),
			"SEL must either be predicated or have a condition modifiers")
	case eu.OpMath:
		checkMath(inst, errs)
	case eu.OpDp4a:
		errs.AddIf(inst.Src[0].IsAcc() && inst.Src[1].IsAcc(),
			"Only one of src0 or src1 operand may be an accumulator "+
				"register (acc#).")
	case eu.OpAdd3:
		checkAdd3(cap, inst, errs)
	case eu.OpOr, eu.OpAnd, eu.OpXor, eu.OpNot:
		checkLogic(inst, errs)
	case eu.OpBfi2:
		checkBfi2(inst, errs)
	case eu.OpCsel:
		checkCsel(cap, inst, errs)
	case eu.OpDpas:
		checkDpas(cap, inst, errs)
	default:
	}
}

func checkMul(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	src0Type := inst.Src[0].Type
	src1Type := inst.Src[1].Type
	dstType := inst.DstType(cap)

	// When multiplying a DW and any lower precision integer, source
	// modifiers are not supported on the newer generations.
	if cap.RestrictsIntMulSourceModifiers() {
		execType := inst.ExecutionType(cap)
		src0Valid := src0Type.SizeBytes() == 4 ||
			inst.Src[0].File == eu.FileImmediate ||
			!(inst.Src[0].Negate || inst.Src[0].Abs)
		src1Valid := src1Type.SizeBytes() == 4 ||
			inst.Src[1].File == eu.FileImmediate ||
			!(inst.Src[1].Negate || inst.Src[1].Abs)

		errs.AddIf(!execType.IsFloat() && execType.SizeBytes() == 4 &&
			!(src0Valid && src1Valid),
			"When multiplying a DW and any lower precision integer, source "+
				"modifier is not supported.")
	}

	// When multiplying a DW and any lower precision integer, the DW operand
	// must be on src0.
	errs.AddIf(src1Type.IsInt() &&
		src0Type.SizeBytes() < 4 && src1Type.SizeBytes() == 4,
		"When multiplying a DW and any lower precision integer, the "+
			"DW operand must be src0.")

	errs.AddIf((inst.Src[0].IsAcc() && src0Type.IsInt()) ||
		(inst.Src[1].IsAcc() && src1Type.IsInt()),
		"Integer source operands cannot be accumulators.")

	// A DW integer multiply stores its full-precision result in the
	// accumulator; a W or DW destination keeps only the low bits, leaving
	// the overflow and sign flags undefined.
	errs.AddIf((src0Type == eu.TypeUD || src0Type == eu.TypeD ||
		src1Type == eu.TypeUD || src1Type == eu.TypeD) &&
		(dstType == eu.TypeUD || dstType == eu.TypeD ||
			dstType == eu.TypeUW || dstType == eu.TypeW) &&
		(inst.Saturate || inst.CondModifier != eu.CondNone),
		"Neither Saturate nor conditional modifier allowed with DW "+
			"integer multiply.")
}

func checkMath(inst *eu.Instruction, errs *Diagnostics) {
	if !inst.Math.IsIntDiv() {
		return
	}

	src0Valid := !inst.Src[0].Negate && !inst.Src[0].Abs
	src1Valid := !inst.Src[1].Negate && !inst.Src[1].Abs
	errs.AddIf(!src0Valid || !src1Valid,
		"INT DIV function does not support source modifiers.")
}

func checkAdd3(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	dstType := inst.DstType(cap)

	errs.AddIf(dstType != eu.TypeD && dstType != eu.TypeUD &&
		dstType != eu.TypeW && dstType != eu.TypeUW,
		"Destination must be integer D, UD, W, or UW type.")

	for i := uint(0); i < 3; i++ {
		srcType := inst.Src[i].Type

		errs.AddIf(srcType != eu.TypeD && srcType != eu.TypeUD &&
			srcType != eu.TypeW && srcType != eu.TypeUW,
			"Source must be integer D, UD, W, or UW type.")

		// Only src0 and src2 can encode immediates, and those are limited
		// to word types.
		if (i == 0 || i == 2) && inst.Src[i].File == eu.FileImmediate {
			errs.AddIf(srcType != eu.TypeW && srcType != eu.TypeUW,
				"Immediate source must be integer W or UW type.")
		}
	}
}

func checkLogic(inst *eu.Instruction, errs *Diagnostics) {
	// The negate modifier acts as logical-not on these, but the behaviour
	// of abs is undefined.
	errs.AddIf(inst.Src[0].Abs,
		"Behavior of abs source modifier in logic ops is undefined.")
	errs.AddIf(inst.Opcode != eu.OpNot &&
		inst.Src[1].File != eu.FileImmediate && inst.Src[1].Abs,
		"Behavior of abs source modifier in logic ops is undefined.")

	errs.AddIf((inst.Src[0].Abs || inst.Src[0].Negate) && inst.Src[0].IsAcc(),
		"Source modifier is not allowed if source is an accumulator.")
	errs.AddIf(inst.NumSources() > 1 &&
		(inst.Src[1].Abs || inst.Src[1].Negate) && inst.Src[1].IsAcc(),
		"Source modifier is not allowed if source is an accumulator.")

	// These operations produce no sign or overflow conditions.  The
	// documented restriction is stricter than hardware has been observed to
	// be, but is kept until confirmed otherwise.
	errs.AddIf(inst.CondModifier == eu.CondO ||
		inst.CondModifier == eu.CondR ||
		inst.CondModifier == eu.CondU,
		"O, R, and U conditional modifiers should not be used.")
}

func checkBfi2(inst *eu.Instruction, errs *Diagnostics) {
	errs.AddIf(inst.CondModifier != eu.CondNone,
		"BFI2 cannot have conditional modifier")
	errs.AddIf(inst.Saturate, "BFI2 cannot have saturate modifier")

	dstType := inst.Dst.Type
	errs.AddIf(dstType != eu.TypeD && dstType != eu.TypeUD,
		"BFI2 destination type must be D or UD")

	for s := uint(0); s < 3; s++ {
		errs.AddIf(inst.Src[s].Type != dstType,
			"BFI2 source type must match destination type")
	}
}

func checkCsel(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	errs.AddIf(inst.PredCtrl != eu.PredNone, "CSEL cannot be predicated")

	// CSEL is CMP and SEL fused into one; the condition modifier controls
	// the built-in comparison without touching the flags.
	errs.AddIf(inst.CondModifier == eu.CondNone, "CSEL must have a condition.")

	dstType := inst.Dst.Type

	if cap.CselRestrictedToFloat() {
		errs.AddIf(dstType != eu.TypeF, "CSEL destination type must be F")
	} else {
		errs.AddIf(dstType != eu.TypeF && dstType != eu.TypeHF &&
			dstType != eu.TypeD && dstType != eu.TypeW &&
			dstType != eu.TypeUD && dstType != eu.TypeUW,
			"CSEL destination type must be F, HF, *D, or *W")
	}

	for s := uint(0); s < 3; s++ {
		srcType := inst.Src[s].Type

		if cap.CselRestrictedToFloat() {
			errs.AddIf(srcType != eu.TypeF, "CSEL source type must be F")
		} else {
			errs.AddIf(srcType != eu.TypeF && srcType != eu.TypeHF &&
				srcType != eu.TypeD && srcType != eu.TypeUD &&
				srcType != eu.TypeW && srcType != eu.TypeUW,
				"CSEL source type must be F, HF, *D, or *W")

			errs.AddIf(srcType.IsFloat() != dstType.IsFloat(),
				"CSEL cannot mix float and integer types.")

			errs.AddIf(srcType != eu.TypeInvalid &&
				srcType.SizeBytes() != dstType.SizeBytes(),
				"CSEL cannot mix different type sizes.")
		}
	}
}

func checkDpas(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	dpas := inst.DpasInfo()

	errs.AddIf(dpas.SDepth != 8, "Systolic depth must be 8.")

	const sdepth = 8

	dstType := inst.Dst.Type
	src0Type := inst.Src[0].Type
	src1Type := inst.Src[1].Type
	src2Type := inst.Src[2].Type

	if src1Type != eu.TypeB && src1Type != eu.TypeUB {
		errs.AddIf(dpas.Src1SubByte != eu.SubByteNone,
			"Sub-byte precision must be None for source type larger than Byte.")
	} else {
		errs.AddIf(dpas.Src1SubByte != eu.SubByteNone &&
			dpas.Src1SubByte != eu.SubByte4Bit &&
			dpas.Src1SubByte != eu.SubByte2Bit,
			"Invalid sub-byte precision.")
	}

	if src2Type != eu.TypeB && src2Type != eu.TypeUB {
		errs.AddIf(dpas.Src2SubByte != eu.SubByteNone,
			"Sub-byte precision must be None.")
	} else {
		errs.AddIf(dpas.Src2SubByte != eu.SubByteNone &&
			dpas.Src2SubByte != eu.SubByte4Bit &&
			dpas.Src2SubByte != eu.SubByte2Bit,
			"Invalid sub-byte precision.")
	}

	src1BitsPerElement := src1Type.SizeBits() >> dpas.Src1SubByte
	src2BitsPerElement := src2Type.SizeBits() >> dpas.Src2SubByte

	opsPerChan := max(1, 32/max(src1BitsPerElement, src2BitsPerElement))

	if cap.DpasExecSize() == 8 {
		errs.AddIf(inst.ExecSize != 8, "DPAS execution size must be 8.")
	} else {
		errs.AddIf(inst.ExecSize != 16, "DPAS execution size must be 16.")
	}

	execSize := cap.DpasExecSize()

	dstSubNr := inst.Dst.SubReg / dstType.SizeBytes()
	src0SubNr := inst.Src[0].SubReg / src0Type.SizeBytes()
	src1SubNr := inst.Src[1].SubReg / src1Type.SizeBytes()
	src2SubNr := inst.Src[2].SubReg / src2Type.SizeBytes()

	errs.AddIf(dstSubNr%execSize != 0,
		"Destination subregister offset must be a multiple of ExecSize.")

	errs.AddIf(src0SubNr%execSize != 0,
		"Src0 subregister offset must be a multiple of ExecSize.")

	errs.AddIf(src1SubNr != 0, "Src1 subregister offsets must be 0.")

	// Only an 8-bit src1 paired with a 2- or 4-bit src2 leaves room for a
	// non-zero src2 subregister.
	errs.AddIf(src2SubNr%(sdepth*opsPerChan) != 0,
		"Src2 subregister offset must be a multiple of SystolicDepth "+
			"times OPS_PER_CHAN.")

	regSize := cap.RegSizeBytes()

	errs.AddIf(dstSubNr*dstType.SizeBytes() >= regSize,
		"Destination subregister specifies next register.")

	errs.AddIf(src0SubNr*src0Type.SizeBytes() >= regSize,
		"Src0 subregister specifies next register.")

	errs.AddIf(src1SubNr*src1Type.SizeBytes()*src1BitsPerElement/8 >= regSize,
		"Src1 subregister specifies next register.")

	errs.AddIf(src2SubNr*src2Type.SizeBytes()*src2BitsPerElement/8 >= regSize,
		"Src2 subregister specifies next register.")

	if inst.AtomicControl {
		// There is no way to see the following instruction from here, so
		// chained DPAS sequences cannot be validated yet.
		errs.Add("When instruction option Atomic is used it must be follwed by a " +
			"DPAS instruction.")
	}

	if dpas.FloatExecType {
		errs.AddIf(dstType != eu.TypeF, "DPAS destination type must be F.")
		errs.AddIf(src0Type != eu.TypeF, "DPAS src0 type must be F.")
		errs.AddIf(src1Type != eu.TypeHF, "DPAS src1 type must be HF.")
		errs.AddIf(src2Type != eu.TypeHF, "DPAS src2 type must be HF.")
	} else {
		errs.AddIf(dstType != eu.TypeD && dstType != eu.TypeUD,
			"DPAS destination type must be D or UD.")
		errs.AddIf(src0Type != eu.TypeD && src0Type != eu.TypeUD,
			"DPAS src0 type must be D or UD.")
		errs.AddIf(src1Type != eu.TypeB && src1Type != eu.TypeUB,
			"DPAS src1 base type must be B or UB.")
		errs.AddIf(src2Type != eu.TypeB && src2Type != eu.TypeUB,
			"DPAS src2 base type must be B or UB.")

		if dstType.IsUint() {
			errs.AddIf(!src0Type.IsUint() || !src1Type.IsUint() ||
				!src2Type.IsUint(),
				"If any source datatype is signed, destination datatype "+
					"must be signed.")
		}
	}
}
