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
package eu

// Operand is the decoded view of one destination or source operand.  Region
// fields (VStride, Width, HStride) hold the decoded element counts, not the
// raw encodings, and SubReg is a byte offset.
type Operand struct {
	// File selects the register file, or marks the operand immediate.
	File RegFile
	// Type is the declared element type, possibly TypeInvalid when the
	// encoded bit pattern maps to nothing.
	Type RegType
	// AddrMode selects direct or register-indirect addressing.
	AddrMode AddressMode
	// Reg is the register number (for FileArch, the ARF base plus index).
	Reg uint
	// SubReg is the sub-register offset in bytes.
	SubReg uint
	// VStride, Width and HStride describe the register region in elements.
	VStride uint
	Width   uint
	HStride uint
	// VxH marks the one-dimensional ("Vx1"/"VxH") indirect vertical stride
	// encoding.
	VxH bool
	// Negate and Abs are the source modifiers.
	Negate bool
	Abs    bool
	// RepCtrl is the Align16 3-source per-operand replicate control.
	RepCtrl bool
	// Imm holds the raw bits of an immediate operand.
	Imm uint64
}

// HasScalarRegion reports whether the operand region is the scalar
// broadcast <0;1,0>.
func (p *Operand) HasScalarRegion() bool {
	return p.VStride == 0 && p.Width == 1 && p.HStride == 0
}

// IsNull reports whether the operand is the null architecture register.
func (p *Operand) IsNull() bool {
	return p.File == FileArch && p.Reg == ArfNull
}

// IsAcc reports whether the operand is one of the accumulator registers.
func (p *Operand) IsAcc() bool {
	return p.File == FileArch && (p.Reg&0xF0) == ArfAccumulator
}

// SendControls carries the fields only present on send-form instructions.
type SendControls struct {
	// SFID is the target shared function.
	SFID SharedFunction
	// Desc is the message descriptor when DescIsReg is false.
	Desc uint32
	// ExDesc is the extended descriptor when ExDescIsReg is false.
	ExDesc uint32
	// DescIsReg / ExDescIsReg mark register-indirect descriptors, which
	// cannot be validated statically.
	DescIsReg   bool
	ExDescIsReg bool
	// EOT marks an end-of-thread message.
	EOT bool
	// HeaderPresent indicates the message carries a header register.
	HeaderPresent bool
}

// DpasControls carries the fields only present on DPAS instructions.
type DpasControls struct {
	// SDepth is the systolic depth.
	SDepth uint
	// Src1SubByte / Src2SubByte select sub-byte element precision.
	Src1SubByte SubBytePrecision
	Src2SubByte SubBytePrecision
	// FloatExecType distinguishes the float pipeline from the integer one.
	FloatExecType bool
}

// Instruction is the read-only decoded view of one full-width instruction.
// Construction is the business of a decoding collaborator; the validator
// only consumes it.  Send and Dpas are populated exactly when the opcode
// shape calls for them.
type Instruction struct {
	Opcode Opcode
	// ExecSize is the number of execution channels.  It is carried as
	// decoded, so an illegal encoding (e.g. 3) is representable and is the
	// business of the invalid-values checker.
	ExecSize uint
	// QtrCtrl and NibCtrl locate the channel group within the dispatch.
	QtrCtrl uint
	NibCtrl uint

	AccessMode   AccessMode
	CondModifier Conditional
	PredCtrl     Predicate
	Saturate     bool

	// AccWrControl, NoDDCheck and NoDDClear are the co-issue control bits.
	AccWrControl bool
	NoDDCheck    bool
	NoDDClear    bool
	// AtomicControl is the 3-source atomic chaining bit.
	AtomicControl bool

	// Math selects the MATH sub-function; meaningful only when Opcode is
	// OpMath.
	Math MathFunction

	Dst Operand
	Src [3]Operand

	Send *SendControls
	Dpas *DpasControls
}

// NumSources returns how many source operands this instruction reads.
func (p *Instruction) NumSources() uint {
	if p.Opcode == OpMath {
		return p.Math.NumSources()
	}

	return opcodeSpecs[p.Opcode].nsrc
}

// IsSend reports whether this is any of the send-form opcodes.
func (p *Instruction) IsSend() bool {
	switch p.Opcode {
	case OpSend, OpSendc, OpSends, OpSendsc:
		return true
	default:
		return false
	}
}

// IsSplitSend reports whether this instruction uses the split-send
// encoding, which carries no operand types or regions.
func (p *Instruction) IsSplitSend(cap *Capability) bool {
	if cap.SendsAreSplitSends() {
		return p.IsSend()
	}

	return p.Opcode == OpSends || p.Opcode == OpSendsc
}

// SendInfo returns the send-only field record.  Calling it on a non-send
// shape is a checker bug.
func (p *Instruction) SendInfo() *SendControls {
	if p.Send == nil {
		panic("send controls accessed on non-send instruction")
	}

	return p.Send
}

// DpasInfo returns the DPAS-only field record.  Calling it on a non-DPAS
// shape is a checker bug.
func (p *Instruction) DpasInfo() *DpasControls {
	if p.Dpas == nil {
		panic("dpas controls accessed on non-dpas instruction")
	}

	return p.Dpas
}

// ChannelOffset returns the execution channel offset derived from the
// quarter and nibble controls.
func (p *Instruction) ChannelOffset() uint {
	return (p.QtrCtrl*2 + p.NibCtrl) << 2
}

// DstType returns the effective destination type.  Send-form instructions
// on generations where sends lost their type bits behave as dword typed.
func (p *Instruction) DstType(cap *Capability) RegType {
	if cap.SendsAreSplitSends() && p.IsSend() {
		return TypeD
	}

	return p.Dst.Type
}

// IsRawMove reports whether this is a MOV that copies bits untouched: no
// saturation, no source modifiers, and matching types up to signedness.
func (p *Instruction) IsRawMove(cap *Capability) bool {
	if p.Src[0].File == FileImmediate {
		if p.Src[0].Type.IsVectorImmediate() {
			return false
		}
	} else if p.Src[0].Negate || p.Src[0].Abs {
		return false
	}

	return p.Opcode == OpMov && !p.Saturate &&
		p.DstType(cap).Signed() == p.Src[0].Type.Signed()
}

// UsesAccSource reports whether the instruction reads the accumulator,
// implicitly (MAC, MACH) or as an explicit source operand.
func (p *Instruction) UsesAccSource() bool {
	switch p.Opcode {
	case OpMac, OpMach:
		return true
	default:
	}

	num := p.NumSources()
	if num >= 3 {
		panic("accumulator source query on 3-source instruction")
	}

	return p.Src[0].IsAcc() || (num > 1 && p.Src[1].IsAcc())
}

// ExecutionType returns the type the instruction executes in, which is
// independent of the destination type except in mixed float mode.
func (p *Instruction) ExecutionType(cap *Capability) RegType {
	num := p.NumSources()
	dstExec := p.DstType(cap)

	if num == 0 {
		return dstExec
	}

	src0Exec := p.Src[0].Type.ExecutionType()
	if num == 1 {
		if src0Exec == TypeHF {
			return dstExec
		}

		return src0Exec
	}

	src1Exec := p.Src[1].Type.ExecutionType()
	if typesAreMixedFloat(src0Exec, src1Exec) ||
		typesAreMixedFloat(src0Exec, dstExec) ||
		typesAreMixedFloat(src1Exec, dstExec) {
		return TypeF
	}

	if src0Exec == src1Exec {
		return src0Exec
	}

	switch {
	case src0Exec == TypeQ || src1Exec == TypeQ:
		return TypeQ
	case src0Exec == TypeD || src1Exec == TypeD:
		return TypeD
	case src0Exec == TypeW || src1Exec == TypeW:
		return TypeW
	case src0Exec == TypeDF || src1Exec == TypeDF:
		return TypeDF
	default:
		panic("unreachable")
	}
}

// IsMixedFloat reports whether the instruction mixes F and HF between its
// sources or between a source and the destination.
func (p *Instruction) IsMixedFloat(cap *Capability) bool {
	if p.IsSend() || !p.Opcode.HasDst() {
		return false
	}

	num := p.NumSources()
	if num >= 3 {
		return false
	}

	dstType := p.Dst.Type
	src0Type := p.Src[0].Type

	if num == 1 {
		return typesAreMixedFloat(src0Type, dstType)
	}

	src1Type := p.Src[1].Type

	return typesAreMixedFloat(src0Type, src1Type) ||
		typesAreMixedFloat(src0Type, dstType) ||
		typesAreMixedFloat(src1Type, dstType)
}

// IsHalfFloatConversion reports whether the instruction converts to or from
// half-float, explicitly or implicitly.
func (p *Instruction) IsHalfFloatConversion() bool {
	dstType := p.Dst.Type
	src0Type := p.Src[0].Type

	if dstType != src0Type && (dstType == TypeHF || src0Type == TypeHF) {
		return true
	} else if p.NumSources() > 1 {
		src1Type := p.Src[1].Type
		return dstType != src1Type && (dstType == TypeHF || src1Type == TypeHF)
	}

	return false
}

// IsByteConversion reports whether the instruction converts to or from a
// byte-sized type, explicitly or implicitly.
func (p *Instruction) IsByteConversion() bool {
	dstType := p.Dst.Type
	src0Type := p.Src[0].Type

	if dstType != src0Type &&
		(dstType.SizeBytes() == 1 || src0Type.SizeBytes() == 1) {
		return true
	} else if p.NumSources() > 1 {
		src1Type := p.Src[1].Type
		return dstType != src1Type &&
			(dstType.SizeBytes() == 1 || src1Type.SizeBytes() == 1)
	}

	return false
}
