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
package binfile

import (
	"fmt"

	"github.com/consensys/go-euval/pkg/eu"
)

// Encoded instruction sizes in bytes.
const (
	fullSize    = 16
	compactSize = 8
)

type jsonInstruction struct {
	// The assembly mnemonic, e.g. "mov" or "add3".
	Opcode string `json:"opcode"`
	// Number of execution channels.
	ExecSize uint `json:"exec_size"`
	// Channel group controls.
	QtrCtrl uint `json:"qtr_ctrl"`
	NibCtrl uint `json:"nib_ctrl"`
	// Selects the legacy Align16 access mode.
	Align16 bool `json:"align16"`
	// Condition modifier mnemonic ("z", "nz", "g", ...), empty for none.
	CondMod string `json:"cond_mod"`
	// Predication control.
	Predicated bool `json:"predicated"`
	Saturate   bool `json:"saturate"`
	// Co-issue control bits.
	AccWrEn bool `json:"acc_wr_en"`
	NoDDChk bool `json:"no_dd_chk"`
	NoDDClr bool `json:"no_dd_clr"`
	Atomic  bool `json:"atomic"`
	// MATH sub-function name, only meaningful for the math opcode.
	Math string `json:"math"`
	// Operands.  Dst may be omitted for opcodes without a destination.
	Dst  *jsonOperand  `json:"dst"`
	Srcs []jsonOperand `json:"srcs"`
	// Shape-specific control fields.
	Send *jsonSend `json:"send"`
	Dpas *jsonDpas `json:"dpas"`
	// Indicates the instruction was encoded in compact form.
	Compact bool `json:"compact"`
}

type jsonOperand struct {
	// Register file: "arf", "grf" or "imm".
	File string `json:"file"`
	// Element type mnemonic, e.g. "f" or "ud".
	Type string `json:"type"`
	// Selects register-indirect addressing.
	Indirect bool `json:"indirect"`
	// Marks the Vx1/VxH indirect vertical stride encoding.
	VxH bool `json:"vxh"`
	// Register number; for the ARF this includes the class in the high
	// nibble (e.g. 0x20 for acc0).
	Reg uint `json:"reg"`
	// Sub-register offset in bytes.
	SubReg uint `json:"subreg"`
	// Region description in elements.
	VStride uint `json:"vstride"`
	Width   uint `json:"width"`
	HStride uint `json:"hstride"`
	// Source modifiers.
	Negate bool `json:"negate"`
	Abs    bool `json:"abs"`
	// Align16 3-source replicate control.
	RepCtrl bool `json:"rep_ctrl"`
	// Raw bits of an immediate operand.
	Imm uint64 `json:"imm"`
}

type jsonSend struct {
	// Target shared function name, e.g. "ugm" or "urb".
	Sfid string `json:"sfid"`
	// Immediate descriptors; ignored when the matching *InReg flag is set.
	Desc   uint32 `json:"desc"`
	ExDesc uint32 `json:"ex_desc"`
	// Register-indirect descriptor flags.
	DescInReg   bool `json:"desc_in_reg"`
	ExDescInReg bool `json:"ex_desc_in_reg"`
	// End-of-thread and header-present message bits.
	EOT    bool `json:"eot"`
	Header bool `json:"header"`
}

type jsonDpas struct {
	SDepth uint `json:"sdepth"`
	// Sub-byte element precisions: "", "4bit" or "2bit".
	Src1Precision string `json:"src1_precision"`
	Src2Precision string `json:"src2_precision"`
	// Selects the float pipeline.
	Float bool `json:"float"`
}

// translate converts this instruction into its decoded view, returning also
// its encoded size in bytes.
func (p *jsonInstruction) translate() (*eu.Instruction, int, error) {
	var err error
	//
	inst := &eu.Instruction{
		Opcode:        eu.OpcodeFromString(p.Opcode),
		ExecSize:      p.ExecSize,
		QtrCtrl:       p.QtrCtrl,
		NibCtrl:       p.NibCtrl,
		Saturate:      p.Saturate,
		AccWrControl:  p.AccWrEn,
		NoDDCheck:     p.NoDDChk,
		NoDDClear:     p.NoDDClr,
		AtomicControl: p.Atomic,
	}
	//
	if p.Align16 {
		inst.AccessMode = eu.Align16
	}
	//
	if p.Predicated {
		inst.PredCtrl = eu.PredNormal
	}
	//
	if inst.CondModifier, err = toConditional(p.CondMod); err != nil {
		return nil, 0, err
	}
	//
	if inst.Opcode == eu.OpMath {
		if inst.Math, err = toMathFunction(p.Math); err != nil {
			return nil, 0, err
		}
	}
	//
	if p.Dst != nil {
		if inst.Dst, err = p.Dst.translate(); err != nil {
			return nil, 0, fmt.Errorf("dst: %w", err)
		}
	}
	//
	if len(p.Srcs) > len(inst.Src) {
		return nil, 0, fmt.Errorf("too many sources (%d)", len(p.Srcs))
	}
	//
	for i, src := range p.Srcs {
		if inst.Src[i], err = src.translate(); err != nil {
			return nil, 0, fmt.Errorf("src%d: %w", i, err)
		}
	}
	//
	if p.Send != nil {
		if inst.Send, err = p.Send.translate(); err != nil {
			return nil, 0, err
		}
	}
	//
	if p.Dpas != nil {
		if inst.Dpas, err = p.Dpas.translate(); err != nil {
			return nil, 0, err
		}
	}
	//
	if inst.IsSend() && inst.Send == nil {
		return nil, 0, fmt.Errorf("%s instruction lacks send controls", p.Opcode)
	}
	//
	if inst.Opcode == eu.OpDpas && inst.Dpas == nil {
		return nil, 0, fmt.Errorf("dpas instruction lacks dpas controls")
	}
	//
	if p.Compact {
		return inst, compactSize, nil
	}
	//
	return inst, fullSize, nil
}

func (p *jsonOperand) translate() (eu.Operand, error) {
	var op eu.Operand
	//
	switch p.File {
	case "arf":
		op.File = eu.FileArch
	case "grf":
		op.File = eu.FileGeneral
	case "imm":
		op.File = eu.FileImmediate
	default:
		return op, fmt.Errorf("unknown register file %q", p.File)
	}
	//
	op.Type = eu.RegTypeFromString(p.Type)
	//
	if p.Indirect {
		op.AddrMode = eu.AddressIndirect
	}
	//
	op.VxH = p.VxH
	op.Reg = p.Reg
	op.SubReg = p.SubReg
	op.VStride = p.VStride
	op.Width = p.Width
	op.HStride = p.HStride
	op.Negate = p.Negate
	op.Abs = p.Abs
	op.RepCtrl = p.RepCtrl
	op.Imm = p.Imm
	//
	return op, nil
}

func (p *jsonSend) translate() (*eu.SendControls, error) {
	sfid, err := toSharedFunction(p.Sfid)
	if err != nil {
		return nil, err
	}
	//
	return &eu.SendControls{
		SFID:          sfid,
		Desc:          p.Desc,
		ExDesc:        p.ExDesc,
		DescIsReg:     p.DescInReg,
		ExDescIsReg:   p.ExDescInReg,
		EOT:           p.EOT,
		HeaderPresent: p.Header,
	}, nil
}

func (p *jsonDpas) translate() (*eu.DpasControls, error) {
	src1, err := toSubBytePrecision(p.Src1Precision)
	if err != nil {
		return nil, err
	}
	//
	src2, err := toSubBytePrecision(p.Src2Precision)
	if err != nil {
		return nil, err
	}
	//
	return &eu.DpasControls{
		SDepth:        p.SDepth,
		Src1SubByte:   src1,
		Src2SubByte:   src2,
		FloatExecType: p.Float,
	}, nil
}

func toConditional(s string) (eu.Conditional, error) {
	switch s {
	case "":
		return eu.CondNone, nil
	case "z", "e":
		return eu.CondZ, nil
	case "nz", "ne":
		return eu.CondNZ, nil
	case "g":
		return eu.CondG, nil
	case "ge":
		return eu.CondGE, nil
	case "l":
		return eu.CondL, nil
	case "le":
		return eu.CondLE, nil
	case "r":
		return eu.CondR, nil
	case "o":
		return eu.CondO, nil
	case "u":
		return eu.CondU, nil
	default:
		return eu.CondNone, fmt.Errorf("unknown condition modifier %q", s)
	}
}

func toMathFunction(s string) (eu.MathFunction, error) {
	switch s {
	case "inv":
		return eu.MathInv, nil
	case "log":
		return eu.MathLog, nil
	case "exp":
		return eu.MathExp, nil
	case "sqrt":
		return eu.MathSqrt, nil
	case "rsq":
		return eu.MathRsq, nil
	case "sin":
		return eu.MathSin, nil
	case "cos":
		return eu.MathCos, nil
	case "fdiv":
		return eu.MathFdiv, nil
	case "pow":
		return eu.MathPow, nil
	case "intdiv":
		return eu.MathIntDivQuotientAndRemainder, nil
	case "intdiv_quotient":
		return eu.MathIntDivQuotient, nil
	case "intdiv_remainder":
		return eu.MathIntDivRemainder, nil
	case "invm":
		return eu.MathInvm, nil
	case "rsqrtm":
		return eu.MathRsqrtm, nil
	default:
		return 0, fmt.Errorf("unknown math function %q", s)
	}
}

func toSharedFunction(s string) (eu.SharedFunction, error) {
	switch s {
	case "null":
		return eu.SfidNull, nil
	case "sampler":
		return eu.SfidSampler, nil
	case "gateway":
		return eu.SfidGateway, nil
	case "dp":
		return eu.SfidDP, nil
	case "urb":
		return eu.SfidURB, nil
	case "tgm":
		return eu.SfidTGM, nil
	case "slm":
		return eu.SfidSLM, nil
	case "ugm":
		return eu.SfidUGM, nil
	default:
		return 0, fmt.Errorf("unknown shared function %q", s)
	}
}

func toSubBytePrecision(s string) (eu.SubBytePrecision, error) {
	switch s {
	case "":
		return eu.SubByteNone, nil
	case "4bit":
		return eu.SubByte4Bit, nil
	case "2bit":
		return eu.SubByte2Bit, nil
	default:
		return 0, fmt.Errorf("unknown sub-byte precision %q", s)
	}
}
