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
	"testing"

	"github.com/consensys/go-euval/pkg/eu"
	"github.com/consensys/go-euval/pkg/util/assert"
)

// send constructs a send instruction with payload in the given register.
func send(src0Reg uint, controls eu.SendControls) *eu.Instruction {
	inst := &eu.Instruction{Opcode: eu.OpSend, ExecSize: 8}
	inst.Dst = eu.Operand{File: eu.FileGeneral, Type: eu.TypeUD, Reg: 20, HStride: 1}
	inst.Src[0] = eu.Operand{File: eu.FileGeneral, Type: eu.TypeUD, Reg: src0Reg,
		VStride: 8, Width: 8, HStride: 1}
	inst.Send = &controls

	return inst
}

func TestValidate_SendEOTRegisters(t *testing.T) {
	cap := eu.NewCapability(12)

	inst := send(10, eu.SendControls{SFID: eu.SfidUGM, EOT: true})
	assertViolation(t, cap, inst, "send with EOT must use g112-g127")

	inst = send(112, eu.SendControls{SFID: eu.SfidUGM, EOT: true})
	assertValid(t, cap, inst)
}

func TestValidate_SplitSendPayloadOverlap(t *testing.T) {
	cap := eu.NewCapability(12)

	// Two message registers starting at g2 collide with a payload at g3.
	inst := send(2, eu.SendControls{
		SFID:   eu.SfidUGM,
		Desc:   2 << 25,
		ExDesc: 1 << 6,
	})
	inst.Src[1] = eu.Operand{File: eu.FileGeneral, Type: eu.TypeUD, Reg: 3}

	assertViolation(t, cap, inst, "split send payloads must not overlap")

	// Moving the second payload out of the way fixes it.
	inst.Src[1].Reg = 4
	assertValid(t, cap, inst)
}

func TestValidate_SplitSendSrc1File(t *testing.T) {
	cap := eu.NewCapability(12)

	inst := send(2, eu.SendControls{SFID: eu.SfidUGM})
	inst.Src[1] = eu.Operand{File: eu.FileArch, Reg: eu.ArfAccumulator}

	assertViolation(t, cap, inst, "src1 of split send must be a GRF or NULL")
}

func TestValidate_SendIndirectPayload(t *testing.T) {
	// Pre-split sends require a directly addressed GRF payload.
	cap := eu.NewCapability(9)

	inst := send(2, eu.SendControls{SFID: eu.SfidDP})
	inst.Src[0].AddrMode = eu.AddressIndirect

	assertViolation(t, cap, inst, "send must use direct addressing")
}

func TestValidate_LscNeedsHardwareSupport(t *testing.T) {
	// The load/store-cache shared functions do not exist before gen12.
	cap := eu.NewCapability(9)

	inst := send(2, eu.SendControls{SFID: eu.SfidUGM})
	assertViolation(t, cap, inst, "Platform does not support LSC")
}

func TestValidate_LscTransposeExecSize(t *testing.T) {
	cap := eu.NewCapability(12)

	// An LSC load with the transpose bit set must execute one channel.
	desc := uint32(eu.LscOpLoad) | 1<<15
	inst := send(2, eu.SendControls{SFID: eu.SfidUGM, Desc: desc})
	assertViolation(t, cap, inst,
		"Transposed vectors are restricted to Exec_Mask = 1.")

	inst.ExecSize = 1
	assertValid(t, cap, inst)
}

func TestValidate_LegacyUrbMessages(t *testing.T) {
	cap := eu.NewCapability(12)

	// URB messages carry a header and a known sub-opcode.
	inst := send(2, eu.SendControls{SFID: eu.SfidURB, Desc: 2})
	assertViolation(t, cap, inst, "Header must be present for all URB messages.")
	assertViolation(t, cap, inst, "Invalid URB message")

	// A SIMD8 read must actually read something.
	desc := uint32(eu.UrbOpSimd8Read)
	inst = send(2, eu.SendControls{SFID: eu.SfidURB, Desc: desc, HeaderPresent: true})
	assertViolation(t, cap, inst, "URB SIMD8 read message must read some data.")

	desc |= 1 << 20
	inst = send(2, eu.SendControls{SFID: eu.SfidURB, Desc: desc, HeaderPresent: true})
	assertValid(t, cap, inst)
}

func TestValidate_UrbFenceGeneration(t *testing.T) {
	desc := uint32(eu.UrbOpFence)
	inst := send(2, eu.SendControls{SFID: eu.SfidURB, Desc: desc, HeaderPresent: true})

	assertViolation(t, eu.NewCapability(12), inst,
		"URB fence message only valid on gfx >= 12.5")

	gen125 := eu.NewCapability(12)
	gen125.VerX10 = 125
	assertValid(t, gen125, inst)
}

func TestValidate_RegisterIndirectDescriptorsSkipped(t *testing.T) {
	cap := eu.NewCapability(12)

	// Nothing about a register-held descriptor can be checked statically.
	inst := send(2, eu.SendControls{SFID: eu.SfidUGM, DescIsReg: true,
		ExDescIsReg: true})
	assertValid(t, cap, inst)
}

func TestValidate_SendReturnAddressOverlap(t *testing.T) {
	cap := eu.NewCapability(9)

	// rlen reaching past g127 while the payload overlaps the response.
	desc := uint32(4)<<25 | uint32(8)<<20
	inst := send(122, eu.SendControls{SFID: eu.SfidDP, Desc: desc})
	inst.Dst.Reg = 124

	assertViolation(t, cap, inst,
		"r127 must not be used for return address when there is "+
			"a src and dest overlap")

	inst.Dst.Reg = 40
	assertValid(t, cap, inst)

	// A register-held descriptor says nothing about payload lengths, so the
	// rule cannot apply no matter what the descriptor register holds.
	inst = send(122, eu.SendControls{SFID: eu.SfidDP, Desc: desc, DescIsReg: true})
	inst.Dst.Reg = 124
	assertValid(t, cap, inst)
}

func TestDiagnostics_DedupAndOrder(t *testing.T) {
	var errs Diagnostics

	assert.True(t, errs.IsEmpty())

	errs.Add("first")
	errs.Add("second")
	errs.Add("first")
	errs.AddIf(false, "third")
	errs.AddIf(true, "fourth")

	items := errs.Items()
	assert.Equal(t, 3, len(items))
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "second", items[1].Message)
	assert.Equal(t, "fourth", items[2].Message)
	assert.Equal(t, "first\nsecond\nfourth", errs.String())
}

func TestValidate_SequenceReporting(t *testing.T) {
	cap := eu.NewCapability(12)

	good := alu(eu.OpAdd, 8, grfDst(eu.TypeF, 10, 1),
		grfSrc(eu.TypeF, 2), grfSrc(eu.TypeF, 3))
	bad := alu(eu.OpMov, 3, grfDst(eu.TypeF, 10, 1), grfSrc(eu.TypeF, 2))

	units := []Unit{
		{Inst: good, Offset: 0, Size: 16},
		{Inst: bad, Offset: 16, Size: 16},
		{Inst: good, Offset: 32, Size: 16},
	}

	var reported []int

	result := Sequence(cap, units, func(offset, size int, message string) {
		reported = append(reported, offset)
		assert.Equal(t, 16, size)
		assert.Equal(t, "invalid execution size", message)
	})

	assert.False(t, result.AllValid)
	assert.Equal(t, 3, len(result.Instructions))
	assert.Equal(t, 0, len(result.Instructions[0].Diagnostics))
	assert.Equal(t, 1, len(result.Instructions[1].Diagnostics))
	assert.Equal(t, []int{16}, reported)
}

// fixedDecoder expands a pre-decoded instruction list, sixteen bytes per
// instruction.
type fixedDecoder struct {
	insts []*eu.Instruction
}

func (p *fixedDecoder) DecodeAt(assembly []byte, offset int) (*eu.Instruction, int, bool) {
	return p.insts[offset/16], 16, false
}

func TestValidate_StreamDecodes(t *testing.T) {
	cap := eu.NewCapability(12)

	good := alu(eu.OpAdd, 8, grfDst(eu.TypeF, 10, 1),
		grfSrc(eu.TypeF, 2), grfSrc(eu.TypeF, 3))
	bad := alu(eu.OpMov, 3, grfDst(eu.TypeF, 10, 1), grfSrc(eu.TypeF, 2))

	decoder := &fixedDecoder{insts: []*eu.Instruction{good, bad}}
	result := Stream(cap, decoder, make([]byte, 32), 0, 32, nil)

	assert.False(t, result.AllValid)
	assert.Equal(t, 2, len(result.Instructions))
	assert.Equal(t, 16, result.Instructions[1].Offset)
}
