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

import (
	"testing"

	"github.com/consensys/go-euval/pkg/util/assert"
)

func TestInstruction_ChannelOffset(t *testing.T) {
	inst := Instruction{Opcode: OpAdd}
	assert.Equal(t, uint(0), inst.ChannelOffset())

	inst.QtrCtrl = 1
	assert.Equal(t, uint(8), inst.ChannelOffset())

	inst.NibCtrl = 1
	assert.Equal(t, uint(12), inst.ChannelOffset())
}

func TestInstruction_MathSourceCount(t *testing.T) {
	inst := Instruction{Opcode: OpMath, Math: MathSqrt}
	assert.Equal(t, uint(1), inst.NumSources())

	inst.Math = MathPow
	assert.Equal(t, uint(2), inst.NumSources())

	inst.Math = MathIntDivRemainder
	assert.Equal(t, uint(2), inst.NumSources())
}

func TestInstruction_SplitSendForms(t *testing.T) {
	gen9 := NewCapability(9)
	gen12 := NewCapability(12)

	send := Instruction{Opcode: OpSend}
	sends := Instruction{Opcode: OpSends}

	assert.True(t, send.IsSend())
	assert.False(t, send.IsSplitSend(gen9))
	assert.True(t, send.IsSplitSend(gen12))
	assert.True(t, sends.IsSplitSend(gen9))
}

func TestInstruction_DstTypeOfSplitSend(t *testing.T) {
	gen12 := NewCapability(12)

	inst := Instruction{Opcode: OpSend}
	inst.Dst = Operand{File: FileGeneral, Type: TypeInvalid}

	// The destination type bits of a split send mean something else, so the
	// effective type is a dword.
	assert.Equal(t, TypeD, inst.DstType(gen12))
}

func TestInstruction_ExecutionType(t *testing.T) {
	gen9 := NewCapability(9)

	inst := Instruction{Opcode: OpAdd}
	inst.Dst = Operand{File: FileGeneral, Type: TypeF}
	inst.Src[0] = Operand{File: FileGeneral, Type: TypeF}
	inst.Src[1] = Operand{File: FileGeneral, Type: TypeHF}

	// Mixed float executes as full float.
	assert.Equal(t, TypeF, inst.ExecutionType(gen9))
	assert.True(t, inst.IsMixedFloat(gen9))

	// Word and dword integers execute as dwords.
	inst.Dst.Type = TypeD
	inst.Src[0].Type = TypeW
	inst.Src[1].Type = TypeD
	assert.Equal(t, TypeD, inst.ExecutionType(gen9))
	assert.False(t, inst.IsMixedFloat(gen9))
}

func TestInstruction_RawMove(t *testing.T) {
	gen9 := NewCapability(9)

	inst := Instruction{Opcode: OpMov}
	inst.Dst = Operand{File: FileGeneral, Type: TypeUB}
	inst.Src[0] = Operand{File: FileGeneral, Type: TypeB}

	// Signedness differences alone do not stop a move being raw.
	assert.True(t, inst.IsRawMove(gen9))

	inst.Src[0].Negate = true
	assert.False(t, inst.IsRawMove(gen9))

	inst.Src[0].Negate = false
	inst.Saturate = true
	assert.False(t, inst.IsRawMove(gen9))
}

func TestOperand_Classification(t *testing.T) {
	null := Operand{File: FileArch, Reg: ArfNull}
	acc1 := Operand{File: FileArch, Reg: ArfAccumulator + 1}
	grf := Operand{File: FileGeneral, Reg: 5}

	assert.True(t, null.IsNull())
	assert.False(t, null.IsAcc())
	assert.True(t, acc1.IsAcc())
	assert.False(t, grf.IsNull())
	assert.False(t, grf.IsAcc())

	scalar := Operand{File: FileGeneral, VStride: 0, Width: 1, HStride: 0}
	assert.True(t, scalar.HasScalarRegion())
}
