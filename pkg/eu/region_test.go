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

func TestRegion_Packed(t *testing.T) {
	// <4;4,1> and <8;8,1> are the classic packed regions.
	assert.True(t, IsPacked(4, 4, 1))
	assert.True(t, IsPacked(8, 8, 1))
	// Scalar broadcast counts as packed with a single element.
	assert.True(t, IsPacked(1, 1, 0))
	// Strided regions are not packed.
	assert.False(t, IsPacked(4, 4, 2))
	assert.False(t, IsPacked(8, 4, 1))
	assert.False(t, IsPacked(0, 1, 0))
}

func TestRegion_Linear(t *testing.T) {
	assert.True(t, IsLinear(8, 8, 1))
	assert.True(t, IsLinear(8, 4, 2))
	assert.True(t, IsLinear(0, 1, 0))
	// Overlapping rows are not linear.
	assert.False(t, IsLinear(4, 8, 1))
	// Replication within a row is not linear.
	assert.False(t, IsLinear(8, 8, 0))
}

func TestRegion_Scalar(t *testing.T) {
	assert.True(t, IsScalarRegion(0, 1, 0))
	assert.False(t, IsScalarRegion(8, 8, 1))
	assert.False(t, IsScalarRegion(0, 1, 1))
}

// The worked example from the regioning documentation: a float region
// g_.1<4;2,2> executed over four channels touches bytes 4-7, 12-15, 20-23
// and 28-31.
func TestAccessMask_StridedFloat(t *testing.T) {
	mask := BuildAccessMask(4, 4, 4, 4, 2, 2, 32)

	expected := []uint{4, 12, 20, 28}
	for ch, base := range expected {
		for b := uint(0); b < 8; b++ {
			touched := mask.Channel(uint(ch)).Test(base + b)
			assert.Equal(t, b < 4, touched, "channel %d byte %d", ch, base+b)
		}
	}
	//
	assert.Equal(t, uint(1), mask.RegistersSpanned())
}

func TestAccessMask_PackedWithinOneRegister(t *testing.T) {
	// mov(8) with a packed dword destination at subregister 0.
	mask := BuildAccessMask(8, 4, 0, 8, 8, 1, 32)

	assert.Equal(t, uint(1), mask.RegistersSpanned())

	for ch := uint(0); ch < 8; ch++ {
		assert.False(t, mask.ChannelInUpperRegister(ch))
	}
}

func TestAccessMask_SpansTwoRegisters(t *testing.T) {
	// A packed qword region starting halfway into the register must spill
	// its upper half into the next register.
	mask := BuildAccessMask(4, 8, 16, 4, 4, 1, 32)

	assert.Equal(t, uint(2), mask.RegistersSpanned())
	assert.False(t, mask.ChannelInUpperRegister(0))
	assert.False(t, mask.ChannelInUpperRegister(1))
	assert.True(t, mask.ChannelInUpperRegister(2))
	assert.True(t, mask.ChannelInUpperRegister(3))
}

func TestAccessMask_EvenSplit(t *testing.T) {
	// A strided word destination over 16 channels splits evenly across two
	// registers: 8 channels below, 8 above.
	mask := BuildAccessMask(16, 2, 0, 32, 16, 2, 32)

	assert.Equal(t, uint(2), mask.RegistersSpanned())

	upper := 0
	for ch := uint(0); ch < 16; ch++ {
		if mask.ChannelInUpperRegister(ch) {
			upper++
		}
	}

	assert.Equal(t, 8, upper)
}

func TestAccessMask_RowShapeMustCoverExecSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a row shape not covering the execution size")
		}
	}()

	// A width of 8 cannot tile four channels.
	BuildAccessMask(4, 4, 0, 8, 8, 1, 32)
}
