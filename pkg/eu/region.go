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
	"github.com/bits-and-blooms/bitset"
)

// IsPacked returns whether a region is packed, i.e. its elements are
// adjacent in memory with no intervening space, no overlap and no
// replication.
func IsPacked(vstride, width, hstride uint) bool {
	if vstride == width {
		if vstride == 1 {
			return hstride == 0
		}

		return hstride == 1
	}

	return false
}

// IsLinear returns whether a region is linear, i.e. its elements do not
// overlap and are not replicated.  Unlike a packed region, intervening space
// (strided values) is allowed.
func IsLinear(vstride, width, hstride uint) bool {
	return vstride == width*hstride || (hstride == 0 && width == 1)
}

// IsScalarRegion returns whether a region is the scalar broadcast <0;1,0>.
func IsScalarRegion(vstride, width, hstride uint) bool {
	return vstride == 0 && width == 1 && hstride == 0
}

// AccessMask records, per execution channel, which bytes of the (at most
// two) registers a region spans are touched by that channel.  Bit k of a
// channel mask corresponds to byte k modulo twice the register size.
type AccessMask struct {
	regSize  uint
	channels []*bitset.BitSet
}

// BuildAccessMask computes the access mask of a region for a given
// execution size, element size and sub-register byte offset.  Channels are
// filled row-major: all columns of row 0, then row 1, and so on; the row
// base advances by the vertical stride.  The caller must supply a region
// whose row structure covers the execution size exactly; anything else is a
// checker bug, not a hardware violation.
func BuildAccessMask(execSize, elementSize, subreg, vstride, width, hstride, regSize uint) AccessMask {
	window := 2 * regSize
	channels := make([]*bitset.BitSet, 0, execSize)
	rowbase := subreg

	for y := uint(0); y < execSize/width; y++ {
		offset := rowbase

		for x := uint(0); x < width; x++ {
			mask := bitset.New(window)
			for b := uint(0); b < elementSize; b++ {
				mask.Set((offset + b) % window)
			}

			channels = append(channels, mask)
			offset += hstride * elementSize
		}

		rowbase += vstride * elementSize
	}

	if uint(len(channels)) != execSize {
		panic("access mask does not cover the execution size")
	}

	return AccessMask{regSize, channels}
}

// Channel returns the byte mask of the given execution channel.
func (p *AccessMask) Channel(i uint) *bitset.BitSet {
	return p.channels[i]
}

// ChannelInUpperRegister reports whether the given channel touches any byte
// of the second register.
func (p *AccessMask) ChannelInUpperRegister(i uint) bool {
	next, ok := p.channels[i].NextSet(p.regSize)
	return ok && next < 2*p.regSize
}

// RegistersSpanned returns how many registers the region touches: 0 when
// nothing is accessed, 1 when every byte falls within the first register,
// and 2 as soon as any byte falls in the second.
func (p *AccessMask) RegistersSpanned() uint {
	spanned := uint(0)

	for i := range p.channels {
		if p.ChannelInUpperRegister(uint(i)) {
			return 2
		} else if p.channels[i].Any() {
			spanned = 1
		}
	}

	return spanned
}
