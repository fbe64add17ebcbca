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

// Capability describes the target ISA generation and its feature flags.  It
// is constructed once per target, read-only thereafter, and shared by every
// validation call.  All "which generation allows what" knowledge lives in the
// predicate methods below rather than being scattered through the rule
// checkers.
type Capability struct {
	// Ver is the major ISA generation number (9, 11, 12, 20, ...).
	Ver uint
	// VerX10 is the generation scaled by ten, so that half steps such as
	// 12.5 are comparable (125).
	VerX10 uint
	// Has64BitFloat indicates DF operands are supported.
	Has64BitFloat bool
	// Has64BitInt indicates Q/UQ operands are supported.
	Has64BitInt bool
	// HasLSC indicates the unified load/store-cache shared functions exist.
	HasLSC bool
	// Is9LP marks the low-power gen9 parts, which carry extra
	// double-precision co-issue restrictions.
	Is9LP bool
	// RegUnit scales the native 32-byte register to the hardware register
	// size (2 on generations with 64-byte registers).
	RegUnit uint
}

// NewCapability constructs a descriptor for a given major generation with
// the flags that generation implies by default.  Callers with more precise
// device knowledge may adjust the flags before first use.
func NewCapability(ver uint) *Capability {
	p := &Capability{
		Ver:           ver,
		VerX10:        ver * 10,
		Has64BitFloat: ver < 11 || ver >= 12,
		Has64BitInt:   ver < 11 || ver >= 12,
		HasLSC:        ver >= 12,
		RegUnit:       1,
	}
	if ver >= 20 {
		p.RegUnit = 2
	}

	return p
}

// RegSizeBytes returns the size of one GRF register in bytes.
func (p *Capability) RegSizeBytes() uint {
	return 32 * p.RegUnit
}

// SupportsAlign16 reports whether the Align16 access mode still exists on
// this generation.
func (p *Capability) SupportsAlign16() bool {
	return p.Ver < 11
}

// SupportsAlign1Ternary reports whether 3-source instructions may use the
// Align1 encoding.
func (p *Capability) SupportsAlign1Ternary() bool {
	return p.Ver >= 10
}

// RequiresChannelOffsetAlignment reports whether the derived channel offset
// must be a multiple of the execution group size.
func (p *Capability) RequiresChannelOffsetAlignment() bool {
	return p.Ver >= 12
}

// SupportsSrc1ByteRegioning reports whether byte-sized types may still be
// used with src1 register regioning.
func (p *Capability) SupportsSrc1ByteRegioning() bool {
	return p.Ver < 11
}

// RestrictsIntMulSourceModifiers reports whether source modifiers are
// forbidden when multiplying a dword by a lower-precision integer.
func (p *Capability) RestrictsIntMulSourceModifiers() bool {
	return p.Ver >= 12
}

// RestrictsMixedFloatFullWidth reports whether mixed-float instructions with
// a 32-bit float destination are limited to SIMD8.
func (p *Capability) RestrictsMixedFloatFullWidth() bool {
	return p.Ver < 20
}

// EnforcesRegioningLsbStability reports whether the gen12.5+ rule applies
// that forbids regioning patterns which move the LSB bit position of a
// channel between source and destination.
func (p *Capability) EnforcesRegioningLsbStability() bool {
	return p.VerX10 >= 125
}

// SendsAreSplitSends reports whether every send-form instruction uses the
// split-send encoding.
func (p *Capability) SendsAreSplitSends() bool {
	return p.Ver >= 12
}

// SkipsVectorImmediateSendChecks reports whether vector-immediate rules are
// inapplicable to send forms (their "src1 type" bits mean something else).
func (p *Capability) SkipsVectorImmediateSendChecks() bool {
	return p.Ver >= 12
}

// UsesLegacyURBMessages reports whether URB messages still use the
// pre-unified descriptor layout with its own sub-opcode rules.
func (p *Capability) UsesLegacyURBMessages() bool {
	return p.Ver < 20
}

// SupportsURBFence reports whether the URB fence sub-opcode exists.
func (p *Capability) SupportsURBFence() bool {
	return p.VerX10 >= 125
}

// DpasExecSize returns the one legal execution size for DPAS.
func (p *Capability) DpasExecSize() uint {
	if p.Ver < 20 {
		return 8
	}

	return 16
}

// CselRestrictedToFloat reports whether CSEL only accepts 32-bit float
// operands on this generation.
func (p *Capability) CselRestrictedToFloat() bool {
	return p.Ver == 9
}
