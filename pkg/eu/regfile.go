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

// RegFile identifies the register file an operand addresses.
type RegFile uint8

// The three operand register files.
const (
	// FileArch is the architecture register file (null, address, accumulator,
	// flag, ...).
	FileArch RegFile = iota
	// FileGeneral is the general register file (GRF).
	FileGeneral
	// FileImmediate means the operand is an immediate value, not a register.
	FileImmediate
)

// Architecture register base numbers.  An ARF operand's register number
// selects the register class in its high nibble.
const (
	ArfNull        uint = 0x00
	ArfAddress     uint = 0x10
	ArfAccumulator uint = 0x20
	ArfFlag        uint = 0x30
)

// AccessMode distinguishes the two region addressing/encoding modes.
type AccessMode uint8

// Align1 is the general-purpose mode; Align16 is the legacy SIMD4-style
// replicated mode, removed from the hardware in later generations.
const (
	Align1 AccessMode = iota
	Align16
)

// AddressMode distinguishes direct from register-indirect operand
// addressing.
type AddressMode uint8

// Operand address modes.
const (
	AddressDirect AddressMode = iota
	AddressIndirect
)

// Conditional is the condition modifier attached to an instruction.
type Conditional uint8

// Condition modifier codes.  CondR is reserved in the documentation but
// still representable in the encoding.
const (
	CondNone Conditional = iota
	CondZ
	CondNZ
	CondG
	CondGE
	CondL
	CondLE
	CondR
	CondO
	CondU
)

// Predicate is the predication control attached to an instruction.  Only
// none-vs-some matters for validation, but the sequential and swizzled
// controls are kept distinct for the decoded view.
type Predicate uint8

// Predication controls.
const (
	PredNone Predicate = iota
	PredNormal
	PredAnyV
	PredAllV
)

// MathFunction selects the sub-function of the MATH opcode.
type MathFunction uint8

// MATH sub-functions.
const (
	MathInv MathFunction = iota + 1
	MathLog
	MathExp
	MathSqrt
	MathRsq
	MathSin
	MathCos
	_
	MathFdiv
	MathPow
	MathIntDivQuotientAndRemainder
	MathIntDivQuotient
	MathIntDivRemainder
	MathInvm
	MathRsqrtm
)

// NumSources returns the number of sources the MATH opcode reads when
// executing this sub-function.
func (m MathFunction) NumSources() uint {
	switch m {
	case MathFdiv, MathPow, MathIntDivQuotientAndRemainder,
		MathIntDivQuotient, MathIntDivRemainder, MathInvm:
		return 2
	default:
		return 1
	}
}

// IsIntDiv reports whether this is one of the integer-division
// sub-functions.
func (m MathFunction) IsIntDiv() bool {
	switch m {
	case MathIntDivQuotientAndRemainder, MathIntDivQuotient, MathIntDivRemainder:
		return true
	default:
		return false
	}
}

// SharedFunction identifies the fixed-function unit a send-form instruction
// targets (the SFID field of the message descriptor).
type SharedFunction uint8

// Shared function IDs referenced by the descriptor rules.
const (
	SfidNull    SharedFunction = 0
	SfidSampler SharedFunction = 2
	SfidGateway SharedFunction = 3
	SfidDP      SharedFunction = 4
	SfidURB     SharedFunction = 6
	SfidTGM     SharedFunction = 13
	SfidSLM     SharedFunction = 14
	SfidUGM     SharedFunction = 15
)

// SubBytePrecision is the DPAS sub-byte element precision for src1/src2.
type SubBytePrecision uint8

// DPAS sub-byte precisions.  The numeric value is the right-shift applied to
// the base type's bit width.
const (
	SubByteNone SubBytePrecision = 0
	SubByte4Bit SubBytePrecision = 1
	SubByte2Bit SubBytePrecision = 2
)
