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

// RegType identifies the declared data type of an operand.  The zero value is
// deliberately the invalid encoding, since a decoded instruction may well
// carry a type bit pattern which maps to nothing.
type RegType uint8

// The full set of operand data types.  V, UV and VF are the packed-vector
// immediate forms (eight 4-bit or four 8-bit elements in one dword).
const (
	TypeInvalid RegType = iota
	TypeUB
	TypeB
	TypeUW
	TypeW
	TypeUD
	TypeD
	TypeUQ
	TypeQ
	TypeHF
	TypeF
	TypeDF
	TypeV
	TypeUV
	TypeVF
)

// SizeBytes returns the size of one element of the given type.  The vector
// immediate forms report the size of the element they expand to.
func (t RegType) SizeBytes() uint {
	switch t {
	case TypeUB, TypeB:
		return 1
	case TypeUW, TypeW, TypeHF, TypeV, TypeUV:
		return 2
	case TypeUD, TypeD, TypeF, TypeVF:
		return 4
	case TypeUQ, TypeQ, TypeDF:
		return 8
	default:
		panic("size of invalid register type")
	}
}

// SizeBits returns the size of one element of the given type in bits.
func (t RegType) SizeBits() uint {
	return t.SizeBytes() * 8
}

// IsFloat determines whether this is a floating-point type.
func (t RegType) IsFloat() bool {
	switch t {
	case TypeHF, TypeF, TypeDF, TypeVF:
		return true
	default:
		return false
	}
}

// IsInt determines whether this is an integer type (signed or unsigned,
// including the integer vector immediates).
func (t RegType) IsInt() bool {
	switch t {
	case TypeUB, TypeB, TypeUW, TypeW, TypeUD, TypeD, TypeUQ, TypeQ, TypeV, TypeUV:
		return true
	default:
		return false
	}
}

// IsUint determines whether this is an unsigned integer type.
func (t RegType) IsUint() bool {
	switch t {
	case TypeUB, TypeUW, TypeUD, TypeUQ, TypeUV:
		return true
	default:
		return false
	}
}

// IsVectorImmediate determines whether this is one of the packed-vector
// immediate types.
func (t RegType) IsVectorImmediate() bool {
	return t == TypeV || t == TypeUV || t == TypeVF
}

// Signed maps an unsigned integer type to its signed counterpart, leaving
// every other type untouched.  Useful when signedness is irrelevant (e.g.
// when classifying raw moves).
func (t RegType) Signed() RegType {
	switch t {
	case TypeUB:
		return TypeB
	case TypeUW:
		return TypeW
	case TypeUD:
		return TypeD
	case TypeUQ:
		return TypeQ
	case TypeUV:
		return TypeV
	default:
		return t
	}
}

// ExecutionType returns the execution type a single operand of this type
// contributes to the instruction-wide execution type.
func (t RegType) ExecutionType() RegType {
	switch t {
	case TypeDF, TypeF, TypeHF:
		return t
	case TypeVF:
		return TypeF
	case TypeQ, TypeUQ:
		return TypeQ
	case TypeD, TypeUD:
		return TypeD
	case TypeW, TypeUW, TypeB, TypeUB, TypeV, TypeUV:
		return TypeW
	default:
		panic("execution type of invalid register type")
	}
}

func (t RegType) String() string {
	switch t {
	case TypeUB:
		return "ub"
	case TypeB:
		return "b"
	case TypeUW:
		return "uw"
	case TypeW:
		return "w"
	case TypeUD:
		return "ud"
	case TypeD:
		return "d"
	case TypeUQ:
		return "uq"
	case TypeQ:
		return "q"
	case TypeHF:
		return "hf"
	case TypeF:
		return "f"
	case TypeDF:
		return "df"
	case TypeV:
		return "v"
	case TypeUV:
		return "uv"
	case TypeVF:
		return "vf"
	default:
		return "invalid"
	}
}

// RegTypeFromString is the inverse of RegType.String, returning TypeInvalid
// for anything unrecognised.
func RegTypeFromString(s string) RegType {
	for t := TypeUB; t <= TypeVF; t++ {
		if t.String() == s {
			return t
		}
	}

	return TypeInvalid
}

// typesAreMixedFloat reports whether a combination of two types qualifies as
// mixed-float operation mode (one F, the other HF).
func typesAreMixedFloat(t0 RegType, t1 RegType) bool {
	return (t0 == TypeF && t1 == TypeHF) || (t1 == TypeF && t0 == TypeHF)
}
