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

// Bitfield views over immediate send message descriptors.  These mirror the
// hardware descriptor layout and are only meaningful when the descriptor is
// an immediate; register-indirect descriptors cannot be inspected
// statically.

// MessageDescMlen extracts the message length (in registers) of a
// descriptor.
func MessageDescMlen(desc uint32) uint {
	return uint((desc >> 25) & 0xF)
}

// MessageDescRlen extracts the response length (in registers) of a
// descriptor.
func MessageDescRlen(desc uint32) uint {
	return uint((desc >> 20) & 0x1F)
}

// MessageExDescExMlen extracts the extended message length (in registers)
// of an extended descriptor.
func MessageExDescExMlen(exDesc uint32) uint {
	return uint((exDesc >> 6) & 0x1F)
}

// LscOpcode is a load/store-cache message opcode.
type LscOpcode uint

// The LSC opcodes the validator cares about.
const (
	LscOpLoad  LscOpcode = 0x00
	LscOpStore LscOpcode = 0x04
	LscOpFence LscOpcode = 0x1F
)

// LscMsgOpcode extracts the LSC operation of a descriptor.
func LscMsgOpcode(desc uint32) LscOpcode {
	return LscOpcode(desc & 0x3F)
}

// LscMsgTranspose extracts the LSC transpose bit of a descriptor.
func LscMsgTranspose(desc uint32) bool {
	return (desc>>15)&1 != 0
}

// HasTranspose reports whether the LSC operation supports the transpose
// data ordering at all.
func (op LscOpcode) HasTranspose() bool {
	return op == LscOpLoad || op == LscOpStore
}

// UrbOpcode is a legacy URB message sub-opcode.
type UrbOpcode uint

// Legacy URB sub-opcodes.
const (
	UrbOpAtomicMov  UrbOpcode = 4
	UrbOpAtomicInc  UrbOpcode = 5
	UrbOpAtomicAdd  UrbOpcode = 6
	UrbOpSimd8Write UrbOpcode = 7
	UrbOpSimd8Read  UrbOpcode = 8
	UrbOpFence      UrbOpcode = 9
)

// UrbMsgOpcode extracts the URB sub-opcode of a legacy descriptor.
func UrbMsgOpcode(desc uint32) UrbOpcode {
	return UrbOpcode(desc & 0xF)
}
