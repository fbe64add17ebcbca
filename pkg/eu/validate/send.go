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
	"github.com/consensys/go-euval/pkg/eu"
)

// The last sixteen general registers are reserved for end-of-thread
// payloads.
const eotFirstReg = 112

// The general register file holds 128 registers.
const lastGrfReg = 127

// sendRestrictions checks the operand rules of the send forms: payload
// register classes, end-of-thread register placement, and payload overlap.
func sendRestrictions(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	if inst.IsSplitSend(cap) {
		send := inst.SendInfo()

		errs.AddIf(inst.Src[1].File == eu.FileArch &&
			inst.Src[1].Reg != eu.ArfNull,
			"src1 of split send must be a GRF or NULL")

		errs.AddIf(send.EOT && inst.Src[0].Reg < eotFirstReg,
			"send with EOT must use g112-g127")
		errs.AddIf(send.EOT && inst.Src[1].File == eu.FileGeneral &&
			inst.Src[1].Reg < eotFirstReg,
			"send with EOT must use g112-g127")

		if inst.Src[0].File == eu.FileGeneral && inst.Src[1].File == eu.FileGeneral {
			// Assume minimum payload lengths when the descriptor is held in
			// a register and cannot be inspected.
			mlen := uint(1)
			if !send.DescIsReg {
				mlen = eu.MessageDescMlen(send.Desc) / cap.RegUnit
			}

			exMlen := uint(1)
			if !send.ExDescIsReg {
				exMlen = eu.MessageExDescExMlen(send.ExDesc) / cap.RegUnit
			}

			src0Reg := inst.Src[0].Reg
			src1Reg := inst.Src[1].Reg
			errs.AddIf((src0Reg <= src1Reg && src1Reg < src0Reg+mlen) ||
				(src1Reg <= src0Reg && src0Reg < src1Reg+exMlen),
				"split send payloads must not overlap")
		}
	} else if inst.IsSend() {
		send := inst.SendInfo()

		errs.AddIf(inst.Src[0].AddrMode != eu.AddressDirect,
			"send must use direct addressing")

		errs.AddIf(inst.Src[0].File != eu.FileGeneral, "send from non-GRF")

		errs.AddIf(send.EOT && inst.Src[0].Reg < eotFirstReg,
			"send with EOT must use g112-g127")

		// Payload lengths can only be read off an immediate descriptor.
		errs.AddIf(!send.DescIsReg && !inst.Dst.IsNull() &&
			(inst.Dst.Reg+eu.MessageDescRlen(send.Desc) > lastGrfReg) &&
			(inst.Src[0].Reg+eu.MessageDescMlen(send.Desc) > inst.Dst.Reg),
			"r127 must not be used for return address when there is "+
				"a src and dest overlap")
	}
}

// sendDescriptorRestrictions checks message-descriptor rules.  Only
// immediate descriptors can be validated; register-indirect ones are the
// business of whatever filled the register.
func sendDescriptorRestrictions(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics) {
	if inst.IsSplitSend(cap) {
		if inst.SendInfo().DescIsReg {
			return
		}
	} else if inst.IsSend() {
		if inst.SendInfo().DescIsReg {
			return
		}
	} else {
		return
	}

	send := inst.SendInfo()
	desc := send.Desc

	lscSfid := send.SFID == eu.SfidTGM || send.SFID == eu.SfidSLM ||
		send.SFID == eu.SfidUGM ||
		(send.SFID == eu.SfidURB && !cap.UsesLegacyURBMessages())

	if lscSfid {
		errs.AddIf(!cap.HasLSC, "Platform does not support LSC")

		errs.AddIf(eu.LscMsgOpcode(desc).HasTranspose() &&
			eu.LscMsgTranspose(desc) &&
			inst.ExecSize != 1,
			"Transposed vectors are restricted to Exec_Mask = 1.")
	}

	if send.SFID == eu.SfidURB && cap.UsesLegacyURBMessages() {
		errs.AddIf(!send.HeaderPresent,
			"Header must be present for all URB messages.")

		switch eu.UrbMsgOpcode(desc) {
		case eu.UrbOpAtomicInc, eu.UrbOpAtomicMov, eu.UrbOpAtomicAdd,
			eu.UrbOpSimd8Write:

		case eu.UrbOpSimd8Read:
			errs.AddIf(eu.MessageDescRlen(desc) == 0,
				"URB SIMD8 read message must read some data.")

		case eu.UrbOpFence:
			errs.AddIf(!cap.SupportsURBFence(),
				"URB fence message only valid on gfx >= 12.5")

		default:
			errs.Add("Invalid URB message")
		}
	}
}
