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

// Package validate checks already-encoded EU instructions against the
// documented encoding and regioning restrictions of the target generation.
// It is a read-only classifier: it never fixes anything, never aborts the
// stream, and reports every violation it can find for every instruction.
package validate

import (
	"github.com/consensys/go-euval/pkg/eu"
	log "github.com/sirupsen/logrus"
)

// checker is the contract every rule group satisfies: inspect one decoded
// instruction against the capability descriptor and record violations.
// Checkers never mutate the instruction.
type checker func(cap *eu.Capability, inst *eu.Instruction, errs *Diagnostics)

// The fixed evaluation order.  Later checkers assume the value-validity
// checks of the first have passed, since they decode type and region fields
// which might otherwise be garbage.
var checkers = []checker{
	sourcesNotNull,
	alignmentSupported,
	generalRestrictionsBasedOnOperandTypes,
	generalRestrictionsOnRegionParameters,
	specialRestrictionsForMixedFloatMode,
	regionAlignmentRules,
	vectorImmediateRestrictions,
	specialRequirementsForHandlingDoublePrecisionDataTypes,
	sendRestrictions,
	instructionRestrictions,
	sendDescriptorRestrictions,
}

// Instruction validates a single decoded instruction, returning every
// violation found.  An empty result means the encoding is legal.
func Instruction(cap *eu.Capability, inst *eu.Instruction) []Diagnostic {
	var errs Diagnostics
	//
	if inst.Opcode == eu.OpIllegal {
		errs.Add("Instruction not supported on this Gen")
		return errs.Items()
	}
	// Value validity gates everything else: an invalid execution size or
	// type encoding means later rules would be reasoning about garbage.
	invalidValues(cap, inst, &errs)
	if !errs.IsEmpty() {
		return errs.Items()
	}
	//
	for _, check := range checkers {
		check(cap, inst, &errs)
	}
	//
	return errs.Items()
}

// Decoder is the collaborator that expands raw instruction bytes at a given
// offset into the canonical decoded view, reporting the encoded size and
// whether the instruction was found in compact form.  Compact forms must be
// expanded to the full field layout before being returned.
type Decoder interface {
	DecodeAt(assembly []byte, offset int) (inst *eu.Instruction, size int, compact bool)
}

// Reporter is an optional sink invoked once per instruction with a
// non-empty diagnostic list.
type Reporter func(offset int, size int, message string)

// Unit pairs one decoded instruction with its position in the stream.
type Unit struct {
	Inst   *eu.Instruction
	Offset int
	Size   int
}

// InstructionResult records the outcome for one instruction of a stream.
type InstructionResult struct {
	Offset      int
	Size        int
	Diagnostics []Diagnostic
}

// Result aggregates a stream validation.  AllValid gates whether the
// stream may be uploaded to hardware.
type Result struct {
	Instructions []InstructionResult
	AllValid     bool
}

// Sequence validates an already-decoded instruction sequence in order.
func Sequence(cap *eu.Capability, units []Unit, report Reporter) Result {
	result := Result{AllValid: true}
	//
	for _, unit := range units {
		diags := Instruction(cap, unit.Inst)
		//
		if len(diags) != 0 {
			result.AllValid = false
			//
			log.Debugf("instruction %s at offset %d: %d violation(s)",
				unit.Inst.Opcode, unit.Offset, len(diags))
			//
			if report != nil {
				var errs Diagnostics
				for _, d := range diags {
					errs.Add(d.Message)
				}

				report(unit.Offset, unit.Size, errs.String())
			}
		}
		//
		result.Instructions = append(result.Instructions, InstructionResult{
			Offset:      unit.Offset,
			Size:        unit.Size,
			Diagnostics: diags,
		})
	}
	//
	return result
}

// Stream validates the instructions encoded in assembly between the two
// byte offsets, decoding each (and expanding compact forms) through the
// supplied decoder.
func Stream(cap *eu.Capability, decoder Decoder, assembly []byte,
	startOffset int, endOffset int, report Reporter) Result {
	var units []Unit
	//
	for offset := startOffset; offset < endOffset; {
		inst, size, compact := decoder.DecodeAt(assembly, offset)
		if compact {
			log.Tracef("expanded compact instruction at offset %d", offset)
		}
		//
		units = append(units, Unit{inst, offset, size})
		offset += size
	}
	//
	return Sequence(cap, units, report)
}
