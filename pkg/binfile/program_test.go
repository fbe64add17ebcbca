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
package binfile

import (
	"testing"

	"github.com/consensys/go-euval/pkg/eu"
	"github.com/consensys/go-euval/pkg/eu/validate"
	"github.com/consensys/go-euval/pkg/util/assert"
)

func mustUnits(t *testing.T, data string) (*Program, []validate.Unit) {
	t.Helper()

	program, err := ProgramFromJson([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	units, err := program.Units()
	if err != nil {
		t.Fatal(err)
	}

	return program, units
}

func TestProgram_ValidateStream(t *testing.T) {
	program, units := mustUnits(t, `{
		"platform": 120,
		"instructions": [
			{
				"opcode": "add", "exec_size": 8,
				"dst":  {"file": "grf", "type": "d", "reg": 10, "hstride": 1},
				"srcs": [
					{"file": "grf", "type": "d", "reg": 2, "vstride": 8, "width": 8, "hstride": 1},
					{"file": "grf", "type": "d", "reg": 3, "vstride": 8, "width": 8, "hstride": 1}
				]
			},
			{
				"opcode": "mov", "exec_size": 3,
				"dst":  {"file": "grf", "type": "f", "reg": 10, "hstride": 1},
				"srcs": [
					{"file": "grf", "type": "f", "reg": 2, "vstride": 8, "width": 8, "hstride": 1}
				]
			}
		]
	}`)

	cap := program.Capability()
	assert.Equal(t, uint(12), cap.Ver)
	assert.Equal(t, uint(120), cap.VerX10)
	assert.False(t, cap.Is9LP)

	assert.Equal(t, 2, len(units))
	assert.Equal(t, 0, units[0].Offset)
	assert.Equal(t, 16, units[1].Offset)

	result := validate.Sequence(cap, units, nil)
	assert.False(t, result.AllValid)
	assert.Equal(t, 0, len(result.Instructions[0].Diagnostics))
	assert.Equal(t, "invalid execution size",
		result.Instructions[1].Diagnostics[0].Message)
}

func TestProgram_LowPowerPlatform(t *testing.T) {
	program, _ := mustUnits(t, `{"platform": 90, "lowp": true, "instructions": []}`)

	cap := program.Capability()
	assert.Equal(t, uint(9), cap.Ver)
	assert.True(t, cap.Is9LP)

	// The low-power marker only means something on gen9.
	program.Platform = 110
	assert.False(t, program.Capability().Is9LP)
}

func TestProgram_MissingPlatform(t *testing.T) {
	_, err := ProgramFromJson([]byte(`{"instructions": []}`))
	if err == nil {
		t.Fatal("expected an error for a program without a platform")
	}
}

func TestProgram_CompactOffsets(t *testing.T) {
	_, units := mustUnits(t, `{
		"platform": 90,
		"instructions": [
			{"opcode": "nop", "exec_size": 1, "compact": true},
			{"opcode": "nop", "exec_size": 1}
		]
	}`)

	assert.Equal(t, 8, units[0].Size)
	assert.Equal(t, 8, units[1].Offset)
	assert.Equal(t, 16, units[1].Size)
}

func TestProgram_SendControls(t *testing.T) {
	_, units := mustUnits(t, `{
		"platform": 125,
		"instructions": [
			{
				"opcode": "send", "exec_size": 8,
				"dst":  {"file": "arf", "type": "ud", "reg": 0},
				"srcs": [
					{"file": "grf", "type": "ud", "reg": 2},
					{"file": "arf", "type": "ud", "reg": 0}
				],
				"send": {"sfid": "ugm", "desc": 33554432, "eot": false, "header": true}
			}
		]
	}`)

	send := units[0].Inst.Send
	assert.Equal(t, eu.SfidUGM, send.SFID)
	assert.Equal(t, uint32(1)<<25, send.Desc)
	assert.True(t, send.HeaderPresent)
	assert.False(t, send.DescIsReg)
}

func TestProgram_DpasControls(t *testing.T) {
	_, units := mustUnits(t, `{
		"platform": 125,
		"instructions": [
			{
				"opcode": "dpas", "exec_size": 8,
				"dst":  {"file": "grf", "type": "d", "reg": 10, "hstride": 1},
				"srcs": [
					{"file": "grf", "type": "d", "reg": 2},
					{"file": "grf", "type": "b", "reg": 3},
					{"file": "grf", "type": "b", "reg": 4}
				],
				"dpas": {"sdepth": 8, "src2_precision": "4bit"}
			}
		]
	}`)

	dpas := units[0].Inst.Dpas
	assert.Equal(t, uint(8), dpas.SDepth)
	assert.Equal(t, eu.SubByteNone, dpas.Src1SubByte)
	assert.Equal(t, eu.SubByte4Bit, dpas.Src2SubByte)
	assert.False(t, dpas.FloatExecType)
}

func TestProgram_TranslationErrors(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"unknown register file", `{"platform": 90, "instructions": [
			{"opcode": "mov", "exec_size": 8,
			 "dst": {"file": "mrf", "type": "f", "reg": 1, "hstride": 1},
			 "srcs": [{"file": "grf", "type": "f", "reg": 2}]}]}`},
		{"unknown shared function", `{"platform": 90, "instructions": [
			{"opcode": "send", "exec_size": 8,
			 "dst": {"file": "arf", "type": "ud", "reg": 0},
			 "srcs": [{"file": "grf", "type": "ud", "reg": 2}],
			 "send": {"sfid": "pixel"}}]}`},
		{"send without send controls", `{"platform": 90, "instructions": [
			{"opcode": "send", "exec_size": 8,
			 "dst": {"file": "arf", "type": "ud", "reg": 0},
			 "srcs": [{"file": "grf", "type": "ud", "reg": 2}]}]}`},
		{"dpas without dpas controls", `{"platform": 125, "instructions": [
			{"opcode": "dpas", "exec_size": 8,
			 "dst": {"file": "grf", "type": "d", "reg": 10, "hstride": 1},
			 "srcs": [{"file": "grf", "type": "d", "reg": 2},
			          {"file": "grf", "type": "b", "reg": 3},
			          {"file": "grf", "type": "b", "reg": 4}]}]}`},
		{"unknown condition modifier", `{"platform": 90, "instructions": [
			{"opcode": "cmp", "exec_size": 8, "cond_mod": "gt",
			 "dst": {"file": "arf", "type": "d", "reg": 0},
			 "srcs": [{"file": "grf", "type": "d", "reg": 2},
			          {"file": "grf", "type": "d", "reg": 3}]}]}`},
		{"unknown math function", `{"platform": 90, "instructions": [
			{"opcode": "math", "exec_size": 8, "math": "tan",
			 "dst": {"file": "grf", "type": "f", "reg": 10, "hstride": 1},
			 "srcs": [{"file": "grf", "type": "f", "reg": 2}]}]}`},
		{"too many sources", `{"platform": 90, "instructions": [
			{"opcode": "mad", "exec_size": 8,
			 "dst": {"file": "grf", "type": "f", "reg": 10, "hstride": 1},
			 "srcs": [{"file": "grf", "type": "f", "reg": 2},
			          {"file": "grf", "type": "f", "reg": 3},
			          {"file": "grf", "type": "f", "reg": 4},
			          {"file": "grf", "type": "f", "reg": 5}]}]}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			program, err := ProgramFromJson([]byte(c.json))
			if err != nil {
				t.Fatal(err)
			}

			if _, err := program.Units(); err == nil {
				t.Fatal("expected a translation error")
			}
		})
	}
}

func TestProgram_UnknownOpcodeIsDiagnosed(t *testing.T) {
	// An unrecognised mnemonic translates rather than erroring, so the
	// validator can report it the way the hardware would see it.
	program, units := mustUnits(t, `{
		"platform": 90,
		"instructions": [{"opcode": "frobnicate", "exec_size": 8}]
	}`)

	result := validate.Sequence(program.Capability(), units, nil)
	assert.False(t, result.AllValid)
	assert.Equal(t, "Instruction not supported on this Gen",
		result.Instructions[0].Diagnostics[0].Message)
}
