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

// Opcode identifies the operation an instruction performs.
type Opcode uint8

// The instruction set.  Ordering is irrelevant; legality per generation is a
// Capability question, not an encoding question.
const (
	OpIllegal Opcode = iota
	OpSync
	OpMov
	OpSel
	OpMovi
	OpNot
	OpAnd
	OpOr
	OpXor
	OpShr
	OpShl
	OpSmov
	OpAsr
	OpRor
	OpRol
	OpCmp
	OpCmpn
	OpCsel
	OpBfrev
	OpBfe
	OpBfi1
	OpBfi2
	OpJmpi
	OpBrd
	OpIf
	OpBrc
	OpElse
	OpEndif
	OpWhile
	OpBreak
	OpCont
	OpHalt
	OpCalla
	OpCall
	OpRet
	OpGoto
	OpWait
	OpSend
	OpSendc
	OpSends
	OpSendsc
	OpMath
	OpAdd
	OpMul
	OpAvg
	OpFrc
	OpRndu
	OpRndd
	OpRnde
	OpRndz
	OpMac
	OpMach
	OpLzd
	OpFbh
	OpFbl
	OpCbit
	OpAddc
	OpSubb
	OpSad2
	OpSada2
	OpAdd3
	OpDp4
	OpDph
	OpDp3
	OpDp2
	OpDp4a
	OpDpas
	OpLine
	OpPln
	OpMad
	OpLrp
	OpMadm
	OpNop
)

// opcodeSpec records the operand shape of an opcode: how many sources it
// reads and whether it writes a destination.
type opcodeSpec struct {
	name string
	nsrc uint
	ndst uint
}

var opcodeSpecs = map[Opcode]opcodeSpec{
	OpIllegal: {"illegal", 0, 0},
	OpSync:    {"sync", 1, 0},
	OpMov:     {"mov", 1, 1},
	OpSel:     {"sel", 2, 1},
	OpMovi:    {"movi", 2, 1},
	OpNot:     {"not", 1, 1},
	OpAnd:     {"and", 2, 1},
	OpOr:      {"or", 2, 1},
	OpXor:     {"xor", 2, 1},
	OpShr:     {"shr", 2, 1},
	OpShl:     {"shl", 2, 1},
	OpSmov:    {"smov", 0, 0},
	OpAsr:     {"asr", 2, 1},
	OpRor:     {"ror", 2, 1},
	OpRol:     {"rol", 2, 1},
	OpCmp:     {"cmp", 2, 1},
	OpCmpn:    {"cmpn", 2, 1},
	OpCsel:    {"csel", 3, 1},
	OpBfrev:   {"bfrev", 1, 1},
	OpBfe:     {"bfe", 3, 1},
	OpBfi1:    {"bfi1", 2, 1},
	OpBfi2:    {"bfi2", 3, 1},
	OpJmpi:    {"jmpi", 1, 0},
	OpBrd:     {"brd", 0, 0},
	OpIf:      {"if", 0, 0},
	OpBrc:     {"brc", 0, 0},
	OpElse:    {"else", 0, 0},
	OpEndif:   {"endif", 0, 0},
	OpWhile:   {"while", 0, 0},
	OpBreak:   {"break", 0, 0},
	OpCont:    {"cont", 0, 0},
	OpHalt:    {"halt", 0, 0},
	OpCalla:   {"calla", 0, 1},
	OpCall:    {"call", 0, 1},
	OpRet:     {"ret", 1, 0},
	OpGoto:    {"goto", 0, 0},
	OpWait:    {"wait", 1, 0},
	OpSend:    {"send", 1, 1},
	OpSendc:   {"sendc", 1, 1},
	OpSends:   {"sends", 2, 1},
	OpSendsc:  {"sendsc", 2, 1},
	OpMath:    {"math", 2, 1},
	OpAdd:     {"add", 2, 1},
	OpMul:     {"mul", 2, 1},
	OpAvg:     {"avg", 2, 1},
	OpFrc:     {"frc", 1, 1},
	OpRndu:    {"rndu", 1, 1},
	OpRndd:    {"rndd", 1, 1},
	OpRnde:    {"rnde", 1, 1},
	OpRndz:    {"rndz", 1, 1},
	OpMac:     {"mac", 2, 1},
	OpMach:    {"mach", 2, 1},
	OpLzd:     {"lzd", 1, 1},
	OpFbh:     {"fbh", 1, 1},
	OpFbl:     {"fbl", 1, 1},
	OpCbit:    {"cbit", 1, 1},
	OpAddc:    {"addc", 2, 1},
	OpSubb:    {"subb", 2, 1},
	OpSad2:    {"sad2", 2, 1},
	OpSada2:   {"sada2", 2, 1},
	OpAdd3:    {"add3", 3, 1},
	OpDp4:     {"dp4", 2, 1},
	OpDph:     {"dph", 2, 1},
	OpDp3:     {"dp3", 2, 1},
	OpDp2:     {"dp2", 2, 1},
	OpDp4a:    {"dp4a", 3, 1},
	OpDpas:    {"dpas", 3, 1},
	OpLine:    {"line", 2, 1},
	OpPln:     {"pln", 2, 1},
	OpMad:     {"mad", 3, 1},
	OpLrp:     {"lrp", 3, 1},
	OpMadm:    {"madm", 3, 1},
	OpNop:     {"nop", 0, 0},
}

// String returns the assembly mnemonic of this opcode.
func (op Opcode) String() string {
	if spec, ok := opcodeSpecs[op]; ok {
		return spec.name
	}

	return "illegal"
}

// OpcodeFromString is the inverse of Opcode.String, returning OpIllegal for
// anything unrecognised.
func OpcodeFromString(s string) Opcode {
	for op, spec := range opcodeSpecs {
		if spec.name == s {
			return op
		}
	}

	return OpIllegal
}

// HasDst reports whether this opcode writes a destination operand.
func (op Opcode) HasDst() bool {
	return opcodeSpecs[op].ndst != 0
}

// IsLogic reports whether this is one of the bitwise logic opcodes, which
// share a common set of modifier restrictions.
func (op Opcode) IsLogic() bool {
	switch op {
	case OpAnd, OpOr, OpXor, OpNot:
		return true
	default:
		return false
	}
}
