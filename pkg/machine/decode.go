// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"fmt"

	"github.com/lassandro/gochip8/pkg/encoding"
)

var opNames = [OP_COUNT]string{
	OP_UNKNOWN:   "???",
	OP_CLS:       "CLS",
	OP_RET:       "RET",
	OP_JP:        "JP",
	OP_CALL:      "CALL",
	OP_SE_BYTE:   "SE",
	OP_SNE_BYTE:  "SNE",
	OP_SE_REG:    "SE",
	OP_LD_BYTE:   "LD",
	OP_ADD_BYTE:  "ADD",
	OP_LD_REG:    "LD",
	OP_OR:        "OR",
	OP_AND:       "AND",
	OP_XOR:       "XOR",
	OP_ADD_REG:   "ADD",
	OP_SUB:       "SUB",
	OP_SHR:       "SHR",
	OP_SUBN:      "SUBN",
	OP_SHL:       "SHL",
	OP_SNE_REG:   "SNE",
	OP_LD_I:      "LD",
	OP_JP_V0:     "JP",
	OP_RND:       "RND",
	OP_DRW:       "DRW",
	OP_SKP:       "SKP",
	OP_SKNP:      "SKNP",
	OP_LD_VX_DT:  "LD",
	OP_LD_VX_K:   "LD",
	OP_LD_DT_VX:  "LD",
	OP_LD_ST_VX:  "LD",
	OP_ADD_I:     "ADD",
	OP_LD_F:      "LD",
	OP_LD_B:      "LD",
	OP_LD_MEM_VX: "LD",
	OP_LD_VX_MEM: "LD",
}

func (op Op) String() string {
	if op >= OP_COUNT {
		return opNames[OP_UNKNOWN]
	}

	return opNames[op]
}

// Decodes an instruction word by its leading nibble, falling back to the
// trailing nibble (5, 8, 9) or low byte (0, E, F) where the leading nibble
// is shared.
func Decode(opcode uint16) Instruction {
	in := Instruction{
		Opcode: opcode,
		X:      encoding.Nibble(opcode, 1),
		Y:      encoding.Nibble(opcode, 2),
		N:      encoding.Nibble(opcode, 3),
		NN:     encoding.LowByte(opcode),
		NNN:    encoding.Address(opcode),
	}

	switch encoding.Nibble(opcode, 0) {
	case 0x0:
		switch opcode {
		case 0x00E0:
			in.Op = OP_CLS
		case 0x00EE:
			in.Op = OP_RET
		}

	case 0x1:
		in.Op = OP_JP

	case 0x2:
		in.Op = OP_CALL

	case 0x3:
		in.Op = OP_SE_BYTE

	case 0x4:
		in.Op = OP_SNE_BYTE

	case 0x5:
		if in.N == 0x0 {
			in.Op = OP_SE_REG
		}

	case 0x6:
		in.Op = OP_LD_BYTE

	case 0x7:
		in.Op = OP_ADD_BYTE

	case 0x8:
		switch in.N {
		case 0x0:
			in.Op = OP_LD_REG
		case 0x1:
			in.Op = OP_OR
		case 0x2:
			in.Op = OP_AND
		case 0x3:
			in.Op = OP_XOR
		case 0x4:
			in.Op = OP_ADD_REG
		case 0x5:
			in.Op = OP_SUB
		case 0x6:
			in.Op = OP_SHR
		case 0x7:
			in.Op = OP_SUBN
		case 0xE:
			in.Op = OP_SHL
		}

	case 0x9:
		if in.N == 0x0 {
			in.Op = OP_SNE_REG
		}

	case 0xA:
		in.Op = OP_LD_I

	case 0xB:
		in.Op = OP_JP_V0

	case 0xC:
		in.Op = OP_RND

	case 0xD:
		in.Op = OP_DRW

	case 0xE:
		switch in.NN {
		case 0x9E:
			in.Op = OP_SKP
		case 0xA1:
			in.Op = OP_SKNP
		}

	case 0xF:
		switch in.NN {
		case 0x07:
			in.Op = OP_LD_VX_DT
		case 0x0A:
			in.Op = OP_LD_VX_K
		case 0x15:
			in.Op = OP_LD_DT_VX
		case 0x18:
			in.Op = OP_LD_ST_VX
		case 0x1E:
			in.Op = OP_ADD_I
		case 0x29:
			in.Op = OP_LD_F
		case 0x33:
			in.Op = OP_LD_B
		case 0x55:
			in.Op = OP_LD_MEM_VX
		case 0x65:
			in.Op = OP_LD_VX_MEM
		}
	}

	return in
}

// Formats the instruction in conventional assembler syntax, unknown words as
// a data directive.
func (in Instruction) String() string {
	name := in.Op.String()

	switch in.Op {
	case OP_UNKNOWN:
		return fmt.Sprintf("DW 0x%04x", in.Opcode)
	case OP_CLS, OP_RET:
		return name
	case OP_JP, OP_CALL:
		return fmt.Sprintf("%s 0x%03x", name, in.NNN)
	case OP_JP_V0:
		return fmt.Sprintf("%s V0, 0x%03x", name, in.NNN)
	case OP_LD_I:
		return fmt.Sprintf("%s I, 0x%03x", name, in.NNN)
	case OP_SE_BYTE, OP_SNE_BYTE, OP_LD_BYTE, OP_ADD_BYTE, OP_RND:
		return fmt.Sprintf("%s V%X, 0x%02x", name, in.X, in.NN)
	case OP_SHR, OP_SHL, OP_SKP, OP_SKNP:
		return fmt.Sprintf("%s V%X", name, in.X)
	case OP_DRW:
		return fmt.Sprintf("%s V%X, V%X, %d", name, in.X, in.Y, in.N)
	case OP_LD_VX_DT:
		return fmt.Sprintf("%s V%X, DT", name, in.X)
	case OP_LD_VX_K:
		return fmt.Sprintf("%s V%X, K", name, in.X)
	case OP_LD_DT_VX:
		return fmt.Sprintf("%s DT, V%X", name, in.X)
	case OP_LD_ST_VX:
		return fmt.Sprintf("%s ST, V%X", name, in.X)
	case OP_ADD_I:
		return fmt.Sprintf("%s I, V%X", name, in.X)
	case OP_LD_F:
		return fmt.Sprintf("%s F, V%X", name, in.X)
	case OP_LD_B:
		return fmt.Sprintf("%s B, V%X", name, in.X)
	case OP_LD_MEM_VX:
		return fmt.Sprintf("%s [I], V%X", name, in.X)
	case OP_LD_VX_MEM:
		return fmt.Sprintf("%s V%X, [I]", name, in.X)
	}

	return fmt.Sprintf("%s V%X, V%X", name, in.X, in.Y)
}
