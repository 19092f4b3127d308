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
	"github.com/lassandro/gochip8/pkg/encoding"
)

type executor func(mc *Machine, in Instruction) error

// Indexed by Op. The program counter already points past the instruction
// when an executor runs.
var executors = [OP_COUNT]executor{
	OP_UNKNOWN:   (*Machine).execUnknown,
	OP_CLS:       (*Machine).execCLS,
	OP_RET:       (*Machine).execRET,
	OP_JP:        (*Machine).execJP,
	OP_CALL:      (*Machine).execCALL,
	OP_SE_BYTE:   (*Machine).execSEByte,
	OP_SNE_BYTE:  (*Machine).execSNEByte,
	OP_SE_REG:    (*Machine).execSEReg,
	OP_LD_BYTE:   (*Machine).execLDByte,
	OP_ADD_BYTE:  (*Machine).execADDByte,
	OP_LD_REG:    (*Machine).execLDReg,
	OP_OR:        (*Machine).execOR,
	OP_AND:       (*Machine).execAND,
	OP_XOR:       (*Machine).execXOR,
	OP_ADD_REG:   (*Machine).execADDReg,
	OP_SUB:       (*Machine).execSUB,
	OP_SHR:       (*Machine).execSHR,
	OP_SUBN:      (*Machine).execSUBN,
	OP_SHL:       (*Machine).execSHL,
	OP_SNE_REG:   (*Machine).execSNEReg,
	OP_LD_I:      (*Machine).execLDI,
	OP_JP_V0:     (*Machine).execJPV0,
	OP_RND:       (*Machine).execRND,
	OP_DRW:       (*Machine).execDRW,
	OP_SKP:       (*Machine).execSKP,
	OP_SKNP:      (*Machine).execSKNP,
	OP_LD_VX_DT:  (*Machine).execLDVxDT,
	OP_LD_VX_K:   (*Machine).execLDVxK,
	OP_LD_DT_VX:  (*Machine).execLDDTVx,
	OP_LD_ST_VX:  (*Machine).execLDSTVx,
	OP_ADD_I:     (*Machine).execADDI,
	OP_LD_F:      (*Machine).execLDF,
	OP_LD_B:      (*Machine).execLDB,
	OP_LD_MEM_VX: (*Machine).execLDMemVx,
	OP_LD_VX_MEM: (*Machine).execLDVxMem,
}

func (mc *Machine) skipIf(condition bool) {
	if condition {
		mc.State.Program += 2
	}
}

// Any pattern outside the table. Reported, then skipped.
func (mc *Machine) execUnknown(in Instruction) error {
	return &UnknownOpcodeError{mc.State.Program - 2, in.Opcode}
}

// CLS  |0000 |0000 |1110 |0000 | Clear display
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execCLS(in Instruction) error {
	mc.clearDisplay()
	return nil
}

// RET  |0000 |0000 |1110 |1110 | Return from subroutine
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execRET(in Instruction) error {
	addr, ok := mc.pop()

	if !ok {
		return &StackUnderflowError{mc.State.Program - 2}
	}

	mc.State.Program = addr
	return nil
}

// JP   |0001 |NNN              | Jump
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
// Odd targets are not realigned.
func (mc *Machine) execJP(in Instruction) error {
	mc.State.Program = in.NNN
	return nil
}

// CALL |0010 |NNN              | Call subroutine
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execCALL(in Instruction) error {
	if !mc.push(mc.State.Program) {
		return &StackOverflowError{mc.State.Program - 2}
	}

	mc.State.Program = in.NNN
	return nil
}

// SE   |0011 |X    |NN         | Skip if VX == NN
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSEByte(in Instruction) error {
	mc.skipIf(mc.State.Registers[in.X] == in.NN)
	return nil
}

// SNE  |0100 |X    |NN         | Skip if VX != NN
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSNEByte(in Instruction) error {
	mc.skipIf(mc.State.Registers[in.X] != in.NN)
	return nil
}

// SE   |0101 |X    |Y    |0000 | Skip if VX == VY
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSEReg(in Instruction) error {
	mc.skipIf(mc.State.Registers[in.X] == mc.State.Registers[in.Y])
	return nil
}

// LD   |0110 |X    |NN         | VX = NN
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDByte(in Instruction) error {
	mc.State.Registers[in.X] = in.NN
	return nil
}

// ADD  |0111 |X    |NN         | VX += NN, no flag
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execADDByte(in Instruction) error {
	mc.State.Registers[in.X] += in.NN
	return nil
}

// LD   |1000 |X    |Y    |0000 | VX = VY
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDReg(in Instruction) error {
	mc.State.Registers[in.X] = mc.State.Registers[in.Y]
	return nil
}

// OR   |1000 |X    |Y    |0001 | VX |= VY
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execOR(in Instruction) error {
	mc.State.Registers[in.X] |= mc.State.Registers[in.Y]
	return nil
}

// AND  |1000 |X    |Y    |0010 | VX &= VY
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execAND(in Instruction) error {
	mc.State.Registers[in.X] &= mc.State.Registers[in.Y]
	return nil
}

// XOR  |1000 |X    |Y    |0011 | VX ^= VY
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execXOR(in Instruction) error {
	mc.State.Registers[in.X] ^= mc.State.Registers[in.Y]
	return nil
}

// The flag is written after the result, so VF as a destination ends up
// holding the flag.

// ADD  |1000 |X    |Y    |0100 | VX += VY, VF = carry
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execADDReg(in Instruction) error {
	sum := uint16(mc.State.Registers[in.X]) + uint16(mc.State.Registers[in.Y])

	mc.State.Registers[in.X] = uint8(sum)
	mc.setFlag(sum > 0xFF)
	return nil
}

// SUB  |1000 |X    |Y    |0101 | VX -= VY, VF = !borrow
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSUB(in Instruction) error {
	x, y := mc.State.Registers[in.X], mc.State.Registers[in.Y]

	mc.State.Registers[in.X] = x - y
	mc.setFlag(x >= y)
	return nil
}

// SHR  |1000 |X    |Y    |0110 | VF = VX & 1, VX >>= 1
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSHR(in Instruction) error {
	x := mc.State.Registers[in.X]

	mc.State.Registers[in.X] = x >> 1
	mc.setFlag(x&0x01 != 0)
	return nil
}

// SUBN |1000 |X    |Y    |0111 | VX = VY - VX, VF = !borrow
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSUBN(in Instruction) error {
	x, y := mc.State.Registers[in.X], mc.State.Registers[in.Y]

	mc.State.Registers[in.X] = y - x
	mc.setFlag(y >= x)
	return nil
}

// SHL  |1000 |X    |Y    |1110 | VF = VX >> 7, VX <<= 1
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSHL(in Instruction) error {
	x := mc.State.Registers[in.X]

	mc.State.Registers[in.X] = x << 1
	mc.setFlag(x&0x80 != 0)
	return nil
}

// SNE  |1001 |X    |Y    |0000 | Skip if VX != VY
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSNEReg(in Instruction) error {
	mc.skipIf(mc.State.Registers[in.X] != mc.State.Registers[in.Y])
	return nil
}

// LD   |1010 |NNN              | I = NNN
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDI(in Instruction) error {
	mc.State.Index = in.NNN
	return nil
}

// JP   |1011 |NNN              | Jump to NNN + V0
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
// May land on an odd address, like JP. Fetch bounds catch overruns.
func (mc *Machine) execJPV0(in Instruction) error {
	mc.State.Program = in.NNN + uint16(mc.State.Registers[0])
	return nil
}

// RND  |1100 |X    |NN         | VX = random & NN
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execRND(in Instruction) error {
	mc.State.Registers[in.X] = mc.randomByte() & in.NN
	return nil
}

// DRW  |1101 |X    |Y    |N    | Draw N sprite rows from I at (VX, VY)
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execDRW(in Instruction) error {
	collision := mc.drawSprite(
		mc.State.Registers[in.X], mc.State.Registers[in.Y], in.N,
	)

	mc.setFlag(collision)
	return nil
}

// SKP  |1110 |X    |1001 |1110 | Skip if key VX is down
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSKP(in Instruction) error {
	mc.skipIf(mc.keyDown(mc.State.Registers[in.X]))
	return nil
}

// SKNP |1110 |X    |1010 |0001 | Skip if key VX is up
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSKNP(in Instruction) error {
	mc.skipIf(!mc.keyDown(mc.State.Registers[in.X]))
	return nil
}

// LD   |1111 |X    |0000 |0111 | VX = DT
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDVxDT(in Instruction) error {
	mc.State.Registers[in.X] = mc.State.Delay
	return nil
}

// LD   |1111 |X    |0000 |1010 | Wait for key press, VX = key
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDVxK(in Instruction) error {
	mc.State.Program -= 2
	mc.State.WaitReg = in.X
	mc.State.Mode = MODE_AWAIT_KEY
	return nil
}

// LD   |1111 |X    |0001 |0101 | DT = VX
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDDTVx(in Instruction) error {
	mc.State.Delay = mc.State.Registers[in.X]
	return nil
}

// LD   |1111 |X    |0001 |1000 | ST = VX
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDSTVx(in Instruction) error {
	mc.State.Sound = mc.State.Registers[in.X]
	return nil
}

// ADD  |1111 |X    |0001 |1110 | I += VX, no flag
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execADDI(in Instruction) error {
	mc.State.Index += uint16(mc.State.Registers[in.X])
	return nil
}

// LD   |1111 |X    |0010 |1001 | I = glyph address of low nibble of VX
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDF(in Instruction) error {
	digit := uint16(mc.State.Registers[in.X] & 0xF)

	mc.State.Index = MEMSPACE_FONT + FONT_GLYPH_SIZE*digit
	return nil
}

// LD   |1111 |X    |0011 |0011 | [I..I+2] = BCD(VX)
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDB(in Instruction) error {
	for i, digit := range encoding.BCD(mc.State.Registers[in.X]) {
		mc.write(mc.State.Index+uint16(i), digit)
	}

	return nil
}

// LD   |1111 |X    |0101 |0101 | [I..I+X] = V0..VX, I unchanged
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDMemVx(in Instruction) error {
	for i := uint16(0); i <= uint16(in.X); i++ {
		mc.write(mc.State.Index+i, mc.State.Registers[i])
	}

	return nil
}

// LD   |1111 |X    |0110 |0101 | V0..VX = [I..I+X], I unchanged
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDVxMem(in Instruction) error {
	for i := uint16(0); i <= uint16(in.X); i++ {
		mc.State.Registers[i] = mc.read(mc.State.Index + i)
	}

	return nil
}
