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

const (
	MEMORY_SIZE    = 0x1000
	PROGRAM_SIZE   = MEMORY_SIZE - 0x200
	REGISTER_COUNT = 16
	STACK_DEPTH    = 16
	KEY_COUNT      = 16
)

const (
	MEMSPACE_FONT    uint16 = 0x0000
	MEMSPACE_PROGRAM uint16 = 0x0200

	// Last address an instruction word can be fetched from
	MEMSPACE_LAST_FETCH uint16 = MEMORY_SIZE - 2
)

// VF doubles as the carry, borrow, shift-out and collision flag
const REG_FLAG = 0xF

const (
	DISPLAY_WIDTH  = 64
	DISPLAY_HEIGHT = 32
	SPRITE_WIDTH   = 8
)

const (
	FONT_GLYPH_SIZE = 5
	FONT_SIZE       = 16 * FONT_GLYPH_SIZE
)

// Timers count down at this rate, driven by the host
const TIMER_HZ = 60

var Fontset = [FONT_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

const (
	MODE_RUNNING Mode = iota
	MODE_AWAIT_KEY
	MODE_HALTED
)

const (
	OP_UNKNOWN Op = iota
	OP_CLS
	OP_RET
	OP_JP
	OP_CALL
	OP_SE_BYTE
	OP_SNE_BYTE
	OP_SE_REG
	OP_LD_BYTE
	OP_ADD_BYTE
	OP_LD_REG
	OP_OR
	OP_AND
	OP_XOR
	OP_ADD_REG
	OP_SUB
	OP_SHR
	OP_SUBN
	OP_SHL
	OP_SNE_REG
	OP_LD_I
	OP_JP_V0
	OP_RND
	OP_DRW
	OP_SKP
	OP_SKNP
	OP_LD_VX_DT
	OP_LD_VX_K
	OP_LD_DT_VX
	OP_LD_ST_VX
	OP_ADD_I
	OP_LD_F
	OP_LD_B
	OP_LD_MEM_VX
	OP_LD_VX_MEM

	OP_COUNT
)
