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
	"github.com/retroenv/retrogolib/log"
)

type Mode uint8

type Op uint8

// Row-major monochrome pixel grid, indexed [y][x]
type Framebuffer [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool

type Instruction struct {
	Op     Op
	Opcode uint16
	X      uint8
	Y      uint8
	N      uint8
	NN     uint8
	NNN    uint16
}

// Source of the bytes returned by CXNN. *rand.Rand from golang.org/x/exp/rand
// satisfies it.
type RandomSource interface {
	Uint32() uint32
}

type MachineState struct {
	Memory    [MEMORY_SIZE]byte
	Registers [REGISTER_COUNT]uint8
	Index     uint16
	Program   uint16
	Stack     [STACK_DEPTH]uint16
	StackPtr  uint8
	Delay     uint8
	Sound     uint8
	Display   Framebuffer
	Keys      [KEY_COUNT]bool
	Mode      Mode

	// Destination register of a pending FX0A
	WaitReg uint8
}

type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	State    MachineState
	Random   RandomSource
	Logger   *log.Logger
	Debugger MachineDebugger

	// Set whenever the framebuffer changes, cleared by the renderer
	Redraw bool

	fault error
}
