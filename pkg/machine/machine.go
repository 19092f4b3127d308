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
	"io"
	"time"

	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/exp/rand"
)

func (mc *MachineState) Reset() {
	*mc = MachineState{}

	copy(mc.Memory[MEMSPACE_FONT:], Fontset[:])

	mc.Program = MEMSPACE_PROGRAM
	mc.Mode = MODE_RUNNING
}

func (mc *Machine) Reset() {
	mc.State.Reset()
	mc.Redraw = true
	mc.fault = nil
}

// Copies a program image into memory at the program space. State is not
// reset, callers load right after Reset.
func (mc *Machine) LoadProgram(program []byte) error {
	if len(program) > PROGRAM_SIZE {
		return &OversizedProgramError{len(program)}
	}

	copy(mc.State.Memory[MEMSPACE_PROGRAM:], program)

	return nil
}

func (mc *Machine) LoadBin(reader io.Reader) error {
	mc.Reset()

	program, err := io.ReadAll(io.LimitReader(reader, PROGRAM_SIZE+1))

	if err != nil {
		return err
	}

	return mc.LoadProgram(program)
}

func (mc *Machine) read(addr uint16) byte {
	addr &= MEMORY_SIZE - 1

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.Memory[addr]
}

func (mc *Machine) write(addr uint16, value byte) {
	addr &= MEMORY_SIZE - 1

	mc.State.Memory[addr] = value

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

func (mc *Machine) push(value uint16) bool {
	if mc.State.StackPtr >= STACK_DEPTH {
		return false
	}

	mc.State.Stack[mc.State.StackPtr] = value
	mc.State.StackPtr++
	return true
}

func (mc *Machine) pop() (uint16, bool) {
	if mc.State.StackPtr == 0 {
		return 0, false
	}

	mc.State.StackPtr--
	return mc.State.Stack[mc.State.StackPtr], true
}

func (mc *Machine) randomByte() uint8 {
	if mc.Random == nil {
		mc.Random = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	return uint8(mc.Random.Uint32())
}

func (mc *Machine) setFlag(value bool) {
	if value {
		mc.State.Registers[REG_FLAG] = 1
	} else {
		mc.State.Registers[REG_FLAG] = 0
	}
}

func (mc *Machine) halt(err error) error {
	mc.State.Mode = MODE_HALTED
	mc.fault = err

	if mc.Logger != nil {
		mc.Logger.Error("Machine halted", nil, log.Err(err))
	}

	return err
}

func (mc *Machine) Halted() bool {
	return mc.State.Mode == MODE_HALTED
}

func (mc *Machine) AwaitingKey() bool {
	return mc.State.Mode == MODE_AWAIT_KEY
}

// Executes exactly one instruction. Fatal errors halt the machine and are
// returned again by every later Step until Reset. Unknown opcodes are
// returned but execution may continue.
func (mc *Machine) Step() error {
	switch mc.State.Mode {
	case MODE_HALTED:
		return mc.fault
	case MODE_AWAIT_KEY:
		return nil
	}

	program := mc.State.Program

	if program > MEMSPACE_LAST_FETCH {
		return mc.halt(&FetchBoundsError{program})
	}

	opcode := encoding.Word(mc.read(program), mc.read(program+1))
	instruction := Decode(opcode)

	if mc.Logger != nil && mc.Logger.Enabled(log.DebugLevel) {
		mc.Logger.Debug(
			"exec",
			log.String("pc", fmt.Sprintf("0x%03x", program)),
			log.String("opcode", fmt.Sprintf("0x%04x", opcode)),
			log.String("op", instruction.String()),
		)
	}

	mc.State.Program += 2

	if err := executors[instruction.Op](mc, instruction); err != nil {
		if IsFatal(err) {
			mc.State.Program = program
			return mc.halt(err)
		}

		if mc.Logger != nil {
			mc.Logger.Warn(
				"Unknown opcode",
				log.String("pc", fmt.Sprintf("0x%03x", program)),
				log.String("opcode", fmt.Sprintf("0x%04x", opcode)),
			)
		}

		if mc.Debugger != nil {
			mc.Debugger.Step(mc)
		}

		return err
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return nil
}
