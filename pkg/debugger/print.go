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

package debugger

import (
	"fmt"
	"io"
	"os"

	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/machine"
)

func (dbg *Debugger) out() io.Writer {
	if dbg.Output == nil {
		return os.Stdout
	}

	return dbg.Output
}

func (dbg *Debugger) PrintRegs(mc *machine.MachineState) {
	out := dbg.out()

	for i, register := range mc.Registers {
		fmt.Fprintf(out, "\033[1mV%X:\033[0m 0x%02x\t", i, register)
		if i == (len(mc.Registers)-1)/2 {
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(
		out,
		"\033[1mPC:\033[0m 0x%03x\t\033[1mI:\033[0m 0x%03x\t"+
			"\033[1mSP:\033[0m %d\t\033[1mDT:\033[0m %d\t\033[1mST:\033[0m %d\n",
		mc.Program,
		mc.Index,
		mc.StackPtr,
		mc.Delay,
		mc.Sound,
	)

	switch mc.Mode {
	case machine.MODE_AWAIT_KEY:
		fmt.Fprintf(out, "Waiting for key into V%X\n", mc.WaitReg)
	case machine.MODE_HALTED:
		fmt.Fprintln(out, "Halted")
	}
}

// Prints count bytes from addr, four per row, clipped to the end of memory
func (dbg *Debugger) PrintMem(mc *machine.MachineState, addr, count uint16) {
	out := dbg.out()
	end := int(addr) + int(count)

	if end > machine.MEMORY_SIZE {
		end = machine.MEMORY_SIZE
	}

	for i := int(addr); i < end; i++ {
		if i == int(addr) {
			fmt.Fprintf(out, "\033[1m[0x%03x]\033[0m ", i)
		} else if (i-int(addr))%4 == 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "\033[1m[0x%03x]\033[0m ", i)
		}

		result := mc.Memory[i]

		if result == 0 {
			fmt.Fprintf(out, "\033[1;30m%#x\033[0m ", result)
		} else {
			fmt.Fprintf(out, "%#x ", result)
		}
	}

	fmt.Fprintln(out)
}

// Disassembles count instructions starting at addr, marking the program
// counter
func (dbg *Debugger) PrintCode(mc *machine.MachineState, addr, count uint16) {
	out := dbg.out()

	for i := uint16(0); i < count; i++ {
		pc := int(addr) + int(i)*2

		if pc > int(machine.MEMSPACE_LAST_FETCH) {
			break
		}

		opcode := encoding.Word(mc.Memory[pc], mc.Memory[pc+1])

		marker := "  "
		if uint16(pc) == mc.Program {
			marker = "->"
		}

		fmt.Fprintf(
			out,
			"%s \033[1m[0x%03x]\033[0m %04X  %s\n",
			marker,
			pc,
			opcode,
			machine.Decode(opcode),
		)
	}
}

func (dbg *Debugger) PrintStack(mc *machine.MachineState) {
	out := dbg.out()

	if mc.StackPtr == 0 {
		fmt.Fprintln(out, "Stack empty")
		return
	}

	for i := int(mc.StackPtr) - 1; i >= 0; i-- {
		fmt.Fprintf(out, "#%02d: 0x%03x\n", i, mc.Stack[i])
	}
}

func (dbg *Debugger) PrintDisplay(mc *machine.MachineState) {
	fmt.Fprint(dbg.out(), mc.Display.String())
}

func (dbg *Debugger) PrintKeys(mc *machine.MachineState) {
	out := dbg.out()

	for key, pressed := range mc.Keys {
		if pressed {
			fmt.Fprintf(out, "\033[1m%X\033[0m ", key)
		} else {
			fmt.Fprintf(out, "\033[1;30m%X\033[0m ", key)
		}
	}

	fmt.Fprintln(out)
}
