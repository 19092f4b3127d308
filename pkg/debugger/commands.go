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
	"math"
	"strings"

	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/machine"
)

// Runs one REPL command. The first argument is the command name.
func (dbg *Debugger) Command(mc *machine.Machine, args []string) (Action, error) {
	if len(args) == 0 {
		return ACTION_NONE, nil
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "b", "bp", "break", "breakpoint":
		return ACTION_NONE, dbg.commandBreak(args)

	case "w", "wp", "watch", "watchpoint":
		return ACTION_NONE, dbg.commandWatch(args)

	case "r", "reg", "register", "registers":
		return ACTION_NONE, dbg.commandRegister(&mc.State, args)

	case "m", "mem", "memory":
		return ACTION_NONE, dbg.commandMemory(&mc.State, args)

	case "set":
		return ACTION_NONE, dbg.commandSet(&mc.State, args)

	case "j", "jmp", "jump":
		return ACTION_NONE, dbg.commandJump(&mc.State, args)

	case "code", "dis", "disassemble":
		return ACTION_NONE, dbg.commandCode(&mc.State, args)

	case "st", "stack":
		dbg.PrintStack(&mc.State)

	case "d", "disp", "display":
		dbg.PrintDisplay(&mc.State)

	case "k", "key", "keys":
		return ACTION_NONE, dbg.commandKey(mc, args)

	case "n", "next":
		dbg.Break = true
		return ACTION_STEP, nil

	case "c", "continue":
		dbg.Break = false
		return ACTION_CONTINUE, nil

	case "reset":
		mc.Reset()

		if err := mc.LoadProgram(dbg.Program); err != nil {
			return ACTION_NONE, err
		}

		fmt.Fprintln(dbg.out(), "Machine reset")

	case "q", "quit", "exit":
		dbg.Break = false
		return ACTION_QUIT, nil

	case "clear":
		fmt.Fprint(dbg.out(), "\033[H\033[2J")

	default:
		return ACTION_NONE, &UnknownCommandError{cmd}
	}

	return ACTION_NONE, nil
}

func indexFormat(count int, suffix string) string {
	digits := math.Floor(math.Log10(float64(count + 1)))
	return fmt.Sprintf("#%%0%dd: 0x%%03x%s\n", int64(digits)+1, suffix)
}

func (dbg *Debugger) commandBreak(args []string) error {
	const usage = "break [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]
	out := dbg.out()

	switch cmd {
	case "a", "add":
		const usage = "break add [0x###]"

		if len(args) != 1 {
			return &UsageError{usage}
		}

		addr, err := encoding.DecodeHex(args[0])

		if err != nil {
			return err
		}

		if dbg.AddBreakpoint(addr) {
			fmt.Fprintf(out, "Breakpoint added [0x%03x]\n", addr)
		}

	case "l", "ls", "list":
		if len(args) != 0 {
			return &UsageError{"break list"}
		}

		format := indexFormat(len(dbg.Breakpoints), "")

		for i, breakpoint := range dbg.Breakpoints {
			fmt.Fprintf(out, format, i, breakpoint.Addr)
		}

	case "r", "rm", "remove":
		const usage = "break remove [#]"

		if len(args) != 1 {
			return &UsageError{usage}
		}

		i, err := encoding.DecodeInt(args[0])

		if err != nil {
			return err
		}

		if err := dbg.RemoveBreakpoint(i); err != nil {
			return err
		}

		fmt.Fprintf(out, "Breakpoint removed [%d]\n", i)

	case "clear":
		dbg.Breakpoints = make([]Breakpoint, 0)
		fmt.Fprintln(out, "Breakpoints reset")

	default:
		return &UsageError{usage}
	}

	return nil
}

func (dbg *Debugger) commandWatch(args []string) error {
	const usage = "watch [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]
	out := dbg.out()

	switch cmd {
	case "a", "add":
		const usage = "watch add [0x###] [read|write|readwrite]"

		if len(args) != 2 {
			return &UsageError{usage}
		}

		addr, err := encoding.DecodeHex(args[0])

		if err != nil {
			return err
		}

		var wtype WatchpointType

		switch args[1] {
		case "r", "read":
			wtype = ReadWatch
		case "w", "write":
			wtype = WriteWatch
		case "rw", "rwrite", "readwrite":
			wtype = ReadWriteWatch
		default:
			return &UsageError{usage}
		}

		if dbg.AddWatchpoint(addr, wtype) {
			fmt.Fprintf(out, "Watchpoint added [0x%03x] (%s)\n", addr, wtype)
		}

	case "l", "ls", "list":
		if len(args) != 0 {
			return &UsageError{"watch list"}
		}

		format := indexFormat(len(dbg.Watchpoints), " %s")

		for i, watchpoint := range dbg.Watchpoints {
			fmt.Fprintf(out, format, i, watchpoint.Addr, watchpoint.Type)
		}

	case "r", "rm", "remove":
		const usage = "watch remove [#]"

		if len(args) != 1 {
			return &UsageError{usage}
		}

		i, err := encoding.DecodeInt(args[0])

		if err != nil {
			return err
		}

		if err := dbg.RemoveWatchpoint(i); err != nil {
			return err
		}

		fmt.Fprintf(out, "Watchpoint removed [%d]\n", i)

	case "clear":
		dbg.Watchpoints = make([]Watchpoint, 0)
		fmt.Fprintln(out, "Watchpoints reset")

	default:
		return &UsageError{usage}
	}

	return nil
}

func (dbg *Debugger) commandRegister(mc *machine.MachineState, args []string) error {
	const usage = "register [V#|I|PC|DT|ST] [value]"

	if len(args) == 0 {
		dbg.PrintRegs(mc)
		return nil
	}

	if len(args) != 2 {
		return &UsageError{usage}
	}

	value, err := encoding.DecodeValue(args[1])

	if err != nil {
		return err
	}

	name := strings.ToUpper(args[0])

	switch {
	case name == "I":
		mc.Index = value
	case name == "PC":
		mc.Program = value
	case name == "DT":
		mc.Delay = uint8(value)
	case name == "ST":
		mc.Sound = uint8(value)
	case len(name) == 2 && name[0] == 'V':
		reg, err := encoding.DecodeHex("x" + name[1:])

		if err != nil {
			return &UsageError{usage}
		}

		mc.Registers[reg] = uint8(value)
	default:
		return &UsageError{usage}
	}

	fmt.Fprintf(dbg.out(), "\033[1m%s:\033[0m %#x\n", name, value)
	return nil
}

func (dbg *Debugger) commandMemory(mc *machine.MachineState, args []string) error {
	const usage = "memory [0x###|#] [#]"

	if len(args) > 2 {
		return &UsageError{usage}
	}

	var size uint16 = 1
	var addr uint16 = mc.Index
	var err error

	if len(args) > 0 {
		addr, err = encoding.DecodeHex(args[0])

		if err != nil {
			value, err := encoding.DecodeInt(args[0])

			if err != nil {
				return err
			}

			addr = mc.Index
			size = uint16(value)
		}
	}

	if len(args) > 1 {
		value, err := encoding.DecodeInt(args[1])

		if err != nil {
			return err
		}

		size = uint16(value)
	}

	dbg.PrintMem(mc, addr, size)
	return nil
}

func (dbg *Debugger) commandSet(mc *machine.MachineState, args []string) error {
	const usage = "set [0x###] [value]"

	if len(args) != 2 {
		return &UsageError{usage}
	}

	addr, err := encoding.DecodeHex(args[0])

	if err != nil {
		return err
	}

	value, err := encoding.DecodeValue(args[1])

	if err != nil {
		return err
	}

	addr &= machine.MEMORY_SIZE - 1

	mc.Memory[addr] = uint8(value)
	dbg.PrintMem(mc, addr, 1)
	return nil
}

func (dbg *Debugger) commandJump(mc *machine.MachineState, args []string) error {
	const usage = "jump [0x###]"

	if len(args) != 1 {
		return &UsageError{usage}
	}

	addr, err := encoding.DecodeHex(args[0])

	if err != nil {
		return err
	}

	mc.Program = addr
	fmt.Fprintf(dbg.out(), "\033[1mPC:\033[0m 0x%03x\n", addr)
	return nil
}

func (dbg *Debugger) commandCode(mc *machine.MachineState, args []string) error {
	const usage = "code [0x###] [#]"

	if len(args) > 2 {
		return &UsageError{usage}
	}

	addr := mc.Program
	var count uint16 = 8

	if len(args) > 0 {
		value, err := encoding.DecodeHex(args[0])

		if err != nil {
			return err
		}

		addr = value
	}

	if len(args) > 1 {
		value, err := encoding.DecodeInt(args[1])

		if err != nil {
			return err
		}

		count = uint16(value)
	}

	dbg.PrintCode(mc, addr, count)
	return nil
}

func (dbg *Debugger) commandKey(mc *machine.Machine, args []string) error {
	const usage = "key [0-F] [down|up]"

	if len(args) == 0 {
		dbg.PrintKeys(&mc.State)
		return nil
	}

	if len(args) != 2 {
		return &UsageError{usage}
	}

	key, err := encoding.DecodeHex("x" + args[0])

	if err != nil || key >= machine.KEY_COUNT {
		return &UsageError{usage}
	}

	switch args[1] {
	case "d", "down", "press":
		mc.PressKey(uint8(key))
	case "u", "up", "release":
		mc.ReleaseKey(uint8(key))
	default:
		return &UsageError{usage}
	}

	dbg.PrintKeys(&mc.State)
	return nil
}
