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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/machine"
)

type debugSession struct {
	dbg     *debugger.Debugger
	input   <-chan byte
	output  io.Writer
	lastcmd []string

	// Called once when the user quits from the prompt
	stop     func()
	stopped  bool
	terminal bool
}

func newDebugSession(
	program []byte,
	input <-chan byte,
	output io.Writer,
	stop func(),
) *debugSession {
	session := &debugSession{
		input:  input,
		output: output,
		stop:   stop,
	}

	session.dbg = &debugger.Debugger{
		Program:     program,
		Output:      output,
		HandleBreak: session.handleBreak,
		HandleRead:  session.handleRead,
		HandleWrite: session.handleWrite,
	}

	return session
}

// Collects one line from the shared input. Returns false once input closes.
func (s *debugSession) readLine() (string, bool) {
	var line strings.Builder

	for b := range s.input {
		switch b {
		case '\n', '\r':
			return line.String(), true
		default:
			line.WriteByte(b)
		}
	}

	return line.String(), false
}

func (s *debugSession) repl(mc *machine.Machine) {
	if s.stopped {
		return
	}

	if s.terminal {
		exitRawTerm()
		defer enterRawTerm()
	}

	for {
		fmt.Fprint(s.output, "\033[1;30m(dbg)\033[0m ")

		line, ok := s.readLine()

		if !ok {
			fmt.Fprintln(s.output)
			s.quit()
			return
		}

		args := strings.Fields(line)

		if len(args) == 0 {
			if len(s.lastcmd) == 0 {
				continue
			}
			args = s.lastcmd
		} else {
			s.lastcmd = make([]string, len(args))
			copy(s.lastcmd, args)
		}

		action, err := s.dbg.Command(mc, args)

		if err != nil {
			fmt.Fprintf(s.output, "error: %s\n", err)
			continue
		}

		switch action {
		case debugger.ACTION_CONTINUE, debugger.ACTION_STEP:
			mc.Redraw = true
			fmt.Fprint(s.output, "\033[2J")
			return

		case debugger.ACTION_QUIT:
			s.quit()
			return
		}
	}
}

func (s *debugSession) quit() {
	s.dbg.Break = false
	s.dbg.Breakpoints = nil
	s.dbg.Watchpoints = nil

	if !s.stopped {
		s.stopped = true
		s.stop()
	}
}

func (s *debugSession) interrupt(mc *machine.Machine) {
	fmt.Fprintln(s.output)
	s.dbg.Break = true
}

func (s *debugSession) handleBreak(dbg *debugger.Debugger, mc *machine.Machine) {
	if !dbg.Break {
		fmt.Fprintln(s.output)
		fmt.Fprintln(s.output, "Program stopped")
	}

	dbg.PrintCode(&mc.State, mc.State.Program, 4)
	s.repl(mc)
}

func (s *debugSession) handleRead(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Fprintln(s.output)
	fmt.Fprintln(s.output, "Program stopped (read)")
	dbg.PrintMem(&mc.State, addr, 1)
	s.repl(mc)
}

func (s *debugSession) handleWrite(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Fprintln(s.output)
	fmt.Fprintln(s.output, "Program stopped (write)")
	dbg.PrintMem(&mc.State, addr, 1)
	s.repl(mc)
}
