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

	"github.com/lassandro/gochip8/pkg/machine"
)

type WatchpointType uint

const (
	ReadWatch WatchpointType = iota + 1
	WriteWatch
	ReadWriteWatch
)

type Watchpoint struct {
	Addr uint16
	Type WatchpointType
}

type Breakpoint struct {
	Addr uint16
}

// Outcome of a REPL command for the loop driving it
type Action uint8

const (
	ACTION_NONE Action = iota
	ACTION_CONTINUE
	ACTION_STEP
	ACTION_QUIT
)

type Debugger struct {
	Break bool

	Breakpoints []Breakpoint
	Watchpoints []Watchpoint

	// Program image restored by the reset command
	Program []byte

	// Destination of all printed state, stdout when nil
	Output io.Writer

	HandleBreak func(*Debugger, *machine.Machine)
	HandleRead  func(uint16, *Debugger, *machine.Machine)
	HandleWrite func(uint16, *Debugger, *machine.Machine)
}

type UsageError struct {
	Usage string
}

func (err *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", err.Usage)
}

type InvalidIndexError struct {
	Kind  string
	Index int
}

func (err *InvalidIndexError) Error() string {
	return fmt.Sprintf("Invalid %s number %d", err.Kind, err.Index)
}

type UnknownCommandError struct {
	Command string
}

func (err *UnknownCommandError) Error() string {
	return fmt.Sprintf("'%s' is not a valid command", err.Command)
}
