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
	"errors"
	"fmt"
)

type StackOverflowError struct {
	Program uint16
}

func (err *StackOverflowError) Error() string {
	return fmt.Sprintf(
		"Stack overflow at 0x%03x (depth %d)", err.Program, STACK_DEPTH,
	)
}

type StackUnderflowError struct {
	Program uint16
}

func (err *StackUnderflowError) Error() string {
	return fmt.Sprintf("Stack underflow at 0x%03x", err.Program)
}

type FetchBoundsError struct {
	Program uint16
}

func (err *FetchBoundsError) Error() string {
	return fmt.Sprintf(
		"Instruction fetch out of range at 0x%03x (last valid 0x%03x)",
		err.Program,
		MEMSPACE_LAST_FETCH,
	)
}

type UnknownOpcodeError struct {
	Program uint16
	Opcode  uint16
}

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("Unknown opcode %#x at 0x%03x", err.Opcode, err.Program)
}

type OversizedProgramError struct {
	Size int
}

func (err *OversizedProgramError) Error() string {
	return fmt.Sprintf(
		"Program of %d bytes exceeds the %d byte program space",
		err.Size,
		PROGRAM_SIZE,
	)
}

// Reports whether err halts the machine. Unknown opcodes are not fatal.
func IsFatal(err error) bool {
	var overflow *StackOverflowError
	var underflow *StackUnderflowError
	var bounds *FetchBoundsError

	return errors.As(err, &overflow) ||
		errors.As(err, &underflow) ||
		errors.As(err, &bounds)
}
