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

package machine_test

import (
	"testing"

	"github.com/lassandro/gochip8/pkg/machine"
)

type testMachineState struct {
	Registers [16]uint8
	Program   uint16
	Index     uint16
	Stack     []uint16
	Delay     uint8
	Sound     uint8
	Keys      []uint8
	Memory    map[uint16]uint8
}

type testCase struct {
	Name   string
	Steps  uint
	Random uint32
	Input  testMachineState
	Output testMachineState
}

type fixedRandom uint32

func (r fixedRandom) Uint32() uint32 {
	return uint32(r)
}

func testMachineSuccess(t *testing.T, test *testCase) {
	if test.Input.Memory == nil {
		panic("No memory maps provided")
	}

	var mc machine.Machine

	mc.Reset()
	mc.Random = fixedRandom(test.Random)
	mc.State.Registers = test.Input.Registers
	mc.State.Program = test.Input.Program
	mc.State.Index = test.Input.Index
	mc.State.Delay = test.Input.Delay
	mc.State.Sound = test.Input.Sound

	for _, addr := range test.Input.Stack {
		mc.State.Stack[mc.State.StackPtr] = addr
		mc.State.StackPtr++
	}

	for _, key := range test.Input.Keys {
		mc.PressKey(key)
	}

	for addr, value := range test.Input.Memory {
		mc.State.Memory[addr] = value
	}

	if test.Steps == 0 {
		test.Steps = 1
	}

	for i := uint(0); i < test.Steps; i++ {
		if err := mc.Step(); err != nil {
			t.Fatalf("Unexpected step error\nhave:%v", err)
		}
	}

	for i := 0; i < 16; i++ {
		want := test.Output.Registers[i]
		have := mc.State.Registers[i]
		if have != want {
			t.Errorf(
				"Register mismatch"+
					"\nwant:%#02x (test.Output.Registers[%d])\nhave:%#02x",
				want,
				i,
				have,
			)
		}
	}

	if mc.State.Program != test.Output.Program {
		t.Errorf(
			"Program counter mismatch"+
				"\nwant:%#04x (test.Output.Program)\nhave:%#04x",
			test.Output.Program,
			mc.State.Program,
		)
	}

	if mc.State.Index != test.Output.Index {
		t.Errorf(
			"Index register mismatch"+
				"\nwant:%#04x (test.Output.Index)\nhave:%#04x",
			test.Output.Index,
			mc.State.Index,
		)
	}

	if have, want := mc.State.Delay, test.Output.Delay; have != want {
		t.Errorf(
			"Delay timer mismatch\nwant:%d (test.Output.Delay)\nhave:%d",
			want,
			have,
		)
	}

	if have, want := mc.State.Sound, test.Output.Sound; have != want {
		t.Errorf(
			"Sound timer mismatch\nwant:%d (test.Output.Sound)\nhave:%d",
			want,
			have,
		)
	}

	if have, want := int(mc.State.StackPtr), len(test.Output.Stack); have != want {
		t.Errorf(
			"Stack pointer mismatch\nwant:%d (test.Output.Stack)\nhave:%d",
			want,
			have,
		)
	} else {
		for i, want := range test.Output.Stack {
			if have := mc.State.Stack[i]; have != want {
				t.Errorf(
					"Stack mismatch"+
						"\nwant:%#04x (test.Output.Stack[%d])\nhave:%#04x",
					want,
					i,
					have,
				)
			}
		}
	}

	for i, value := range mc.State.Memory {
		input, expectingInput := test.Input.Memory[uint16(i)]
		output, expectingOutput := test.Output.Memory[uint16(i)]

		var baseline uint8
		if i < len(machine.Fontset) {
			baseline = machine.Fontset[i]
		}

		if expectingOutput {
			// Value was supposed to change
			if value != output {
				t.Fatalf(
					"Memory value mismatch"+
						"\nwant:%#02x (test.Output.Memory[%#04x])\nhave:%#02x",
					output,
					i,
					value,
				)
			}
		} else if expectingInput {
			// Value was supposed to remain
			if value != input {
				t.Fatalf(
					"Memory value mismatch"+
						"\nwant:%#02x (test.Input.Memory[%#04x])\nhave:%#02x",
					input,
					i,
					value,
				)
			}
		} else if value != baseline {
			// Value was expected to keep its power-on contents
			t.Fatalf(
				"Memory unexpectedly changed"+
					"\nwant:%#02x (power-on [%#04x])\nhave:%#02x",
				baseline,
				i,
				value,
			)
		}
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testMachineSuccess(t, &test)
			})
		}
	})
}

// CLS  |0000 |0000 |1110 |0000 | Clear display
// RET  |0000 |0000 |1110 |1110 | Return from subroutine
// JP   |0001 |NNN              | Jump
// CALL |0010 |NNN              | Call subroutine
// JP   |1011 |NNN              | Jump to NNN + V0
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestFlow(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "JP",
			Input: testMachineState{
				Program: 0x200,
				Memory:  map[uint16]uint8{0x200: 0x13, 0x201: 0x48},
			},
			Output: testMachineState{
				Program: 0x348,
			},
		},
		{
			Name: "CALL",
			Input: testMachineState{
				Program: 0x200,
				Memory:  map[uint16]uint8{0x200: 0x2A, 0x201: 0xBC},
			},
			Output: testMachineState{
				Program: 0xABC,
				Stack:   []uint16{0x202},
			},
		},
		{
			Name:  "CALL RET",
			Steps: 2,
			Input: testMachineState{
				Program: 0x200,
				Memory: map[uint16]uint8{
					0x200: 0x23, 0x201: 0x00, // CALL 0x300
					0x300: 0x00, 0x301: 0xEE, // RET
				},
			},
			Output: testMachineState{
				Program: 0x202,
			},
		},
		{
			Name: "RET Nested",
			Input: testMachineState{
				Program: 0x400,
				Stack:   []uint16{0x202, 0x30A},
				Memory:  map[uint16]uint8{0x400: 0x00, 0x401: 0xEE},
			},
			Output: testMachineState{
				Program: 0x30A,
				Stack:   []uint16{0x202},
			},
		},
		{
			Name: "JP V0",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0x12},
				Memory:    map[uint16]uint8{0x200: 0xB3, 0x201: 0x00},
			},
			Output: testMachineState{
				Program:   0x312,
				Registers: [16]uint8{0: 0x12},
			},
		},
	})
}

// SE   |0011 |X    |NN         | Skip if VX == NN
// SNE  |0100 |X    |NN         | Skip if VX != NN
// SE   |0101 |X    |Y    |0000 | Skip if VX == VY
// SNE  |1001 |X    |Y    |0000 | Skip if VX != VY
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestSkip(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "SE Byte Taken",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{3: 0x42},
				Memory:    map[uint16]uint8{0x200: 0x33, 0x201: 0x42},
			},
			Output: testMachineState{
				Program:   0x204,
				Registers: [16]uint8{3: 0x42},
			},
		},
		{
			Name: "SE Byte Not Taken",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{3: 0x41},
				Memory:    map[uint16]uint8{0x200: 0x33, 0x201: 0x42},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{3: 0x41},
			},
		},
		{
			Name: "SNE Byte Taken",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{3: 0x41},
				Memory:    map[uint16]uint8{0x200: 0x43, 0x201: 0x42},
			},
			Output: testMachineState{
				Program:   0x204,
				Registers: [16]uint8{3: 0x41},
			},
		},
		{
			Name: "SNE Byte Not Taken",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{3: 0x42},
				Memory:    map[uint16]uint8{0x200: 0x43, 0x201: 0x42},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{3: 0x42},
			},
		},
		{
			Name: "SE Reg Taken",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0x07, 2: 0x07},
				Memory:    map[uint16]uint8{0x200: 0x51, 0x201: 0x20},
			},
			Output: testMachineState{
				Program:   0x204,
				Registers: [16]uint8{1: 0x07, 2: 0x07},
			},
		},
		{
			Name: "SE Reg Not Taken",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0x07, 2: 0x08},
				Memory:    map[uint16]uint8{0x200: 0x51, 0x201: 0x20},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{1: 0x07, 2: 0x08},
			},
		},
		{
			Name: "SNE Reg Taken",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0x07, 2: 0x08},
				Memory:    map[uint16]uint8{0x200: 0x91, 0x201: 0x20},
			},
			Output: testMachineState{
				Program:   0x204,
				Registers: [16]uint8{1: 0x07, 2: 0x08},
			},
		},
		{
			Name: "SNE Reg Not Taken",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0x07, 2: 0x07},
				Memory:    map[uint16]uint8{0x200: 0x91, 0x201: 0x20},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{1: 0x07, 2: 0x07},
			},
		},
	})
}

// LD   |0110 |X    |NN         | VX = NN
// ADD  |0111 |X    |NN         | VX += NN, no flag
// LD   |1000 |X    |Y    |0000 | VX = VY
// OR   |1000 |X    |Y    |0001 | VX |= VY
// AND  |1000 |X    |Y    |0010 | VX &= VY
// XOR  |1000 |X    |Y    |0011 | VX ^= VY
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestRegister(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "LD Byte",
			Input: testMachineState{
				Program: 0x200,
				Memory:  map[uint16]uint8{0x200: 0x6A, 0x201: 0xFE},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0xA: 0xFE},
			},
		},
		{
			Name: "ADD Byte Wraps Without Flag",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{2: 0xF0},
				Memory:    map[uint16]uint8{0x200: 0x72, 0x201: 0x20},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{2: 0x10},
			},
		},
		{
			Name: "LD Reg",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{4: 0x99},
				Memory:    map[uint16]uint8{0x200: 0x83, 0x201: 0x40},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{3: 0x99, 4: 0x99},
			},
		},
		{
			Name: "OR",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0b1100_0000, 1: 0b0000_0011},
				Memory:    map[uint16]uint8{0x200: 0x80, 0x201: 0x11},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0: 0b1100_0011, 1: 0b0000_0011},
			},
		},
		{
			Name: "AND",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0b1100_1100, 1: 0b1010_1010},
				Memory:    map[uint16]uint8{0x200: 0x80, 0x201: 0x12},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0: 0b1000_1000, 1: 0b1010_1010},
			},
		},
		{
			Name: "XOR",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0b1100_1100, 1: 0b1010_1010},
				Memory:    map[uint16]uint8{0x200: 0x80, 0x201: 0x13},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0: 0b0110_0110, 1: 0b1010_1010},
			},
		},
	})
}

// ADD  |1000 |X    |Y    |0100 | VX += VY, VF = carry
// SUB  |1000 |X    |Y    |0101 | VX -= VY, VF = !borrow
// SHR  |1000 |X    |Y    |0110 | VF = VX & 1, VX >>= 1
// SUBN |1000 |X    |Y    |0111 | VX = VY - VX, VF = !borrow
// SHL  |1000 |X    |Y    |1110 | VF = VX >> 7, VX <<= 1
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestArithmetic(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "ADD Carry",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0xFF, 1: 0x02},
				Memory:    map[uint16]uint8{0x200: 0x80, 0x201: 0x14},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0: 0x01, 1: 0x02, 0xF: 1},
			},
		},
		{
			Name: "ADD Into Flag Register",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0x02, 0xF: 0x03},
				Memory:    map[uint16]uint8{0x200: 0x8F, 0x201: 0x14},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{1: 0x02, 0xF: 0},
			},
		},
		{
			Name: "SUB No Borrow",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0x05, 1: 0x05},
				Memory:    map[uint16]uint8{0x200: 0x80, 0x201: 0x15},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0: 0x00, 1: 0x05, 0xF: 1},
			},
		},
		{
			Name: "SUB Borrow",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0x01, 1: 0x02, 0xF: 1},
				Memory:    map[uint16]uint8{0x200: 0x80, 0x201: 0x15},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0: 0xFF, 1: 0x02, 0xF: 0},
			},
		},
		{
			Name: "SHR",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{6: 0b1000_0011, 7: 0xAA},
				Memory:    map[uint16]uint8{0x200: 0x86, 0x201: 0x76},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{6: 0b0100_0001, 7: 0xAA, 0xF: 1},
			},
		},
		{
			Name: "SUBN No Borrow",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0x03, 1: 0x0A},
				Memory:    map[uint16]uint8{0x200: 0x80, 0x201: 0x17},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0: 0x07, 1: 0x0A, 0xF: 1},
			},
		},
		{
			Name: "SUBN Borrow",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{0: 0x0A, 1: 0x03},
				Memory:    map[uint16]uint8{0x200: 0x80, 0x201: 0x17},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{0: 0xF9, 1: 0x03, 0xF: 0},
			},
		},
		{
			Name: "SHL",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{6: 0b1000_0011},
				Memory:    map[uint16]uint8{0x200: 0x86, 0x201: 0x0E},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{6: 0b0000_0110, 0xF: 1},
			},
		},
	})
}

// LD   |1010 |NNN              | I = NNN
// RND  |1100 |X    |NN         | VX = random & NN
// ADD  |1111 |X    |0001 |1110 | I += VX, no flag
// LD   |1111 |X    |0010 |1001 | I = glyph address of low nibble of VX
// LD   |1111 |X    |0011 |0011 | [I..I+2] = BCD(VX)
// LD   |1111 |X    |0101 |0101 | [I..I+X] = V0..VX
// LD   |1111 |X    |0110 |0101 | V0..VX = [I..I+X]
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestIndex(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "LD I",
			Input: testMachineState{
				Program: 0x200,
				Memory:  map[uint16]uint8{0x200: 0xA1, 0x201: 0x23},
			},
			Output: testMachineState{
				Program: 0x202,
				Index:   0x123,
			},
		},
		{
			Name:   "RND Masked",
			Random: 0xDEADBEEF,
			Input: testMachineState{
				Program: 0x200,
				Memory:  map[uint16]uint8{0x200: 0xC5, 0x201: 0x0F},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{5: 0x0F},
			},
		},
		{
			Name: "ADD I",
			Input: testMachineState{
				Program:   0x200,
				Index:     0x0FFF,
				Registers: [16]uint8{2: 0x02},
				Memory:    map[uint16]uint8{0x200: 0xF2, 0x201: 0x1E},
			},
			Output: testMachineState{
				Program:   0x202,
				Index:     0x1001,
				Registers: [16]uint8{2: 0x02},
			},
		},
		{
			Name: "LD F",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{9: 0x3B},
				Memory:    map[uint16]uint8{0x200: 0xF9, 0x201: 0x29},
			},
			Output: testMachineState{
				Program:   0x202,
				Index:     5 * 0xB,
				Registers: [16]uint8{9: 0x3B},
			},
		},
		{
			Name: "LD B",
			Input: testMachineState{
				Program:   0x200,
				Index:     0x300,
				Registers: [16]uint8{4: 157},
				Memory:    map[uint16]uint8{0x200: 0xF4, 0x201: 0x33},
			},
			Output: testMachineState{
				Program:   0x202,
				Index:     0x300,
				Registers: [16]uint8{4: 157},
				Memory:    map[uint16]uint8{0x300: 1, 0x301: 5, 0x302: 7},
			},
		},
		{
			Name: "LD Store",
			Input: testMachineState{
				Program:   0x200,
				Index:     0x400,
				Registers: [16]uint8{0: 0x10, 1: 0x11, 2: 0x12, 3: 0x13},
				Memory:    map[uint16]uint8{0x200: 0xF2, 0x201: 0x55},
			},
			Output: testMachineState{
				Program:   0x202,
				Index:     0x400,
				Registers: [16]uint8{0: 0x10, 1: 0x11, 2: 0x12, 3: 0x13},
				Memory:    map[uint16]uint8{0x400: 0x10, 0x401: 0x11, 0x402: 0x12},
			},
		},
		{
			Name: "LD Load",
			Input: testMachineState{
				Program: 0x200,
				Index:   0x400,
				Memory: map[uint16]uint8{
					0x200: 0xF1, 0x201: 0x65,
					0x400: 0xAA, 0x401: 0xBB, 0x402: 0xCC,
				},
			},
			Output: testMachineState{
				Program:   0x202,
				Index:     0x400,
				Registers: [16]uint8{0: 0xAA, 1: 0xBB},
			},
		},
		{
			Name: "LD Load All",
			Input: testMachineState{
				Program: 0x200,
				Index:   0x400,
				Memory: map[uint16]uint8{
					0x200: 0xFF, 0x201: 0x65,
					0x400: 0x01, 0x40F: 0x0F,
				},
			},
			Output: testMachineState{
				Program:   0x202,
				Index:     0x400,
				Registers: [16]uint8{0: 0x01, 0xF: 0x0F},
			},
		},
	})
}

// SKP  |1110 |X    |1001 |1110 | Skip if key VX is down
// SKNP |1110 |X    |1010 |0001 | Skip if key VX is up
// LD   |1111 |X    |0000 |0111 | VX = DT
// LD   |1111 |X    |0001 |0101 | DT = VX
// LD   |1111 |X    |0001 |1000 | ST = VX
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestKeysTimers(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "SKP Pressed",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0xA},
				Keys:      []uint8{0xA},
				Memory:    map[uint16]uint8{0x200: 0xE1, 0x201: 0x9E},
			},
			Output: testMachineState{
				Program:   0x204,
				Registers: [16]uint8{1: 0xA},
			},
		},
		{
			Name: "SKP Released",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0xA},
				Keys:      []uint8{0xB},
				Memory:    map[uint16]uint8{0x200: 0xE1, 0x201: 0x9E},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{1: 0xA},
			},
		},
		{
			Name: "SKNP Released",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0xA},
				Memory:    map[uint16]uint8{0x200: 0xE1, 0x201: 0xA1},
			},
			Output: testMachineState{
				Program:   0x204,
				Registers: [16]uint8{1: 0xA},
			},
		},
		{
			Name: "SKNP Pressed",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{1: 0xA},
				Keys:      []uint8{0xA},
				Memory:    map[uint16]uint8{0x200: 0xE1, 0x201: 0xA1},
			},
			Output: testMachineState{
				Program:   0x202,
				Registers: [16]uint8{1: 0xA},
			},
		},
		{
			Name: "LD Read Delay",
			Input: testMachineState{
				Program: 0x200,
				Delay:   0x2C,
				Memory:  map[uint16]uint8{0x200: 0xF7, 0x201: 0x07},
			},
			Output: testMachineState{
				Program:   0x202,
				Delay:     0x2C,
				Registers: [16]uint8{7: 0x2C},
			},
		},
		{
			Name: "LD Set Delay",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{7: 0x3C},
				Memory:    map[uint16]uint8{0x200: 0xF7, 0x201: 0x15},
			},
			Output: testMachineState{
				Program:   0x202,
				Delay:     0x3C,
				Registers: [16]uint8{7: 0x3C},
			},
		},
		{
			Name: "LD Set Sound",
			Input: testMachineState{
				Program:   0x200,
				Registers: [16]uint8{7: 0x3C},
				Memory:    map[uint16]uint8{0x200: 0xF7, 0x201: 0x18},
			},
			Output: testMachineState{
				Program:   0x202,
				Sound:     0x3C,
				Registers: [16]uint8{7: 0x3C},
			},
		},
	})
}
