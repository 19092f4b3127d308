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

package encoding_test

import (
	"testing"

	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		Input  string
		Output uint16
	}{
		{"0x200", 0x200},
		{"x200", 0x200},
		{"X1F", 0x1F},
		{"$FFE", 0xFFE},
		{"0xFFFF", 0xFFFF},
	}

	for _, test := range tests {
		t.Run(test.Input, func(t *testing.T) {
			value, err := encoding.DecodeHex(test.Input)
			assert.NoError(t, err)
			assert.Equal(t, test.Output, value)
		})
	}
}

func TestDecodeHexInvalid(t *testing.T) {
	for _, input := range []string{"200", "", "1x20", "0x10000", "0xZZ"} {
		t.Run(input, func(t *testing.T) {
			_, err := encoding.DecodeHex(input)
			assert.True(t, err != nil, "expected an error for "+input)
		})
	}
}

func TestDecodeInt(t *testing.T) {
	value, err := encoding.DecodeInt("#42")
	assert.NoError(t, err)
	assert.Equal(t, 42, value)

	value, err = encoding.DecodeInt("-7")
	assert.NoError(t, err)
	assert.Equal(t, -7, value)

	_, err = encoding.DecodeInt("#4a")
	assert.True(t, err != nil)
}

func TestDecodeValue(t *testing.T) {
	value, err := encoding.DecodeValue("0x2A")
	assert.NoError(t, err)
	assert.Equal(t, uint16(42), value)

	value, err = encoding.DecodeValue("42")
	assert.NoError(t, err)
	assert.Equal(t, uint16(42), value)

	_, err = encoding.DecodeValue("70000")
	assert.Error(t, err, "Value out of range")

	_, err = encoding.DecodeValue("-1")
	assert.Error(t, err, "Value out of range")
}

func TestOpcodeFields(t *testing.T) {
	opcode := encoding.Word(0xD1, 0x2F)

	assert.Equal(t, uint16(0xD12F), opcode)
	assert.Equal(t, uint8(0xD), encoding.Nibble(opcode, 0))
	assert.Equal(t, uint8(0x1), encoding.Nibble(opcode, 1))
	assert.Equal(t, uint8(0x2), encoding.Nibble(opcode, 2))
	assert.Equal(t, uint8(0xF), encoding.Nibble(opcode, 3))
	assert.Equal(t, uint8(0x2F), encoding.LowByte(opcode))
	assert.Equal(t, uint16(0x12F), encoding.Address(opcode))
}

func TestBCD(t *testing.T) {
	assert.Equal(t, [3]uint8{2, 5, 5}, encoding.BCD(255))
	assert.Equal(t, [3]uint8{1, 0, 7}, encoding.BCD(107))
	assert.Equal(t, [3]uint8{0, 0, 9}, encoding.BCD(9))
	assert.Equal(t, [3]uint8{0, 0, 0}, encoding.BCD(0))
}
