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

package rom_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/spaolacci/murmur3"
)

func TestRead(t *testing.T) {
	data := []byte{0x60, 0x05, 0x61, 0x03, 0x80, 0x14}

	image, err := rom.Read("add.ch8", bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, "add.ch8", image.Name)
	assert.Equal(t, data, image.Data)
	assert.Equal(t, murmur3.Sum32(data), image.Checksum)
}

func TestReadEmpty(t *testing.T) {
	_, err := rom.Read("empty.ch8", bytes.NewReader(nil))
	assert.Error(t, err, "ROM 'empty.ch8' is empty")

	var empty *rom.EmptyROMError
	assert.True(t, errors.As(err, &empty))
}

func TestReadOversized(t *testing.T) {
	exact := make([]byte, rom.MAX_SIZE)
	_, err := rom.Read("exact.ch8", bytes.NewReader(exact))
	assert.NoError(t, err)

	big := make([]byte, rom.MAX_SIZE+100)
	_, err = rom.Read("big.ch8", bytes.NewReader(big))
	assert.Error(t, err, "ROM 'big.ch8' is 3585 bytes, program space holds 3584")

	var oversized *rom.OversizedROMError
	assert.True(t, errors.As(err, &oversized))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jump.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x12, 0x00}, 0o644))

	image, err := rom.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "jump.ch8", image.Name)

	var mc machine.Machine
	mc.State.Registers[2] = 7
	assert.NoError(t, image.Install(&mc))
	assert.Equal(t, uint8(0), mc.State.Registers[2])
	assert.Equal(t, uint8(0x12), mc.State.Memory[0x200])
	assert.Equal(t, uint16(0x200), mc.State.Program)

	_, err = rom.Load(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestString(t *testing.T) {
	image := &rom.ROM{Name: "pong.ch8", Data: make([]byte, 246), Checksum: 0xBEEF}
	assert.Equal(t, "pong.ch8 (246 bytes, murmur3 0000BEEF)", image.String())
}
