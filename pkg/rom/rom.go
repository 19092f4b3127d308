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

package rom

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/spaolacci/murmur3"
)

const MAX_SIZE = machine.PROGRAM_SIZE

type ROM struct {
	Name     string
	Data     []byte
	Checksum uint32
}

type EmptyROMError struct {
	Name string
}

func (err *EmptyROMError) Error() string {
	return fmt.Sprintf("ROM '%s' is empty", err.Name)
}

type OversizedROMError struct {
	Name string
	Size int
}

func (err *OversizedROMError) Error() string {
	return fmt.Sprintf(
		"ROM '%s' is %d bytes, program space holds %d",
		err.Name,
		err.Size,
		MAX_SIZE,
	)
}

// Reads a complete program image. At most one byte past the program space
// is consumed so oversized images are detected without reading them whole.
func Read(name string, reader io.Reader) (*ROM, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MAX_SIZE+1))

	if err != nil {
		return nil, fmt.Errorf("reading ROM '%s': %w", name, err)
	}

	if len(data) == 0 {
		return nil, &EmptyROMError{name}
	}

	if len(data) > MAX_SIZE {
		return nil, &OversizedROMError{name, len(data)}
	}

	return &ROM{
		Name:     name,
		Data:     data,
		Checksum: murmur3.Sum32(data),
	}, nil
}

func Load(path string) (*ROM, error) {
	file, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	return Read(filepath.Base(path), file)
}

// Resets the machine and copies the image into its program space
func (rom *ROM) Install(mc *machine.Machine) error {
	mc.Reset()
	return mc.LoadProgram(rom.Data)
}

func (rom *ROM) String() string {
	return fmt.Sprintf(
		"%s (%d bytes, murmur3 %08X)", rom.Name, len(rom.Data), rom.Checksum,
	)
}
