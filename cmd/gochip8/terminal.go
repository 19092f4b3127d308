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
	"bufio"
	"io"
	"os"

	"github.com/lassandro/gochip8/pkg/machine"
)

// Terminals only report key presses, so a key is released after this many
// frames without a repeat
const KEY_HOLD_FRAMES = 6

const KEY_ESCAPE = 0x1B

// 1 2 3 4      1 2 3 C
// q w e r  ->  4 5 6 D
// a s d f      7 8 9 E
// z x c v      A 0 B F
var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Pumps a reader into a channel so the keypad and the debugger prompt share
// stdin. The channel closes when the reader fails.
func pumpInput(reader io.Reader) <-chan byte {
	input := make(chan byte, 64)

	go func() {
		defer close(input)

		buffer := make([]byte, 64)

		for {
			n, err := reader.Read(buffer)

			for _, b := range buffer[:n] {
				input <- b
			}

			if err != nil {
				return
			}
		}
	}()

	return input
}

type terminalKeypad struct {
	input      <-chan byte
	interrupts <-chan os.Signal
	hold       [machine.KEY_COUNT]int

	OnInterrupt func(mc *machine.Machine)
}

func (kp *terminalKeypad) Poll(mc *machine.Machine) (bool, error) {
	for key := range kp.hold {
		if kp.hold[key] == 0 {
			continue
		}

		kp.hold[key]--

		if kp.hold[key] == 0 {
			mc.ReleaseKey(uint8(key))
		}
	}

	for {
		select {
		case b, ok := <-kp.input:
			if !ok || b == KEY_ESCAPE {
				return true, nil
			}

			if b >= 'A' && b <= 'Z' {
				b += 'a' - 'A'
			}

			if key, exists := keymap[b]; exists {
				mc.PressKey(key)
				kp.hold[key] = KEY_HOLD_FRAMES
			}

		case <-kp.interrupts:
			if kp.OnInterrupt != nil {
				kp.OnInterrupt(mc)
			}

		default:
			return false, nil
		}
	}
}

// Draws two framebuffer rows per text line with half-block glyphs
type terminalDisplay struct {
	writer *bufio.Writer
}

func newTerminalDisplay(writer io.Writer) *terminalDisplay {
	return &terminalDisplay{bufio.NewWriter(writer)}
}

func (d *terminalDisplay) Open() error {
	d.writer.WriteString("\033[?25l\033[2J")
	return d.writer.Flush()
}

func (d *terminalDisplay) Close() error {
	d.writer.WriteString("\033[0m\033[?25h\n")
	return d.writer.Flush()
}

func (d *terminalDisplay) Render(fb *machine.Framebuffer) error {
	d.writer.WriteString("\033[H")

	for y := 0; y < fb.Height(); y += 2 {
		for x := 0; x < fb.Width(); x++ {
			top := fb[y][x]
			bottom := y+1 < fb.Height() && fb[y+1][x]

			switch {
			case top && bottom:
				d.writer.WriteString("█")
			case top:
				d.writer.WriteString("▀")
			case bottom:
				d.writer.WriteString("▄")
			default:
				d.writer.WriteByte(' ')
			}
		}

		d.writer.WriteString("\r\n")
	}

	return d.writer.Flush()
}

type terminalBuzzer struct {
	writer io.Writer
}

func (b *terminalBuzzer) SetActive(active bool) {
	if active {
		b.writer.Write([]byte{'\a'})
	}
}
