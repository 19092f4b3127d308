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
	"strings"
)

func (fb *Framebuffer) Width() int {
	return DISPLAY_WIDTH
}

func (fb *Framebuffer) Height() int {
	return DISPLAY_HEIGHT
}

// Coordinates wrap on both axes
func (fb *Framebuffer) Pixel(x, y int) bool {
	x = ((x % DISPLAY_WIDTH) + DISPLAY_WIDTH) % DISPLAY_WIDTH
	y = ((y % DISPLAY_HEIGHT) + DISPLAY_HEIGHT) % DISPLAY_HEIGHT

	return fb[y][x]
}

func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

// Renders the framebuffer as text, one line per row, '#' for set pixels
func (fb *Framebuffer) String() string {
	var builder strings.Builder
	builder.Grow((DISPLAY_WIDTH + 1) * DISPLAY_HEIGHT)

	for y := range fb {
		for x := range fb[y] {
			if fb[y][x] {
				builder.WriteByte('#')
			} else {
				builder.WriteByte('.')
			}
		}

		builder.WriteByte('\n')
	}

	return builder.String()
}

func (mc *Machine) Framebuffer() *Framebuffer {
	return &mc.State.Display
}

func (mc *Machine) clearDisplay() {
	mc.State.Display.Clear()
	mc.Redraw = true
}

// XORs an 8xN sprite read from I onto the display with its top-left corner
// at (x, y). Returns whether any set pixel was turned off.
func (mc *Machine) drawSprite(x, y, rows uint8) bool {
	collision := false
	originX := int(x) % DISPLAY_WIDTH
	originY := int(y) % DISPLAY_HEIGHT

	for row := 0; row < int(rows); row++ {
		sprite := mc.read(mc.State.Index + uint16(row))
		py := (originY + row) % DISPLAY_HEIGHT

		for col := 0; col < SPRITE_WIDTH; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			px := (originX + col) % DISPLAY_WIDTH

			if mc.State.Display[py][px] {
				collision = true
			}

			mc.State.Display[py][px] = !mc.State.Display[py][px]
		}
	}

	mc.Redraw = true

	return collision
}
