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

//go:build sdl

package main

import (
	"github.com/faiface/mainthread"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/veandco/go-sdl2/sdl"
)

// 1 2 3 4      1 2 3 C
// Q W E R  ->  4 5 6 D
// A S D F      7 8 9 E
// Z X C V      A 0 B F
var keymap = map[sdl.Scancode]uint8{
	sdl.Scancode(sdl.SCANCODE_1): 0x1,
	sdl.Scancode(sdl.SCANCODE_2): 0x2,
	sdl.Scancode(sdl.SCANCODE_3): 0x3,
	sdl.Scancode(sdl.SCANCODE_4): 0xC,
	sdl.Scancode(sdl.SCANCODE_Q): 0x4,
	sdl.Scancode(sdl.SCANCODE_W): 0x5,
	sdl.Scancode(sdl.SCANCODE_E): 0x6,
	sdl.Scancode(sdl.SCANCODE_R): 0xD,
	sdl.Scancode(sdl.SCANCODE_A): 0x7,
	sdl.Scancode(sdl.SCANCODE_S): 0x8,
	sdl.Scancode(sdl.SCANCODE_D): 0x9,
	sdl.Scancode(sdl.SCANCODE_F): 0xE,
	sdl.Scancode(sdl.SCANCODE_Z): 0xA,
	sdl.Scancode(sdl.SCANCODE_X): 0x0,
	sdl.Scancode(sdl.SCANCODE_C): 0xB,
	sdl.Scancode(sdl.SCANCODE_V): 0xF,
}

type keyChange struct {
	key     uint8
	pressed bool
}

// Events are drained on the main thread and applied to the machine from the
// runner's goroutine.
type windowKeypad struct {
	changes []keyChange

	// Runs once per poll, before any events are drained
	OnFrame func()
}

func (k *windowKeypad) Poll(mc *machine.Machine) (bool, error) {
	var quit bool

	if k.OnFrame != nil {
		k.OnFrame()
	}

	k.changes = k.changes[:0]

	mainthread.Call(func() {
		quit = k.drain()
	})

	for _, change := range k.changes {
		mc.SetKey(change.key, change.pressed)
	}

	return quit, nil
}

func (k *windowKeypad) drain() bool {
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}

			pressed := e.Type == sdl.KEYDOWN

			if e.Keysym.Sym == sdl.K_ESCAPE && pressed {
				quit = true
				continue
			}

			if key, ok := keymap[e.Keysym.Scancode]; ok {
				k.changes = append(k.changes, keyChange{key, pressed})
			}
		}
	}

	return quit
}
