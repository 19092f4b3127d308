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
	"unsafe"

	"github.com/faiface/mainthread"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/veandco/go-sdl2/sdl"
)

const PIXEL_ON = 0xFF
const PIXEL_OFF = 0x00

// RGBA32 stores each pixel as four bytes in R, G, B, A order
const BYTES_PER_PIXEL = 4

type windowDisplay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
}

// Must be called from the main thread.
func openWindow(title string, scale int) (*windowDisplay, error) {
	width := int32(machine.DISPLAY_WIDTH * scale)
	height := int32(machine.DISPLAY_HEIGHT * scale)

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		width,
		height,
		sdl.WINDOW_SHOWN,
	)

	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)

	if err != nil {
		window.Destroy()
		return nil, err
	}

	if err := renderer.SetLogicalSize(
		machine.DISPLAY_WIDTH,
		machine.DISPLAY_HEIGHT,
	); err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_RGBA32),
		sdl.TEXTUREACCESS_STREAMING,
		machine.DISPLAY_WIDTH,
		machine.DISPLAY_HEIGHT,
	)

	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	return &windowDisplay{
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make(
			[]byte,
			machine.DISPLAY_WIDTH*machine.DISPLAY_HEIGHT*BYTES_PER_PIXEL,
		),
	}, nil
}

func (d *windowDisplay) Render(fb *machine.Framebuffer) error {
	for y := 0; y < machine.DISPLAY_HEIGHT; y++ {
		for x := 0; x < machine.DISPLAY_WIDTH; x++ {
			level := byte(PIXEL_OFF)

			if fb.Pixel(x, y) {
				level = PIXEL_ON
			}

			offset := (y*machine.DISPLAY_WIDTH + x) * BYTES_PER_PIXEL
			d.pixels[offset+0] = level
			d.pixels[offset+1] = level
			d.pixels[offset+2] = level
			d.pixels[offset+3] = 0xFF
		}
	}

	var err error

	mainthread.Call(func() {
		err = d.present()
	})

	return err
}

func (d *windowDisplay) present() error {
	if err := d.texture.Update(
		nil,
		unsafe.Pointer(&d.pixels[0]),
		machine.DISPLAY_WIDTH*BYTES_PER_PIXEL,
	); err != nil {
		return err
	}

	if err := d.renderer.SetDrawColor(0, 0, 0, 0xFF); err != nil {
		return err
	}

	if err := d.renderer.Clear(); err != nil {
		return err
	}

	if err := d.renderer.Copy(d.texture, nil, nil); err != nil {
		return err
	}

	d.renderer.Present()
	return nil
}

// Must be called from the main thread.
func (d *windowDisplay) Close() {
	d.texture.Destroy()
	d.renderer.Destroy()
	d.window.Destroy()
}
