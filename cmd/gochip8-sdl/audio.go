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
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const TONE_HZ = 440
const SAMPLE_RATE = 44100
const AMPLITUDE = 32

// Enough queued tone to cover a few frames so playback never starves between
// timer ticks
const QUEUE_SAMPLES = SAMPLE_RATE / 15

type audioBuzzer struct {
	device sdl.AudioDeviceID
	wave   []byte
	logger *log.Logger
	active bool
}

// Must be called from the main thread.
func openAudio(logger *log.Logger) (*audioBuzzer, error) {
	spec := sdl.AudioSpec{
		Freq:     SAMPLE_RATE,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  1024,
	}

	device, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)

	if err != nil {
		return nil, err
	}

	return &audioBuzzer{
		device: device,
		wave:   squareWave(QUEUE_SAMPLES),
		logger: logger,
	}, nil
}

// Unsigned 8-bit samples centred on 128
func squareWave(samples int) []byte {
	wave := make([]byte, samples)
	period := SAMPLE_RATE / TONE_HZ

	for i := range wave {
		if i%period < period/2 {
			wave[i] = 128 + AMPLITUDE
		} else {
			wave[i] = 128 - AMPLITUDE
		}
	}

	return wave
}

func (b *audioBuzzer) SetActive(active bool) {
	b.active = active

	mainthread.Call(func() {
		if !active {
			sdl.PauseAudioDevice(b.device, true)
			sdl.ClearQueuedAudio(b.device)
			return
		}

		if err := sdl.QueueAudio(b.device, b.wave); err != nil {
			b.logger.Warn("Queueing audio failed", log.Err(err))
			return
		}

		sdl.PauseAudioDevice(b.device, false)
	})
}

// Tops up the queue while the tone plays. Called once per frame.
func (b *audioBuzzer) Refill() {
	if !b.active {
		return
	}

	mainthread.Call(func() {
		if sdl.GetQueuedAudioSize(b.device) >= uint32(len(b.wave)/2) {
			return
		}

		if err := sdl.QueueAudio(b.device, b.wave); err != nil {
			b.logger.Warn("Queueing audio failed", log.Err(err))
		}
	})
}

// Must be called from the main thread.
func (b *audioBuzzer) Close() {
	sdl.CloseAudioDevice(b.device)
}
