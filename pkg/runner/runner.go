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

// Package runner drives a Machine at a fixed instruction rate against host
// devices, ticking its timers at 60 Hz.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/lassandro/gochip8/pkg/config"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/retroenv/retrogolib/log"
)

type Display interface {
	Render(fb *machine.Framebuffer) error
}

// Polled once per frame before any instruction runs. Implementations push
// key changes into the machine and report whether the user asked to quit.
type Keypad interface {
	Poll(mc *machine.Machine) (quit bool, err error)
}

type Buzzer interface {
	SetActive(active bool)
}

type Stats struct {
	Instructions   uint64
	Frames         uint64
	UnknownOpcodes uint64
}

// Not safe for concurrent use. Devices may be nil.
type Runner struct {
	Machine *machine.Machine
	Display Display
	Keypad  Keypad
	Buzzer  Buzzer
	Logger  *log.Logger

	steps   int
	buzzing bool
	stats   Stats
}

func New(
	mc *machine.Machine,
	opts config.Options,
	display Display,
	keypad Keypad,
	buzzer Buzzer,
	logger *log.Logger,
) *Runner {
	if logger == nil {
		logger = log.NewNop()
	}

	return &Runner{
		Machine: mc,
		Display: display,
		Keypad:  keypad,
		Buzzer:  buzzer,
		Logger:  logger,
		steps:   opts.StepsPerFrame(),
	}
}

func (r *Runner) Stats() Stats {
	return r.stats
}

// Runs one 60 Hz frame: input, a batch of instructions, one timer tick,
// sound, and a render when the framebuffer changed.
func (r *Runner) Frame() (bool, error) {
	mc := r.Machine

	if r.Keypad != nil {
		quit, err := r.Keypad.Poll(mc)

		if err != nil {
			return false, fmt.Errorf("polling keypad: %w", err)
		}

		if quit {
			return true, nil
		}
	}

	for i := 0; i < r.steps && !mc.AwaitingKey(); i++ {
		err := mc.Step()

		if err != nil && machine.IsFatal(err) {
			return false, err
		}

		if err != nil {
			r.stats.UnknownOpcodes++
		}

		r.stats.Instructions++
	}

	mc.Tick()
	r.setBuzzer(mc.SoundActive())

	if mc.Redraw && r.Display != nil {
		if err := r.Display.Render(mc.Framebuffer()); err != nil {
			return false, fmt.Errorf("rendering frame: %w", err)
		}
	}

	mc.Redraw = false
	r.stats.Frames++

	return false, nil
}

func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / machine.TIMER_HZ)
	defer ticker.Stop()
	defer r.shutdown()

	r.Logger.Info("Machine started", log.Int("steps_per_frame", r.steps))

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("Machine stopped", log.Err(ctx.Err()))
			return nil

		case <-ticker.C:
			quit, err := r.Frame()

			if err != nil {
				return err
			}

			if quit {
				r.Logger.Info("Machine stopped by user")
				return nil
			}
		}
	}
}

func (r *Runner) setBuzzer(active bool) {
	if r.Buzzer == nil || active == r.buzzing {
		return
	}

	r.Buzzer.SetActive(active)
	r.buzzing = active
}

func (r *Runner) shutdown() {
	r.Machine.CancelKeyWait()

	if r.Buzzer != nil {
		r.Buzzer.SetActive(false)
		r.buzzing = false
	}

	r.Logger.Debug(
		"Machine statistics",
		log.Uint64("instructions", r.stats.Instructions),
		log.Uint64("frames", r.stats.Frames),
		log.Uint64("unknown_opcodes", r.stats.UnknownOpcodes),
	)
}
