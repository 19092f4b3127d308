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

// Package config holds the runtime options shared by the frontends
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/exp/rand"
)

const (
	SPEED_DEFAULT = 700
	SPEED_MIN     = machine.TIMER_HZ
	SPEED_MAX     = 100000

	SCALE_DEFAULT = 10
	SCALE_MIN     = 1
	SCALE_MAX     = 32
)

type Options struct {
	// Instructions executed per second
	Speed int

	// Window zoom for graphical frontends
	Scale int

	// CXNN seed, zero seeds from the clock
	Seed uint64

	Mute bool

	// Debugger REPL on start and on interrupt
	Debug bool

	Verbose bool
	Quiet   bool
}

type InvalidOptionError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (err *InvalidOptionError) Error() string {
	return fmt.Sprintf(
		"Invalid %s %d (expected %d-%d)", err.Name, err.Value, err.Min, err.Max,
	)
}

func Defaults() Options {
	return Options{
		Speed: SPEED_DEFAULT,
		Scale: SCALE_DEFAULT,
	}
}

func (opts *Options) Validate() error {
	if opts.Speed < SPEED_MIN || opts.Speed > SPEED_MAX {
		return &InvalidOptionError{"speed", opts.Speed, SPEED_MIN, SPEED_MAX}
	}

	if opts.Scale < SCALE_MIN || opts.Scale > SCALE_MAX {
		return &InvalidOptionError{"scale", opts.Scale, SCALE_MIN, SCALE_MAX}
	}

	return nil
}

// Binds the shared options to a flag set. The scale flag is only offered by
// frontends that draw to a window.
func (opts *Options) RegisterFlags(flags *flag.FlagSet, windowed bool) {
	flags.IntVar(&opts.Speed, "speed", opts.Speed, "instructions per second")
	flags.Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed, 0 uses the clock")
	flags.BoolVar(&opts.Mute, "mute", opts.Mute, "disable the buzzer")
	flags.BoolVar(&opts.Debug, "debug", opts.Debug, "start in the debugger")
	flags.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "log every executed instruction")
	flags.BoolVar(&opts.Quiet, "quiet", opts.Quiet, "only log errors")

	if windowed {
		flags.IntVar(&opts.Scale, "scale", opts.Scale, "window pixels per display pixel")
	}
}

// Instructions run per 60 Hz frame, never less than one
func (opts *Options) StepsPerFrame() int {
	steps := opts.Speed / machine.TIMER_HZ

	if steps < 1 {
		return 1
	}

	return steps
}

func (opts *Options) NewRandom() *rand.Rand {
	seed := opts.Seed

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewSource(seed))
}

func (opts *Options) Logger() *log.Logger {
	return CreateLogger(opts.Verbose, opts.Quiet)
}

// Logs go to stderr, stdout belongs to the terminal display
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = os.Stderr

	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}

	return log.NewWithConfig(cfg)
}
