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

package config_test

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/lassandro/gochip8/pkg/config"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDefaults(t *testing.T) {
	opts := config.Defaults()

	assert.Equal(t, 700, opts.Speed)
	assert.Equal(t, 10, opts.Scale)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.False(t, opts.Mute)
	assert.NoError(t, opts.Validate())
	assert.Equal(t, 11, opts.StepsPerFrame())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		Name  string
		Speed int
		Scale int
		Error string
	}{
		{"Minimum", 60, 1, ""},
		{"Maximum", 100000, 32, ""},
		{"Slow", 59, 10, "Invalid speed 59 (expected 60-100000)"},
		{"Fast", 100001, 10, "Invalid speed 100001 (expected 60-100000)"},
		{"Tiny", 700, 0, "Invalid scale 0 (expected 1-32)"},
		{"Huge", 700, 33, "Invalid scale 33 (expected 1-32)"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			opts := config.Defaults()
			opts.Speed = test.Speed
			opts.Scale = test.Scale

			err := opts.Validate()

			if test.Error == "" {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err, test.Error)

			var invalid *config.InvalidOptionError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestStepsPerFrame(t *testing.T) {
	opts := config.Options{Speed: 60}
	assert.Equal(t, 1, opts.StepsPerFrame())

	opts.Speed = 30
	assert.Equal(t, 1, opts.StepsPerFrame())

	opts.Speed = 6000
	assert.Equal(t, 100, opts.StepsPerFrame())
}

func TestRegisterFlags(t *testing.T) {
	opts := config.Defaults()
	flags := flag.NewFlagSet("gochip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	opts.RegisterFlags(flags, true)

	err := flags.Parse([]string{
		"-speed", "1200", "-seed", "42", "-mute", "-verbose", "-scale", "4",
		"rom.ch8",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1200, opts.Speed)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.True(t, opts.Mute)
	assert.True(t, opts.Verbose)
	assert.False(t, opts.Debug)
	assert.Equal(t, 4, opts.Scale)
	assert.Equal(t, []string{"rom.ch8"}, flags.Args())

	terminal := flag.NewFlagSet("gochip8", flag.ContinueOnError)
	terminal.SetOutput(io.Discard)
	opts.RegisterFlags(terminal, false)
	assert.True(t, terminal.Parse([]string{"-scale", "4"}) != nil)
}

func TestNewRandomSeeded(t *testing.T) {
	opts := config.Options{Seed: 1234}

	a := opts.NewRandom()
	b := opts.NewRandom()

	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint32(), b.Uint32())
	}
}

func TestCreateLogger(t *testing.T) {
	assert.True(t, config.CreateLogger(true, false).Enabled(log.DebugLevel))
	assert.False(t, config.CreateLogger(false, true).Enabled(log.WarnLevel))
	assert.True(t, config.CreateLogger(false, true).Enabled(log.ErrorLevel))
	assert.False(t, config.CreateLogger(false, false).Enabled(log.DebugLevel))

	opts := config.Options{Verbose: true}
	assert.True(t, opts.Logger().Enabled(log.DebugLevel))
}
