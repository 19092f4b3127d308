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
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lassandro/gochip8/pkg/config"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/rom"
	"github.com/lassandro/gochip8/pkg/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var helpvar bool
var versionvar bool
var opts = config.Defaults()

const usage = "gochip8 [options] filename"

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&versionvar, "version", false, "Displays the build version")
	opts.RegisterFlags(flag.CommandLine, false)
}

func gochip8() int {
	flag.Parse()

	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	if versionvar {
		fmt.Println(buildinfo.Version(version, commit, date))
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := opts.Logger()

	image, err := rom.Load(args[0])

	if err != nil {
		logger.Error("Loading ROM failed", nil, log.Err(err))
		return 1
	}

	logger.Info(
		"Loaded ROM",
		log.String("rom", image.String()),
		log.String("version", buildinfo.Version(version, commit, date)),
	)

	var mc machine.Machine
	mc.Logger = logger
	mc.Random = opts.NewRandom()

	if err := image.Install(&mc); err != nil {
		logger.Error("Loading ROM failed", nil, log.Err(err))
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)

	input := pumpInput(os.Stdin)
	display := newTerminalDisplay(os.Stdout)
	keypad := &terminalKeypad{input: input, interrupts: interrupts}
	keypad.OnInterrupt = func(*machine.Machine) { cancel() }

	var session *debugSession

	if opts.Debug {
		session = newDebugSession(image.Data, input, os.Stdout, cancel)
		mc.Debugger = session.dbg
		keypad.OnInterrupt = session.interrupt
	}

	if err := enterRawTerm(); err != nil {
		logger.Warn("Raw terminal mode unavailable", log.Err(err))
	} else if session != nil {
		session.terminal = true
	}

	defer exitRawTerm()

	if err := display.Open(); err != nil {
		logger.Error("Opening display failed", nil, log.Err(err))
		return 1
	}

	defer display.Close()

	if session != nil {
		session.repl(&mc)
	}

	var buzzer runner.Buzzer

	if !opts.Mute {
		buzzer = &terminalBuzzer{os.Stdout}
	}

	r := runner.New(&mc, opts, display, keypad, buzzer, logger)

	if err := r.Run(ctx); err != nil {
		logger.Error("Emulation stopped", nil, log.Err(err))
		return 1
	}

	return 0
}

func main() {
	os.Exit(gochip8())
}
