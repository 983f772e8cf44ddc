// Package main implements a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/tuboc/chip8vm/chip8"
	"github.com/tuboc/chip8vm/config"
	"github.com/tuboc/chip8vm/emulator"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	// sdl needs to run on the main thread
	runtime.LockOSThread()
}

func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags(os.Args[1:])
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage(os.Stderr)
			os.Exit(1)
		}
		logger.Fatal(err.Error())
	}
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, emulator.ErrNoROMSelected) {
			logger.Info("No rom selected")
			return
		}
		logger.Fatal(err.Error())
	}
}

func printBanner(logger *log.Logger, opts config.Options) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	if opts.ROM == "" {
		if opts.Frontend != config.FrontendSDL {
			return errors.New("no rom file given")
		}
		path, err := emulator.SelectROMFile()
		if err != nil {
			return err
		}
		opts.ROM = path
	}

	vm, err := newMachine(logger, opts)
	if err != nil {
		return err
	}

	if opts.Dump {
		if err := vm.Memory().Dump(os.Stdout); err != nil {
			return fmt.Errorf("dumping memory: %w", err)
		}
		return nil
	}

	frontend, err := newFrontend(logger, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := frontend.Close(); err != nil {
			logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	emu := emulator.New(logger, vm, frontend, emulator.Config{
		ClockHz:           opts.ClockHz,
		ContinueOnInvalid: opts.ContinueOnInvalid,
		Trace:             opts.Trace,
		StepMode:          opts.Step,
		MaxFrames:         opts.Frames,
		Unthrottled:       opts.Frontend == config.FrontendHeadless,
	})

	if err := emu.Run(ctx); err != nil {
		for _, tr := range vm.History() {
			logger.Error("Executed before halt", log.String("instruction", tr.String()))
		}
		return err
	}

	logger.Debug("Emulation stopped", log.Int("frames", int(emu.Frames())))
	return nil
}

func newMachine(logger *log.Logger, opts config.Options) (*chip8.Chip8, error) {
	rom, err := emulator.LoadROMFile(opts.ROM)
	if err != nil {
		return nil, err
	}

	quirks, err := chip8.QuirksByName(opts.Quirks)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	vm := chip8.New(
		chip8.WithQuirks(quirks),
		chip8.WithRandom(rand.New(rand.NewSource(seed))),
	)
	if err := vm.LoadROM(rom); err != nil {
		return nil, err
	}

	logger.Info("Loaded rom",
		log.String("file", opts.ROM),
		log.Int("size", len(rom)),
		log.String("quirks", opts.Quirks))
	return vm, nil
}

func newFrontend(logger *log.Logger, opts config.Options) (emulator.Frontend, error) {
	switch opts.Frontend {
	case config.FrontendTerminal:
		return emulator.NewTerminalFrontend(os.Stdin, os.Stdout)
	case config.FrontendHeadless:
		return emulator.NewHeadlessFrontend(os.Stdout), nil
	default:
		return emulator.NewSDLFrontend(logger, "Chip-8 Emulator", opts.Font)
	}
}
