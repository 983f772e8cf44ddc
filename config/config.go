// Package config handles command line options and logger setup
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/tuboc/chip8vm/chip8"
)

const (
	FrontendSDL      = "sdl"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"

	// DefaultClockHz is 8 instructions per 60 Hz frame.
	DefaultClockHz = 480

	// DefaultHeadlessFrames is used when the headless frontend runs without a frame limit.
	DefaultHeadlessFrames = 600
)

// Options holds all settings of a run of the emulator.
type Options struct {
	ROM      string
	Frontend string
	ClockHz  int
	Quirks   string
	Font     string
	Seed     int64

	Frames            uint64 // stop after this many frames, 0 runs until quit
	ContinueOnInvalid bool
	Step              bool
	Dump              bool
	Trace             bool
	Debug             bool
	Quiet             bool
}

// UsageError is returned by ParseFlags when the usage text should be shown.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip8vm [options] [rom file]\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, excluding the program name.
// A missing ROM is not an error, the caller can ask the user for one.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8vm", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) > 1:
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("unexpected argument %s, pass the rom file as last argument", rest[1])}
	case len(rest) == 1 && opts.ROM == "":
		opts.ROM = rest[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.StringVar(&opts.ROM, "f", "", "name of the rom file to run, a file dialog is shown if no name given")
	flags.StringVar(&opts.Frontend, "frontend", FrontendSDL, "frontend to use (sdl/terminal/headless)")
	flags.IntVar(&opts.ClockHz, "clock", DefaultClockHz, "instructions executed per second")
	flags.StringVar(&opts.Quirks, "quirks", chip8.QuirksModern, "instruction behavior profile (modern/vip)")
	flags.StringVar(&opts.Font, "font", "", "font image for the debug overlay of the sdl frontend")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")
	flags.Uint64Var(&opts.Frames, "frames", 0, "stop after the given number of frames")
	flags.BoolVar(&opts.ContinueOnInvalid, "continue", false, "skip invalid opcodes instead of halting")
	flags.BoolVar(&opts.Step, "s", false, "start in step mode")
	flags.BoolVar(&opts.Dump, "dump", false, "print the memory after loading the rom and exit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func normalizeOptions(opts *Options) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	switch opts.Frontend {
	case FrontendSDL, FrontendTerminal, FrontendHeadless:
	default:
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join([]string{FrontendSDL, FrontendTerminal, FrontendHeadless}, ", "))
	}

	opts.Quirks = strings.ToLower(opts.Quirks)
	if _, err := chip8.QuirksByName(opts.Quirks); err != nil {
		return err
	}

	if opts.ClockHz <= 0 {
		return fmt.Errorf("invalid clock rate %d", opts.ClockHz)
	}
	if opts.Frontend == FrontendHeadless && opts.Frames == 0 {
		opts.Frames = DefaultHeadlessFrames
	}
	if opts.Trace {
		opts.Debug = true
	}
	return nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
