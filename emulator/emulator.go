// Package emulator drives a chip8 virtual machine in real time and connects it
// to a frontend that shows the display, plays the tone and reads the keys.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/tuboc/chip8vm/chip8"
	"golang.org/x/sync/errgroup"
)

const VBlankFrequency = 60

type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventQuit
	EventStep   // enter step mode, or execute one instruction while in it
	EventResume // leave step mode
	EventReset
	EventFocusLost
	EventFocusGained
)

// Event is an input event reported by a frontend. Key is only set for key events.
type Event struct {
	Kind EventKind
	Key  uint8
}

// Frontend presents the machine to the user. All methods are called from the
// goroutine that runs the emulator.
type Frontend interface {
	PollEvents() []Event
	Render(vm *chip8.Chip8)
	SetTone(on bool)
	Close() error
}

// Pumper is implemented by frontends that need a goroutine of their own to collect input.
// Pump returns when ctx is cancelled.
type Pumper interface {
	Pump(ctx context.Context) error
}

type Config struct {
	ClockHz           int    // instructions per second
	ContinueOnInvalid bool   // skip invalid opcodes instead of halting
	Trace             bool   // log every executed instruction
	StepMode          bool   // start in step mode
	MaxFrames         uint64 // stop after this many frames, 0 runs until quit
	Unthrottled       bool   // run frames back to back instead of at 60 Hz
}

type Emulator struct {
	logger   *log.Logger
	vm       *chip8.Chip8
	frontend Frontend
	cfg      Config

	stepMode bool
	focus    bool
	frames   uint64
	clock    int // instructions owed to the machine, in 1/60 units
}

func New(logger *log.Logger, vm *chip8.Chip8, frontend Frontend, cfg Config) *Emulator {
	if cfg.ClockHz <= 0 {
		cfg.ClockHz = VBlankFrequency * 8
	}
	return &Emulator{
		logger:   logger,
		vm:       vm,
		frontend: frontend,
		cfg:      cfg,
		stepMode: cfg.StepMode,
		focus:    true,
	}
}

// Run executes frames until the frontend reports a quit, the frame limit is
// reached, ctx is cancelled or the machine faults. The frame loop runs on the
// calling goroutine.
func (e *Emulator) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if p, ok := e.frontend.(Pumper); ok {
		g.Go(func() error {
			return p.Pump(ctx)
		})
	}

	err := e.loop(ctx)
	cancel()
	if werr := g.Wait(); err == nil && werr != nil && !errors.Is(werr, context.Canceled) {
		err = fmt.Errorf("reading input: %w", werr)
	}
	return err
}

// Frames returns the number of frames run so far.
func (e *Emulator) Frames() uint64 {
	return e.frames
}

func (e *Emulator) loop(ctx context.Context) error {
	var tick <-chan time.Time
	if !e.cfg.Unthrottled {
		ticker := time.NewTicker(time.Second / VBlankFrequency)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		}

		running, err := e.frame()
		if err != nil || !running {
			return err
		}
		if e.cfg.MaxFrames > 0 && e.frames >= e.cfg.MaxFrames {
			return nil
		}
	}
}

// frame processes the pending input, runs one frame worth of instructions,
// ticks the timers and presents the result.
func (e *Emulator) frame() (bool, error) {
	for _, ev := range e.frontend.PollEvents() {
		running, err := e.handleEvent(ev)
		if err != nil || !running {
			return running, err
		}
	}

	active := e.focus && !e.stepMode
	if active {
		e.clock += e.cfg.ClockHz
		cycles := e.clock / VBlankFrequency
		e.clock %= VBlankFrequency

		for range cycles {
			if err := e.step(); err != nil {
				return false, err
			}
		}
		e.vm.TickTimers()
	}

	e.frontend.SetTone(active && e.vm.SoundTimer() > 0)
	e.frontend.Render(e.vm)
	e.frames++
	return true, nil
}

func (e *Emulator) handleEvent(ev Event) (bool, error) {
	switch ev.Kind {
	case EventQuit:
		return false, nil
	case EventKeyDown:
		e.vm.Keypad().Press(ev.Key)
	case EventKeyUp:
		e.vm.Keypad().Release(ev.Key)
	case EventStep:
		if !e.stepMode {
			e.stepMode = true
			e.logger.Info("Entered step mode")
			return true, nil
		}
		if err := e.step(); err != nil {
			return false, err
		}
		if tr, ok := e.vm.LastTrace(); ok {
			e.logger.Info("Step", log.String("instruction", tr.String()))
		}
	case EventResume:
		e.stepMode = false
	case EventReset:
		e.vm.Reset()
		e.clock = 0
		e.logger.Info("Machine reset")
	case EventFocusLost:
		e.focus = false
	case EventFocusGained:
		e.focus = true
	}
	return true, nil
}

func (e *Emulator) step() error {
	err := e.vm.Step()
	if err == nil {
		if e.cfg.Trace {
			if tr, ok := e.vm.LastTrace(); ok {
				e.logger.Debug("Executed",
					log.Hex("pc", tr.PC),
					log.Hex("opcode", tr.Opcode),
					log.String("instruction", tr.Instruction.String()))
			}
		}
		return nil
	}

	if e.cfg.ContinueOnInvalid && errors.Is(err, chip8.ErrInvalidOpcode) {
		e.logger.Error("Skipping invalid opcode", log.Err(err))
		e.vm.Skip()
		return nil
	}
	return fmt.Errorf("emulation halted: %w", err)
}
