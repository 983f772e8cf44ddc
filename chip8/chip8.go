// Package chip8 implements the CHIP-8 virtual machine: memory, instruction
// decoding and execution. It has no notion of time; a driver calls Step at the
// instruction rate of its choice and TickTimers at 60 Hz.
package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	StackDepth      = 16
	InstructionSize = 2
	OpHistoryNum    = 16
)

// RandomSource provides the bytes used by the Cxkk instruction. *rand.Rand satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// Chip8 is the processor state of the virtual machine.
//
// A Chip8 is not safe for concurrent use. Input, rendering and timer ticks
// must happen between calls to Step.
type Chip8 struct {
	mem   Memory
	pc    uint16             // program counter
	v     [16]uint8          // registers
	i     uint16             // index register
	dt    uint8              // delay timer
	st    uint8              // sound timer
	sp    uint8              // stack pointer, number of pushed return addresses
	stack [StackDepth]uint16 // stack
	keys  Keypad             // keyboards state
	disp  Display            // graphics

	rom    []byte
	quirks Quirks
	rand   RandomSource
	cycles uint64

	ophistory      [OpHistoryNum]Trace
	ophistoryIndex int
	ophistoryLen   int
}

// Option configures a Chip8.
type Option func(*Chip8)

func WithQuirks(q Quirks) Option {
	return func(c *Chip8) {
		c.quirks = q
	}
}

func WithRandom(r RandomSource) Option {
	return func(c *Chip8) {
		c.rand = r
	}
}

// New returns a machine in power-on state with the font loaded and no program.
func New(opts ...Option) *Chip8 {
	c := &Chip8{}
	for _, opt := range opts {
		opt(c)
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c.Reset()
	return c
}

// LoadROM stores rom as the program of the machine and copies it into memory at ProgramOffset.
// The program is loaded again by every Reset.
func (c *Chip8) LoadROM(rom []byte) error {
	if err := c.mem.Load(rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	c.rom = append([]byte(nil), rom...)
	return nil
}

// Reset restores the power-on state and reloads the current program.
func (c *Chip8) Reset() {
	c.mem = Memory{}
	c.mem.loadFont()
	_ = c.mem.Load(c.rom) // size was checked by LoadROM

	c.pc = ProgramOffset
	c.v = [16]uint8{}
	c.i = 0
	c.dt = 0
	c.st = 0
	c.sp = 0
	c.stack = [StackDepth]uint16{}
	c.keys.Reset()
	c.disp.Clear()

	c.cycles = 0
	c.ophistory = [OpHistoryNum]Trace{}
	c.ophistoryIndex = 0
	c.ophistoryLen = 0
}

// Step fetches, decodes and executes a single instruction.
//
// On failure the program counter is left at the faulting instruction and
// the returned *StepError wraps one of the package sentinel errors.
func (c *Chip8) Step() error {
	pc := c.pc
	op, err := c.mem.FetchWord(pc)
	if err != nil {
		return &StepError{PC: pc, Err: err}
	}

	ins, err := Decode(op)
	if err != nil {
		return &StepError{PC: pc, Opcode: op, Err: err}
	}

	if err := c.Execute(ins); err != nil {
		return &StepError{PC: pc, Opcode: op, Err: err}
	}

	c.cycles++
	c.ophistory[c.ophistoryIndex] = Trace{PC: pc, Opcode: op, Instruction: ins}
	c.ophistoryIndex = (c.ophistoryIndex + 1) % OpHistoryNum
	if c.ophistoryLen < OpHistoryNum {
		c.ophistoryLen++
	}
	return nil
}

// Skip moves the program counter past the current instruction without executing it.
func (c *Chip8) Skip() {
	c.pc += InstructionSize
}

// TickTimers decrements the delay and sound timers toward zero. It is meant to be called at 60 Hz.
func (c *Chip8) TickTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

func (c *Chip8) updateCarryFlag(b bool) {
	if b {
		c.v[VF] = 1
	} else {
		c.v[VF] = 0
	}
}

func (c *Chip8) pushStack(v uint16) error {
	if c.sp >= StackDepth {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, c.sp)
	}
	c.stack[c.sp] = v
	c.sp++
	return nil
}

func (c *Chip8) popStack() (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

// Memory gives access to the address space, for diagnostics such as Dump.
func (c *Chip8) Memory() *Memory {
	return &c.mem
}

// Display returns the frame buffer. It must only be read between calls to Step.
func (c *Chip8) Display() *Display {
	return &c.disp
}

// Keypad returns the key state written by the input collaborator.
func (c *Chip8) Keypad() *Keypad {
	return &c.keys
}

func (c *Chip8) Quirks() Quirks {
	return c.quirks
}

func (c *Chip8) SoundTimer() uint8 {
	return c.st
}

func (c *Chip8) DelayTimer() uint8 {
	return c.dt
}

func (c *Chip8) PC() uint16 {
	return c.pc
}

// State is a copy of the registers of the machine.
type State struct {
	V      [16]uint8
	I      uint16
	PC     uint16
	SP     uint8
	DT     uint8
	ST     uint8
	Stack  [StackDepth]uint16
	Cycles uint64
}

func (c *Chip8) State() State {
	return State{
		V:      c.v,
		I:      c.i,
		PC:     c.pc,
		SP:     c.sp,
		DT:     c.dt,
		ST:     c.st,
		Stack:  c.stack,
		Cycles: c.cycles,
	}
}

// Trace records one executed instruction.
type Trace struct {
	PC          uint16
	Opcode      uint16
	Instruction Instruction
}

func (t Trace) String() string {
	return fmt.Sprintf("%03X-%04X %s", t.PC, t.Opcode, t.Instruction)
}

// History returns the most recently executed instructions, oldest first.
func (c *Chip8) History() []Trace {
	h := make([]Trace, 0, c.ophistoryLen)
	start := c.ophistoryIndex - c.ophistoryLen
	if start < 0 {
		start += OpHistoryNum
	}
	for i := 0; i < c.ophistoryLen; i++ {
		h = append(h, c.ophistory[(start+i)%OpHistoryNum])
	}
	return h
}

// LastTrace returns the instruction executed by the latest successful Step.
func (c *Chip8) LastTrace() (Trace, bool) {
	if c.ophistoryLen == 0 {
		return Trace{}, false
	}
	return c.ophistory[(c.ophistoryIndex+OpHistoryNum-1)%OpHistoryNum], true
}
