package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrROMTooLarge       = errors.New("rom too large")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
)

// InvalidOpcodeError reports an opcode that does not match any known instruction.
type InvalidOpcodeError struct {
	Opcode uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %04X", e.Opcode)
}

func (e *InvalidOpcodeError) Is(target error) bool {
	return target == ErrInvalidOpcode
}

// AddressError reports an access that does not fit into memory.
// Address is an int so that accesses past 0xFFFF can be reported unchanged.
type AddressError struct {
	Address int
	Size    int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address out of range: %04X+%d", e.Address, e.Size)
}

func (e *AddressError) Is(target error) bool {
	return target == ErrAddressOutOfRange
}

// StepError wraps a fatal condition raised while running the instruction at PC.
type StepError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pc %03X opcode %04X: %v", e.PC, e.Opcode, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
