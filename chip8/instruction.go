package chip8

import (
	"fmt"
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one of the instructions of the CHIP-8 instruction set.
type Op uint8

const (
	OpInvalid Op = iota
	OpClearDisplay
	OpReturn
	OpJump
	OpCall
	OpSkipIfEqualByte
	OpSkipIfNotEqualByte
	OpSkipIfEqualRegister
	OpLoadByte
	OpAddByte
	OpMove
	OpOr
	OpAnd
	OpXor
	OpAdd
	OpSubtract
	OpShiftRight
	OpSubtractReverse
	OpShiftLeft
	OpSkipIfNotEqualRegister
	OpLoadIndex
	OpJumpWithOffset
	OpRandomWithMask
	OpDraw
	OpSkipIfPressed
	OpSkipIfNotPressed
	OpLoadDelayTimer
	OpWaitKeyPress
	OpStoreDelayTimer
	OpStoreSoundTimer
	OpAddToIndex
	OpLoadSprite
	OpStoreBCD
	OpStoreRegisters
	OpLoadRegisters

	opCount
)

var opNames = [opCount]string{
	OpInvalid:                "Invalid",
	OpClearDisplay:           "ClearDisplay",
	OpReturn:                 "Return",
	OpJump:                   "Jump",
	OpCall:                   "Call",
	OpSkipIfEqualByte:        "SkipIfEqualByte",
	OpSkipIfNotEqualByte:     "SkipIfNotEqualByte",
	OpSkipIfEqualRegister:    "SkipIfEqualRegister",
	OpLoadByte:               "LoadByte",
	OpAddByte:                "AddByte",
	OpMove:                   "Move",
	OpOr:                     "Or",
	OpAnd:                    "And",
	OpXor:                    "Xor",
	OpAdd:                    "Add",
	OpSubtract:               "Subtract",
	OpShiftRight:             "ShiftRight",
	OpSubtractReverse:        "SubtractReverse",
	OpShiftLeft:              "ShiftLeft",
	OpSkipIfNotEqualRegister: "SkipIfNotEqualRegister",
	OpLoadIndex:              "LoadIndex",
	OpJumpWithOffset:         "JumpWithOffset",
	OpRandomWithMask:         "RandomWithMask",
	OpDraw:                   "Draw",
	OpSkipIfPressed:          "SkipIfPressed",
	OpSkipIfNotPressed:       "SkipIfNotPressed",
	OpLoadDelayTimer:         "LoadDelayTimer",
	OpWaitKeyPress:           "WaitKeyPress",
	OpStoreDelayTimer:        "StoreDelayTimer",
	OpStoreSoundTimer:        "StoreSoundTimer",
	OpAddToIndex:             "AddToIndex",
	OpLoadSprite:             "LoadSprite",
	OpStoreBCD:               "StoreBCD",
	OpStoreRegisters:         "StoreRegisters",
	OpLoadRegisters:          "LoadRegisters",
}

func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// mnemonics maps every op to its entry in the reference CHIP-8 instruction table.
var mnemonics = map[Op]*cpu.Instruction{
	OpClearDisplay:           cpu.Cls,
	OpReturn:                 cpu.Ret,
	OpJump:                   cpu.Jp,
	OpCall:                   cpu.Call,
	OpSkipIfEqualByte:        cpu.Se,
	OpSkipIfNotEqualByte:     cpu.Sne,
	OpSkipIfEqualRegister:    cpu.Se,
	OpLoadByte:               cpu.Ld,
	OpAddByte:                cpu.Add,
	OpMove:                   cpu.Ld,
	OpOr:                     cpu.Or,
	OpAnd:                    cpu.And,
	OpXor:                    cpu.Xor,
	OpAdd:                    cpu.Add,
	OpSubtract:               cpu.Sub,
	OpShiftRight:             cpu.Shr,
	OpSubtractReverse:        cpu.Subn,
	OpShiftLeft:              cpu.Shl,
	OpSkipIfNotEqualRegister: cpu.Sne,
	OpLoadIndex:              cpu.Ld,
	OpJumpWithOffset:         cpu.Jp,
	OpRandomWithMask:         cpu.Rnd,
	OpDraw:                   cpu.Drw,
	OpSkipIfPressed:          cpu.Skp,
	OpSkipIfNotPressed:       cpu.Sknp,
	OpLoadDelayTimer:         cpu.Ld,
	OpWaitKeyPress:           cpu.Ld,
	OpStoreDelayTimer:        cpu.Ld,
	OpStoreSoundTimer:        cpu.Ld,
	OpAddToIndex:             cpu.Add,
	OpLoadSprite:             cpu.Ld,
	OpStoreBCD:               cpu.Ld,
	OpStoreRegisters:         cpu.Ld,
	OpLoadRegisters:          cpu.Ld,
}

// Register is the index of a general purpose register, V0 to VF.
type Register uint8

// VF is the flag register.
const VF Register = 0xF

func (r Register) String() string {
	return fmt.Sprintf("V%X", uint8(r))
}

// Nibble is a 4 bit operand.
type Nibble uint8

// Address is a 12 bit memory address operand.
type Address uint16

// Instruction is a decoded opcode. Only the operands used by Op are set.
type Instruction struct {
	Op  Op
	X   Register
	Y   Register
	N   Nibble
	KK  uint8
	NNN Address
}

// Mnemonic returns the assembler mnemonic of the instruction, for example "LD".
func (ins Instruction) Mnemonic() string {
	if m, ok := mnemonics[ins.Op]; ok {
		return strings.ToUpper(m.Name)
	}
	return "???"
}

// String formats the instruction in the usual assembler syntax, for example "LD V0, $05".
func (ins Instruction) String() string {
	var params string
	switch ins.Op {
	case OpClearDisplay, OpReturn:
	case OpJump, OpCall:
		params = fmt.Sprintf("$%03X", uint16(ins.NNN))
	case OpSkipIfEqualByte, OpSkipIfNotEqualByte, OpLoadByte, OpAddByte, OpRandomWithMask:
		params = fmt.Sprintf("%s, $%02X", ins.X, ins.KK)
	case OpSkipIfEqualRegister, OpSkipIfNotEqualRegister, OpMove, OpOr, OpAnd, OpXor,
		OpAdd, OpSubtract, OpSubtractReverse:
		params = fmt.Sprintf("%s, %s", ins.X, ins.Y)
	case OpShiftRight, OpShiftLeft:
		params = fmt.Sprintf("%s {, %s}", ins.X, ins.Y)
	case OpLoadIndex:
		params = fmt.Sprintf("I, $%03X", uint16(ins.NNN))
	case OpJumpWithOffset:
		params = fmt.Sprintf("V0, $%03X", uint16(ins.NNN))
	case OpDraw:
		params = fmt.Sprintf("%s, %s, $%X", ins.X, ins.Y, uint8(ins.N))
	case OpSkipIfPressed, OpSkipIfNotPressed:
		params = ins.X.String()
	case OpLoadDelayTimer:
		params = fmt.Sprintf("%s, DT", ins.X)
	case OpWaitKeyPress:
		params = fmt.Sprintf("%s, K", ins.X)
	case OpStoreDelayTimer:
		params = fmt.Sprintf("DT, %s", ins.X)
	case OpStoreSoundTimer:
		params = fmt.Sprintf("ST, %s", ins.X)
	case OpAddToIndex:
		params = fmt.Sprintf("I, %s", ins.X)
	case OpLoadSprite:
		params = fmt.Sprintf("F, %s", ins.X)
	case OpStoreBCD:
		params = fmt.Sprintf("B, %s", ins.X)
	case OpStoreRegisters:
		params = fmt.Sprintf("[I], %s", ins.X)
	case OpLoadRegisters:
		params = fmt.Sprintf("%s, [I]", ins.X)
	default:
		return ins.Mnemonic()
	}

	if params == "" {
		return ins.Mnemonic()
	}
	return fmt.Sprintf("%-4s %s", ins.Mnemonic(), params)
}
