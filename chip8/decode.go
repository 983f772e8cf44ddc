package chip8

// Decode maps a 16 bit opcode to its instruction.
func Decode(op uint16) (Instruction, error) {
	x := Register((op >> 8) & 0xf)
	y := Register((op >> 4) & 0xf)
	n := Nibble(op & 0xf)
	kk := uint8(op & 0xff)
	nnn := Address(op & 0x0fff)

	ins := Instruction{}
	switch op & 0xF000 {
	case 0x0000:
		switch op {
		case 0x00E0:
			ins = Instruction{Op: OpClearDisplay}
		case 0x00EE:
			ins = Instruction{Op: OpReturn}
		}
	case 0x1000:
		ins = Instruction{Op: OpJump, NNN: nnn}
	case 0x2000:
		ins = Instruction{Op: OpCall, NNN: nnn}
	case 0x3000:
		ins = Instruction{Op: OpSkipIfEqualByte, X: x, KK: kk}
	case 0x4000:
		ins = Instruction{Op: OpSkipIfNotEqualByte, X: x, KK: kk}
	case 0x5000:
		if n == 0 {
			ins = Instruction{Op: OpSkipIfEqualRegister, X: x, Y: y}
		}
	case 0x6000:
		ins = Instruction{Op: OpLoadByte, X: x, KK: kk}
	case 0x7000:
		ins = Instruction{Op: OpAddByte, X: x, KK: kk}
	case 0x8000:
		var o Op
		switch n {
		case 0x0:
			o = OpMove
		case 0x1:
			o = OpOr
		case 0x2:
			o = OpAnd
		case 0x3:
			o = OpXor
		case 0x4:
			o = OpAdd
		case 0x5:
			o = OpSubtract
		case 0x6:
			o = OpShiftRight
		case 0x7:
			o = OpSubtractReverse
		case 0xE:
			o = OpShiftLeft
		}
		if o != OpInvalid {
			ins = Instruction{Op: o, X: x, Y: y}
		}
	case 0x9000:
		if n == 0 {
			ins = Instruction{Op: OpSkipIfNotEqualRegister, X: x, Y: y}
		}
	case 0xA000:
		ins = Instruction{Op: OpLoadIndex, NNN: nnn}
	case 0xB000:
		ins = Instruction{Op: OpJumpWithOffset, NNN: nnn}
	case 0xC000:
		ins = Instruction{Op: OpRandomWithMask, X: x, KK: kk}
	case 0xD000:
		ins = Instruction{Op: OpDraw, X: x, Y: y, N: n}
	case 0xE000:
		switch kk {
		case 0x9E:
			ins = Instruction{Op: OpSkipIfPressed, X: x}
		case 0xA1:
			ins = Instruction{Op: OpSkipIfNotPressed, X: x}
		}
	case 0xF000:
		if o, ok := fOps[kk]; ok {
			ins = Instruction{Op: o, X: x}
		}
	}

	if ins.Op == OpInvalid {
		return Instruction{}, &InvalidOpcodeError{Opcode: op}
	}
	return ins, nil
}

// fOps holds the Fxkk family, selected by kk.
var fOps = map[uint8]Op{
	0x07: OpLoadDelayTimer,
	0x0A: OpWaitKeyPress,
	0x15: OpStoreDelayTimer,
	0x18: OpStoreSoundTimer,
	0x1E: OpAddToIndex,
	0x29: OpLoadSprite,
	0x33: OpStoreBCD,
	0x55: OpStoreRegisters,
	0x65: OpLoadRegisters,
}

// encodings holds the fixed bits of every op. Operands are or-ed in by Encode.
var encodings = [opCount]uint16{
	OpClearDisplay:           0x00E0,
	OpReturn:                 0x00EE,
	OpJump:                   0x1000,
	OpCall:                   0x2000,
	OpSkipIfEqualByte:        0x3000,
	OpSkipIfNotEqualByte:     0x4000,
	OpSkipIfEqualRegister:    0x5000,
	OpLoadByte:               0x6000,
	OpAddByte:                0x7000,
	OpMove:                   0x8000,
	OpOr:                     0x8001,
	OpAnd:                    0x8002,
	OpXor:                    0x8003,
	OpAdd:                    0x8004,
	OpSubtract:               0x8005,
	OpShiftRight:             0x8006,
	OpSubtractReverse:        0x8007,
	OpShiftLeft:              0x800E,
	OpSkipIfNotEqualRegister: 0x9000,
	OpLoadIndex:              0xA000,
	OpJumpWithOffset:         0xB000,
	OpRandomWithMask:         0xC000,
	OpDraw:                   0xD000,
	OpSkipIfPressed:          0xE09E,
	OpSkipIfNotPressed:       0xE0A1,
	OpLoadDelayTimer:         0xF007,
	OpWaitKeyPress:           0xF00A,
	OpStoreDelayTimer:        0xF015,
	OpStoreSoundTimer:        0xF018,
	OpAddToIndex:             0xF01E,
	OpLoadSprite:             0xF029,
	OpStoreBCD:               0xF033,
	OpStoreRegisters:         0xF055,
	OpLoadRegisters:          0xF065,
}

// Encode is the inverse of Decode. Operands are truncated to their field width.
func Encode(ins Instruction) (uint16, error) {
	if ins.Op == OpInvalid || ins.Op >= opCount {
		return 0, ErrInvalidOpcode
	}

	op := encodings[ins.Op]
	x := uint16(ins.X&0xf) << 8
	y := uint16(ins.Y&0xf) << 4

	switch ins.Op {
	case OpJump, OpCall, OpLoadIndex, OpJumpWithOffset:
		op |= uint16(ins.NNN) & 0x0fff
	case OpSkipIfEqualByte, OpSkipIfNotEqualByte, OpLoadByte, OpAddByte, OpRandomWithMask:
		op |= x | uint16(ins.KK)
	case OpSkipIfEqualRegister, OpSkipIfNotEqualRegister, OpMove, OpOr, OpAnd, OpXor,
		OpAdd, OpSubtract, OpShiftRight, OpSubtractReverse, OpShiftLeft:
		op |= x | y
	case OpDraw:
		op |= x | y | uint16(ins.N&0xf)
	case OpClearDisplay, OpReturn:
	default:
		op |= x
	}
	return op, nil
}

// Assemble encodes a sequence of instructions into a big-endian program image.
func Assemble(program ...Instruction) ([]byte, error) {
	b := make([]byte, 0, len(program)*InstructionSize)
	for _, ins := range program {
		op, err := Encode(ins)
		if err != nil {
			return nil, err
		}
		b = append(b, uint8(op>>8), uint8(op))
	}
	return b, nil
}
