package chip8

import "fmt"

// Execute applies a decoded instruction to the machine state.
//
// The program counter is advanced past the instruction before its semantics
// are applied, so Call pushes the address of the following instruction and
// skips add another InstructionSize. If the instruction fails, no state is
// changed and the program counter is left at the instruction.
func (c *Chip8) Execute(ins Instruction) error {
	pc := c.pc
	c.pc += InstructionSize

	if err := c.execute(ins); err != nil {
		c.pc = pc
		return err
	}
	return nil
}

func (c *Chip8) execute(ins Instruction) error {
	x, y := ins.X&0xf, ins.Y&0xf

	switch ins.Op {
	case OpClearDisplay: // 00E0 clear display
		c.disp.Clear()

	case OpReturn: // 00EE return from subroutine
		r, err := c.popStack()
		if err != nil {
			return err
		}
		c.pc = r

	case OpJump: // 1nnn goto nnn
		c.pc = uint16(ins.NNN)

	case OpCall: // 2nnn call nnn
		if err := c.pushStack(c.pc); err != nil {
			return err
		}
		c.pc = uint16(ins.NNN)

	case OpSkipIfEqualByte: // 3xkk if(Vx==kk)
		c.skipIf(c.v[x] == ins.KK)

	case OpSkipIfNotEqualByte: // 4xkk if(Vx!=kk)
		c.skipIf(c.v[x] != ins.KK)

	case OpSkipIfEqualRegister: // 5xy0 if(Vx==Vy)
		c.skipIf(c.v[x] == c.v[y])

	case OpLoadByte: // 6xkk Vx = kk
		c.v[x] = ins.KK

	case OpAddByte: // 7xkk Vx += kk, carry flag is not changed
		c.v[x] += ins.KK

	case OpMove: // 8xy0 Vx = Vy
		c.v[x] = c.v[y]

	case OpOr: // 8xy1 Vx |= Vy
		c.v[x] |= c.v[y]
		c.logicFlag()

	case OpAnd: // 8xy2 Vx &= Vy
		c.v[x] &= c.v[y]
		c.logicFlag()

	case OpXor: // 8xy3 Vx ^= Vy
		c.v[x] ^= c.v[y]
		c.logicFlag()

	case OpAdd: // 8xy4 Vx += Vy, VF = carry
		carried := uint16(c.v[x])+uint16(c.v[y]) > 0xff
		c.v[x] += c.v[y]
		c.updateCarryFlag(carried)

	case OpSubtract: // 8xy5 Vx -= Vy, VF = not borrow
		borrowed := c.v[x] < c.v[y]
		c.v[x] -= c.v[y]
		c.updateCarryFlag(!borrowed)

	case OpShiftRight: // 8xy6 Vx >>= 1, VF = shifted out bit
		src := c.shiftSource(x, y)
		c.v[x] = src >> 1
		c.updateCarryFlag(src&0x01 == 1)

	case OpSubtractReverse: // 8xy7 Vx = Vy - Vx, VF = not borrow
		borrowed := c.v[y] < c.v[x]
		c.v[x] = c.v[y] - c.v[x]
		c.updateCarryFlag(!borrowed)

	case OpShiftLeft: // 8xyE Vx <<= 1, VF = shifted out bit
		src := c.shiftSource(x, y)
		c.v[x] = src << 1
		c.updateCarryFlag(src>>7 == 1)

	case OpSkipIfNotEqualRegister: // 9xy0 if(Vx!=Vy)
		c.skipIf(c.v[x] != c.v[y])

	case OpLoadIndex: // Annn I = nnn
		c.i = uint16(ins.NNN)

	case OpJumpWithOffset: // Bnnn PC = V0 + nnn
		c.pc = uint16(c.v[0]) + uint16(ins.NNN)

	case OpRandomWithMask: // Cxkk Vx = rand() & kk
		c.v[x] = uint8(c.rand.Uint32()) & ins.KK

	case OpDraw: // Dxyn draw(Vx, Vy, n)
		sprite, err := c.mem.ReadRange(c.i, int(ins.N&0xf))
		if err != nil {
			return err
		}
		flipped := c.disp.DrawSprite(c.v[x], c.v[y], sprite, c.quirks.WrapSprites)
		c.updateCarryFlag(flipped)

	case OpSkipIfPressed: // Ex9E if(key(Vx) pressed)
		c.skipIf(c.keys.IsPressed(c.v[x]))

	case OpSkipIfNotPressed: // ExA1 if(key(Vx) not pressed)
		c.skipIf(!c.keys.IsPressed(c.v[x]))

	case OpLoadDelayTimer: // Fx07 Vx = delay timer
		c.v[x] = c.dt

	case OpWaitKeyPress: // Fx0A Vx = get_key(), blocking
		key, ok := c.keys.takePress()
		if !ok {
			// rewind so the instruction runs again next cycle
			c.pc -= InstructionSize
			return nil
		}
		c.v[x] = key

	case OpStoreDelayTimer: // Fx15 delay timer = Vx
		c.dt = c.v[x]

	case OpStoreSoundTimer: // Fx18 sound timer = Vx
		c.st = c.v[x]

	case OpAddToIndex: // Fx1E I += Vx
		c.i += uint16(c.v[x])

	case OpLoadSprite: // Fx29 I = sprite_addr[Vx]
		c.i = CharacterSpritesOffset + uint16(c.v[x]&0xf)*CharacterSpriteBytes

	case OpStoreBCD: // Fx33 set_BCD(Vx)
		v := c.v[x]
		if err := c.mem.WriteRange(c.i, []uint8{v / 100, (v % 100) / 10, v % 10}); err != nil {
			return err
		}

	case OpStoreRegisters: // Fx55 reg_dump(Vx, &I)
		if err := c.mem.WriteRange(c.i, c.v[:x+1]); err != nil {
			return err
		}
		if c.quirks.IncrementIndex {
			c.i += uint16(x) + 1
		}

	case OpLoadRegisters: // Fx65 reg_load(Vx, &I)
		b, err := c.mem.ReadRange(c.i, int(x)+1)
		if err != nil {
			return err
		}
		copy(c.v[:x+1], b)
		if c.quirks.IncrementIndex {
			c.i += uint16(x) + 1
		}

	default:
		return fmt.Errorf("%w: unknown op %s", ErrInvalidOpcode, ins.Op)
	}
	return nil
}

func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.pc += InstructionSize
	}
}

func (c *Chip8) logicFlag() {
	if c.quirks.LogicResetsFlag {
		c.v[VF] = 0
	}
}

func (c *Chip8) shiftSource(x, y Register) uint8 {
	if c.quirks.ShiftUsesVY {
		return c.v[y]
	}
	return c.v[x]
}
