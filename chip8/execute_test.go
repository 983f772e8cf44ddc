package chip8

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRandom uint32

func (r fixedRandom) Uint32() uint32 {
	return uint32(r)
}

func newTestChip8(t *testing.T, ops ...uint16) *Chip8 {
	t.Helper()
	b := make([]byte, 0x100)
	for i, op := range ops {
		binary.BigEndian.PutUint16(b[i*2:], op)
	}
	c := New(WithRandom(fixedRandom(0xa5a5a5a5)))
	require.NoError(t, c.LoadROM(b))
	return c
}

// memory range is 0x200 - 0x300
var opcodeTestTable = []struct {
	opcode uint16
	before func(c *Chip8)
	assert func(t *testing.T, c *Chip8)
}{
	// clear display
	{
		0x00E0,
		func(c *Chip8) {
			for i := range c.disp.pixels {
				c.disp.pixels[i] = 1
			}
		},
		func(t *testing.T, c *Chip8) {
			for _, v := range c.disp.pixels {
				if !assert.Equal(t, uint8(0), v) {
					return
				}
			}
		},
	},
	// ret
	{
		0x00EE,
		func(c *Chip8) {
			c.stack[0] = 0x300
			c.sp = 1
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0), c.sp)
			assert.Equal(t, uint16(0x300), c.pc)
		},
	},
	// goto nnn
	{
		0x1234,
		nil,
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x234), c.pc)
		},
	},
	// call nnn
	{
		0x2208,
		nil,
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x208), c.pc)
			assert.Equal(t, uint8(1), c.sp)
			assert.Equal(t, uint16(0x202), c.stack[0])
		},
	},
	// 3xkk if(Vx==kk) [true]
	{
		0x3012,
		func(c *Chip8) {
			c.v[0] = 0x12
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x204), c.pc)
		},
	},
	// 3xkk if(Vx==kk) [false]
	{
		0x3012,
		func(c *Chip8) {
			c.v[0] = 0x1
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x202), c.pc)
		},
	},
	// 4xkk if(Vx!=kk) [true]
	{
		0x4012,
		func(c *Chip8) {
			c.v[0] = 0x1
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x204), c.pc)
		},
	},
	// 4xkk if(Vx!=kk) [false]
	{
		0x4012,
		func(c *Chip8) {
			c.v[0] = 0x12
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x202), c.pc)
		},
	},
	// 5xy0 if(Vx==Vy) [true]
	{
		0x5120,
		func(c *Chip8) {
			c.v[1] = 0x1
			c.v[2] = 0x1
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x204), c.pc)
		},
	},
	// 5xy0 if(Vx==Vy) [false]
	{
		0x5120,
		func(c *Chip8) {
			c.v[1] = 0x1
			c.v[2] = 0x2
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x202), c.pc)
		},
	},
	// 6xkk Vx = kk
	{
		0x6355,
		nil,
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x55), c.v[3])
		},
	},
	// 7xkk Vx += kk (carry flag is not changed)
	{
		0x78f0,
		func(c *Chip8) {
			c.v[8] = 0x1f
			c.v[0xf] = 0x7
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x0f), c.v[8])
			assert.Equal(t, uint8(0x7), c.v[0xf])
		},
	},
	// 8xy0 Vx = Vy
	{
		0x8450,
		func(c *Chip8) {
			c.v[5] = 0x33
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x33), c.v[4])
		},
	},
	// 8xy1 Vx = Vx|Vy
	{
		0x8231,
		func(c *Chip8) {
			c.v[2] = 0x01
			c.v[3] = 0x10
			c.v[0xf] = 0x5
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x11), c.v[2])
			assert.Equal(t, uint8(0x5), c.v[0xf])
		},
	},
	// 8xy2 Vx = Vx&Vy
	{
		0x8012,
		func(c *Chip8) {
			c.v[0] = 0x01
			c.v[1] = 0x10
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0), c.v[0])
		},
	},
	// 8xy3 Vx = Vx^Vy
	{
		0x8673,
		func(c *Chip8) {
			c.v[6] = 0x09
			c.v[7] = 0x0f
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(6), c.v[6])
		},
	},
	// 8xy4 Vx += Vy (not carry)
	{
		0x8894,
		func(c *Chip8) {
			c.v[8] = 0x12
			c.v[9] = 0x34
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x46), c.v[8])
			assert.Equal(t, uint8(0), c.v[0xf])
		},
	},
	// 8xy4 Vx += Vy (carry)
	{
		0x8894,
		func(c *Chip8) {
			c.v[8] = 0xab
			c.v[9] = 0xcd
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x0ff&(0xab+0xcd)), c.v[8])
			assert.Equal(t, uint8(1), c.v[0xf])
		},
	},
	// 8xy4 VF += Vy, the flag wins over the sum
	{
		0x8f14,
		func(c *Chip8) {
			c.v[0xf] = 0xff
			c.v[1] = 0x02
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(1), c.v[0xf])
		},
	},
	// 8xy5 Vx -= Vy (not borrow)
	{
		0x8ab5,
		func(c *Chip8) {
			c.v[0xa] = 0x45
			c.v[0xb] = 0x23
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x22), c.v[0xa])
			assert.Equal(t, uint8(1), c.v[0xf])
		},
	},
	// 8xy5 Vx -= Vy (borrow)
	{
		0x8ab5,
		func(c *Chip8) {
			c.v[0xa] = 0x45
			c.v[0xb] = 0x56
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0xff&(0x45-0x56)), c.v[0xa])
			assert.Equal(t, uint8(0), c.v[0xf])
		},
	},
	// 8xy6 Vx >>= 1 (bit0 is 1)
	{
		0x8cd6,
		func(c *Chip8) {
			c.v[0xc] = 0x3
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(1), c.v[0xc])
			assert.Equal(t, uint8(1), c.v[0xf])
		},
	},
	// 8xy6 Vx >>= 1 (bit0 is 0)
	{
		0x8cd6,
		func(c *Chip8) {
			c.v[0xc] = 0x2
			c.v[0xd] = 0xff
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(1), c.v[0xc])
			assert.Equal(t, uint8(0), c.v[0xf])
		},
	},
	// 8xy7 Vx = Vy-Vx (not borrow)
	{
		0x8ed7,
		func(c *Chip8) {
			c.v[0xe] = 0x45
			c.v[0xd] = 0x67
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x22), c.v[0xe])
			assert.Equal(t, uint8(1), c.v[0xf])
		},
	},
	// 8xy7 Vx = Vy-Vx (borrow)
	{
		0x8ed7,
		func(c *Chip8) {
			c.v[0xe] = 0x67
			c.v[0xd] = 0x45
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0xff&(0x45-0x67)), c.v[0xe])
			assert.Equal(t, uint8(0), c.v[0xf])
		},
	},
	// 8xyE Vx <<= 1 (bit7 is 0)
	{
		0x801E,
		func(c *Chip8) {
			c.v[0] = 0x08
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x10), c.v[0])
			assert.Equal(t, uint8(0), c.v[0xf])
		},
	},
	// 8xyE Vx <<= 1 (bit7 is 1)
	{
		0x801E,
		func(c *Chip8) {
			c.v[0] = 0x88
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x10), c.v[0])
			assert.Equal(t, uint8(1), c.v[0xf])
		},
	},
	// 9xy0 if(Vx!=Vy) (true)
	{
		0x9120,
		func(c *Chip8) {
			c.v[1] = 1
			c.v[2] = 2
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x204), c.pc)
		},
	},
	// 9xy0 if(Vx!=Vy) (false)
	{
		0x9120,
		func(c *Chip8) {
			c.v[1] = 1
			c.v[2] = 1
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x202), c.pc)
		},
	},
	// Annn I = nnn
	{
		0xA123,
		nil,
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x123), c.i)
		},
	},
	// Bnnn PC = V0+nnn
	{
		0xB100,
		func(c *Chip8) {
			c.v[0] = 0x23
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x123), c.pc)
		},
	},
	// Cxkk Vx = rand()&kk
	{
		0xC800,
		func(c *Chip8) {
			c.v[8] = 0xff
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0), c.v[8])
		},
	},
	// Cxkk Vx = rand()&kk with the fixed source
	{
		0xC80F,
		nil,
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0x05), c.v[8])
		},
	},
	// Dxyn draw(Vx,Vy,n) (not flip)
	{
		0xD128,
		func(c *Chip8) {
			c.v[1] = 8
			c.v[2] = 8
			for i := range c.mem.data[:32] {
				c.mem.data[i] = 0xff
			}
		},
		func(t *testing.T, c *Chip8) {
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					assert.Equal(t, uint8(1), c.disp.pixels[(y+8)*DisplayW+x+8])
				}
			}
			assert.Equal(t, uint8(0), c.v[0xf])
		},
	},
	// Dxyn draw(Vx,Vy,n) (flip)
	{
		0xD128,
		func(c *Chip8) {
			c.v[1] = 8
			c.v[2] = 8
			for i := range c.mem.data[:32] {
				c.mem.data[i] = 0xff
			}
			for i := range c.disp.pixels {
				c.disp.pixels[i] = 1
			}
		},
		func(t *testing.T, c *Chip8) {
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					assert.Equal(t, uint8(0), c.disp.pixels[(y+8)*DisplayW+x+8])
				}
			}
			assert.Equal(t, uint8(1), c.v[0xf])
		},
	},
	// Ex9E if(key(Vx) pressed) (true)
	{
		0xE09E,
		func(c *Chip8) {
			c.v[0] = 7
			c.keys.keys[7] = true
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x204), c.pc)
		},
	},
	// Ex9E if(key(Vx) pressed) (false)
	{
		0xE09E,
		func(c *Chip8) {
			c.v[0] = 7
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x202), c.pc)
		},
	},
	// ExA1 if(key(Vx) not pressed) (true)
	{
		0xE0A1,
		func(c *Chip8) {
			c.v[0] = 7
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x204), c.pc)
		},
	},
	// ExA1 if(key(Vx) not pressed) (false)
	{
		0xE0A1,
		func(c *Chip8) {
			c.v[0] = 7
			c.keys.keys[7] = true
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x202), c.pc)
		},
	},
	// Fx07 Vx = get_delay()
	{
		0xF107,
		func(c *Chip8) {
			c.dt = 10
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(10), c.v[1])
		},
	},
	// Fx0A Vx = get_key() (key pressed while waiting)
	{
		0xF20A,
		func(c *Chip8) {
			c.keys.waiting = true
			c.keys.latched = noKey
			c.keys.Press(1)
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(1), c.v[2])
			assert.Equal(t, uint16(0x202), c.pc)
			assert.False(t, c.keys.Waiting())
		},
	},
	// Fx0A Vx = get_key() (key held before the wait started)
	{
		0xF20A,
		func(c *Chip8) {
			c.keys.keys[1] = true
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(0), c.v[2])
			assert.Equal(t, uint16(0x200), c.pc)
			assert.True(t, c.keys.Waiting())
		},
	},
	// Fx15 delay_timer(Vx)
	{
		0xF215,
		func(c *Chip8) {
			c.v[2] = 10
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(10), c.dt)
		},
	},
	// Fx18 sound_timer(Vx)
	{
		0xF318,
		func(c *Chip8) {
			c.v[3] = 10
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint8(10), c.st)
		},
	},
	// Fx1E I += Vx
	{
		0xF41E,
		func(c *Chip8) {
			c.v[4] = 10
			c.i = 0x100
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x100+10), c.i)
		},
	},
	// Fx1E I += Vx wraps at 16 bits
	{
		0xF41E,
		func(c *Chip8) {
			c.v[4] = 0x10
			c.i = 0xfff8
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(0x0008), c.i)
		},
	},
	// Fx29 I = sprite_addr[Vx]
	{
		0xF529,
		func(c *Chip8) {
			c.v[5] = 5
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(CharacterSpritesOffset+5*CharacterSpriteBytes), c.i)
		},
	},
	// Fx29 only the low nibble selects the glyph
	{
		0xF529,
		func(c *Chip8) {
			c.v[5] = 0x3b
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, uint16(CharacterSpritesOffset+0xb*CharacterSpriteBytes), c.i)
		},
	},
	// Fx33 set_BCD(Vx); Vx = 123
	{
		0xF633,
		func(c *Chip8) {
			c.v[6] = 123
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, []uint8{1, 2, 3}, c.mem.data[0:3])
		},
	},
	// Fx33 set_BCD(Vx); Vx = 45
	{
		0xF633,
		func(c *Chip8) {
			c.v[6] = 45
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, []uint8{0, 4, 5}, c.mem.data[0:3])
		},
	},
	// Fx33 set_BCD(Vx); Vx = 6
	{
		0xF633,
		func(c *Chip8) {
			c.v[6] = 6
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, []uint8{0, 0, 6}, c.mem.data[0:3])
		},
	},
	// Fx55 reg_dump(Vx,&I)
	{
		0xF455,
		func(c *Chip8) {
			for i := range c.v {
				c.v[i] = uint8(i + 1)
			}
			c.i = 12
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, c.v[:4+1], c.mem.data[12:12+4+1])
			assert.Equal(t, uint8(0), c.mem.data[12+5])
			assert.Equal(t, uint16(12), c.i)
		},
	},
	// Fx65 reg_load(Vx,&I)
	{
		0xF565,
		func(c *Chip8) {
			for i := range c.v {
				c.mem.data[i] = uint8(i + 1)
			}
			c.i = 0
		},
		func(t *testing.T, c *Chip8) {
			assert.Equal(t, c.mem.data[:5+1], c.v[:5+1])
			assert.Equal(t, uint8(0), c.v[6])
			assert.Equal(t, uint16(0), c.i)
		},
	},
}

func TestExecOpcodes(t *testing.T) {
	for _, test := range opcodeTestTable {
		t.Run(fmt.Sprintf("opcode[%04X]", test.opcode), func(t *testing.T) {
			c := newTestChip8(t, test.opcode)

			if test.before != nil {
				test.before(c)
			}

			require.NoError(t, c.Step())

			test.assert(t, c)
		})
	}
}

func TestAddAllOperands(t *testing.T) {
	c := New()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.pc = ProgramOffset
			c.v[1] = uint8(a)
			c.v[2] = uint8(b)
			require.NoError(t, c.Execute(Instruction{Op: OpAdd, X: 1, Y: 2}))

			assert.Equal(t, uint8((a+b)%256), c.v[1])
			var carry uint8
			if a+b >= 256 {
				carry = 1
			}
			assert.Equal(t, carry, c.v[VF])
		}
	}
}

func TestSubtractAllOperands(t *testing.T) {
	c := New()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.v[1] = uint8(a)
			c.v[2] = uint8(b)
			require.NoError(t, c.Execute(Instruction{Op: OpSubtract, X: 1, Y: 2}))

			assert.Equal(t, uint8((a-b+256)%256), c.v[1])
			var noBorrow uint8
			if a >= b {
				noBorrow = 1
			}
			assert.Equal(t, noBorrow, c.v[VF])

			c.v[1] = uint8(a)
			c.v[2] = uint8(b)
			require.NoError(t, c.Execute(Instruction{Op: OpSubtractReverse, X: 1, Y: 2}))

			assert.Equal(t, uint8((b-a+256)%256), c.v[1])
			noBorrow = 0
			if b >= a {
				noBorrow = 1
			}
			assert.Equal(t, noBorrow, c.v[VF])
		}
	}
}

func TestShiftAllValues(t *testing.T) {
	c := New()
	for v := 0; v < 256; v++ {
		c.v[3] = uint8(v)
		require.NoError(t, c.Execute(Instruction{Op: OpShiftRight, X: 3, Y: 4}))
		assert.Equal(t, uint8(v>>1), c.v[3])
		assert.Equal(t, uint8(v&1), c.v[VF])

		c.v[3] = uint8(v)
		require.NoError(t, c.Execute(Instruction{Op: OpShiftLeft, X: 3, Y: 4}))
		assert.Equal(t, uint8(v<<1), c.v[3])
		assert.Equal(t, uint8(v>>7), c.v[VF])
	}
}

func TestExecuteAdvancesProgramCounter(t *testing.T) {
	tests := []struct {
		name string
		ins  Instruction
		pc   uint16
	}{
		{"load byte", Instruction{Op: OpLoadByte, X: 1, KK: 2}, 0x202},
		{"jump", Instruction{Op: OpJump, NNN: 0x400}, 0x400},
		{"call", Instruction{Op: OpCall, NNN: 0x600}, 0x600},
		{"skip taken", Instruction{Op: OpSkipIfEqualByte, X: 1, KK: 0}, 0x204},
		{"skip not taken", Instruction{Op: OpSkipIfNotEqualByte, X: 1, KK: 0}, 0x202},
		{"wait without key", Instruction{Op: OpWaitKeyPress, X: 1}, 0x200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			require.NoError(t, c.Execute(tt.ins))
			assert.Equal(t, tt.pc, c.pc)
		})
	}
}

func TestExecuteInvalidInstruction(t *testing.T) {
	c := New()
	err := c.Execute(Instruction{})
	assert.ErrorIs(t, err, ErrInvalidOpcode)
	assert.Equal(t, uint16(ProgramOffset), c.pc)
}

func TestStoreBCDOutOfRange(t *testing.T) {
	c := New()
	c.i = MemorySize - 2
	c.v[0] = 255

	err := c.Execute(Instruction{Op: OpStoreBCD, X: 0})
	assert.ErrorIs(t, err, ErrAddressOutOfRange)
	assert.Equal(t, uint8(0), c.mem.data[MemorySize-2])
	assert.Equal(t, uint16(ProgramOffset), c.pc)
}

func TestBulkTransferOutOfRange(t *testing.T) {
	c := New()
	c.i = MemorySize - 4

	assert.ErrorIs(t, c.Execute(Instruction{Op: OpStoreRegisters, X: 4}), ErrAddressOutOfRange)
	assert.ErrorIs(t, c.Execute(Instruction{Op: OpLoadRegisters, X: 4}), ErrAddressOutOfRange)
	assert.NoError(t, c.Execute(Instruction{Op: OpLoadRegisters, X: 3}))
}

func TestDrawSpriteOutOfRange(t *testing.T) {
	c := New()
	c.i = MemorySize - 3
	c.v[VF] = 9

	err := c.Execute(Instruction{Op: OpDraw, X: 0, Y: 1, N: 4})
	assert.ErrorIs(t, err, ErrAddressOutOfRange)
	assert.Equal(t, uint8(9), c.v[VF])
}

func TestDrawTwiceClearsAndCollides(t *testing.T) {
	c := New()
	c.v[0] = 60 // sprite is clipped at the right edge
	c.v[1] = 30 // and at the bottom edge
	c.i = CharacterSpritesOffset

	draw := Instruction{Op: OpDraw, X: 0, Y: 1, N: 5}
	require.NoError(t, c.Execute(draw))
	assert.Equal(t, uint8(0), c.v[VF])
	assert.True(t, c.disp.Pixel(60, 30))
	assert.True(t, c.disp.Pixel(63, 31))

	require.NoError(t, c.Execute(draw))
	assert.Equal(t, uint8(1), c.v[VF])
	for _, p := range c.disp.pixels {
		require.Equal(t, uint8(0), p)
	}
}

func TestQuirks(t *testing.T) {
	vip, err := QuirksByName(QuirksVIP)
	require.NoError(t, err)

	t.Run("logic resets flag", func(t *testing.T) {
		c := New(WithQuirks(vip))
		c.v[VF] = 1
		c.v[1] = 0x0f
		c.v[2] = 0xf0
		require.NoError(t, c.Execute(Instruction{Op: OpOr, X: 1, Y: 2}))
		assert.Equal(t, uint8(0xff), c.v[1])
		assert.Equal(t, uint8(0), c.v[VF])
	})

	t.Run("shift uses vy", func(t *testing.T) {
		c := New(WithQuirks(vip))
		c.v[1] = 0
		c.v[2] = 0x81
		require.NoError(t, c.Execute(Instruction{Op: OpShiftLeft, X: 1, Y: 2}))
		assert.Equal(t, uint8(0x02), c.v[1])
		assert.Equal(t, uint8(1), c.v[VF])
	})

	t.Run("increment index", func(t *testing.T) {
		c := New(WithQuirks(vip))
		c.i = 0x300
		require.NoError(t, c.Execute(Instruction{Op: OpStoreRegisters, X: 3}))
		assert.Equal(t, uint16(0x304), c.i)
	})

	t.Run("wrap sprites", func(t *testing.T) {
		c := New(WithQuirks(Quirks{WrapSprites: true}))
		c.mem.data[0x300] = 0xff
		c.i = 0x300
		c.v[0] = 60
		require.NoError(t, c.Execute(Instruction{Op: OpDraw, X: 0, Y: 1, N: 1}))
		assert.True(t, c.disp.Pixel(63, 0))
		assert.True(t, c.disp.Pixel(0, 0))
		assert.True(t, c.disp.Pixel(3, 0))
		assert.False(t, c.disp.Pixel(4, 0))
	})

	_, err = QuirksByName("schip")
	assert.Error(t, err)
}
