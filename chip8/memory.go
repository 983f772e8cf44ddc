package chip8

import (
	"bufio"
	"fmt"
	"io"
)

const (
	MemorySize             = 0x1000
	ProgramOffset          = 0x200
	MaxROMSize             = MemorySize - ProgramOffset
	CharacterSpritesOffset = 0x050
	CharacterSpriteBytes   = 5
	dumpRowBytes           = 16
)

var characterSprites = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4 KiB address space of the machine.
//
//	0x000-0x1FF: reserved, holds the font glyphs
//	0x200-0xFFF: program space
type Memory struct {
	data [MemorySize]uint8
}

func (m *Memory) loadFont() {
	copy(m.data[CharacterSpritesOffset:], characterSprites)
}

// Load copies rom into memory at ProgramOffset. Memory past the end of rom is left as is.
func (m *Memory) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(m.data[ProgramOffset:], rom)
	return nil
}

func (m *Memory) check(addr uint16, n int) error {
	if n < 0 || int(addr)+n > MemorySize {
		return &AddressError{Address: int(addr), Size: n}
	}
	return nil
}

// FetchWord returns the big-endian word stored at addr and addr+1.
func (m *Memory) FetchWord(addr uint16) (uint16, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1]), nil
}

func (m *Memory) Byte(addr uint16) (uint8, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

func (m *Memory) SetByte(addr uint16, b uint8) error {
	if err := m.check(addr, 1); err != nil {
		return err
	}
	m.data[addr] = b
	return nil
}

// ReadRange returns a copy of n bytes starting at addr.
func (m *Memory) ReadRange(addr uint16, n int) ([]uint8, error) {
	if err := m.check(addr, n); err != nil {
		return nil, err
	}
	b := make([]uint8, n)
	copy(b, m.data[addr:])
	return b, nil
}

// WriteRange stores data starting at addr. Nothing is written if data does not fit.
func (m *Memory) WriteRange(addr uint16, data []uint8) error {
	if err := m.check(addr, len(data)); err != nil {
		return err
	}
	copy(m.data[addr:], data)
	return nil
}

// Dump writes the whole address space as rows of 16 hex bytes prefixed by the row offset.
func (m *Memory) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for row := 0; row < MemorySize; row += dumpRowBytes {
		fmt.Fprintf(bw, "%04x: ", row)
		for _, b := range m.data[row : row+dumpRowBytes] {
			fmt.Fprintf(bw, "%02x ", b)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
