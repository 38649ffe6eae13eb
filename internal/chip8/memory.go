package chip8

import (
	"fmt"
	"os"
)

// system memory map
// 0x000-0x1FF - Chip 8 interpreter (contains font set in emu, more on that below)
// 0x000-0x04F - Used for the built in 4x5 pixel font set (0-F)
// 0x200-0xFFF - Program ROM and work RAM

// Chip-8 used to be implemented on 4k systems like the Telmac 1800 and Cosmac VIP where the chip-8 interpreter
// itself occupied the first 512 bytes of memory (up to 0x200). In modern CHIP-8 implementations (like ours here), where
// the interpreter is running natively outside the 4K memory space, there is no need to avoid the lower 512 bytes of
// memory (0x000-0x200), and it is common to store font data there.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is where ROMs are loaded and where execution begins.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM that fits between ProgramStart and the end of memory.
	MaxROMSize = MemorySize - ProgramStart
)

// Memory is the VM's 4K address space. Every access is bounds checked.
type Memory struct {
	cells [MemorySize]byte
}

// newMemory returns memory with the font set loaded.
func newMemory() *Memory {
	m := &Memory{}
	copy(m.cells[FontStart:], fontSet[:])
	return m
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) (byte, error) {
	if int(addr) >= MemorySize {
		return 0, fmt.Errorf("%w: read at 0x%04X", ErrAddressOutOfRange, addr)
	}
	return m.cells[addr], nil
}

// Write stores b at addr.
func (m *Memory) Write(addr uint16, b byte) error {
	if int(addr) >= MemorySize {
		return fmt.Errorf("%w: write at 0x%04X", ErrAddressOutOfRange, addr)
	}
	m.cells[addr] = b
	return nil
}

// Slice returns the n bytes starting at addr. The returned slice aliases memory.
func (m *Memory) Slice(addr uint16, n int) ([]byte, error) {
	end := int(addr) + n
	if end > MemorySize {
		return nil, fmt.Errorf("%w: 0x%04X-0x%04X", ErrAddressOutOfRange, addr, end-1)
	}
	return m.cells[addr:end], nil
}

// loadROM copies the rom into memory starting at ProgramStart.
func (m *Memory) loadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, max size: %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(m.cells[ProgramStart:], rom)
	return nil
}

// LoadROM reads a raw ROM image from disk. No header, no relocation.
func LoadROM(path string) ([]byte, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes, max size: %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	return rom, nil
}
