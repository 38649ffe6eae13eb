package chip8

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryBounds(t *testing.T) {
	m := newMemory()

	assert.NoError(t, m.Write(0xFFF, 0xAB))
	b, err := m.Read(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	_, err = m.Read(MemorySize)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	err = m.Write(0xFFFF, 1)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	s, err := m.Slice(0xFFE, 2)
	assert.NoError(t, err)
	assert.Len(t, s, 2)
	_, err = m.Slice(0xFFE, 3)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestFetchPastEndOfMemory(t *testing.T) {
	vm, _, _ := newTestVM(t, 0x1FFF)
	steps(t, vm, 1)

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestLoadROM(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "loop.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x12, 0x00}, 0o644))
	rom, err := LoadROM(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x00}, rom)

	big := filepath.Join(dir, "big.ch8")
	assert.NoError(t, os.WriteFile(big, make([]byte, MaxROMSize+1), 0o644))
	_, err = LoadROM(big)
	assert.True(t, errors.Is(err, ErrROMTooLarge))

	_, err = LoadROM(filepath.Join(dir, "missing.ch8"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
