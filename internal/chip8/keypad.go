package chip8

import (
	"math/bits"
	"sync/atomic"
)

// KeyCount is the number of keys on the hex keypad (0x0-0xF).
const KeyCount = 16

// KeyState is a consistent view of all 16 keys, one bit per key.
type KeyState uint16

// IsPressed reports whether key is down. Keys above 0xF are never pressed.
func (ks KeyState) IsPressed(key byte) bool {
	if key >= KeyCount {
		return false
	}
	return ks&(1<<key) != 0
}

// First returns the lowest pressed key, or false when no key is down.
func (ks KeyState) First() (byte, bool) {
	if ks == 0 {
		return 0, false
	}
	return byte(bits.TrailingZeros16(uint16(ks))), true
}

// KeySource hands the VM a key snapshot once per instruction.
type KeySource interface {
	Snapshot() KeyState
}

// Keypad is the pressed-key state shared between an input frontend (writer) and
// the VM (reader). All 16 flags live in one atomic word so a snapshot is never torn.
type Keypad struct {
	state atomic.Uint32
}

// NewKeypad returns a keypad with no keys down.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press marks key as down. Keys above 0xF are ignored.
func (k *Keypad) Press(key byte) {
	k.Set(key, true)
}

// Release marks key as up.
func (k *Keypad) Release(key byte) {
	k.Set(key, false)
}

// Set updates a single key.
func (k *Keypad) Set(key byte, down bool) {
	if key >= KeyCount {
		return
	}
	mask := uint32(1) << key
	for {
		old := k.state.Load()
		next := old &^ mask
		if down {
			next = old | mask
		}
		if old == next || k.state.CompareAndSwap(old, next) {
			return
		}
	}
}

// Store replaces the whole key state at once.
func (k *Keypad) Store(ks KeyState) {
	k.state.Store(uint32(ks))
}

// Snapshot implements KeySource.
func (k *Keypad) Snapshot() KeyState {
	return KeyState(k.state.Load())
}
