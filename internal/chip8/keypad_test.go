package chip8

import (
	"sync"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	k := NewKeypad()
	_, ok := k.Snapshot().First()
	assert.False(t, ok)

	k.Press(0xA)
	k.Press(0x3)
	k.Press(0x10)
	ks := k.Snapshot()
	assert.True(t, ks.IsPressed(0xA))
	assert.True(t, ks.IsPressed(0x3))
	assert.False(t, ks.IsPressed(0x4))
	assert.False(t, ks.IsPressed(0x10))
	first, ok := ks.First()
	assert.True(t, ok)
	assert.Equal(t, byte(0x3), first)

	k.Release(0x3)
	first, ok = k.Snapshot().First()
	assert.True(t, ok)
	assert.Equal(t, byte(0xA), first)

	// snapshots are values and do not follow later writes
	k.Release(0xA)
	assert.True(t, ks.IsPressed(0xA))
	assert.Equal(t, KeyState(0), k.Snapshot())

	k.Store(KeyState(1 << 0xF))
	assert.True(t, k.Snapshot().IsPressed(0xF))
}

func TestKeypadConcurrentWriters(t *testing.T) {
	k := NewKeypad()

	var wg sync.WaitGroup
	for key := range byte(KeyCount) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				k.Press(key)
				k.Release(key)
			}
			k.Press(key)
		}()
	}
	wg.Wait()

	assert.Equal(t, KeyState(0xFFFF), k.Snapshot())
}
