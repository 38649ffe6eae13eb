package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func litPixels(f Frame) int {
	n := 0
	for _, on := range f {
		if on {
			n++
		}
	}
	return n
}

func TestDrawTwiceRestoresScreen(t *testing.T) {
	vm, fb, _ := newTestVM(t, 0xA000, 0xD125, 0xD125)
	vm.v[1], vm.v[2] = 20, 7

	steps(t, vm, 2)
	assert.Equal(t, byte(0), vm.v[flag])
	assert.Equal(t, 14, litPixels(fb.Frame()))

	steps(t, vm, 1)
	assert.Equal(t, byte(1), vm.v[flag])
	assert.Equal(t, Frame{}, fb.Frame())
}

func TestDrawCollisionIsSticky(t *testing.T) {
	// a one pixel sprite at 0x300 drawn over a lit pixel, then over blank pixels
	vm, fb, _ := newTestVM(t, 0xA300, 0xD012)
	assert.NoError(t, vm.memory.Write(0x300, 0x80))
	assert.NoError(t, vm.memory.Write(0x301, 0xFF))
	fb.SetPixel(0, 0, true)

	steps(t, vm, 2)
	assert.Equal(t, byte(1), vm.v[flag])
	assert.False(t, fb.Pixel(0, 0))
	for x := range 8 {
		assert.True(t, fb.Pixel(x, 1))
	}
}

func TestDrawClearsFlagWithoutCollision(t *testing.T) {
	vm, _, _ := newTestVM(t, 0xA000, 0xD005)
	vm.v[flag] = 1
	steps(t, vm, 2)
	assert.Equal(t, byte(0), vm.v[flag])
}

func TestDrawWrapsOrigin(t *testing.T) {
	vm, fb, _ := newTestVM(t, 0xA300, 0xD121)
	assert.NoError(t, vm.memory.Write(0x300, 0x80))
	vm.v[1], vm.v[2] = 64+3, 32+5

	steps(t, vm, 2)
	assert.True(t, fb.Pixel(3, 5))
	assert.Equal(t, 1, litPixels(fb.Frame()))
}

func TestDrawClipsAtEdges(t *testing.T) {
	vm, fb, _ := newTestVM(t, 0xA300, 0xD124)
	for row := range uint16(4) {
		assert.NoError(t, vm.memory.Write(0x300+row, 0xFF))
	}
	vm.v[1], vm.v[2] = 60, 30
	// pixels that would wrap to the opposite edges
	fb.SetPixel(0, 30, true)
	fb.SetPixel(0, 0, true)

	steps(t, vm, 2)
	frame := fb.Frame()
	// 4 columns by 2 rows survive, plus the two untouched pixels
	assert.Equal(t, 10, litPixels(frame))
	assert.True(t, frame.At(63, 31))
	assert.True(t, frame.At(0, 30))
	assert.True(t, frame.At(0, 0))
	assert.Equal(t, byte(0), vm.v[flag])
}

func TestDrawPresentsOnce(t *testing.T) {
	vm, fb, _ := newTestVM(t, 0xA000, 0xD00F)
	steps(t, vm, 2)
	assert.Equal(t, uint64(1), fb.Presented())
}

func TestDrawSpriteOutOfMemory(t *testing.T) {
	vm, _, _ := newTestVM(t, 0xAFFC, 0xD005)
	steps(t, vm, 1)
	assert.Error(t, vm.Step())
}
