package chip8

import (
	"sync"
	"sync/atomic"
)

// Screen dimensions in CHIP-8 pixels.
const (
	Width  = 64
	Height = 32
)

// Display is the surface DXYN and 00E0 draw on. Coordinates outside 64x32 are a
// no-op for SetPixel and read as off for Pixel.
type Display interface {
	Clear()
	SetPixel(x, y int, on bool)
	Pixel(x, y int) bool
	// Present flags the surface for a compositing pass.
	Present()
}

// Frame is a copy of the screen, row major.
type Frame [Width * Height]bool

// At reports whether the pixel at (x, y) is lit.
func (f *Frame) At(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y*Width+x]
}

// Framebuffer is an in-memory Display. The VM writes it; a frontend reads
// presented frames from another goroutine.
type Framebuffer struct {
	mu        sync.RWMutex
	pixels    Frame
	frame     Frame
	presented atomic.Uint64
}

// NewFramebuffer returns an all-off framebuffer.
func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() {
	fb.mu.Lock()
	fb.pixels = Frame{}
	fb.mu.Unlock()
}

// SetPixel sets a single pixel.
func (fb *Framebuffer) SetPixel(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	fb.mu.Lock()
	fb.pixels[y*Width+x] = on
	fb.mu.Unlock()
}

// Pixel returns the working state of a pixel, including unpresented changes.
func (fb *Framebuffer) Pixel(x, y int) bool {
	fb.mu.RLock()
	defer fb.mu.RUnlock()
	return fb.pixels.At(x, y)
}

// Present publishes the working pixels as the current frame.
func (fb *Framebuffer) Present() {
	fb.mu.Lock()
	fb.frame = fb.pixels
	fb.mu.Unlock()
	fb.presented.Add(1)
}

// Frame returns a copy of the last presented frame.
func (fb *Framebuffer) Frame() Frame {
	fb.mu.RLock()
	defer fb.mu.RUnlock()
	return fb.frame
}

// Presented counts Present calls. Frontends redraw when it changes.
func (fb *Framebuffer) Presented() uint64 {
	return fb.presented.Load()
}
