// Package pixel is the windowed frontend. It draws presented CHIP-8 frames with
// faiface/pixel and feeds held keys into the keypad.
package pixel

import (
	"context"
	"fmt"
	"image/color"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
	"github.com/bradford-hamilton/chipvm/internal/config"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

// KeyMap binds the COSMAC VIP keypad to the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var KeyMap = map[byte]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2,
	0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW,
	0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS,
	0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX,
	0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Run hands the main OS thread to pixelgl. Every window call must happen inside f.
func Run(f func()) {
	pixelgl.Run(f)
}

// Window embeds a pixelgl window along with the colours and cell size used to
// draw CHIP-8 pixels.
type Window struct {
	*pixelgl.Window
	fg, bg     color.Color
	cellWidth  float64
	cellHeight float64
}

// NewWindow handles creating a new pixelgl window config, initializing the window,
// and returning a pointer a Window with an embedded *pixelgl.Window
func NewWindow(cfg config.Config) (*Window, error) {
	width, height := cfg.WindowSize(chip8.Width, chip8.Height)
	w, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  cfg.Title,
		Bounds: pixel.R(0, 0, width, height),
		VSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %w", err)
	}
	return &Window{
		Window:     w,
		fg:         colornames.Map[cfg.Foreground],
		bg:         colornames.Map[cfg.Background],
		cellWidth:  width / chip8.Width,
		cellHeight: height / chip8.Height,
	}, nil
}

// DrawGraphics renders one frame. pixel's origin is bottom left, so rows are flipped.
func (w *Window) DrawGraphics(frame chip8.Frame) {
	w.Clear(w.bg)
	imDraw := imdraw.New(nil)
	imDraw.Color = w.fg

	for x := range chip8.Width {
		for y := range chip8.Height {
			if !frame.At(x, chip8.Height-1-y) {
				continue
			}
			imDraw.Push(pixel.V(w.cellWidth*float64(x), w.cellHeight*float64(y)))
			imDraw.Push(pixel.V(w.cellWidth*float64(x)+w.cellWidth, w.cellHeight*float64(y)+w.cellHeight))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
}

// HandleKeyInput copies the held state of every mapped key into the keypad in one store.
func (w *Window) HandleKeyInput(keys *chip8.Keypad) {
	var ks chip8.KeyState
	for key, button := range KeyMap {
		if w.Pressed(button) {
			ks |= 1 << key
		}
	}
	keys.Store(ks)
}

// Loop polls input and redraws until the window is closed or ctx is done.
func (w *Window) Loop(ctx context.Context, fb *chip8.Framebuffer, keys *chip8.Keypad) {
	for !w.Closed() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.HandleKeyInput(keys)
		w.DrawGraphics(fb.Frame())
		w.Update()

		if w.JustPressed(pixelgl.KeyEscape) {
			w.SetClosed(true)
		}
	}
}
