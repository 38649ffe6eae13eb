// Package terminal is a frontend for running without a window: frames are drawn
// with half block characters and keys are read from a raw mode stdin.
package terminal

import (
	"bufio"
	"io"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
)

const (
	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// Render draws frame as chip8.Height/2 lines, each character covering two pixel rows.
// Lines end in \r\n since the terminal is in raw mode.
func Render(w io.Writer, frame chip8.Frame) error {
	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(cursorHome)
	for y := 0; y < chip8.Height; y += 2 {
		for x := range chip8.Width {
			_, _ = bw.WriteString(cell(frame.At(x, y), frame.At(x, y+1)))
		}
		_, _ = bw.WriteString("\r\n")
	}
	return bw.Flush()
}

func cell(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█"
	case top:
		return "▀"
	case bottom:
		return "▄"
	}
	return " "
}
