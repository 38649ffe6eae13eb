package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// keyHold is how long a key stays down after its last byte. It has to bridge the
// terminal's initial auto repeat delay.
const keyHold = time.Second / 2

// Session owns the terminal while the emulator runs.
type Session struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	logger   *log.Logger
	refresh  time.Duration
}

// NewSession puts stdin into raw mode. Close restores it.
func NewSession(logger *log.Logger, refreshHz int) (*Session, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < chip8.Width || h < chip8.Height/2) {
		logger.Warn("Terminal smaller than the screen",
			log.Int("columns", w),
			log.Int("rows", h))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	s := &Session{
		in:       os.Stdin,
		out:      os.Stdout,
		oldState: oldState,
		logger:   logger,
		refresh:  time.Second / time.Duration(refreshHz),
	}
	_, _ = io.WriteString(s.out, hideCursor+clearAll)
	return s, nil
}

// Loop redraws presented frames and feeds stdin into keys. It returns when ctx is
// done or the user quits.
func (s *Session) Loop(ctx context.Context, fb *chip8.Framebuffer, keys *chip8.Keypad) error {
	input := make(chan error, 1)
	kb := NewKeyboard(keys, keyHold)
	go func() {
		input <- kb.Feed(s.in)
	}()

	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()

	var drawn uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-input:
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return fmt.Errorf("reading keys: %w", err)
		case <-ticker.C:
			n := fb.Presented()
			if n == drawn {
				continue
			}
			drawn = n
			if err := Render(s.out, fb.Frame()); err != nil {
				return fmt.Errorf("rendering frame: %w", err)
			}
		}
	}
}

// Close restores the terminal.
func (s *Session) Close() error {
	_, _ = io.WriteString(s.out, showCursor+"\r\n")
	return term.Restore(int(s.in.Fd()), s.oldState)
}
