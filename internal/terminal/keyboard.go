package terminal

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
)

// ErrQuit is returned by Feed when the user presses Esc or Ctrl-C.
var ErrQuit = errors.New("quit requested")

// KeyMap binds the COSMAC VIP keypad to the left side of a QWERTY keyboard, the
// same layout as the window frontend.
var KeyMap = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

const (
	ctrlC  = 0x03
	escape = 0x1b
)

// Keyboard turns a byte stream into held keys. Terminals only report presses, so
// a key counts as held until hold passes without it repeating.
type Keyboard struct {
	keys *chip8.Keypad
	hold time.Duration

	mu         sync.Mutex
	generation [chip8.KeyCount]uint64
}

// NewKeyboard returns a keyboard writing into keys.
func NewKeyboard(keys *chip8.Keypad, hold time.Duration) *Keyboard {
	return &Keyboard{keys: keys, hold: hold}
}

// Feed reads r until it fails or a quit key arrives.
func (kb *Keyboard) Feed(r io.Reader) error {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if b == ctrlC || b == escape {
				return ErrQuit
			}
			if 'A' <= b && b <= 'Z' {
				b += 'a' - 'A'
			}
			if key, ok := KeyMap[b]; ok {
				kb.press(key)
			}
		}
		if err != nil {
			return err
		}
	}
}

func (kb *Keyboard) press(key byte) {
	kb.mu.Lock()
	kb.generation[key]++
	gen := kb.generation[key]
	kb.mu.Unlock()

	kb.keys.Press(key)
	time.AfterFunc(kb.hold, func() {
		kb.mu.Lock()
		defer kb.mu.Unlock()
		if kb.generation[key] == gen {
			kb.keys.Release(key)
		}
	})
}
