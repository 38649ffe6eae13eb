// Package config holds every tunable of the emulator in one place.
package config

import (
	"errors"
	"fmt"

	"golang.org/x/image/colornames"
)

// Frontends.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Audio sinks.
const (
	AudioBeep = "beep"
	AudioOto  = "oto"
	AudioNone = "none"
)

// Config is passed to the VM scheduler, the frontends and the audio sinks.
type Config struct {
	CPUHz   int // instructions per second
	TimerHz int // delay/sound timer decrements per second

	Title      string
	Scale      float64 // window pixels per CHIP-8 pixel
	Foreground string  // colour name from golang.org/x/image/colornames
	Background string

	Frontend string
	Audio    string
	ToneHz   float64
	Volume   float64 // 0..1
	BeepFile string  // optional mp3 played instead of the square wave

	Seed int64 // 0 seeds CXNN from the clock

	Debug bool
	Quiet bool
}

// Default returns the stock settings: 700 instructions per second, 60 Hz timers
// and a 1024x512 window.
func Default() Config {
	return Config{
		CPUHz:      700,
		TimerHz:    60,
		Title:      "chipvm",
		Scale:      16,
		Foreground: "white",
		Background: "black",
		Frontend:   FrontendWindow,
		Audio:      AudioBeep,
		ToneHz:     240,
		Volume:     0.2,
	}
}

// WindowSize returns the window size in screen pixels for a width x height display.
func (c Config) WindowSize(width, height int) (float64, float64) {
	return float64(width) * c.Scale, float64(height) * c.Scale
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	var errs []error
	if c.CPUHz <= 0 {
		errs = append(errs, fmt.Errorf("cpu rate must be positive, got %d", c.CPUHz))
	}
	if c.TimerHz <= 0 {
		errs = append(errs, fmt.Errorf("timer rate must be positive, got %d", c.TimerHz))
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale must be at least 1, got %g", c.Scale))
	}
	if _, ok := colornames.Map[c.Foreground]; !ok {
		errs = append(errs, fmt.Errorf("unknown foreground colour '%s'", c.Foreground))
	}
	if _, ok := colornames.Map[c.Background]; !ok {
		errs = append(errs, fmt.Errorf("unknown background colour '%s'", c.Background))
	}
	switch c.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		errs = append(errs, fmt.Errorf("unknown frontend '%s'", c.Frontend))
	}
	switch c.Audio {
	case AudioBeep, AudioOto, AudioNone:
	default:
		errs = append(errs, fmt.Errorf("unknown audio sink '%s'", c.Audio))
	}
	if c.ToneHz <= 0 {
		errs = append(errs, fmt.Errorf("tone must be positive, got %g", c.ToneHz))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume must be within 0..1, got %g", c.Volume))
	}
	return errors.Join(errs...)
}
