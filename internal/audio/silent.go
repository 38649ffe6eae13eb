package audio

// Silent discards the buzzer.
type Silent struct{}

// SetEnabled implements chip8.Audio.
func (Silent) SetEnabled(bool) {}

// Close implements io.Closer.
func (Silent) Close() error { return nil }
