package chip8

// Audio is the buzzer. The VM polls it once per timer tick with soundTimer > 0.
type Audio interface {
	SetEnabled(on bool)
}

type silentAudio struct{}

func (silentAudio) SetEnabled(bool) {}

type noKeys struct{}

func (noKeys) Snapshot() KeyState { return 0 }
