package chip8

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/config"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestTickTimers(t *testing.T) {
	audio := &recordingAudio{}
	vm, err := NewVM(nil, NewFramebuffer(), WithAudio(audio), WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, err)

	vm.delayTimer = 2
	vm.soundTimer = 1

	vm.TickTimers()
	assert.Equal(t, byte(1), vm.delayTimer)
	assert.Equal(t, byte(0), vm.soundTimer)
	assert.False(t, audio.last())

	vm.TickTimers()
	vm.TickTimers()
	assert.Equal(t, byte(0), vm.delayTimer)
	assert.Equal(t, byte(0), vm.soundTimer)

	vm.soundTimer = 3
	vm.TickTimers()
	assert.True(t, audio.last())
	assert.Len(t, audio.calls, 4)
}

func fastConfig() config.Config {
	cfg := config.Default()
	cfg.CPUHz = 2000
	cfg.TimerHz = 1000
	return cfg
}

func TestRunStopsOnCancel(t *testing.T) {
	fb := NewFramebuffer()
	vm, err := NewVM(program(0x00E0, 0x1200), fb,
		WithConfig(fastConfig()),
		WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = vm.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, fb.Presented() > 0)
}

func TestRunHaltsOnFatalError(t *testing.T) {
	vm, err := NewVM(program(0x6001, 0x00EE), NewFramebuffer(),
		WithConfig(fastConfig()),
		WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = vm.Run(ctx)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(0x202), vm.State().PC)
	assert.Equal(t, byte(1), vm.State().V[0])
}

// Timers keep counting while FX0A stalls the CPU, and the buzzer is switched off.
func TestRunTimersDuringKeyWait(t *testing.T) {
	audio := &recordingAudio{}
	vm, err := NewVM(program(0x60FF, 0xF015, 0xF018, 0xF10A), NewFramebuffer(),
		WithConfig(fastConfig()),
		WithAudio(audio),
		WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = vm.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	state := vm.State()
	assert.Equal(t, uint16(0x206), state.PC)
	assert.True(t, state.DelayTimer < 0xFF)
	assert.True(t, state.SoundTimer < 0xFF)
	assert.False(t, audio.last())
}
