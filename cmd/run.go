package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bradford-hamilton/chipvm/internal/audio"
	"github.com/bradford-hamilton/chipvm/internal/chip8"
	"github.com/bradford-hamilton/chipvm/internal/config"
	"github.com/bradford-hamilton/chipvm/internal/pixel"
	"github.com/bradford-hamilton/chipvm/internal/terminal"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

// runCmd runs the chipvm virtual machine until the frontend closes or the VM halts
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run the chipvm emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  runChipVM,
}

// sink is a buzzer that owns an output device.
type sink interface {
	chip8.Audio
	io.Closer
}

func runChipVM(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	logger := config.CreateLogger(cfg.Debug, cfg.Quiet)

	rom, err := chip8.LoadROM(args[0])
	if err != nil {
		return err
	}

	buzzer, err := newSink(cfg)
	if err != nil {
		logger.Warn("Audio disabled", log.Err(err))
		buzzer = audio.Silent{}
	}
	defer func() { _ = buzzer.Close() }()

	fb := chip8.NewFramebuffer()
	keys := chip8.NewKeypad()
	vm, err := chip8.NewVM(rom, fb,
		chip8.WithConfig(cfg),
		chip8.WithKeys(keys),
		chip8.WithAudio(buzzer),
		chip8.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("ROM loaded",
		log.String("path", args[0]),
		log.Int("size", len(rom)))

	ctx, cancel := context.WithCancel(app.Context())
	defer cancel()

	halted := make(chan error, 1)
	go func() {
		halted <- vm.Run(ctx)
		cancel()
	}()

	var frontendErr error
	switch cfg.Frontend {
	case config.FrontendTerminal:
		frontendErr = runTerminal(ctx, logger, fb, keys)
	default:
		pixel.Run(func() {
			frontendErr = runWindow(ctx, fb, keys)
		})
	}
	cancel()

	if err := <-halted; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Emulation halted", log.Err(err))
		fmt.Fprint(os.Stderr, vm.String())
		return err
	}
	return frontendErr
}

func newSink(cfg config.Config) (sink, error) {
	switch cfg.Audio {
	case config.AudioBeep:
		if cfg.BeepFile != "" {
			return audio.NewBeepFile(cfg.BeepFile, cfg.Volume)
		}
		return audio.NewBeep(cfg.ToneHz, cfg.Volume)
	case config.AudioOto:
		return audio.NewOto(cfg.ToneHz, cfg.Volume)
	default:
		return audio.Silent{}, nil
	}
}

func runWindow(ctx context.Context, fb *chip8.Framebuffer, keys *chip8.Keypad) error {
	win, err := pixel.NewWindow(cfg)
	if err != nil {
		return err
	}
	win.Loop(ctx, fb, keys)
	return nil
}

func runTerminal(ctx context.Context, logger *log.Logger, fb *chip8.Framebuffer, keys *chip8.Keypad) error {
	session, err := terminal.NewSession(logger, cfg.TimerHz)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()
	return session.Loop(ctx, fb, keys)
}
