package chip8

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Step handles fetch, decode, and execute for a single instruction.
func (vm *VM) Step() error {
	// One opcode is 2 bytes long, ex. 0xA2F0. We fetch two successive bytes (ex. 0xA2 and 0xF0) and merge them.
	hi, err := vm.memory.Read(vm.pc)
	if err != nil {
		return fmt.Errorf("fetching opcode: %w", err)
	}
	lo, err := vm.memory.Read(vm.pc + 1)
	if err != nil {
		return fmt.Errorf("fetching opcode: %w", err)
	}
	vm.opcode = Decode(hi, lo)

	jumped, err := vm.execute(vm.opcode, vm.keys.Snapshot())
	if err != nil {
		return fmt.Errorf("executing %s at 0x%03X: %w", vm.opcode, vm.pc, err)
	}
	if !jumped {
		vm.pc += 2
	}
	return nil
}

// TickTimers counts the delay and sound timers down by one, stopping at zero,
// and then updates the buzzer.
func (vm *VM) TickTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
	vm.audio.SetEnabled(vm.soundTimer > 0)
}

// Run drives the VM until ctx is cancelled or an instruction fails. CPU steps and
// timer ticks run off two independent tickers in the same goroutine, so a stalled
// FX0A never holds back the timers.
func (vm *VM) Run(ctx context.Context) error {
	clock := time.NewTicker(vm.cpuRate)
	defer clock.Stop()
	timers := time.NewTicker(vm.timerRate)
	defer timers.Stop()
	defer vm.audio.SetEnabled(false)

	vm.logger.Info("VM started",
		log.String("cpu_rate", vm.cpuRate.String()),
		log.String("timer_rate", vm.timerRate.String()))

	for {
		select {
		case <-ctx.Done():
			vm.logger.Info("VM stopped")
			return ctx.Err()
		case <-timers.C:
			vm.TickTimers()
		case <-clock.C:
			if err := vm.Step(); err != nil {
				vm.logger.Error("VM halted", log.Err(err))
				return err
			}
		}
	}
}
