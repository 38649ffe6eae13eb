package chip8

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/config"
	"github.com/retroenv/retrogolib/log"
)

// stackDepth is the number of nested calls the VM supports.
const stackDepth = 16

// flag is the index of VF, the carry/borrow/collision register.
const flag = 0xF

// VM represents the chip-8 virtual machine
type VM struct {
	opcode     Instruction        // current opcode
	memory     *Memory            // the VM's memory -> see memory.go for the map
	v          [16]byte           // 8-bit general purpose registers, V0 - VE, VF doubles as the flag
	i          uint16             // index register (0x000 to 0xFFF)
	pc         uint16             // program counter (0x000 to 0xFFF)
	stack      [stackDepth]uint16 // return addresses
	sp         uint16             // number of entries on the stack
	delayTimer byte               // 8-bit delay timer which counts down at 60 hertz, until it reaches 0
	soundTimer byte               // 8-bit sound timer which counts down at 60 hertz, until it reaches 0

	display Display
	keys    KeySource
	audio   Audio
	rand    *rand.Rand
	logger  *log.Logger

	cpuRate   time.Duration
	timerRate time.Duration
}

// Option configures optional VM collaborators.
type Option func(*VM)

// WithKeys sets the key source read by EX9E, EXA1 and FX0A.
func WithKeys(keys KeySource) Option {
	return func(vm *VM) { vm.keys = keys }
}

// WithAudio sets the buzzer driven by the sound timer.
func WithAudio(audio Audio) Option {
	return func(vm *VM) { vm.audio = audio }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(vm *VM) { vm.logger = logger }
}

// WithSeed makes CXNN deterministic.
func WithSeed(seed int64) Option {
	return func(vm *VM) { vm.rand = rand.New(rand.NewSource(seed)) }
}

// WithConfig takes the instruction and timer rates from cfg.
func WithConfig(cfg config.Config) Option {
	return func(vm *VM) {
		vm.cpuRate = time.Second / time.Duration(cfg.CPUHz)
		vm.timerRate = time.Second / time.Duration(cfg.TimerHz)
		if cfg.Seed != 0 {
			vm.rand = rand.New(rand.NewSource(cfg.Seed))
		}
	}
}

// NewVM handles initializing a VM, loading the font set into memory, and loading the ROM into memory.
// The display is required; every other collaborator has a silent default.
func NewVM(rom []byte, display Display, opts ...Option) (*VM, error) {
	if display == nil {
		return nil, ErrNoDisplay
	}
	def := config.Default()
	vm := &VM{
		memory:    newMemory(),
		pc:        ProgramStart,
		display:   display,
		keys:      noKeys{},
		audio:     silentAudio{},
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		cpuRate:   time.Second / time.Duration(def.CPUHz),
		timerRate: time.Second / time.Duration(def.TimerHz),
	}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.logger == nil {
		vm.logger = config.CreateLogger(false, true)
	}
	if err := vm.memory.loadROM(rom); err != nil {
		return nil, err
	}
	vm.logger.Debug("ROM loaded",
		log.Int("size", len(rom)),
		log.Hex("start", uint16(ProgramStart)))
	return vm, nil
}

// Memory exposes the address space, mainly for tests and tooling.
func (vm *VM) Memory() *Memory {
	return vm.memory
}

// State is a copy of the processor registers.
type State struct {
	Opcode     Instruction
	PC         uint16
	I          uint16
	V          [16]byte
	Stack      []uint16
	DelayTimer byte
	SoundTimer byte
}

// State returns a snapshot of the processor registers.
func (vm *VM) State() State {
	stack := make([]uint16, vm.sp)
	copy(stack, vm.stack[:vm.sp])
	return State{
		Opcode:     vm.opcode,
		PC:         vm.pc,
		I:          vm.i,
		V:          vm.v,
		Stack:      stack,
		DelayTimer: vm.delayTimer,
		SoundTimer: vm.soundTimer,
	}
}

func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "opcode: %s\npc: 0x%03X\nsp: %d\ni: 0x%03X\n", s.Opcode, s.PC, len(s.Stack), s.I)
	fmt.Fprintf(&b, "dt: %d st: %d\n---Registers---\n", s.DelayTimer, s.SoundTimer)
	for r, val := range s.V {
		fmt.Fprintf(&b, "V%X: %d\n", r, val)
	}
	return b.String()
}

func (vm *VM) String() string {
	return vm.State().String()
}
