package chip8

import "errors"

// Fatal conditions. Any of these halts the VM; none are retried.
var (
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrStackUnderflow    = errors.New("return with empty call stack")
	ErrStackOverflow     = errors.New("call stack overflow")
	ErrAddressOutOfRange = errors.New("memory address out of range")
	ErrInvalidKey        = errors.New("invalid key index")
	ErrROMTooLarge       = errors.New("rom too large")
	ErrNoDisplay         = errors.New("no display attached")
)
