package chip8

import "fmt"

// Instruction is one 16-bit instruction word. An instruction is always decomposed
// into four nibbles, n0 being the high nibble of the first byte.
type Instruction uint16

// Decode merges the two bytes at [PC, PC+1] into an instruction. Any value decodes.
func Decode(hi, lo byte) Instruction {
	return Instruction(uint16(hi)<<8 | uint16(lo))
}

// Nibbles returns the four 4-bit fields, highest order first.
func (in Instruction) Nibbles() [4]byte {
	return [4]byte{
		byte(in>>12) & 0xF,
		byte(in>>8) & 0xF,
		byte(in>>4) & 0xF,
		byte(in) & 0xF,
	}
}

// Kind is the high nibble, which selects the opcode group.
func (in Instruction) Kind() byte { return byte(in >> 12) }

// X is the register index in the second nibble.
func (in Instruction) X() byte { return byte(in>>8) & 0xF }

// Y is the register index in the third nibble.
func (in Instruction) Y() byte { return byte(in>>4) & 0xF }

// N is the lowest nibble.
func (in Instruction) N() byte { return byte(in) & 0xF }

// NN is the 8-bit immediate in the low byte.
func (in Instruction) NN() byte { return byte(in) }

// NNN is the 12-bit address in the low three nibbles.
func (in Instruction) NNN() uint16 { return uint16(in) & 0x0FFF }

func (in Instruction) String() string {
	return fmt.Sprintf("%04X", uint16(in))
}
