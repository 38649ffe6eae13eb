package chip8

import "fmt"

// opFunc applies one opcode group. jumped reports that the opcode set PC itself,
// so the driver must not apply its default +2 advance.
type opFunc func(vm *VM, in Instruction, keys KeyState) (jumped bool, err error)

// opTable is indexed by the high nibble. Groups 0, 8, E and F sub-dispatch on
// their trailing nibbles.
var opTable = [16]opFunc{
	0x0: (*VM).system,
	0x1: (*VM).jump,
	0x2: (*VM).call,
	0x3: (*VM).skipEqualImmediate,
	0x4: (*VM).skipNotEqualImmediate,
	0x5: (*VM).skipEqualRegister,
	0x6: (*VM).loadImmediate,
	0x7: (*VM).addImmediate,
	0x8: (*VM).arithmetic,
	0x9: (*VM).skipNotEqualRegister,
	0xA: (*VM).loadIndex,
	0xB: (*VM).jumpOffset,
	0xC: (*VM).random,
	0xD: (*VM).draw,
	0xE: (*VM).keyboard,
	0xF: (*VM).misc,
}

// execute applies exactly one opcode.
func (vm *VM) execute(in Instruction, keys KeyState) (bool, error) {
	return opTable[in.Kind()](vm, in, keys)
}

func unknown(in Instruction) error {
	return fmt.Errorf("%w: %s", ErrUnknownOpcode, in)
}

// skip advances past the next instruction. The driver adds the other 2.
func (vm *VM) skip(cond bool) {
	if cond {
		vm.pc += 2
	}
}

func (vm *VM) system(in Instruction, _ KeyState) (bool, error) {
	switch in {
	case 0x00E0:
		// 00E0 -> Clear the screen
		vm.display.Clear()
		vm.display.Present()
		return false, nil
	case 0x00EE:
		// 00EE -> Return from a subroutine
		if vm.sp == 0 {
			return false, ErrStackUnderflow
		}
		vm.sp--
		vm.pc = vm.stack[vm.sp]
		return true, nil
	}
	// 0NNN machine code routines are not supported
	return false, unknown(in)
}

// 1NNN -> Jump to address NNN
func (vm *VM) jump(in Instruction, _ KeyState) (bool, error) {
	vm.pc = in.NNN()
	return true, nil
}

// 2NNN -> Execute subroutine starting at address NNN
func (vm *VM) call(in Instruction, _ KeyState) (bool, error) {
	if int(vm.sp) >= len(vm.stack) {
		return false, fmt.Errorf("%w: depth %d", ErrStackOverflow, vm.sp)
	}
	vm.stack[vm.sp] = vm.pc + 2
	vm.sp++
	vm.pc = in.NNN()
	return true, nil
}

// 3XNN -> Skip the following instruction if the value of register VX == NN
func (vm *VM) skipEqualImmediate(in Instruction, _ KeyState) (bool, error) {
	vm.skip(vm.v[in.X()] == in.NN())
	return false, nil
}

// 4XNN -> Skip the following instruction if the value of register VX != NN
func (vm *VM) skipNotEqualImmediate(in Instruction, _ KeyState) (bool, error) {
	vm.skip(vm.v[in.X()] != in.NN())
	return false, nil
}

// 5XY0 -> Skip the following instruction if the value of register VX == VY
func (vm *VM) skipEqualRegister(in Instruction, _ KeyState) (bool, error) {
	if in.N() != 0 {
		return false, unknown(in)
	}
	vm.skip(vm.v[in.X()] == vm.v[in.Y()])
	return false, nil
}

// 6XNN -> Store number NN in register VX
func (vm *VM) loadImmediate(in Instruction, _ KeyState) (bool, error) {
	vm.v[in.X()] = in.NN()
	return false, nil
}

// 7XNN -> Add the value NN to register VX, wrapping, VF untouched
func (vm *VM) addImmediate(in Instruction, _ KeyState) (bool, error) {
	vm.v[in.X()] += in.NN()
	return false, nil
}

// 8XY_ register to register ALU group. Results are written before VF so that
// the flag wins when X is F.
func (vm *VM) arithmetic(in Instruction, _ KeyState) (bool, error) {
	x, y := in.X(), in.Y()
	vx, vy := vm.v[x], vm.v[y]

	switch in.N() {
	case 0x0:
		// 8XY0 -> Store the value of register VY in register VX
		vm.v[x] = vy
	case 0x1:
		// 8XY1 -> Set VX to VX OR VY
		vm.v[x] = vx | vy
	case 0x2:
		// 8XY2 -> Set VX to VX AND VY
		vm.v[x] = vx & vy
	case 0x3:
		// 8XY3 -> Set VX to VX XOR VY
		vm.v[x] = vx ^ vy
	case 0x4:
		// 8XY4 -> Add VY to VX, VF = 1 on carry
		sum := uint16(vx) + uint16(vy)
		vm.v[x] = byte(sum)
		vm.v[flag] = boolToByte(sum > 0xFF)
	case 0x5:
		// 8XY5 -> VX = VX - VY, VF = 1 when no borrow occurs
		vm.v[x] = vx - vy
		vm.v[flag] = boolToByte(vx >= vy)
	case 0x6:
		// 8XY6 -> Store VY shifted right one bit in VX, VF = bit shifted out
		vm.v[x] = vy >> 1
		vm.v[flag] = vy & 0x01
	case 0x7:
		// 8XY7 -> VX = VY - VX, VF = 1 when no borrow occurs
		vm.v[x] = vy - vx
		vm.v[flag] = boolToByte(vy >= vx)
	case 0xE:
		// 8XYE -> Store VY shifted left one bit in VX, VF = bit shifted out
		vm.v[x] = vy << 1
		vm.v[flag] = vy >> 7
	default:
		return false, unknown(in)
	}
	return false, nil
}

// 9XY0 -> Skip the following instruction if the value of VX != value of VY
func (vm *VM) skipNotEqualRegister(in Instruction, _ KeyState) (bool, error) {
	if in.N() != 0 {
		return false, unknown(in)
	}
	vm.skip(vm.v[in.X()] != vm.v[in.Y()])
	return false, nil
}

// ANNN -> Store memory address NNN in register I
func (vm *VM) loadIndex(in Instruction, _ KeyState) (bool, error) {
	vm.i = in.NNN()
	return false, nil
}

// BNNN -> Jump to address NNN + V0
func (vm *VM) jumpOffset(in Instruction, _ KeyState) (bool, error) {
	vm.pc = in.NNN() + uint16(vm.v[0])
	return true, nil
}

// CXNN -> Set VX to a random number with a mask of NN
func (vm *VM) random(in Instruction, _ KeyState) (bool, error) {
	vm.v[in.X()] = byte(vm.rand.Intn(256)) & in.NN()
	return false, nil
}

// DXYN -> Draw a sprite at position VX, VY with N bytes of sprite data starting at the address stored in I
func (vm *VM) draw(in Instruction, _ KeyState) (bool, error) {
	return false, vm.drawSprite(vm.v[in.X()], vm.v[in.Y()], in.N())
}

// drawSprite XORs an 8xN sprite onto the display. The origin wraps onto the screen
// once; pixels past the right or bottom edge are clipped. VF is set to 1 if any
// lit pixel is turned off, 0 otherwise.
func (vm *VM) drawSprite(vx, vy, height byte) error {
	sprite, err := vm.memory.Slice(vm.i, int(height))
	if err != nil {
		return err
	}

	x0 := int(vx) % Width
	y0 := int(vy) % Height
	vm.v[flag] = 0

	for row, bits := range sprite {
		y := y0 + row
		if y >= Height {
			break
		}
		for col := 0; col < 8; col++ {
			x := x0 + col
			if x >= Width {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			if vm.display.Pixel(x, y) {
				vm.v[flag] = 1
				vm.display.SetPixel(x, y, false)
			} else {
				vm.display.SetPixel(x, y, true)
			}
		}
	}

	vm.display.Present()
	return nil
}

func (vm *VM) keyboard(in Instruction, keys KeyState) (bool, error) {
	key := vm.v[in.X()]
	switch in.NN() {
	case 0x9E:
		// EX9E -> Skip the following instruction if the key stored in VX is pressed
		if key >= KeyCount {
			return false, fmt.Errorf("%w: 0x%02X", ErrInvalidKey, key)
		}
		vm.skip(keys.IsPressed(key))
	case 0xA1:
		// EXA1 -> Skip the following instruction if the key stored in VX is not pressed
		if key >= KeyCount {
			return false, fmt.Errorf("%w: 0x%02X", ErrInvalidKey, key)
		}
		vm.skip(!keys.IsPressed(key))
	default:
		return false, unknown(in)
	}
	return false, nil
}

func (vm *VM) misc(in Instruction, keys KeyState) (bool, error) {
	x := in.X()

	switch in.NN() {
	case 0x07:
		// FX07 -> Store the current value of the delay timer in register VX
		vm.v[x] = vm.delayTimer
	case 0x0A:
		// FX0A -> Wait for a keypress and store the result in register VX.
		// With no key down PC stays put and the instruction runs again next step.
		key, ok := keys.First()
		if !ok {
			return true, nil
		}
		vm.v[x] = key
	case 0x15:
		// FX15 -> Set the delay timer to the value of register VX
		vm.delayTimer = vm.v[x]
	case 0x18:
		// FX18 -> Set the sound timer to the value of register VX
		vm.soundTimer = vm.v[x]
	case 0x1E:
		// FX1E -> Add VX to I, VF = 1 when the result leaves the 12-bit address space
		sum := vm.i + uint16(vm.v[x])
		vm.i = sum & 0x0FFF
		vm.v[flag] = boolToByte(sum > 0x0FFF)
	case 0x29:
		// FX29 -> Set I to the font glyph for the low nibble of VX
		vm.i = glyphAddress(vm.v[x])
	case 0x33:
		// FX33 -> Store the binary-coded decimal equivalent of VX at I, I+1 and I+2
		digits, err := vm.memory.Slice(vm.i, 3)
		if err != nil {
			return false, err
		}
		val := vm.v[x]
		digits[0] = val / 100
		digits[1] = (val / 10) % 10
		digits[2] = val % 10
	case 0x55:
		// FX55 -> Store V0 to VX inclusive in memory starting at I. I is left unchanged.
		dst, err := vm.memory.Slice(vm.i, int(x)+1)
		if err != nil {
			return false, err
		}
		copy(dst, vm.v[:x+1])
	case 0x65:
		// FX65 -> Fill V0 to VX inclusive from memory starting at I. I is left unchanged.
		src, err := vm.memory.Slice(vm.i, int(x)+1)
		if err != nil {
			return false, err
		}
		copy(vm.v[:x+1], src)
	default:
		return false, unknown(in)
	}
	return false, nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
