package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Opcode is a 16-bit instruction word, built from two consecutive memory bytes
// with the first byte as the high byte.
type Opcode uint16

// NewOpcode returns the instruction word for the two given bytes.
func NewOpcode(high, low byte) Opcode {
	return Opcode(uint16(high)<<8 | uint16(low))
}

// Family returns the top nibble that selects the opcode family.
func (o Opcode) Family() uint8 {
	return uint8(o >> 12)
}

// X returns the register index in the low nibble of the high byte.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0x0F
}

// Y returns the register index in the high nibble of the low byte.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0x0F
}

// N returns the low nibble of the low byte.
func (o Opcode) N() uint8 {
	return uint8(o) & 0x0F
}

// KK returns the immediate byte, which is the low byte of the word.
func (o Opcode) KK() uint8 {
	return uint8(o)
}

// NNN returns the 12-bit address field.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

// Bytes returns the high and low byte of the word.
func (o Opcode) Bytes() (byte, byte) {
	return byte(o >> 8), byte(o)
}

func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}

// Instruction returns the instruction definition of the word from the
// CHIP-8 opcode table, or nil if the word does not match any known opcode.
func (o Opcode) Instruction() *chip8cpu.Instruction {
	w := uint16(o)
	for _, op := range chip8cpu.Opcodes[int(o.Family())] {
		if op.Info.Mask&w == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Mnemonic returns the instruction name of the word, or "???" if the word
// does not match any known opcode.
func (o Opcode) Mnemonic() string {
	ins := o.Instruction()
	if ins == nil {
		return "???"
	}
	return ins.Name
}

