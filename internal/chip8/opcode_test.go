package chip8

import (
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestOpcode_Fields(t *testing.T) {
	op := NewOpcode(0xD1, 0x2F)

	assert.Equal(t, Opcode(0xD12F), op)
	assert.Equal(t, uint8(0xD), op.Family())
	assert.Equal(t, uint8(0x1), op.X())
	assert.Equal(t, uint8(0x2), op.Y())
	assert.Equal(t, uint8(0xF), op.N())
	assert.Equal(t, uint8(0x2F), op.KK())
	assert.Equal(t, uint16(0x12F), op.NNN())
	assert.Equal(t, "D12F", op.String())

	high, low := op.Bytes()
	assert.Equal(t, byte(0xD1), high)
	assert.Equal(t, byte(0x2F), low)
}

func TestOpcode_Mnemonic(t *testing.T) {
	tests := []struct {
		word uint16
		want *chip8cpu.Instruction
	}{
		{0x00E0, chip8cpu.Cls},
		{0x00EE, chip8cpu.Ret},
		{0x1234, chip8cpu.Jp},
		{0x2345, chip8cpu.Call},
		{0x6A12, chip8cpu.Ld},
		{0x7A01, chip8cpu.Add},
		{0xD015, chip8cpu.Drw},
	}

	for _, tt := range tests {
		op := Opcode(tt.word)
		assert.Equal(t, tt.want.Name, op.Mnemonic())
	}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, [GlyphSize]byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, Glyph(0))
	assert.Equal(t, [GlyphSize]byte{0xF0, 0x80, 0xF0, 0x80, 0x80}, Glyph(0xF))
	assert.Equal(t, Glyph(0x1), Glyph(0x21))

	assert.Equal(t, uint16(0), GlyphAddress(0))
	assert.Equal(t, uint16(75), GlyphAddress(0xF))
}
