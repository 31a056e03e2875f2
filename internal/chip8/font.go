package chip8

// Font layout constants.
const (
	// FontAddress is the memory address of the first glyph.
	FontAddress = 0x000
	// GlyphSize is the number of bytes, and therefore rows, of a glyph.
	GlyphSize = 5
	// GlyphCount is the number of glyphs, one per hexadecimal digit.
	GlyphCount = 16
	// FontSize is the size of the complete font in bytes.
	FontSize = GlyphSize * GlyphCount
)

// font contains the hexadecimal digits 0-F as 4x5 sprites. Only the high
// nibble of every row is used.
var font = [FontSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Glyph returns a copy of the sprite rows of the given hexadecimal digit.
// Only the low nibble of digit is used.
func Glyph(digit uint8) [GlyphSize]byte {
	var glyph [GlyphSize]byte
	offset := int(digit&0x0F) * GlyphSize
	copy(glyph[:], font[offset:offset+GlyphSize])
	return glyph
}

// GlyphAddress returns the memory address of the glyph for the given value,
// as computed by the FX29 instruction.
func GlyphAddress(value uint8) uint16 {
	return FontAddress + uint16(value)*GlyphSize
}
