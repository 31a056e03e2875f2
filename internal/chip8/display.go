package chip8

// Framebuffer dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight
)

// spriteWidth is the number of pixels encoded in one sprite row byte.
const spriteWidth = 8

// Frame is a snapshot of the framebuffer, stored row by row.
type Frame [DisplaySize]bool

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates outside of the frame wrap around.
func (f *Frame) Pixel(x, y int) bool {
	return f[pixelIndex(x, y)]
}

// Lit returns the number of lit pixels.
func (f *Frame) Lit() int {
	lit := 0
	for _, pixel := range f {
		if pixel {
			lit++
		}
	}
	return lit
}

// Display is the framebuffer together with its dirty flag.
type Display struct {
	pixels Frame
	dirty  bool
}

// Clear turns off all pixels and marks the display as changed.
func (d *Display) Clear() {
	d.pixels = Frame{}
	d.dirty = true
}

// DrawSprite XORs the sprite rows onto the framebuffer with its top left
// corner at (x, y) and returns whether any lit pixel was turned off.
//
// Pixels that do not fit in a row continue in the following row and the
// last row continues in the first one: the target cell is computed modulo the
// total pixel count, sprites are never clipped.
func (d *Display) DrawSprite(x, y int, rows []byte) bool {
	collision := false

	for row, data := range rows {
		for col := range spriteWidth {
			if data&(0x80>>col) == 0 {
				continue
			}

			index := ((y+row)*DisplayWidth + x + col) % DisplaySize
			if d.pixels[index] {
				collision = true
			}
			d.pixels[index] = !d.pixels[index]
		}
	}

	d.dirty = true
	return collision
}

// Frame returns a copy of the framebuffer.
func (d *Display) Frame() Frame {
	return d.pixels
}

// Dirty returns whether the framebuffer changed since the flag was cleared.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ClearDirty resets the changed flag.
func (d *Display) ClearDirty() {
	d.dirty = false
}

func pixelIndex(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}
