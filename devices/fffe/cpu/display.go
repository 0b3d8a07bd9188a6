package cpu

import (
	"strings"

	"github.com/hexaflex/c8vm/devices"
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome display buffer. It can only be mutated by
// the CPU; hosts read it through the devices.Framebuffer methods.
type Display struct {
	pixels [DisplayHeight][DisplayWidth]bool
}

var _ devices.Framebuffer = &Display{}

// Width returns the display width in pixels.
func (d *Display) Width() int { return DisplayWidth }

// Height returns the display height in pixels.
func (d *Display) Height() int { return DisplayHeight }

// Pixel returns true if the pixel at x, y is lit.
// Coordinates outside the display are never lit.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d.pixels[y][x]
}

// Lit returns the number of lit pixels.
func (d *Display) Lit() int {
	var n int
	for y := range d.pixels {
		for _, on := range d.pixels[y] {
			if on {
				n++
			}
		}
	}
	return n
}

// String returns the buffer as rows of 1s and 0s, one line per row.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(DisplayHeight * (DisplayWidth + 1))

	for y := range d.pixels {
		for _, on := range d.pixels[y] {
			if on {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// clear turns every pixel off.
func (d *Display) clear() {
	d.pixels = [DisplayHeight][DisplayWidth]bool{}
}

// draw XORs the 8 pixel wide sprite rows onto the display, with the top-left
// corner at x, y. Pixels running past an edge wrap around to the opposite side.
// Returns true if any lit pixel was turned off.
func (d *Display) draw(x, y int, rows []byte) bool {
	var collision bool

	for r, bits := range rows {
		py := (y + r) % DisplayHeight
		for b := 0; b < 8; b++ {
			if bits&(0x80>>uint(b)) == 0 {
				continue
			}

			px := (x + b) % DisplayWidth
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	return collision
}
