// Package textdisplay renders the CHIP-8 framebuffer as text, using
// unicode half blocks so every character cell covers two pixel rows.
package textdisplay

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices"
)

// ANSI control sequences.
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Cell glyphs, indexed by top | bottom<<1.
var glyphs = [4]string{" ", "▀", "▄", "█"}

// Device writes framebuffer contents to an io.Writer.
type Device struct {
	w       io.Writer
	buf     bytes.Buffer
	prev    []byte
	newline string
}

var _ devices.Device = &Device{}

// New creates a new device which writes to w.
// Rows are terminated with "\r\n" so output renders correctly on a
// terminal in raw mode.
func New(w io.Writer) *Device {
	return &Device{w: w, newline: "\r\n"}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.BuiltinID(devices.SerialTextDisplay)
}

// Startup clears the screen and hides the cursor.
func (d *Device) Startup() error {
	d.prev = d.prev[:0]
	_, err := io.WriteString(d.w, clearScreen+cursorHome+hideCursor)
	return errors.Wrapf(err, "%s startup", d.ID())
}

// Shutdown restores the cursor.
func (d *Device) Shutdown() error {
	_, err := io.WriteString(d.w, showCursor+d.newline)
	return errors.Wrapf(err, "%s shutdown", d.ID())
}

// Present writes the contents of fb. Nothing is written if the frame is
// identical to the previously presented one.
func (d *Device) Present(fb devices.Framebuffer) error {
	d.buf.Reset()
	d.buf.WriteString(cursorHome)
	Render(&d.buf, fb, d.newline)

	if bytes.Equal(d.buf.Bytes(), d.prev) {
		return nil
	}

	d.prev = append(d.prev[:0], d.buf.Bytes()...)
	_, err := d.w.Write(d.buf.Bytes())
	return errors.Wrapf(err, "%s present", d.ID())
}

// Render writes fb to w as rows of half block characters, each row
// terminated by newline.
func Render(w *bytes.Buffer, fb devices.Framebuffer, newline string) {
	width, height := fb.Width(), fb.Height()

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			n := 0
			if fb.Pixel(x, y) {
				n |= 1
			}
			if fb.Pixel(x, y+1) {
				n |= 2
			}
			w.WriteString(glyphs[n])
		}
		w.WriteString(newline)
	}
}
