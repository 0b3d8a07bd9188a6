// Package snapshot exports framebuffer contents as images.
package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/hexaflex/c8vm/devices"
)

// Default palette.
var (
	DefaultForeground color.Color = color.White
	DefaultBackground color.Color = color.Black
)

// Image returns the contents of fb with every pixel scaled up to a
// scale x scale block. A scale below 1 is treated as 1.
func Image(fb devices.Framebuffer, scale int, fg, bg color.Color) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	w, h := fb.Width(), fb.Height()
	src := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{bg, fg})

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fb.Pixel(x, y) {
				src.SetColorIndex(x, y, 1)
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes the scaled contents of fb as PNG and writes them to w.
func WritePNG(w io.Writer, fb devices.Framebuffer, scale int, fg, bg color.Color) error {
	if err := png.Encode(w, Image(fb, scale, fg, bg)); err != nil {
		return errors.Wrapf(err, "encode snapshot")
	}
	return nil
}

// RGB returns the 24-bit RGB value n as an opaque colour.
func RGB(n int) color.Color {
	return color.RGBA{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 0xff,
	}
}
