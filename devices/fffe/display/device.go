// Package display renders the CHIP-8 framebuffer through OpenGL.
//
// The device never touches machine state. Hosts hand it the CPU's display
// buffer through Present, after which Draw renders the latest frame into
// the current GL context.
package display

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices"
	"github.com/hexaflex/c8vm/devices/fffe/cpu"
)

// Default colours as 24-bit RGB values.
const (
	DefaultForeground = 0xffffff
	DefaultBackground = 0x000000
)

// Device defines all internal doodads for the display.
type Device struct {
	pixels      [cpu.DisplayWidth * cpu.DisplayHeight]byte
	fg          [4]float32
	bg          [4]float32
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	dirty       bool
	colorsDirty bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device with the given foreground and background colours.
func New(fg, bg int) *Device {
	var d Device
	d.SetColors(fg, bg)
	return &d
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.BuiltinID(devices.SerialDisplay)
}

// Startup initializes device resources.
// It must be called with a current GL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, "", fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.tex = makeTexture()
	d.dirty = true
	d.colorsDirty = true
	d.initialized = true
	d.upload()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// SetColors sets the colours for lit and unlit pixels, as 24-bit RGB values.
func (d *Device) SetColors(fg, bg int) {
	rgb(fg, d.fg[:])
	rgb(bg, d.bg[:])
	d.colorsDirty = true
}

// Present copies the contents of fb for the next call to Draw.
// Pixels outside of fb are rendered unlit.
func (d *Device) Present(fb devices.Framebuffer) {
	for y := 0; y < cpu.DisplayHeight; y++ {
		row := d.pixels[y*cpu.DisplayWidth:]
		for x := 0; x < cpu.DisplayWidth; x++ {
			row[x] = 0
			if fb.Pixel(x, y) {
				row[x] = 0xff
			}
		}
	}
	d.dirty = true
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	d.upload()

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// upload pushes pending pixel and colour changes to the GPU.
func (d *Device) upload() {
	if d.colorsDirty {
		gl.UseProgram(d.shader)
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("foreground")), 1, &d.fg[0])
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("background")), 1, &d.bg[0])
		d.colorsDirty = false
	}

	if d.dirty {
		uploadTexture(d.tex, gl.RED, cpu.DisplayWidth, cpu.DisplayHeight, gl.RED, gl.UNSIGNED_BYTE, d.pixels[:])
		d.dirty = false
	}
}

// rgb sets p to the RGBA representation of the 24-bit RGB colour in n.
func rgb(n int, p []float32) {
	p[0] = float32((n>>16)&0xff) / 255
	p[1] = float32((n>>8)&0xff) / 255
	p[2] = float32(n&0xff) / 255
	p[3] = 1
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
