package devices

// Keypad is a 16-key hexadecimal input device.
type Keypad interface {
	Device

	// Key returns the key currently held down, in the range [0, 15].
	// Returns false if no key is pressed.
	Key() (byte, bool)
}

// Random supplies uniformly distributed random bytes.
type Random interface {
	Device

	// Byte returns the next random byte.
	Byte() byte
}

// Framebuffer is a read-only view of a monochrome display buffer.
type Framebuffer interface {
	// Width returns the display width in pixels.
	Width() int

	// Height returns the display height in pixels.
	Height() int

	// Pixel returns true if the pixel at x, y is lit.
	Pixel(x, y int) bool
}
