// Package keypad implements the 16-key hexadecimal keypad.
//
// The device only tracks key state. Hosts translate their own input
// events into Press and Release calls.
package keypad

import (
	"strings"
	"sync"

	"github.com/hexaflex/c8vm/devices"
)

// KeyCount is the number of keys on the pad.
const KeyCount = 16

// Layout lists the QWERTY keys mapped onto the pad, row by row:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  <-  q w e r
//	7 8 9 E      a s d f
//	A 0 B F      z x c v
const Layout = "1234qwerasdfzxcv"

// layoutKeys holds the pad key for each position in Layout.
var layoutKeys = [KeyCount]byte{
	0x1, 0x2, 0x3, 0xc,
	0x4, 0x5, 0x6, 0xd,
	0x7, 0x8, 0x9, 0xe,
	0xa, 0x0, 0xb, 0xf,
}

// KeyForRune returns the pad key mapped to the given keyboard rune.
// Returns false if the rune is not part of Layout.
func KeyForRune(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}

	n := strings.IndexRune(Layout, r)
	if n < 0 {
		return 0, false
	}
	return layoutKeys[n], true
}

// Device defines the keypad state.
type Device struct {
	m     sync.Mutex
	held  [KeyCount]bool
	order []byte // Held keys, in the order they were pressed.
}

var _ devices.Keypad = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{
		order: make([]byte, 0, KeyCount),
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.BuiltinID(devices.SerialKeypad)
}

// Startup initializes device resources.
func (d *Device) Startup() error {
	d.Reset()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	d.Reset()
	return nil
}

// Press marks the given key as held down. key is truncated to [0, 15].
func (d *Device) Press(key byte) {
	key &= 0xf

	d.m.Lock()
	defer d.m.Unlock()

	if d.held[key] {
		return
	}

	d.held[key] = true
	d.order = append(d.order, key)
}

// Release marks the given key as no longer held. key is truncated to [0, 15].
func (d *Device) Release(key byte) {
	key &= 0xf

	d.m.Lock()
	defer d.m.Unlock()

	if !d.held[key] {
		return
	}

	d.held[key] = false
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Reset releases all keys.
func (d *Device) Reset() {
	d.m.Lock()
	d.held = [KeyCount]bool{}
	d.order = d.order[:0]
	d.m.Unlock()
}

// Pressed returns true if the given key is held down.
func (d *Device) Pressed(key byte) bool {
	d.m.Lock()
	defer d.m.Unlock()
	return d.held[key&0xf]
}

// Key returns the most recently pressed key which is still held down.
// Returns false if no key is held.
func (d *Device) Key() (byte, bool) {
	d.m.Lock()
	defer d.m.Unlock()

	n := len(d.order)
	if n == 0 {
		return 0, false
	}
	return d.order[n-1], true
}

// Set presses or releases the key mapped to the given keyboard rune.
// Returns false if the rune is not mapped.
func (d *Device) Set(r rune, pressed bool) bool {
	key, ok := KeyForRune(r)
	if !ok {
		return false
	}

	if pressed {
		d.Press(key)
	} else {
		d.Release(key)
	}
	return true
}
