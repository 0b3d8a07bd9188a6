// Package rng implements a seedable random byte source.
package rng

import (
	"math/rand"
	"time"

	"github.com/hexaflex/c8vm/devices"
)

// Device defines a random byte generator.
type Device struct {
	rng  *rand.Rand
	seed int64
}

var _ devices.Random = &Device{}

// New creates a new device with the given seed.
// A seed of 0 selects a time based seed on every startup.
func New(seed int64) *Device {
	d := &Device{seed: seed}
	d.reseed()
	return d
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.BuiltinID(devices.SerialRandom)
}

// Startup resets the generator to its seed.
func (d *Device) Startup() error {
	d.reseed()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	return nil
}

// Byte returns the next random byte.
func (d *Device) Byte() byte {
	return byte(d.rng.Intn(256))
}

func (d *Device) reseed() {
	seed := d.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d.rng = rand.New(rand.NewSource(seed))
}
