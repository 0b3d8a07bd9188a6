package devices

import (
	"log"

	"github.com/pkg/errors"
)

// Device represents a peripheral device.
// Devices which implement Keypad or Random are consulted by the CPU
// while it executes a program.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Startup initializes internal resources.
	Startup() error

	// Shutdown cleans up internal resources.
	Shutdown() error
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if the device type is already present in the set.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// Startup initializes internal resources.
func (dm Map) Startup() error {
	var errorset ErrorSet

	for _, dev := range dm {
		log.Println(dev.ID(), "startup")
		if err := dev.Startup(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Shutdown cleans up internal resources.
func (dm Map) Shutdown() error {
	var errorset ErrorSet

	for _, dev := range dm {
		log.Println(dev.ID(), "shutdown")
		if err := dev.Shutdown(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}

// Keypad returns the first connected device which implements Keypad.
func (dm Map) Keypad() (Keypad, bool) {
	for _, dev := range dm {
		if kp, ok := dev.(Keypad); ok {
			return kp, true
		}
	}
	return nil, false
}

// Random returns the first connected device which implements Random.
func (dm Map) Random() (Random, bool) {
	for _, dev := range dm {
		if r, ok := dev.(Random); ok {
			return r, true
		}
	}
	return nil, false
}
