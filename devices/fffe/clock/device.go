// Package clock implements the step pacer which keeps the CPU running at a
// fixed instruction frequency.
package clock

import (
	"log"
	"time"

	"github.com/hexaflex/c8vm/devices"
)

// FrameRate is the number of frames per second the pacer hands out steps for.
const FrameRate = 60

// DefaultFrequency is the default number of instructions per second.
const DefaultFrequency = 700

// MaxFrames is the number of frames Due catches up on after a stall.
// Anything beyond it is dropped.
const MaxFrames = 4

const frame = time.Second / FrameRate

// Device defines a step pacer.
type Device struct {
	now       func() time.Time // Time source.
	last      time.Time        // Start of the current frame.
	frequency int              // Instructions per second.
}

var _ devices.Device = &Device{}

// New creates a new pacer for the given instruction frequency.
// Values below 1 select DefaultFrequency.
func New(frequency int) *Device {
	d := &Device{now: time.Now}
	d.SetFrequency(frequency)
	return d
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.BuiltinID(devices.SerialClock)
}

// Startup starts the first frame.
func (d *Device) Startup() error {
	d.last = d.now()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	return nil
}

// Frequency returns the number of instructions per second.
func (d *Device) Frequency() int { return d.frequency }

// SetFrequency sets the number of instructions per second.
func (d *Device) SetFrequency(frequency int) {
	if frequency < 1 {
		frequency = DefaultFrequency
	}
	d.frequency = frequency
}

// StepsPerFrame returns the number of steps handed out for each frame.
func (d *Device) StepsPerFrame() int {
	if n := d.frequency / FrameRate; n > 0 {
		return n
	}
	return 1
}

// Due returns the number of steps to run for the frames which have
// elapsed since the last call.
func (d *Device) Due() int {
	now := d.now()
	frames := int(now.Sub(d.last) / frame)
	if frames <= 0 {
		return 0
	}

	if frames > MaxFrames {
		log.Printf("%s dropping %d frame(s)", d.ID(), frames-MaxFrames)
		frames = MaxFrames
		d.last = now
	} else {
		d.last = d.last.Add(time.Duration(frames) * frame)
	}

	return frames * d.StepsPerFrame()
}
