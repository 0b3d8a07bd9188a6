package main

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices"
	"github.com/hexaflex/c8vm/devices/fffe/clock"
	"github.com/hexaflex/c8vm/devices/fffe/cpu"
)

// CPUController controls the execution of a CPU.
type CPUController struct {
	cpu        *cpu.CPU
	clock      *clock.Device
	start      time.Time
	cycleCount uint64
}

// NewCPUController creates a new CPU controller. The clock paces free
// running execution.
func NewCPUController(trace cpu.TraceFunc, clk *clock.Device, devices ...devices.Device) *CPUController {
	cpu := cpu.New(trace)
	cpu.Connect(clk)

	for _, dev := range devices {
		cpu.Connect(dev)
	}

	return &CPUController{
		cpu:   cpu,
		clock: clk,
		start: time.Now(),
	}
}

// CPU returns the controlled cpu.
func (c *CPUController) CPU() *cpu.CPU {
	return c.cpu
}

// Running returns true if the CPU is executing freely.
func (c *CPUController) Running() bool {
	return c.cpu.Loaded() && !c.cpu.Halted() && !c.cpu.StepMode()
}

// Frequency returns the measured instruction frequency in hertz.
func (c *CPUController) Frequency() float64 {
	if !c.Running() {
		return 0
	}
	return float64(c.cycleCount) / time.Since(c.start).Seconds()
}

// ToggleRun switches between free running execution and step mode.
func (c *CPUController) ToggleRun() {
	c.setStepMode(!c.cpu.StepMode())
}

// Start begins free running execution of the program.
func (c *CPUController) Start() {
	c.setStepMode(false)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setStepMode(true)
}

// Step performs a single execution step.
// A halted cpu is not an error.
func (c *CPUController) Step() error {
	c.cycleCount++

	err := c.cpu.Step()
	if err != nil {
		c.setStepMode(true)
		if err != io.EOF {
			return err
		}
	}

	return nil
}

// RunFrame runs the steps the clock has accumulated since the last call.
// Nothing happens in step mode, though the clock is kept current.
func (c *CPUController) RunFrame() error {
	n := c.clock.Due()
	if !c.Running() {
		return nil
	}

	for i := 0; i < n && c.Running(); i++ {
		if err := c.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Load loads the given program file and resets the cpu.
func (c *CPUController) Load(file string) error {
	fd, err := os.Open(file)
	if err != nil {
		return errors.Wrapf(err, "open program")
	}

	defer fd.Close()

	if err := c.cpu.LoadFrom(fd); err != nil {
		return errors.Wrapf(err, "%s", file)
	}

	c.start = time.Now()
	c.cycleCount = 0
	return nil
}

// Startup initializes the cpu and connected peripherals.
func (c *CPUController) Startup() error {
	return c.cpu.Startup()
}

// Shutdown disposes of CPU and peripheral resources.
func (c *CPUController) Shutdown() error {
	return c.cpu.Shutdown()
}

// setStepMode determines if the CPU is running or is paused.
func (c *CPUController) setStepMode(v bool) {
	c.cpu.SetStepMode(v)
	c.start = time.Now()
	c.cycleCount = 0
}
