// Package cpu implements the CHIP-8 CPU: machine state, instruction decoding,
// opcode dispatch and program loading.
package cpu

import (
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices"
)

// StackCapacity is the maximum depth of the call stack.
const StackCapacity = 16

// FlagRegister is the register receiving carry, borrow, shift and collision flags.
// Programs must not rely on it holding data across such instructions.
const FlagRegister = 0xf

// noKey marks the absence of a pressed key.
const noKey = -1

// TraceFunc represents a callback handler for debug trace output.
// It is called for every fetched instruction, before it executes.
type TraceFunc func(*Instruction)

// CPU implements the runtime.
type CPU struct {
	devices       devices.Map    // Connected peripherals.
	trace         TraceFunc      // Handler for debug trace output.
	keypad        devices.Keypad // Key state input, if connected.
	random        devices.Random // Random byte source, if connected.
	rng           *rand.Rand     // Fallback random number generator.
	memory        Memory         // System memory.
	display       Display        // Display buffer.
	instr         Instruction    // Decoded instruction data.
	sprite        [15]byte       // Sprite rows read by DRW.
	v             [16]byte       // General purpose registers V0-VF.
	stack         []uint16       // Return addresses.
	i             uint16         // Index register.
	pc            uint16         // Address of the next instruction.
	key           int            // Key sampled for the current step, or noKey.
	loaded        bool           // Is there a valid program loaded?
	halted        bool           // Has execution stopped?
	stepMode      bool           // Should the host gate steps on explicit input?
	waiting       bool           // Is an LD Vx, K instruction waiting for a key?
	loopDetection bool           // Halt on jumps to the jump's own address?
}

// New creates a new CPU. Optionally with the given debug trace handler.
func New(trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	c := &CPU{
		trace:         trace,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		memory:        NewMemory(),
		stack:         make([]uint16, 0, StackCapacity),
		pc:            ProgramStart,
		key:           noKey,
		loopDetection: true,
	}

	copy(c.memory[FontStart:], font[:])
	return c
}

// ID returns the cpu's device ID.
func (c *CPU) ID() devices.ID {
	return devices.BuiltinID(devices.SerialCPU)
}

// Connect connects the given hardware peripheral to the system.
// Returns false if the given device type is already connected.
//
// The first connected Keypad supplies key state and the first connected
// Random supplies bytes for RND.
func (c *CPU) Connect(dev devices.Device) bool {
	if !c.devices.Connect(dev) {
		return false
	}

	c.keypad, _ = c.devices.Keypad()
	c.random, _ = c.devices.Random()
	return true
}

// Startup initializes connected peripherals.
func (c *CPU) Startup() error {
	log.Println(c.ID(), "startup")
	return c.devices.Startup()
}

// Shutdown cleans up peripheral resources.
func (c *CPU) Shutdown() error {
	log.Println(c.ID(), "shutdown")
	return c.devices.Shutdown()
}

// Load resets the machine and copies the given program image into memory
// at ProgramStart. The program counter is set to ProgramStart.
//
// Returns ErrProgramTooLarge and leaves the machine untouched if the image
// exceeds ProgramCapacity.
func (c *CPU) Load(program []byte) error {
	if len(program) > ProgramCapacity {
		return errors.Wrapf(ErrProgramTooLarge, "attempted to write %d bytes at %04x", len(program), ProgramStart)
	}

	log.Printf("%s loading program with size of %d bytes", c.ID(), len(program))

	c.memory.clear()
	copy(c.memory[FontStart:], font[:])
	copy(c.memory[ProgramStart:], program)

	c.display.clear()
	c.v = [16]byte{}
	c.stack = c.stack[:0]
	c.i = 0
	c.key = noKey
	c.halted = false
	c.waiting = false
	c.loaded = true
	c.pc = ProgramStart
	return nil
}

// LoadFrom reads a program image from r and loads it.
func (c *CPU) LoadFrom(r io.Reader) error {
	program, err := io.ReadAll(io.LimitReader(r, ProgramCapacity+1))
	if err != nil {
		return errors.Wrapf(err, "read program")
	}
	return c.Load(program)
}

// Step performs a single fetch, decode and execute cycle.
// Returns io.EOF if execution has halted or no program is loaded.
//
// A failing instruction leaves the machine as it was before the
// instruction was fetched.
func (c *CPU) Step() error {
	if !c.loaded || c.halted {
		return io.EOF
	}

	c.sampleKey()

	instr := &c.instr
	if err := instr.Decode(c.memory, int(c.pc)); err != nil {
		return NewError(instr, err, "fetch")
	}

	c.advance()
	c.trace(instr)

	exec := handlers[instr.Opcode]
	if exec == nil {
		log.Printf("%04x: instruction %04x unimplemented", instr.IP, instr.Word)
		return nil
	}

	if err := exec(c, instr); err != nil {
		c.pc = uint16(instr.IP)
		return err
	}

	return nil
}

// SetLoopDetection determines if a jump to its own address halts execution.
// ROMs commonly end in such a loop since the instruction set has no halt
// instruction. Enabled by default.
func (c *CPU) SetLoopDetection(v bool) {
	c.loopDetection = v
}

// SetStepMode determines if the host should single-step the CPU on explicit
// input instead of running it freely. The CPU itself does not consult it.
func (c *CPU) SetStepMode(v bool) {
	c.stepMode = v
}

// StepMode returns true if the host should single-step the CPU.
func (c *CPU) StepMode() bool { return c.stepMode }

// Halted returns true if execution has stopped.
func (c *CPU) Halted() bool { return c.halted }

// Loaded returns true if a program has been loaded.
func (c *CPU) Loaded() bool { return c.loaded }

// WaitingForInput returns true if the CPU is blocked on a key press.
func (c *CPU) WaitingForInput() bool { return c.waiting }

// PC returns the address of the next instruction.
func (c *CPU) PC() uint16 { return c.pc }

// I returns the index register.
func (c *CPU) I() uint16 { return c.i }

// V returns the value of register n. n is truncated to [0, 15].
func (c *CPU) V(n int) byte { return c.v[n&0xf] }

// Registers returns a copy of the general purpose registers.
func (c *CPU) Registers() [16]byte { return c.v }

// Stack returns a copy of the call stack, oldest return address first.
func (c *CPU) Stack() []uint16 {
	out := make([]uint16, len(c.stack))
	copy(out, c.stack)
	return out
}

// Display returns the display buffer.
func (c *CPU) Display() *Display { return &c.display }

// ReadMemory copies len(p) bytes starting at the given address into p.
func (c *CPU) ReadMemory(addr int, p []byte) error {
	return c.memory.Read(addr, p)
}

// sampleKey records the key currently held on the connected keypad.
func (c *CPU) sampleKey() {
	c.key = noKey
	if c.keypad == nil {
		return
	}

	if key, ok := c.keypad.Key(); ok {
		c.key = int(key & 0xf)
	}
}

// randomByte returns the next byte from the connected random source.
func (c *CPU) randomByte() byte {
	if c.random != nil {
		return c.random.Byte()
	}
	return byte(c.rng.Intn(256))
}

// advance moves the program counter past one instruction. Running off the
// end of memory wraps around to address 0.
func (c *CPU) advance() {
	next := int(c.pc) + 2
	if next > MaxAddress {
		log.Printf("%04x: program counter overflow, wrapping to %04x", c.pc, next-MemoryCapacity)
		next -= MemoryCapacity
	}
	c.pc = uint16(next)
}

// jump sets the program counter to the given address.
func (c *CPU) jump(addr int) error {
	if addr < 0 || addr > MaxAddress {
		return errors.Wrapf(ErrInvalidAddress, "jump to %04x", addr)
	}
	c.pc = uint16(addr)
	return nil
}

// push pushes the current program counter onto the callstack.
func (c *CPU) push() error {
	if len(c.stack) >= StackCapacity {
		return ErrStackOverflow
	}
	c.stack = append(c.stack, c.pc)
	return nil
}

// pop returns the top value from the callstack.
func (c *CPU) pop() (uint16, error) {
	n := len(c.stack)
	if n == 0 {
		return 0, ErrStackUnderflow
	}

	addr := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return addr, nil
}
