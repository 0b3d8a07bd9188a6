package cpu

import "github.com/pkg/errors"

// Memory layout.
const (
	MemoryCapacity  = 0x1000                        // Total addressable memory.
	MaxAddress      = MemoryCapacity - 1            // Highest valid address.
	ProgramStart    = 0x200                         // Entry point and load address of programs.
	ProgramCapacity = MemoryCapacity - ProgramStart // Space available to a program image.
	FontStart       = 0x050                         // Address of the builtin hex digit sprites.
)

// Memory defines the system's memory bank.
//
// Every accessor is bounds checked and fails with ErrMemoryViolation
// rather than wrapping around the end of the bank.
type Memory []byte

// NewMemory returns a zeroed memory bank of MemoryCapacity bytes.
func NewMemory() Memory {
	return make(Memory, MemoryCapacity)
}

// U8 returns the 8-bit value at the given address.
func (m Memory) U8(addr int) (byte, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m[addr], nil
}

// SetU8 sets the 8-bit value at the given address.
func (m Memory) SetU8(addr int, value byte) error {
	if err := m.check(addr, 1); err != nil {
		return err
	}
	m[addr] = value
	return nil
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr int) (uint16, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

// Write writes len(p) bytes from p into memory, starting at the given address.
// Nothing is written if the range does not fit.
func (m Memory) Write(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil {
		return err
	}
	copy(m[addr:], p)
	return nil
}

// Read reads len(p) bytes from memory into p, starting at the given address.
// p is left untouched if the range does not fit.
func (m Memory) Read(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil {
		return err
	}
	copy(p, m[addr:])
	return nil
}

// clear zeroes the whole bank.
func (m Memory) clear() {
	for i := range m {
		m[i] = 0
	}
}

// check returns an error if [addr, addr+size) is not contained in m.
func (m Memory) check(addr, size int) error {
	if addr < 0 || size < 0 || addr+size > len(m) {
		return errors.Wrapf(ErrMemoryViolation, "%d byte(s) at %04x", size, addr)
	}
	return nil
}
