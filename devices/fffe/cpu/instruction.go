package cpu

import (
	"fmt"

	"github.com/hexaflex/c8vm/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int    // Instruction address.
	Word   uint16 // Raw, big-endian instruction word.
	Opcode int    // Opcode as defined by package arch.
	Family byte   // High nibble of the first byte.
	X      byte   // Low nibble of the first byte.
	Y      byte   // High nibble of the second byte.
	N      byte   // Low nibble of the second byte.
	NN     byte   // Second byte.
	NNN    uint16 // Low 12 bits of the instruction word.
}

// Decode decodes the instruction stored at the given address.
// Both bytes of the instruction must lie within m.
func (i *Instruction) Decode(m Memory, addr int) error {
	*i = Instruction{IP: addr}

	word, err := m.U16(addr)
	if err != nil {
		return err
	}

	i.Word = word
	i.Opcode = arch.Lookup(word)
	i.Family = byte(word >> 12)
	i.X = byte(word>>8) & 0xf
	i.Y = byte(word>>4) & 0xf
	i.N = byte(word) & 0xf
	i.NN = byte(word)
	i.NNN = word & 0xfff
	return nil
}

// String returns a trace line for the instruction: address, raw word and
// the disassembled mnemonic.
func (i *Instruction) String() string {
	return fmt.Sprintf("%04x %04x  %s", i.IP, i.Word, arch.Disassemble(i.Word))
}
