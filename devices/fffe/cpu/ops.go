package cpu

import (
	"log"

	"github.com/hexaflex/c8vm/arch"
)

// handler executes a single decoded instruction against the machine state.
// A handler which fails must not have mutated any state.
type handler func(*CPU, *Instruction) error

// handlers maps opcodes to their implementation. Opcodes without an entry
// execute as no-ops and are reported as unimplemented. This covers SYS and
// the delay/sound timer instructions.
var handlers = [arch.Count]handler{
	arch.CLS:   opCLS,
	arch.RET:   opRET,
	arch.JP:    opJP,
	arch.CALL:  opCALL,
	arch.SEB:   opSEB,
	arch.SNEB:  opSNEB,
	arch.SE:    opSE,
	arch.LDB:   opLDB,
	arch.ADDB:  opADDB,
	arch.LD:    opLD,
	arch.OR:    opOR,
	arch.AND:   opAND,
	arch.XOR:   opXOR,
	arch.ADD:   opADD,
	arch.SUB:   opSUB,
	arch.SHR:   opSHR,
	arch.SUBN:  opSUBN,
	arch.SHL:   opSHL,
	arch.SNE:   opSNE,
	arch.LDI:   opLDI,
	arch.JPV0:  opJPV0,
	arch.RND:   opRND,
	arch.DRW:   opDRW,
	arch.SKP:   opSKP,
	arch.SKNP:  opSKNP,
	arch.LDK:   opLDK,
	arch.ADDI:  opADDI,
	arch.LDF:   opLDF,
	arch.LDBCD: opLDBCD,
	arch.STORE: opSTORE,
	arch.LOAD:  opLOAD,
}

func opCLS(c *CPU, _ *Instruction) error {
	c.display.clear()
	return nil
}

func opRET(c *CPU, i *Instruction) error {
	addr, err := c.pop()
	if err != nil {
		return NewError(i, err, "return from subroutine")
	}
	c.pc = addr
	return nil
}

func opJP(c *CPU, i *Instruction) error {
	// ROMs end in a jump to self since there is no instruction to stop execution.
	if c.loopDetection && int(i.NNN) == i.IP {
		log.Printf("%04x: infinite loop detected, halting execution", i.IP)
		c.halted = true
	}
	c.pc = i.NNN
	return nil
}

func opCALL(c *CPU, i *Instruction) error {
	if err := c.push(); err != nil {
		return NewError(i, err, "call %03x", i.NNN)
	}
	c.pc = i.NNN
	return nil
}

func opSEB(c *CPU, i *Instruction) error {
	c.skipIf(c.v[i.X] == i.NN)
	return nil
}

func opSNEB(c *CPU, i *Instruction) error {
	c.skipIf(c.v[i.X] != i.NN)
	return nil
}

func opSE(c *CPU, i *Instruction) error {
	c.skipIf(c.v[i.X] == c.v[i.Y])
	return nil
}

func opSNE(c *CPU, i *Instruction) error {
	c.skipIf(c.v[i.X] != c.v[i.Y])
	return nil
}

func opLDB(c *CPU, i *Instruction) error {
	c.v[i.X] = i.NN
	return nil
}

func opADDB(c *CPU, i *Instruction) error {
	c.v[i.X] += i.NN
	return nil
}

func opLD(c *CPU, i *Instruction) error {
	c.v[i.X] = c.v[i.Y]
	return nil
}

func opOR(c *CPU, i *Instruction) error {
	c.v[i.X] |= c.v[i.Y]
	return nil
}

func opAND(c *CPU, i *Instruction) error {
	c.v[i.X] &= c.v[i.Y]
	return nil
}

func opXOR(c *CPU, i *Instruction) error {
	c.v[i.X] ^= c.v[i.Y]
	return nil
}

// The arithmetic instructions below read both operands before writing
// anything, and write VF last. VF holds the flag even when it is the
// destination register.

func opADD(c *CPU, i *Instruction) error {
	sum := uint16(c.v[i.X]) + uint16(c.v[i.Y])
	c.v[i.X] = byte(sum)
	c.v[FlagRegister] = flag(sum > 0xff)
	return nil
}

func opSUB(c *CPU, i *Instruction) error {
	vx, vy := c.v[i.X], c.v[i.Y]
	c.v[i.X] = vx - vy
	c.v[FlagRegister] = flag(vx >= vy)
	return nil
}

func opSUBN(c *CPU, i *Instruction) error {
	vx, vy := c.v[i.X], c.v[i.Y]
	c.v[i.X] = vy - vx
	c.v[FlagRegister] = flag(vy >= vx)
	return nil
}

func opSHR(c *CPU, i *Instruction) error {
	vy := c.v[i.Y]
	c.v[i.X] = vy >> 1
	c.v[FlagRegister] = vy & 1
	return nil
}

func opSHL(c *CPU, i *Instruction) error {
	vy := c.v[i.Y]
	c.v[i.X] = vy << 1
	c.v[FlagRegister] = vy >> 7
	return nil
}

func opLDI(c *CPU, i *Instruction) error {
	c.i = i.NNN
	return nil
}

func opJPV0(c *CPU, i *Instruction) error {
	if err := c.jump(int(i.NNN) + int(c.v[0])); err != nil {
		return NewError(i, err, "jump")
	}
	return nil
}

func opRND(c *CPU, i *Instruction) error {
	c.v[i.X] = c.randomByte() & i.NN
	return nil
}

func opDRW(c *CPU, i *Instruction) error {
	rows := c.sprite[:i.N]
	if err := c.memory.Read(int(c.i), rows); err != nil {
		return NewError(i, err, "read sprite")
	}

	x := int(c.v[i.X] % DisplayWidth)
	y := int(c.v[i.Y] % DisplayHeight)
	c.v[FlagRegister] = flag(c.display.draw(x, y, rows))
	return nil
}

func opSKP(c *CPU, i *Instruction) error {
	c.skipIf(c.key != noKey && byte(c.key) == c.v[i.X]&0xf)
	return nil
}

func opSKNP(c *CPU, i *Instruction) error {
	c.skipIf(c.key == noKey || byte(c.key) != c.v[i.X]&0xf)
	return nil
}

func opLDK(c *CPU, i *Instruction) error {
	if c.key == noKey {
		// Execute the same instruction again on the next step.
		c.waiting = true
		c.pc = uint16(i.IP)
		return nil
	}

	c.waiting = false
	c.v[i.X] = byte(c.key)
	return nil
}

func opADDI(c *CPU, i *Instruction) error {
	c.i += uint16(c.v[i.X])
	return nil
}

func opLDF(c *CPU, i *Instruction) error {
	c.i = FontStart + uint16(c.v[i.X]&0xf)*FontHeight
	return nil
}

func opLDBCD(c *CPU, i *Instruction) error {
	vx := c.v[i.X]
	digits := [3]byte{vx / 100, vx / 10 % 10, vx % 10}
	if err := c.memory.Write(int(c.i), digits[:]); err != nil {
		return NewError(i, err, "store decimal digits")
	}
	return nil
}

func opSTORE(c *CPU, i *Instruction) error {
	if err := c.memory.Write(int(c.i), c.v[:i.X+1]); err != nil {
		return NewError(i, err, "store registers")
	}
	return nil
}

func opLOAD(c *CPU, i *Instruction) error {
	if err := c.memory.Read(int(c.i), c.v[:i.X+1]); err != nil {
		return NewError(i, err, "load registers")
	}
	return nil
}

// skipIf skips the next instruction if cond is true.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.advance()
	}
}

// flag returns v as a flag register value.
func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
