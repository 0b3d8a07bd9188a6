package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexaflex/c8vm/arch"
	"github.com/hexaflex/c8vm/devices/fffe/cpu"
)

func main() {
	config := parseArgs()

	program, err := os.ReadFile(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(program) > cpu.ProgramCapacity {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.Input, cpu.ErrProgramTooLarge)
		os.Exit(1)
	}

	w, close := makeWriter(config)
	defer close()

	if err := disassemble(w, program, config.Labels); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disassemble writes a listing of the program to w: one line per
// instruction word, holding the address, raw word and mnemonic.
// An odd trailing byte is listed as data.
func disassemble(w io.Writer, program []byte, labels bool) error {
	mem := cpu.NewMemory()
	if err := mem.Write(cpu.ProgramStart, program); err != nil {
		return err
	}

	end := cpu.ProgramStart + len(program)

	var targets map[int]bool
	if labels {
		targets = jumpTargets(mem, end)
	}

	var instr cpu.Instruction
	for addr := cpu.ProgramStart; addr < end; addr += 2 {
		if targets[addr] {
			fmt.Fprintf(w, "L%03X:\n", addr)
		}

		if addr+1 >= end {
			fmt.Fprintf(w, "%04x %02x    DB $%02X\n", addr, mem[addr], mem[addr])
			break
		}

		if err := instr.Decode(mem, addr); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, instr.String()); err != nil {
			return err
		}
	}

	return nil
}

// jumpTargets returns the addresses inside the program which are the
// target of a JP or CALL instruction.
func jumpTargets(mem cpu.Memory, end int) map[int]bool {
	targets := make(map[int]bool)

	var instr cpu.Instruction
	for addr := cpu.ProgramStart; addr+1 < end; addr += 2 {
		if instr.Decode(mem, addr) != nil {
			break
		}

		switch instr.Opcode {
		case arch.JP, arch.CALL:
			if t := int(instr.NNN); t >= cpu.ProgramStart && t < end {
				targets[t] = true
			}
		}
	}

	return targets
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
