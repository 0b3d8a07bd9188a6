package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices/fffe/cpu"
	"github.com/hexaflex/c8vm/devices/fffe/keypad"
	"github.com/hexaflex/c8vm/devices/fffe/rng"
	"github.com/hexaflex/c8vm/devices/fffe/snapshot"
	"github.com/hexaflex/c8vm/devices/fffe/textdisplay"
)

func main() {
	config := parseArgs()

	if config.LogFile != "" {
		fd, err := os.Create(config.LogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer fd.Close()
		log.SetOutput(fd)
	} else if config.Steps == 0 {
		log.SetOutput(io.Discard)
	}

	pad := keypad.New()
	c := cpu.New(func(i *cpu.Instruction) {
		if config.PrintTrace {
			log.Println(i)
		}
	})

	c.SetLoopDetection(!config.NoHalt)
	c.Connect(pad)
	c.Connect(rng.New(config.Seed))

	if err := loadProgram(c, config.Program); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var err error
	if config.Steps > 0 {
		err = runHeadless(c, config)
	} else {
		err = NewTerminal(c, pad, config).Run()
	}

	if err == nil && config.Snapshot != "" {
		err = writeSnapshot(c, config)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runHeadless runs the configured number of steps and prints the display.
func runHeadless(c *cpu.CPU, config *Config) error {
	return runHeadlessTo(os.Stdout, c, config.Steps)
}

// runHeadlessTo runs up to the given number of steps and writes the
// display contents to w.
func runHeadlessTo(w io.Writer, c *cpu.CPU, steps int) error {
	if err := c.Startup(); err != nil {
		return err
	}

	defer c.Shutdown()

	for i := 0; i < steps; i++ {
		err := c.Step()
		if err == io.EOF {
			break
		}

		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	textdisplay.Render(&buf, c.Display(), "\n")
	_, err := buf.WriteTo(w)
	return err
}

// loadProgram loads the given program file into c.
func loadProgram(c *cpu.CPU, file string) error {
	fd, err := os.Open(file)
	if err != nil {
		return errors.Wrapf(err, "open program")
	}

	defer fd.Close()

	return errors.Wrapf(c.LoadFrom(fd), "%s", file)
}

// writeSnapshot writes the display contents to the configured PNG file.
func writeSnapshot(c *cpu.CPU, config *Config) error {
	dir, _ := filepath.Split(config.Snapshot)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			return err
		}
	}

	fd, err := os.Create(config.Snapshot)
	if err != nil {
		return err
	}

	defer fd.Close()

	return snapshot.WritePNG(fd, c.Display(), config.ScaleFactor, snapshot.DefaultForeground, snapshot.DefaultBackground)
}
