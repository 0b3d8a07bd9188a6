package main

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/hexaflex/c8vm/devices/fffe/clock"
	"github.com/hexaflex/c8vm/devices/fffe/cpu"
	"github.com/hexaflex/c8vm/devices/fffe/keypad"
	"github.com/hexaflex/c8vm/devices/fffe/textdisplay"
)

// Terminals report key presses but never releases. A key counts as held
// until no repeat has been seen for this long.
const keyHoldTime = 150 * time.Millisecond

// Control bytes read from stdin.
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// Terminal runs a program interactively on the controlling terminal.
type Terminal struct {
	cpu    *cpu.CPU
	pad    *keypad.Device
	clock  *clock.Device
	screen *textdisplay.Device
	held   map[byte]time.Time // Pad keys and the time they were last seen.
	input  chan []byte
	fd     int
}

// NewTerminal creates a terminal host for c.
func NewTerminal(c *cpu.CPU, pad *keypad.Device, config *Config) *Terminal {
	t := &Terminal{
		cpu:    c,
		pad:    pad,
		clock:  clock.New(config.Frequency),
		screen: textdisplay.New(os.Stdout),
		held:   make(map[byte]time.Time),
		input:  make(chan []byte, 16),
		fd:     int(os.Stdin.Fd()),
	}

	c.Connect(t.clock)
	c.Connect(t.screen)
	return t
}

// Run puts the terminal in raw mode and runs the program until it is
// interrupted with escape or ctrl-c.
func (t *Terminal) Run() error {
	if !term.IsTerminal(t.fd) {
		return errors.New("stdin is not a terminal; use -steps to run without one")
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return errors.Wrapf(err, "query terminal size")
	}

	if width < cpu.DisplayWidth || height < cpu.DisplayHeight/2 {
		return errors.Errorf("terminal must be at least %dx%d; have %dx%d",
			cpu.DisplayWidth, cpu.DisplayHeight/2, width, height)
	}

	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return errors.Wrapf(err, "failed to set raw mode")
	}

	defer term.Restore(t.fd, state)

	if err := t.cpu.Startup(); err != nil {
		return err
	}

	defer t.cpu.Shutdown()

	go t.readInput(os.Stdin)
	return t.loop()
}

// loop runs steps and presents the display once per frame.
func (t *Terminal) loop() error {
	ticker := time.NewTicker(time.Second / clock.FrameRate)
	defer ticker.Stop()

	for {
		select {
		case p, ok := <-t.input:
			if !ok || t.handleInput(p) {
				return nil
			}

		case now := <-ticker.C:
			t.releaseKeys(now)

			if err := t.runFrame(); err != nil {
				return err
			}

			if err := t.screen.Present(t.cpu.Display()); err != nil {
				return err
			}
		}
	}
}

// runFrame runs the steps the clock has accumulated since the last frame.
func (t *Terminal) runFrame() error {
	n := t.clock.Due()
	for i := 0; i < n; i++ {
		err := t.cpu.Step()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}
	}
	return nil
}

// handleInput presses the pad keys found in p.
// Returns true if the user asked to quit.
func (t *Terminal) handleInput(p []byte) bool {
	if len(p) == 1 && p[0] == keyEscape {
		return true
	}

	now := time.Now()
	for _, b := range p {
		if b == keyCtrlC {
			return true
		}

		if key, ok := keypad.KeyForRune(rune(b)); ok {
			t.pad.Press(key)
			t.held[key] = now
		}
	}
	return false
}

// releaseKeys releases pad keys which have not been repeated recently.
func (t *Terminal) releaseKeys(now time.Time) {
	for key, seen := range t.held {
		if now.Sub(seen) >= keyHoldTime {
			t.pad.Release(key)
			delete(t.held, key)
		}
	}
}

// readInput forwards chunks read from r until it fails.
func (t *Terminal) readInput(r io.Reader) {
	defer close(t.input)

	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			t.input <- append([]byte(nil), buf[:n]...)
		}

		if err != nil {
			return
		}
	}
}
