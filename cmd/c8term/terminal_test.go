package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hexaflex/c8vm/devices/fffe/cpu"
	"github.com/hexaflex/c8vm/devices/fffe/keypad"
)

func newTestTerminal() *Terminal {
	pad := keypad.New()
	c := cpu.New(nil)
	c.Connect(pad)
	return NewTerminal(c, pad, &Config{Frequency: 600})
}

func TestHandleInput(t *testing.T) {
	term := newTestTerminal()

	if term.handleInput([]byte("w")) {
		t.Fatalf("unexpected quit")
	}

	if !term.pad.Pressed(0x5) {
		t.Fatalf("expected key 5 to be held")
	}

	if !term.handleInput([]byte{keyEscape}) {
		t.Fatalf("expected escape to quit")
	}

	if !term.handleInput([]byte{'x', keyCtrlC}) {
		t.Fatalf("expected ctrl-c to quit")
	}

	// Escape sequences are not a lone escape.
	if term.handleInput([]byte{keyEscape, '[', 'A'}) {
		t.Fatalf("unexpected quit on an escape sequence")
	}
}

func TestReleaseKeys(t *testing.T) {
	term := newTestTerminal()
	term.handleInput([]byte("v"))

	start := term.held[0xf]
	term.releaseKeys(start.Add(keyHoldTime / 2))
	if !term.pad.Pressed(0xf) {
		t.Fatalf("expected key f to still be held")
	}

	term.releaseKeys(start.Add(keyHoldTime))
	if term.pad.Pressed(0xf) {
		t.Fatalf("expected key f to be released")
	}
}

func TestReadInput(t *testing.T) {
	term := newTestTerminal()
	go term.readInput(strings.NewReader("1q"))

	var got bytes.Buffer
	timeout := time.After(time.Second)
	for {
		select {
		case p, ok := <-term.input:
			if !ok {
				if got.String() != "1q" {
					t.Fatalf("unexpected input %q", got.String())
				}
				return
			}
			got.Write(p)
		case <-timeout:
			t.Fatalf("timed out waiting for input")
		}
	}
}

func TestRunHeadless(t *testing.T) {
	c := cpu.New(nil)
	c.Load([]byte{0xa0, 0x50, 0xd0, 0x05, 0x12, 0x04})

	if err := runHeadlessTo(io.Discard, c, 100); err != nil {
		t.Fatalf("runHeadless failure: %v", err)
	}

	if !c.Halted() || c.Display().Lit() != 14 {
		t.Fatalf("expected the font zero to be drawn; have %d lit pixels", c.Display().Lit())
	}
}
