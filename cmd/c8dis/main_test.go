package main

import (
	"bytes"
	"testing"
)

func TestDisassemble(t *testing.T) {
	program := []byte{
		0xa2, 0x08, // LD I, $208
		0x60, 0x0a, // LD V0, $0A
		0xd0, 0x01, // DRW V0, V0, $1
		0x12, 0x06, // JP $206
		0xff, // stray byte
	}

	var buf bytes.Buffer
	if err := disassemble(&buf, program, true); err != nil {
		t.Fatalf("disassemble failure: %v", err)
	}

	want := "0200 a208  LD I, $208\n" +
		"0202 600a  LD V0, $0A\n" +
		"0204 d001  DRW V0, V0, $1\n" +
		"L206:\n" +
		"0206 1206  JP $206\n" +
		"0208 ff    DB $FF\n"

	if have := buf.String(); have != want {
		t.Fatalf("listing mismatch:\nwant:\n%s\nhave:\n%s", want, have)
	}
}

func TestDisassembleUnknown(t *testing.T) {
	var buf bytes.Buffer
	disassemble(&buf, []byte{0x80, 0x0f}, false)

	if have := buf.String(); have != "0200 800f  DW $800F\n" {
		t.Fatalf("unexpected listing %q", have)
	}
}
