package cpu

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/arch"
)

func TestDecode(t *testing.T) {
	mem := NewMemory()
	mem.Write(ProgramStart, []byte{0xd1, 0x2f})

	var i Instruction
	if err := i.Decode(mem, ProgramStart); err != nil {
		t.Fatalf("Decode failure: %v", err)
	}

	want := Instruction{
		IP:     ProgramStart,
		Word:   0xd12f,
		Opcode: arch.DRW,
		Family: 0xd,
		X:      0x1,
		Y:      0x2,
		N:      0xf,
		NN:     0x2f,
		NNN:    0x12f,
	}

	if i != want {
		t.Fatalf("decode mismatch:\nwant: %+v\nhave: %+v", want, i)
	}

	if have := i.String(); have != "0200 d12f  DRW V1, V2, $F" {
		t.Fatalf("unexpected trace line %q", have)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	var i Instruction

	err := i.Decode(NewMemory(), MaxAddress)
	if !errors.Is(err, ErrMemoryViolation) {
		t.Fatalf("expected ErrMemoryViolation; have %v", err)
	}

	if i.IP != MaxAddress {
		t.Fatalf("expected IP %04x; have %04x", MaxAddress, i.IP)
	}
}

func TestMemoryBounds(t *testing.T) {
	mem := NewMemory()

	if err := mem.SetU8(MaxAddress, 0x12); err != nil {
		t.Fatalf("SetU8 failure: %v", err)
	}

	if v, err := mem.U8(MaxAddress); err != nil || v != 0x12 {
		t.Fatalf("expected 12; have %02x (%v)", v, err)
	}

	if _, err := mem.U8(MemoryCapacity); !errors.Is(err, ErrMemoryViolation) {
		t.Fatalf("expected ErrMemoryViolation; have %v", err)
	}

	if err := mem.Write(-1, []byte{1}); !errors.Is(err, ErrMemoryViolation) {
		t.Fatalf("expected ErrMemoryViolation; have %v", err)
	}

	p := []byte{0xaa, 0xbb}
	if err := mem.Read(MaxAddress, p); err == nil || p[0] != 0xaa {
		t.Fatalf("expected failed read to leave p untouched")
	}
}
