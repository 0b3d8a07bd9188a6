package rng

import "testing"

func TestSeeded(t *testing.T) {
	a, b := New(1234), New(1234)

	for i := 0; i < 64; i++ {
		if x, y := a.Byte(), b.Byte(); x != y {
			t.Fatalf("byte %d differs: %02x != %02x", i, x, y)
		}
	}
}

func TestStartupRestarts(t *testing.T) {
	d := New(99)

	var first [16]byte
	for i := range first {
		first[i] = d.Byte()
	}

	if err := d.Startup(); err != nil {
		t.Fatalf("Startup failure: %v", err)
	}

	for i := range first {
		if v := d.Byte(); v != first[i] {
			t.Fatalf("byte %d differs after Startup: %02x != %02x", i, v, first[i])
		}
	}
}
