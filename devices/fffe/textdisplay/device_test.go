package textdisplay

import (
	"bytes"
	"strings"
	"testing"
)

type testBuffer struct {
	w, h int
	lit  map[[2]int]bool
}

func (b *testBuffer) Width() int          { return b.w }
func (b *testBuffer) Height() int         { return b.h }
func (b *testBuffer) Pixel(x, y int) bool { return b.lit[[2]int{x, y}] }

func TestRender(t *testing.T) {
	fb := &testBuffer{w: 4, h: 4, lit: map[[2]int]bool{
		{0, 0}: true,
		{1, 1}: true,
		{2, 0}: true, {2, 1}: true,
		{3, 3}: true,
	}}

	var buf bytes.Buffer
	Render(&buf, fb, "\n")

	want := "▀▄█ \n   ▄\n"
	if have := buf.String(); have != want {
		t.Fatalf("render mismatch:\nwant: %q\nhave: %q", want, have)
	}
}

func TestPresentSkipsDuplicateFrames(t *testing.T) {
	var out bytes.Buffer
	d := New(&out)

	if err := d.Startup(); err != nil {
		t.Fatalf("Startup failure: %v", err)
	}

	fb := &testBuffer{w: 2, h: 2, lit: map[[2]int]bool{{0, 0}: true}}

	d.Present(fb)
	n := out.Len()
	d.Present(fb)

	if out.Len() != n {
		t.Fatalf("expected duplicate frame to be skipped")
	}

	fb.lit[[2]int{1, 1}] = true
	d.Present(fb)

	if !strings.HasSuffix(out.String(), cursorHome+"▀▄\r\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
