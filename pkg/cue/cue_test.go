package cue

import (
	"bytes"
	"testing"
)

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	Bell{W: &buf}.Beep()
	Bell{W: &buf}.Beep()
	if buf.String() != "\a\a" {
		t.Fatalf("Bell wrote %q, want two BEL characters", buf.String())
	}
}

func TestFunc(t *testing.T) {
	n := 0
	var c Cue = Func(func() { n++ })
	c.Beep()
	if n != 1 {
		t.Fatalf("Func called %d times, want 1", n)
	}
	Nop.Beep()
}
