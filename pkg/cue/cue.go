// Package cue emits the audible signals that bracket a sampling window.
package cue

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Cue plays a short signal. Implementations must not return until the cue
// has been handed to the system, and must never fail loudly.
type Cue interface {
	Beep()
}

// Func adapts a plain function to Cue.
type Func func()

func (f Func) Beep() { f() }

// Nop is a silent cue.
var Nop Cue = Func(func() {})

// Bell writes the ASCII BEL character, which terminals render as their
// configured bell.
type Bell struct {
	W io.Writer
}

func (b Bell) Beep() {
	w := b.W
	if w == nil {
		w = os.Stderr
	}
	if _, err := w.Write([]byte{'\a'}); err != nil {
		logrus.WithError(err).Debug("failed to ring terminal bell")
	}
}
