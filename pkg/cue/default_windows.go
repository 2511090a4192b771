//go:build windows

package cue

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	procBeep = kernel32.NewProc("Beep")
)

const (
	beepFrequencyHz = 440
	beepDurationMs  = 1000
)

type speakerBeep struct{}

// Default plays a 440 Hz tone for one second through kernel32!Beep. It
// blocks for the duration of the tone.
func Default() Cue {
	if err := procBeep.Find(); err != nil {
		return Bell{}
	}
	return speakerBeep{}
}

func (speakerBeep) Beep() {
	r, _, err := procBeep.Call(beepFrequencyHz, beepDurationMs)
	if r == 0 {
		logrus.WithError(err).Debug("kernel32 Beep failed")
	}
}
