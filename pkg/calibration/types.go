package calibration

import (
	"time"

	"github.com/penarea/penarea/pkg/area"
)

// Phase defines phases of a calibration run.
type Phase string

const (
	PhaseIdle       Phase = "Idle"
	PhaseCountdown  Phase = "Countdown"
	PhaseSampling   Phase = "Sampling"
	PhaseReducing   Phase = "Reducing"
	PhaseConverting Phase = "Converting"
	PhaseReporting  Phase = "Reporting"
)

// State holds the in-memory runtime state of the controller. Nothing here
// is written to disk.
type State struct {
	Phase     Phase
	StartedAt time.Time
	// Remaining is the countdown counter while in PhaseCountdown.
	Remaining int
	LastError string
	// LastResult is the outcome of the most recent successful run.
	LastResult *area.Result
}

// Status is a synthesized view model exposed via the daemon and polled by
// front ends.
type Status struct {
	Phase     Phase        `json:"phase"`
	Remaining int          `json:"remaining,omitempty"`
	StartedAt time.Time    `json:"startedAt"`
	CanStart  bool         `json:"canStart"`
	Message   string       `json:"message,omitempty"`
	Result    *area.Result `json:"result,omitempty"`
}

var ErrCalibrationInProgress = &calibrationError{"calibration already in progress"}

type calibrationError struct{ msg string }

func (e *calibrationError) Error() string { return e.msg }
