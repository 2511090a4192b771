package events

import "encoding/json"

// Event name constants
const (
	CalibrationPhase  = "calibration.phase"
	CalibrationTick   = "calibration.tick"
	CalibrationResult = "calibration.result"
)

// Event is a generic event published by the calibration controller.
type Event struct {
	Name string          // event name
	Data json.RawMessage // Raw JSON payload
}

// CalibrationPhaseEvent is the typed payload for calibration.phase.
type CalibrationPhaseEvent struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message,omitempty"`
	Ts      int64  `json:"ts"`
}

// CalibrationTickEvent is the typed payload for calibration.tick.
// Remaining is the counter shown to the operator after the tick.
type CalibrationTickEvent struct {
	Remaining int   `json:"remaining"`
	Ts        int64 `json:"ts"`
}

// CalibrationResultEvent is the typed payload for calibration.result. The
// area figures are flattened so subscribers do not depend on pkg/area.
type CalibrationResultEvent struct {
	TopLeftX         float64 `json:"topLeftX"`
	TopLeftY         float64 `json:"topLeftY"`
	BottomRightX     float64 `json:"bottomRightX"`
	BottomRightY     float64 `json:"bottomRightY"`
	PlayfieldAreaMm2 float64 `json:"playfieldAreaMm2"`
	UnusedAreaMm2    float64 `json:"unusedAreaMm2"`
	Samples          int     `json:"samples"`
	Ts               int64   `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.CalibrationPhaseEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.From, payload.To)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
