package gui

import (
	"strconv"
	"strings"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/preset"
)

// formInput is the raw text of the form at the moment Start is pressed.
type formInput struct {
	ScreenWidth  string
	ScreenHeight string
	Tablet       string
	TabletWidth  string
	TabletHeight string
}

// parseForm validates the form and builds a run configuration with the
// default timings.
func parseForm(in formInput) (*calibration.Config, error) {
	w, err := parsePx("screen width", in.ScreenWidth)
	if err != nil {
		return nil, err
	}
	h, err := parsePx("screen height", in.ScreenHeight)
	if err != nil {
		return nil, err
	}

	if in.Tablet == "" {
		return nil, area.NewInvalidInputError("tablet", "", "select a tablet")
	}
	tablet, err := preset.Resolve(in.Tablet, in.TabletWidth, in.TabletHeight)
	if err != nil {
		return nil, err
	}

	cfg := calibration.NewConfig(area.ScreenProfile{WidthPx: w, HeightPx: h}, tablet)
	return cfg, cfg.Validate()
}

func parsePx(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, area.NewInvalidInputError(field, value, "not a whole number")
	}
	if v <= 0 {
		return 0, area.NewInvalidInputError(field, value, "must be greater than 0 px")
	}
	return v, nil
}

func countdownText(remaining int) string {
	if remaining <= 0 {
		return samplingText
	}
	return strconv.Itoa(remaining)
}

func formatMm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
