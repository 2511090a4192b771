package calibration

import (
	"strconv"
	"time"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/preset"
)

const (
	DefaultCountdownTicks = 10
	DefaultTickInterval   = time.Second
	DefaultSampleDuration = 50 * time.Second
	DefaultSampleInterval = 10 * time.Millisecond
)

// Config is everything a run needs. Front ends fill it from their own
// widgets or flags and pass it to Controller.Run; the controller never reads
// presentation state.
type Config struct {
	Screen area.ScreenProfile
	Tablet area.TabletProfile

	CountdownTicks int
	TickInterval   time.Duration

	SampleDuration time.Duration
	SampleInterval time.Duration
}

// NewConfig returns a Config with the reference timings and the given
// profiles.
func NewConfig(screen area.ScreenProfile, tablet area.TabletProfile) *Config {
	return &Config{
		Screen:         screen,
		Tablet:         tablet,
		CountdownTicks: DefaultCountdownTicks,
		TickInterval:   DefaultTickInterval,
		SampleDuration: DefaultSampleDuration,
		SampleInterval: DefaultSampleInterval,
	}
}

// DefaultConfig measures a 1920x1080 screen against the first preset.
func DefaultConfig() *Config {
	tablet, _ := preset.Lookup(preset.Names()[0])
	return NewConfig(area.ScreenProfile{WidthPx: 1920, HeightPx: 1080}, tablet)
}

// Validate reports the first operator input that can not be used.
func (c *Config) Validate() error {
	if c == nil {
		return area.NewInvalidInputError("configuration", "", "missing")
	}
	if c.Screen.WidthPx <= 0 {
		return area.NewInvalidInputError("screen width", strconv.Itoa(c.Screen.WidthPx), "must be greater than 0 px")
	}
	if c.Screen.HeightPx <= 0 {
		return area.NewInvalidInputError("screen height", strconv.Itoa(c.Screen.HeightPx), "must be greater than 0 px")
	}
	if err := c.Tablet.Validate(); err != nil {
		return err
	}
	if c.CountdownTicks < 0 {
		return area.NewInvalidInputError("countdown", strconv.Itoa(c.CountdownTicks), "must not be negative")
	}
	if c.CountdownTicks > 0 && c.TickInterval <= 0 {
		return area.NewInvalidInputError("tick interval", c.TickInterval.String(), "must be positive")
	}
	if c.SampleDuration <= 0 {
		return area.NewInvalidInputError("sample duration", c.SampleDuration.String(), "must be positive")
	}
	if c.SampleInterval <= 0 {
		return area.NewInvalidInputError("sample interval", c.SampleInterval.String(), "must be positive")
	}
	return nil
}
