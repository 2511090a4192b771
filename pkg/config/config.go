package config

import "github.com/sirupsen/logrus"

// Config holds the operator inputs remembered between runs. Calibration
// results are never stored here.
type Config interface {
	ScreenWidth() int
	ScreenHeight() int
	Tablet() string
	// CustomTabletSize returns the operator-entered size used when Tablet is
	// the custom sentinel. ok is false when it was never set.
	CustomTabletSize() (widthMm, heightMm float64, ok bool)
	CountdownTicks() int
	SampleDurationSeconds() int
	SampleIntervalMillis() int

	SetScreenSize(width, height int)
	SetTablet(string)
	SetCustomTabletSize(widthMm, heightMm float64)
	SetCountdownTicks(int)
	SetSampleDurationSeconds(int)
	SetSampleIntervalMillis(int)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
