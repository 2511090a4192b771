package config

import (
	"fmt"
	"time"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/preset"
)

// CalibrationConfig resolves the remembered inputs into a run configuration.
func CalibrationConfig(c Config) (*calibration.Config, error) {
	tablet, err := TabletProfile(c)
	if err != nil {
		return nil, err
	}

	cfg := calibration.NewConfig(area.ScreenProfile{
		WidthPx:  c.ScreenWidth(),
		HeightPx: c.ScreenHeight(),
	}, tablet)
	cfg.CountdownTicks = c.CountdownTicks()
	cfg.SampleDuration = time.Duration(c.SampleDurationSeconds()) * time.Second
	cfg.SampleInterval = time.Duration(c.SampleIntervalMillis()) * time.Millisecond

	return cfg, cfg.Validate()
}

// TabletProfile resolves the remembered tablet selection.
func TabletProfile(c Config) (area.TabletProfile, error) {
	name := c.Tablet()
	if !preset.IsCustom(name) {
		p, ok := preset.Lookup(name)
		if !ok {
			return area.TabletProfile{}, fmt.Errorf("%w: %q", preset.ErrUnknownPreset, name)
		}
		return p, nil
	}

	w, h, ok := c.CustomTabletSize()
	if !ok {
		return area.TabletProfile{}, area.NewInvalidInputError("tablet size", "", "required for a custom tablet")
	}
	p := area.TabletProfile{Name: preset.Custom, WidthMm: w, HeightMm: h}
	return p, p.Validate()
}
