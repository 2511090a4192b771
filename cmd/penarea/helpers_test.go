package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/cue"
	"github.com/penarea/penarea/pkg/preset"
	"github.com/penarea/penarea/pkg/utils/ptr"
)

type fixedSampler []area.Sample

func (f fixedSampler) Sample(_, _ time.Duration) ([]area.Sample, error) {
	return f, nil
}

func TestParseBox(t *testing.T) {
	box, err := parseBox([]string{"100", "180", "300", "400"})
	if err != nil {
		t.Fatalf("parseBox: %v", err)
	}
	if box != (area.BoundingBox{MinX: 100, MinY: 180, MaxX: 300, MaxY: 400}) {
		t.Fatalf("unexpected box %v", box)
	}

	for _, args := range [][]string{
		{"a", "0", "1", "1"},
		{"0", "0", "1.5", "1"},
		{"5", "0", "1", "1"},
		{"0", "5", "1", "1"},
	} {
		if _, err := parseBox(args); !area.IsInvalidInput(err) {
			t.Errorf("parseBox(%v): expected InvalidInputError, got %v", args, err)
		}
	}
}

func TestProfileFlagsResolve(t *testing.T) {
	tests := []struct {
		name        string
		raw         *config.RawFileConfig
		args        []string
		wantScreen  area.ScreenProfile
		wantTablet  area.TabletProfile
		wantErr     error
		wantInvalid bool
	}{
		{
			name:       "config defaults",
			raw:        &config.RawFileConfig{},
			wantScreen: area.ScreenProfile{WidthPx: 1920, HeightPx: 1080},
			wantTablet: area.TabletProfile{Name: "Wacom Intuos Pro", WidthMm: 320, HeightMm: 200},
		},
		{
			name:       "flags override config",
			raw:        &config.RawFileConfig{ScreenWidth: ptr.To(1280)},
			args:       []string{"--screen-height", "720", "--tablet", "Wacom CTL-472"},
			wantScreen: area.ScreenProfile{WidthPx: 1280, HeightPx: 720},
			wantTablet: area.TabletProfile{Name: "Wacom CTL-472", WidthMm: 152, HeightMm: 95},
		},
		{
			name:       "custom mixes flag and stored size",
			raw:        &config.RawFileConfig{TabletHeightMm: ptr.To(60.0), TabletWidthMm: ptr.To(10.0)},
			args:       []string{"--tablet", preset.Custom, "--tablet-width", "100"},
			wantScreen: area.ScreenProfile{WidthPx: 1920, HeightPx: 1080},
			wantTablet: area.TabletProfile{Name: preset.Custom, WidthMm: 100, HeightMm: 60},
		},
		{
			name:        "custom without size",
			raw:         &config.RawFileConfig{},
			args:        []string{"--tablet", preset.Custom},
			wantInvalid: true,
		},
		{
			name:    "zero screen width",
			raw:     &config.RawFileConfig{},
			args:    []string{"--screen-width", "0"},
			wantErr: area.ErrInvalidScreenProfile,
		},
		{
			name:        "infinite custom width",
			raw:         &config.RawFileConfig{},
			args:        []string{"--tablet", preset.Custom, "--tablet-width", "inf", "--tablet-height", "100"},
			wantInvalid: true,
		},
		{
			name:        "overflowing custom width",
			raw:         &config.RawFileConfig{},
			args:        []string{"--tablet", preset.Custom, "--tablet-width", "1e308", "--tablet-height", "100"},
			wantInvalid: true,
		},
		{
			name:    "unknown preset",
			raw:     &config.RawFileConfig{},
			args:    []string{"--tablet", "Etch A Sketch"},
			wantErr: preset.ErrUnknownPreset,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p profileFlags
			cmd := &cobra.Command{Use: "test"}
			p.register(cmd)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}

			screen, tablet, err := p.resolve(cmd, config.NewFileFromConfig(tt.raw, ""))
			switch {
			case tt.wantInvalid:
				if !area.IsInvalidInput(err) {
					t.Fatalf("expected InvalidInputError, got %v", err)
				}
				return
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}
			if screen != tt.wantScreen {
				t.Errorf("screen = %+v, want %+v", screen, tt.wantScreen)
			}
			if tablet != tt.wantTablet {
				t.Errorf("tablet = %+v, want %+v", tablet, tt.wantTablet)
			}
		})
	}
}

func TestCalibrateLocal(t *testing.T) {
	color.NoColor = true

	tablet, _ := preset.Lookup("Wacom Intuos Pro")
	cfg := calibration.NewConfig(area.ScreenProfile{WidthPx: 1920, HeightPx: 1080}, tablet)
	cfg.CountdownTicks = 2
	cfg.TickInterval = time.Millisecond

	var beeps int
	var out bytes.Buffer
	res, err := calibrateLocal(&out, cfg,
		fixedSampler{{X: 100, Y: 200}, {X: 150, Y: 180}, {X: 300, Y: 400}, {X: 120, Y: 190}},
		cue.Func(func() { beeps++ }))
	if err != nil {
		t.Fatalf("calibrateLocal: %v", err)
	}
	if beeps != 1 {
		t.Errorf("countdown cue fired %d times, want 1", beeps)
	}

	got := out.String()
	for _, want := range []string{"Starting in 2 seconds", "2...", "1...", "Move the pen"} {
		if !strings.Contains(got, want) {
			t.Errorf("progress output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "0...") {
		t.Errorf("progress output should not count to zero:\n%s", got)
	}

	out.Reset()
	printResult(&out, res)
	got = out.String()
	for _, want := range []string{
		"Top-left:     16.67 mm, 33.33 mm",
		"Bottom-right: 50.00 mm, 74.07 mm",
		"Based on 4 pointer samples",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("result output missing %q:\n%s", want, got)
		}
	}
}

func TestCalibrateLocalRejectsBadConfig(t *testing.T) {
	cfg := calibration.NewConfig(area.ScreenProfile{WidthPx: 0, HeightPx: 1080}, area.TabletProfile{WidthMm: 1, HeightMm: 1})

	var out bytes.Buffer
	_, err := calibrateLocal(&out, cfg, fixedSampler{{X: 1, Y: 1}}, cue.Nop)
	if !area.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected progress output %q", out.String())
	}
}
