package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/events"
	"github.com/penarea/penarea/pkg/preset"
)

func parseIntArg(arg string, valueName string) (int, error) {
	value, err := strconv.Atoi(arg)
	if err != nil {
		return 0, area.NewInvalidInputError(valueName, arg, "not a whole number")
	}

	return value, nil
}

func parseFloatArg(arg string, valueName string) (float64, error) {
	value, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, area.NewInvalidInputError(valueName, arg, "not a number")
	}

	return value, nil
}

// profileFlags are the screen and tablet overrides shared by calibrate and
// convert. Unset flags fall back to the config file.
type profileFlags struct {
	screenWidth  int
	screenHeight int
	tablet       string
	tabletWidth  float64
	tabletHeight float64
}

func (p *profileFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&p.screenWidth, "screen-width", 0, "screen width in pixels (default from config)")
	f.IntVar(&p.screenHeight, "screen-height", 0, "screen height in pixels (default from config)")
	f.StringVar(&p.tablet, "tablet", "", "tablet preset name, or \"Custom\" (default from config)")
	f.Float64Var(&p.tabletWidth, "tablet-width", 0, "custom tablet width in mm")
	f.Float64Var(&p.tabletHeight, "tablet-height", 0, "custom tablet height in mm")
}

func (p *profileFlags) resolve(cmd *cobra.Command, conf config.Config) (area.ScreenProfile, area.TabletProfile, error) {
	f := cmd.Flags()

	screen := area.ScreenProfile{WidthPx: conf.ScreenWidth(), HeightPx: conf.ScreenHeight()}
	if f.Changed("screen-width") {
		screen.WidthPx = p.screenWidth
	}
	if f.Changed("screen-height") {
		screen.HeightPx = p.screenHeight
	}
	if err := screen.Validate(); err != nil {
		return screen, area.TabletProfile{}, err
	}

	name := conf.Tablet()
	if f.Changed("tablet") {
		name = p.tablet
	}
	if !preset.IsCustom(name) {
		tablet, ok := preset.Lookup(name)
		if !ok {
			return screen, tablet, fmt.Errorf("%w: %q (see 'penarea presets')", preset.ErrUnknownPreset, name)
		}
		return screen, tablet, nil
	}

	w, h, _ := conf.CustomTabletSize()
	if f.Changed("tablet-width") {
		w = p.tabletWidth
	}
	if f.Changed("tablet-height") {
		h = p.tabletHeight
	}
	tablet := area.TabletProfile{Name: preset.Custom, WidthMm: w, HeightMm: h}
	return screen, tablet, tablet.Validate()
}

// printEvent renders controller progress as it happens.
func printEvent(w io.Writer, ev events.Event) {
	switch ev.Name {
	case events.CalibrationTick:
		payload, err := events.DecodeAs[events.CalibrationTickEvent](ev)
		if err != nil {
			logrus.WithError(err).Error("failed to decode calibration.tick event")
			return
		}
		if payload.Remaining > 0 {
			fmt.Fprintf(w, "%d...\n", payload.Remaining)
		}
	case events.CalibrationPhase:
		payload, err := events.DecodeAs[events.CalibrationPhaseEvent](ev)
		if err != nil {
			logrus.WithError(err).Error("failed to decode calibration.phase event")
			return
		}
		if payload.Message != "" && calibration.Phase(payload.To) != calibration.PhaseIdle {
			fmt.Fprintln(w, bold("%s", payload.Message))
		}
	}
}

func printResult(w io.Writer, res *area.Result) {
	fmt.Fprintln(w, bold("Detected tablet area in millimeters (min-max coordinates):"))
	fmt.Fprintf(w, "  Top-left:     %s\n", bold("%.2f mm, %.2f mm", res.TopLeft.X, res.TopLeft.Y))
	fmt.Fprintf(w, "  Bottom-right: %s\n", bold("%.2f mm, %.2f mm", res.BottomRight.X, res.BottomRight.Y))
	fmt.Fprintf(w, "  Playfield:    %s\n", bold("%.2f x %.2f mm", res.PlayfieldWidthMm, res.PlayfieldHeightMm))
	fmt.Fprintln(w, bold("Areas:"))
	fmt.Fprintf(w, "  Tablet:    %.2f mm²\n", res.TabletAreaMm2)
	fmt.Fprintf(w, "  Playfield: %.2f mm²\n", res.PlayfieldAreaMm2)
	fmt.Fprintf(w, "  Unused:    %s\n", color.New(color.Bold, color.FgYellow).Sprintf("%.2f mm²", res.UnusedAreaMm2))
	if res.SampleCount > 0 {
		fmt.Fprintf(w, "Based on %d pointer samples, pixel box %s on a %dx%d screen, tablet %s.\n",
			res.SampleCount, res.Box, res.Screen.WidthPx, res.Screen.HeightPx, tabletLabel(res.Tablet))
	}
}

func tabletLabel(t area.TabletProfile) string {
	name := t.Name
	if name == "" {
		name = "tablet"
	}
	return fmt.Sprintf("%s (%g x %g mm)", name, t.WidthMm, t.HeightMm)
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
