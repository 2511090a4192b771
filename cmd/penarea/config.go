package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/preset"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or change the remembered screen, tablet and timings",
		GroupID: gConfig,
		Long: `Show or change the remembered screen, tablet and timings.

The values are stored in the file given by --config and are used by calibrate,
convert, the GUI and the daemon. A running daemon reloads the file on SIGHUP.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				conf, err := config.NewFile(configPath)
				if err != nil {
					return err
				}

				cmd.Println(bold("Config file:") + " " + configPath)
				cmd.Printf("  Screen: %s\n", bold("%dx%d px", conf.ScreenWidth(), conf.ScreenHeight()))
				tablet, err := config.TabletProfile(conf)
				if err != nil {
					cmd.Printf("  Tablet: %s (%v)\n", bold(conf.Tablet()), err)
				} else {
					cmd.Printf("  Tablet: %s\n", bold(tabletLabel(tablet)))
				}
				cmd.Printf("  Countdown: %s\n", bold("%ds", conf.CountdownTicks()))
				cmd.Printf("  Sampling: %s every %s\n", bold("%ds", conf.SampleDurationSeconds()), bold("%dms", conf.SampleIntervalMillis()))
				return nil
			},
		},
		newConfigSetCommand("screen <width> <height>", "Set the screen size in pixels", cobra.ExactArgs(2),
			func(conf config.Config, args []string) error {
				w, err := parseIntArg(args[0], "screen width")
				if err != nil {
					return err
				}
				h, err := parseIntArg(args[1], "screen height")
				if err != nil {
					return err
				}
				if err := (area.ScreenProfile{WidthPx: w, HeightPx: h}).Validate(); err != nil {
					return err
				}
				conf.SetScreenSize(w, h)
				logrus.Infof("screen size set to %dx%d", w, h)
				return nil
			}),
		newConfigSetCommand("tablet <name> [width height]", "Select a tablet preset, or Custom with its size in mm", cobra.RangeArgs(1, 3),
			func(conf config.Config, args []string) error {
				name := args[0]
				if !preset.IsCustom(name) {
					if len(args) > 1 {
						return fmt.Errorf("width and height are only accepted for %q", preset.Custom)
					}
					if _, ok := preset.Lookup(name); !ok {
						return fmt.Errorf("%w: %q (see 'penarea presets')", preset.ErrUnknownPreset, name)
					}
					conf.SetTablet(name)
					logrus.Infof("tablet set to %s", name)
					return nil
				}

				if len(args) != 3 {
					return area.NewInvalidInputError("tablet size", "", "required for a custom tablet")
				}
				tablet, err := preset.Resolve(name, args[1], args[2])
				if err != nil {
					return err
				}
				conf.SetTablet(name)
				conf.SetCustomTabletSize(tablet.WidthMm, tablet.HeightMm)
				logrus.Infof("tablet set to %s", tabletLabel(tablet))
				return nil
			}),
		newConfigSetCommand("countdown <seconds>", "Set the countdown before sampling", cobra.ExactArgs(1),
			func(conf config.Config, args []string) error {
				n, err := parseIntArg(args[0], "countdown")
				if err != nil {
					return err
				}
				if n < 0 {
					return area.NewInvalidInputError("countdown", args[0], "must not be negative")
				}
				conf.SetCountdownTicks(n)
				logrus.Infof("countdown set to %ds", n)
				return nil
			}),
		newConfigSetCommand("duration <seconds>", "Set how long the pointer is sampled", cobra.ExactArgs(1),
			func(conf config.Config, args []string) error {
				n, err := parsePositiveIntArg(args[0], "sample duration")
				if err != nil {
					return err
				}
				conf.SetSampleDurationSeconds(n)
				logrus.Infof("sample duration set to %ds", n)
				return nil
			}),
		newConfigSetCommand("interval <milliseconds>", "Set the time between two pointer samples", cobra.ExactArgs(1),
			func(conf config.Config, args []string) error {
				n, err := parsePositiveIntArg(args[0], "sample interval")
				if err != nil {
					return err
				}
				conf.SetSampleIntervalMillis(n)
				logrus.Infof("sample interval set to %dms", n)
				return nil
			}),
	)

	return cmd
}

// newConfigSetCommand loads the config file, applies set and saves it.
func newConfigSetCommand(use, short string, args cobra.PositionalArgs, set func(conf config.Config, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(_ *cobra.Command, args []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}
			if err := set(conf, args); err != nil {
				return err
			}
			if err := conf.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			logrus.WithField("path", configPath).Debug("config saved")
			return nil
		},
	}
}

func parsePositiveIntArg(arg string, valueName string) (int, error) {
	n, err := parseIntArg(arg, valueName)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, area.NewInvalidInputError(valueName, strconv.Itoa(n), "must be greater than 0")
	}
	return n, nil
}
