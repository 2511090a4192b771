package main

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/client"
	"github.com/penarea/penarea/pkg/gui"
	"github.com/penarea/penarea/pkg/pointer"
)

var (
	logLevel       = "info"
	unixSocketPath = filepath.Join(os.TempDir(), "penarea.sock")
	configPath     = defaultConfigPath()
)

var (
	gCalibration  = "Calibration:"
	gConfig       = "Configuration:"
	commandGroups = []string{
		gCalibration,
		gConfig,
	}
)

var apiClient *client.Client

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "penarea.json"
	}
	return filepath.Join(dir, "penarea", "config.json")
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: penarea daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'penarea daemon', or run the command without '--remote'.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Restart the daemon with '--always-allow-non-root-access' to grant permissions to your user")
	case errors.Is(err, client.ErrConflict), errors.Is(err, calibration.ErrCalibrationInProgress):
		fmt.Fprintln(os.Stderr, "\nA calibration is already running. Wait for it to finish and try again.")
	case errors.Is(err, pointer.ErrUnsupported):
		fmt.Fprintln(os.Stderr, "\nReading the pointer position is only supported on macOS and Windows.")
	case area.IsInvalidInput(err), errors.Is(err, area.ErrInvalidScreenProfile):
		fmt.Fprintln(os.Stderr, "\nPlease enter valid values.")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "penarea",
		Short: "penarea finds the part of your drawing tablet you actually use",
		Long: `penarea finds the part of your drawing tablet you actually use.

It watches the pointer while you play, takes the bounding box of every
position it saw and converts it to millimeters on your tablet, so you can
set a tighter tablet area in your driver.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			return nil
		},
	}

	if os.Getenv("PENAREA_RUN_GUI") != "" || path.Base(os.Args[0]) == "penarea-gui" {
		cmd.RunE = func(_ *cobra.Command, _ []string) error {
			return gui.Run(configPath)
		}
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "penarea daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewCalibrateCommand(),
		NewStatusCommand(),
		NewConvertCommand(),
		NewPresetsCommand(),
		NewConfigCommand(),
		gui.NewGUICommand(&configPath, gCalibration),
	)

	return cmd
}
