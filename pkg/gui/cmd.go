// Package gui is the desktop form for running a calibration without a
// terminal.
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/cue"
	"github.com/penarea/penarea/pkg/events"
	"github.com/penarea/penarea/pkg/pointer"
	"github.com/penarea/penarea/pkg/sampler"
	"github.com/penarea/penarea/pkg/version"
)

const appID = "io.github.penarea"

// NewGUICommand reads configPath when the command runs, so it sees the
// value of the --config flag.
func NewGUICommand(configPath *string, groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gui",
		Short:   "Open the calibration window",
		GroupID: groupID,
		Long: `Open the calibration window.

The window remembers the screen and tablet you used last time in the config file.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return Run(*configPath)
		},
	}

	return cmd
}

// Run shows the calibration window and blocks until it is closed.
func Run(configPath string) error {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return err
	}

	src, err := pointer.Default()
	if err != nil {
		return err
	}
	beep := cue.Default()
	hub := events.NewEventHub()
	ctrl := calibration.NewController(sampler.New(src, beep), beep, hub)

	logrus.WithField("version", version.Version).WithField("gitCommit", version.GitCommit).Info("penarea gui")

	a := app.NewWithID(appID)
	w := a.NewWindow(windowTitle)

	f := newForm(w, conf, ctrl)
	w.SetMainMenu(f.mainMenu())
	w.SetContent(f.content())
	w.Resize(fyne.NewSize(360, 0))

	ch := hub.Subscribe()
	go f.watch(ch)
	w.SetOnClosed(func() {
		hub.Unsubscribe(ch)
	})

	w.ShowAndRun()
	return nil
}
