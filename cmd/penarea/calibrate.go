package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/cue"
	"github.com/penarea/penarea/pkg/events"
	"github.com/penarea/penarea/pkg/pointer"
	"github.com/penarea/penarea/pkg/sampler"
)

func NewCalibrateCommand() *cobra.Command {
	var (
		profiles  profileFlags
		countdown int
		duration  time.Duration
		interval  time.Duration
		remote    bool
	)

	cmd := &cobra.Command{
		Use:     "calibrate",
		Aliases: []string{"calibration", "cali"},
		Short:   "Measure the tablet area you use",
		GroupID: gCalibration,
		Long: `Measure the tablet area you use.

After a countdown (a sound marks its end) penarea samples the pointer
position while you play, then prints the smallest tablet area that covers
every position it saw. Switch to your game during the countdown and play a
map with the Auto mod on.

Screen and tablet default to the values in the config file; see 'penarea config'.
With --remote the running daemon performs the calibration using its own
config, after the screen and tablet flags, if given, have been applied to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote {
				return calibrateRemote(cmd, &profiles)
			}

			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			screen, tablet, err := profiles.resolve(cmd, conf)
			if err != nil {
				return err
			}

			cfg := calibration.NewConfig(screen, tablet)
			cfg.CountdownTicks = conf.CountdownTicks()
			cfg.SampleDuration = time.Duration(conf.SampleDurationSeconds()) * time.Second
			cfg.SampleInterval = time.Duration(conf.SampleIntervalMillis()) * time.Millisecond
			f := cmd.Flags()
			if f.Changed("countdown") {
				cfg.CountdownTicks = countdown
			}
			if f.Changed("duration") {
				cfg.SampleDuration = duration
			}
			if f.Changed("interval") {
				cfg.SampleInterval = interval
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			src, err := pointer.Default()
			if err != nil {
				return err
			}
			beep := cue.Default()

			res, err := calibrateLocal(cmd.OutOrStdout(), cfg, sampler.New(src, beep), beep)
			if err != nil {
				return fmt.Errorf("calibration failed: %w", err)
			}

			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	profiles.register(cmd)

	f := cmd.Flags()
	f.IntVar(&countdown, "countdown", calibration.DefaultCountdownTicks, "countdown length in seconds before sampling starts")
	f.DurationVar(&duration, "duration", calibration.DefaultSampleDuration, "how long to sample the pointer")
	f.DurationVar(&interval, "interval", calibration.DefaultSampleInterval, "time between two pointer samples")
	f.BoolVar(&remote, "remote", false, "run the calibration in the penarea daemon")

	return cmd
}

// calibrateLocal runs one calibration in this process and prints progress
// to w while it runs.
func calibrateLocal(w io.Writer, cfg *calibration.Config, s calibration.Sampler, beep cue.Cue) (*area.Result, error) {
	hub := events.NewEventHub()
	ctrl := calibration.NewController(s, beep, hub)

	ch := hub.Subscribe()
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for ev := range ch {
			printEvent(w, ev)
		}
	}()

	res, err := ctrl.Run(cfg)
	hub.Unsubscribe(ch)
	<-printed

	return res, err
}

func calibrateRemote(cmd *cobra.Command, profiles *profileFlags) error {
	f := cmd.Flags()
	for _, name := range []string{"countdown", "duration", "interval"} {
		if f.Changed(name) {
			logrus.Warnf("--%s is ignored with --remote; the daemon uses its config file", name)
		}
	}

	if f.Changed("screen-width") || f.Changed("screen-height") || f.Changed("tablet") ||
		f.Changed("tablet-width") || f.Changed("tablet-height") {
		remoteConf, err := apiClient.GetConfig()
		if err != nil {
			return err
		}
		screen, tablet, err := profiles.resolve(cmd, config.NewFileFromConfig(remoteConf, ""))
		if err != nil {
			return err
		}
		if _, err := apiClient.SetScreen(screen); err != nil {
			return fmt.Errorf("failed to set screen: %w", err)
		}
		if _, err := apiClient.SetTablet(tablet); err != nil {
			return fmt.Errorf("failed to set tablet: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	evCh := apiClient.SubscribeEvents(ctx)

	if _, err := apiClient.StartCalibration(); err != nil {
		return fmt.Errorf("failed to start calibration: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Calibration started in the daemon.")

	st, err := waitRemote(cmd.OutOrStdout(), evCh, time.Second)
	if err != nil {
		return err
	}
	if st.Message != "" {
		return fmt.Errorf("calibration failed: %s", st.Message)
	}
	if st.Result == nil {
		return errors.New("calibration finished without a result")
	}

	printResult(cmd.OutOrStdout(), st.Result)
	return nil
}

// waitRemote prints streamed events until the daemon reports Idle. The
// stream only drives output; completion is decided by polling, so a dropped
// or late subscription can not hang the command.
func waitRemote(w io.Writer, evCh <-chan events.Event, poll time.Duration) (*calibration.Status, error) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-evCh:
			if !ok {
				evCh = nil
				continue
			}
			printEvent(w, ev)
		case <-ticker.C:
			st, err := apiClient.GetCalibrationStatus()
			if err != nil {
				return nil, err
			}
			if st.Phase == calibration.PhaseIdle {
				return st, nil
			}
		}
	}
}
