package gui

import (
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/events"
	"github.com/penarea/penarea/pkg/preset"
)

type form struct {
	window fyne.Window
	conf   config.Config
	ctrl   *calibration.Controller

	screenWidth  *widget.Entry
	screenHeight *widget.Entry
	tablet       *widget.Select
	tabletWidth  *widget.Entry
	tabletHeight *widget.Entry
	start        *widget.Button
	countdown    *canvas.Text
}

func newForm(w fyne.Window, conf config.Config, ctrl *calibration.Controller) *form {
	f := &form{
		window: w,
		conf:   conf,
		ctrl:   ctrl,
	}

	f.screenWidth = widget.NewEntry()
	f.screenWidth.SetText(strconv.Itoa(conf.ScreenWidth()))
	f.screenHeight = widget.NewEntry()
	f.screenHeight.SetText(strconv.Itoa(conf.ScreenHeight()))

	f.tabletWidth = widget.NewEntry()
	f.tabletWidth.Disable()
	f.tabletHeight = widget.NewEntry()
	f.tabletHeight.Disable()

	f.tablet = widget.NewSelect(preset.Names(), f.onTabletChanged)
	f.tablet.PlaceHolder = tabletPlaceholder
	f.tablet.SetSelected(conf.Tablet())
	if preset.IsCustom(conf.Tablet()) {
		if cw, ch, ok := conf.CustomTabletSize(); ok {
			f.tabletWidth.SetText(formatMm(cw))
			f.tabletHeight.SetText(formatMm(ch))
		}
	}

	f.start = widget.NewButton("Start Calibration", f.onStart)

	f.countdown = canvas.NewText("", foreground())
	f.countdown.TextSize = 24
	f.countdown.Alignment = fyne.TextAlignCenter

	return f
}

func foreground() color.Color {
	return theme.Color(theme.ColorNameForeground)
}

func (f *form) content() fyne.CanvasObject {
	fields := container.New(layout.NewFormLayout(),
		widget.NewLabelWithStyle("Screen Size (px):", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), layout.NewSpacer(),
		widget.NewLabel("Width:"), f.screenWidth,
		widget.NewLabel("Height:"), f.screenHeight,
		widget.NewLabelWithStyle("Tablet Size:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), f.tablet,
		widget.NewLabel("Width (mm):"), f.tabletWidth,
		widget.NewLabel("Height (mm):"), f.tabletHeight,
	)

	return container.NewVBox(fields, f.start, f.countdown)
}

func (f *form) mainMenu() *fyne.MainMenu {
	options := fyne.NewMenu("Options",
		fyne.NewMenuItem("How to Use", func() {
			dialog.ShowInformation("How to Use", howToUse, f.window)
		}),
	)
	return fyne.NewMainMenu(options)
}

// onTabletChanged fills and locks the size entries for presets and clears
// and unlocks them for a custom tablet.
func (f *form) onTabletChanged(name string) {
	if preset.IsCustom(name) {
		f.tabletWidth.Enable()
		f.tabletHeight.Enable()
		f.tabletWidth.SetText("")
		f.tabletHeight.SetText("")
		return
	}

	p, ok := preset.Lookup(name)
	if !ok {
		return
	}
	f.tabletWidth.SetText(formatMm(p.WidthMm))
	f.tabletHeight.SetText(formatMm(p.HeightMm))
	f.tabletWidth.Disable()
	f.tabletHeight.Disable()
}

func (f *form) input() formInput {
	return formInput{
		ScreenWidth:  f.screenWidth.Text,
		ScreenHeight: f.screenHeight.Text,
		Tablet:       f.tablet.Selected,
		TabletWidth:  f.tabletWidth.Text,
		TabletHeight: f.tabletHeight.Text,
	}
}

func (f *form) onStart() {
	cfg, err := parseForm(f.input())
	if err != nil {
		dialog.ShowError(err, f.window)
		return
	}
	cfg.CountdownTicks = f.conf.CountdownTicks()
	cfg.SampleDuration = time.Duration(f.conf.SampleDurationSeconds()) * time.Second
	cfg.SampleInterval = time.Duration(f.conf.SampleIntervalMillis()) * time.Millisecond

	f.remember(cfg)

	f.start.Disable()
	f.setCountdown(strconv.Itoa(cfg.CountdownTicks))

	err = f.ctrl.Start(cfg, func(res *area.Result, err error) {
		fyne.Do(func() {
			f.start.Enable()
			f.setCountdown("")
			if err != nil {
				dialog.ShowError(err, f.window)
				return
			}
			dialog.ShowInformation("Results", res.Summary(), f.window)
		})
	})
	if err != nil {
		f.start.Enable()
		f.setCountdown("")
		dialog.ShowError(err, f.window)
	}
}

// remember stores the accepted inputs so the next launch starts from them.
func (f *form) remember(cfg *calibration.Config) {
	f.conf.SetScreenSize(cfg.Screen.WidthPx, cfg.Screen.HeightPx)
	f.conf.SetTablet(cfg.Tablet.Name)
	if preset.IsCustom(cfg.Tablet.Name) {
		f.conf.SetCustomTabletSize(cfg.Tablet.WidthMm, cfg.Tablet.HeightMm)
	}
	if err := f.conf.Save(); err != nil {
		logrus.WithError(err).Warn("failed to save form inputs")
	}
}

func (f *form) setCountdown(text string) {
	f.countdown.Text = text
	f.countdown.Refresh()
}

// watch mirrors controller events onto the countdown label until ch is
// closed.
func (f *form) watch(ch <-chan events.Event) {
	for ev := range ch {
		switch ev.Name {
		case events.CalibrationTick:
			payload, err := events.DecodeAs[events.CalibrationTickEvent](ev)
			if err != nil {
				logrus.WithError(err).Error("failed to decode calibration.tick event")
				continue
			}
			text := countdownText(payload.Remaining)
			fyne.Do(func() { f.setCountdown(text) })
		case events.CalibrationPhase:
			payload, err := events.DecodeAs[events.CalibrationPhaseEvent](ev)
			if err != nil {
				logrus.WithError(err).Error("failed to decode calibration.phase event")
				continue
			}
			logrus.WithFields(logrus.Fields{
				"from": payload.From,
				"to":   payload.To,
			}).Debug("calibration phase changed")
			if calibration.Phase(payload.To) == calibration.PhaseSampling {
				fyne.Do(func() { f.setCountdown(samplingText) })
			}
		}
	}
}
