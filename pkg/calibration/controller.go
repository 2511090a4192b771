package calibration

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/cue"
	"github.com/penarea/penarea/pkg/events"
)

// Sampler collects pointer positions for one sampling window.
type Sampler interface {
	Sample(duration, interval time.Duration) ([]area.Sample, error)
}

// Controller runs calibrations one at a time:
//
//	Idle -> Countdown -> Sampling -> Reducing -> Converting -> Reporting -> Idle
//
// Any failure returns straight to Idle with the error recorded. There are
// no retries and no partial results.
type Controller struct {
	sampler Sampler
	cue     cue.Cue
	hub     *events.EventHub

	mu    sync.Mutex
	state State

	newTicker tickSource
}

// NewController wires a controller. countdownDone fires when the countdown
// reaches zero; hub may be nil.
func NewController(sampler Sampler, countdownDone cue.Cue, hub *events.EventHub) *Controller {
	if sampler == nil {
		panic("sampler cannot be nil")
	}
	if countdownDone == nil {
		countdownDone = cue.Nop
	}
	return &Controller{
		sampler:   sampler,
		cue:       countdownDone,
		hub:       hub,
		state:     State{Phase: PhaseIdle},
		newTicker: realTicker,
	}
}

// Run performs one complete calibration and returns its result. It blocks
// for the countdown plus the sampling window.
func (c *Controller) Run(cfg *Config) (*area.Result, error) {
	if err := c.begin(cfg); err != nil {
		return nil, err
	}
	return c.execute(cfg)
}

// Start validates cfg and claims the controller synchronously, then runs
// the calibration on a new goroutine. done, if not nil, receives the outcome.
func (c *Controller) Start(cfg *Config, done func(*area.Result, error)) error {
	if err := c.begin(cfg); err != nil {
		return err
	}
	go func() {
		res, err := c.execute(cfg)
		if done != nil {
			done(res, err)
		}
	}()
	return nil
}

func (c *Controller) execute(cfg *Config) (*area.Result, error) {
	log := logrus.WithFields(logrus.Fields{
		"screen":    fmt.Sprintf("%dx%d", cfg.Screen.WidthPx, cfg.Screen.HeightPx),
		"tablet":    cfg.Tablet.Name,
		"operation": "calibration",
	})

	countdown := &Countdown{Ticks: cfg.CountdownTicks, Interval: cfg.TickInterval, newTicker: c.newTicker}
	countdown.Run(c.tick)
	c.cue.Beep()

	c.transition(PhaseSampling, "Move the pen over the area you play on")
	samples, err := c.sampler.Sample(cfg.SampleDuration, cfg.SampleInterval)
	if err != nil {
		return nil, c.abort(err)
	}

	c.transition(PhaseReducing, "")
	box, err := area.Reduce(samples)
	if err != nil {
		return nil, c.abort(err)
	}
	log.WithFields(logrus.Fields{
		"samples": len(samples),
		"box":     box.String(),
	}).Debug("samples reduced")

	c.transition(PhaseConverting, "")
	res, err := area.Convert(box, cfg.Screen, cfg.Tablet)
	if err != nil {
		return nil, c.abort(err)
	}
	res.SampleCount = len(samples)

	c.report(&res)
	log.WithFields(logrus.Fields{
		"topLeft":     res.TopLeft.String(),
		"bottomRight": res.BottomRight.String(),
		"playfield":   fmt.Sprintf("%.2fx%.2f mm", res.PlayfieldWidthMm, res.PlayfieldHeightMm),
	}).Info("calibration finished")

	return &res, nil
}

// Status returns a snapshot suitable for display.
func (c *Controller) Status() *Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state
	status := &Status{
		Phase:     st.Phase,
		StartedAt: st.StartedAt,
		CanStart:  st.Phase == PhaseIdle,
		Message:   st.LastError,
		Result:    st.LastResult,
	}
	if st.Phase == PhaseCountdown {
		status.Remaining = st.Remaining
	}
	return status
}

// Busy reports whether a run is in progress.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase != PhaseIdle
}

func (c *Controller) begin(cfg *Config) error {
	c.mu.Lock()
	if c.state.Phase != PhaseIdle {
		c.mu.Unlock()
		return ErrCalibrationInProgress
	}

	if err := cfg.Validate(); err != nil {
		c.state.LastError = err.Error()
		c.mu.Unlock()

		logrus.WithError(err).Warn("calibration rejected")
		c.publishPhase(PhaseIdle, PhaseIdle, err.Error())
		return err
	}

	c.state = State{
		Phase:      PhaseCountdown,
		StartedAt:  time.Now(),
		Remaining:  cfg.CountdownTicks,
		LastResult: c.state.LastResult,
	}
	c.mu.Unlock()

	logrus.WithField("ticks", cfg.CountdownTicks).Info("calibration countdown started")
	c.publishPhase(PhaseIdle, PhaseCountdown, fmt.Sprintf("Starting in %d seconds", cfg.CountdownTicks))
	return nil
}

func (c *Controller) tick(remaining int) {
	c.mu.Lock()
	c.state.Remaining = remaining
	c.mu.Unlock()

	logrus.WithField("remaining", remaining).Debug("countdown tick")
	if c.hub != nil {
		c.hub.Publish(events.CalibrationTick, events.CalibrationTickEvent{
			Remaining: remaining,
			Ts:        time.Now().Unix(),
		})
	}
}

func (c *Controller) transition(to Phase, msg string) {
	c.mu.Lock()
	from := c.state.Phase
	c.state.Phase = to
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"from": from,
		"to":   to,
	}).Info("calibration phase changed")
	c.publishPhase(from, to, msg)
}

func (c *Controller) abort(err error) error {
	c.mu.Lock()
	from := c.state.Phase
	c.state.Phase = PhaseIdle
	c.state.Remaining = 0
	c.state.LastError = err.Error()
	c.mu.Unlock()

	logrus.WithError(err).WithField("phase", from).Error("calibration aborted")
	c.publishPhase(from, PhaseIdle, err.Error())
	return err
}

func (c *Controller) report(res *area.Result) {
	c.transition(PhaseReporting, "")

	if c.hub != nil {
		c.hub.Publish(events.CalibrationResult, events.CalibrationResultEvent{
			TopLeftX:         res.TopLeft.X,
			TopLeftY:         res.TopLeft.Y,
			BottomRightX:     res.BottomRight.X,
			BottomRightY:     res.BottomRight.Y,
			PlayfieldAreaMm2: res.PlayfieldAreaMm2,
			UnusedAreaMm2:    res.UnusedAreaMm2,
			Samples:          res.SampleCount,
			Ts:               time.Now().Unix(),
		})
	}

	c.mu.Lock()
	c.state.Phase = PhaseIdle
	c.state.LastError = ""
	c.state.LastResult = res
	c.mu.Unlock()

	c.publishPhase(PhaseReporting, PhaseIdle, "")
}

func (c *Controller) publishPhase(from, to Phase, msg string) {
	if c.hub == nil {
		return
	}
	c.hub.Publish(events.CalibrationPhase, events.CalibrationPhaseEvent{
		From:    string(from),
		To:      string(to),
		Message: msg,
		Ts:      time.Now().Unix(),
	})
	logrus.WithField("event", events.CalibrationPhase).Debug("new event")
}
