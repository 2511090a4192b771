package calibration

import "time"

// tickSource returns a tick channel and its stop function. It is a seam over
// time.NewTicker.
type tickSource func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Countdown counts from Ticks down to zero, one tick per Interval.
type Countdown struct {
	Ticks    int
	Interval time.Duration

	newTicker tickSource
}

// NewCountdown returns a Countdown driven by a real ticker.
func NewCountdown(ticks int, interval time.Duration) *Countdown {
	return &Countdown{Ticks: ticks, Interval: interval, newTicker: realTicker}
}

// Run reports the starting counter, then the counter after each tick, and
// returns once it reads zero. The ticker is stopped after the last tick.
func (c *Countdown) Run(onTick func(remaining int)) {
	if onTick == nil {
		onTick = func(int) {}
	}

	remaining := c.Ticks
	onTick(remaining)
	if remaining <= 0 {
		return
	}

	newTicker := c.newTicker
	if newTicker == nil {
		newTicker = realTicker
	}
	ticks, stop := newTicker(c.Interval)
	defer stop()

	for remaining > 0 {
		<-ticks
		remaining--
		onTick(remaining)
	}
}
