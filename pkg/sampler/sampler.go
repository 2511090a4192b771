// Package sampler polls the pointer at a fixed cadence for a fixed window.
package sampler

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/cue"
	"github.com/penarea/penarea/pkg/pointer"
)

const (
	// maxPrealloc caps the initial slice capacity for very long windows.
	maxPrealloc = 1 << 16
)

// Sampler records pointer positions. Sample blocks the calling goroutine
// for the whole window and can not be cancelled.
type Sampler struct {
	source pointer.Source
	cue    cue.Cue

	// clock seams, replaced in tests
	now   func() time.Time
	sleep func(time.Duration)
}

// New returns a Sampler reading from source and signalling completion with
// done. A nil done is silent.
func New(source pointer.Source, done cue.Cue) *Sampler {
	if source == nil {
		panic("pointer source cannot be nil")
	}
	if done == nil {
		done = cue.Nop
	}
	return &Sampler{
		source: source,
		cue:    done,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Sample polls immediately and then once per interval until duration has
// elapsed, returning the positions in capture order. The result is never
// empty on success. The completion cue fires exactly once before a
// successful return.
func (s *Sampler) Sample(duration, interval time.Duration) ([]area.Sample, error) {
	if duration <= 0 {
		return nil, area.NewInvalidInputError("sample duration", duration.String(), "must be positive")
	}
	if interval <= 0 {
		return nil, area.NewInvalidInputError("sample interval", interval.String(), "must be positive")
	}

	expected := int(duration/interval) + 1
	samples := make([]area.Sample, 0, min(expected, maxPrealloc))

	log := logrus.WithFields(logrus.Fields{
		"duration": duration,
		"interval": interval,
	})
	log.Debug("sampling started")

	start := s.now()
	for {
		x, y, err := s.source.CurrentPointerPosition()
		if err != nil {
			log.WithError(err).WithField("samples", len(samples)).Error("failed to read pointer position")
			return nil, fmt.Errorf("failed to read pointer position: %w", err)
		}
		samples = append(samples, area.Sample{X: x, Y: y})

		s.sleep(interval)
		if s.now().Sub(start) >= duration {
			break
		}
	}

	s.cue.Beep()

	log.WithField("samples", len(samples)).Info("sampling finished")
	return samples, nil
}
