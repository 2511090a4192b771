package sampler

import (
	"errors"
	"testing"
	"time"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/cue"
	"github.com/penarea/penarea/pkg/pointer"
)

// fakeClock advances only when slept on.
type fakeClock struct {
	t      time.Time
	sleeps int
}

func (c *fakeClock) inject(s *Sampler) {
	s.now = func() time.Time { return c.t }
	s.sleep = func(d time.Duration) {
		c.sleeps++
		c.t = c.t.Add(d)
	}
}

func TestSample(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		interval time.Duration
		want     int
	}{
		{"ten intervals", time.Second, 100 * time.Millisecond, 10},
		{"interval longer than window", 10 * time.Millisecond, time.Second, 1},
		{"uneven split", 250 * time.Millisecond, 100 * time.Millisecond, 3},
		{"reference cadence", 50 * time.Second, 10 * time.Millisecond, 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := pointer.NewReplay(area.Sample{X: 1, Y: 2}, area.Sample{X: 3, Y: 4})
			beeps := 0
			s := New(src, cue.Func(func() { beeps++ }))
			clock := &fakeClock{t: time.Unix(0, 0)}
			clock.inject(s)

			samples, err := s.Sample(tt.duration, tt.interval)
			if err != nil {
				t.Fatalf("Sample() error = %v", err)
			}
			if len(samples) != tt.want {
				t.Errorf("got %d samples, want %d", len(samples), tt.want)
			}
			if beeps != 1 {
				t.Errorf("cue fired %d times, want exactly 1", beeps)
			}
			if samples[0] != (area.Sample{X: 1, Y: 2}) {
				t.Errorf("first sample = %v, want capture order preserved", samples[0])
			}
			if len(samples) > 1 && samples[1] != (area.Sample{X: 3, Y: 4}) {
				t.Errorf("second sample = %v, want capture order preserved", samples[1])
			}
		})
	}
}

func TestSampleCueFiresBeforeReturn(t *testing.T) {
	src := pointer.NewReplay(area.Sample{X: 5, Y: 5})
	var readsAtCue int
	s := New(src, cue.Func(func() { readsAtCue = src.Reads() }))
	(&fakeClock{t: time.Unix(0, 0)}).inject(s)

	samples, err := s.Sample(time.Second, 250*time.Millisecond)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if readsAtCue != len(samples) {
		t.Fatalf("cue fired after %d reads, want %d (after the last poll)", readsAtCue, len(samples))
	}
}

func TestSampleInvalidInput(t *testing.T) {
	s := New(pointer.NewReplay(), nil)
	(&fakeClock{}).inject(s)

	for _, c := range [][2]time.Duration{{0, time.Millisecond}, {time.Second, 0}, {-time.Second, time.Millisecond}} {
		if _, err := s.Sample(c[0], c[1]); !area.IsInvalidInput(err) {
			t.Errorf("Sample(%v, %v): expected InvalidInputError, got %v", c[0], c[1], err)
		}
	}
}

func TestSampleSourceError(t *testing.T) {
	boom := errors.New("boom")
	beeps := 0
	s := New(pointer.Func(func() (int, int, error) { return 0, 0, boom }), cue.Func(func() { beeps++ }))
	(&fakeClock{t: time.Unix(0, 0)}).inject(s)

	samples, err := s.Sample(time.Second, 10*time.Millisecond)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if samples != nil {
		t.Errorf("expected no partial samples, got %d", len(samples))
	}
	if beeps != 0 {
		t.Errorf("cue must not fire on failure, fired %d times", beeps)
	}
}
