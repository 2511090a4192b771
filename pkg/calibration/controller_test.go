package calibration

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/cue"
	"github.com/penarea/penarea/pkg/events"
)

// fakeSampler returns canned samples and records how it was called.
type fakeSampler struct {
	samples []area.Sample
	err     error
	calls   int
	onCall  func()
}

func (f *fakeSampler) Sample(_, _ time.Duration) ([]area.Sample, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	return f.samples, f.err
}

var referenceSamples = []area.Sample{{X: 100, Y: 200}, {X: 150, Y: 180}, {X: 300, Y: 400}, {X: 120, Y: 190}}

func newTestController(s Sampler, ticks int, hub *events.EventHub) (*Controller, *int) {
	beeps := 0
	c := NewController(s, cue.Func(func() { beeps++ }), hub)
	c.newTicker, _, _ = fakeTicks(ticks)
	return c, &beeps
}

func testConfig(ticks int) *Config {
	cfg := DefaultConfig()
	cfg.CountdownTicks = ticks
	return cfg
}

func TestControllerRunReferenceExample(t *testing.T) {
	s := &fakeSampler{samples: referenceSamples}
	c, beeps := newTestController(s, 10, nil)

	// The countdown must have reached zero by the time sampling starts.
	s.onCall = func() {
		if c.state.Phase != PhaseSampling {
			t.Errorf("sampling started in phase %s", c.state.Phase)
		}
		if c.state.Remaining != 0 {
			t.Errorf("sampling started with counter at %d", c.state.Remaining)
		}
	}

	res, err := c.Run(testConfig(10))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s.calls != 1 {
		t.Fatalf("sampler called %d times, want exactly 1", s.calls)
	}
	if *beeps != 1 {
		t.Errorf("countdown cue fired %d times, want 1", *beeps)
	}

	if want := (area.BoundingBox{MinX: 100, MinY: 180, MaxX: 300, MaxY: 400}); res.Box != want {
		t.Errorf("box = %v, want %v", res.Box, want)
	}
	if math.Abs(res.TopLeft.X-16.67) > 0.005 || math.Abs(res.TopLeft.Y-33.33) > 0.005 {
		t.Errorf("top-left = %v, want ~(16.67, 33.33)", res.TopLeft)
	}
	if math.Abs(res.BottomRight.X-50.00) > 0.005 || math.Abs(res.BottomRight.Y-74.07) > 0.005 {
		t.Errorf("bottom-right = %v, want ~(50.00, 74.07)", res.BottomRight)
	}
	if res.SampleCount != len(referenceSamples) {
		t.Errorf("sample count = %d, want %d", res.SampleCount, len(referenceSamples))
	}

	st := c.Status()
	if st.Phase != PhaseIdle || !st.CanStart {
		t.Errorf("expected idle after run, got %+v", st)
	}
	if st.Result == nil || st.Result.Box != res.Box {
		t.Errorf("expected last result in status, got %+v", st.Result)
	}
}

func TestControllerPhaseEvents(t *testing.T) {
	hub := events.NewEventHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	c, _ := newTestController(&fakeSampler{samples: referenceSamples}, 2, hub)
	if _, err := c.Run(testConfig(2)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var phases [][2]string
	ticks := 0
	results := 0
	for len(ch) > 0 {
		ev := <-ch
		switch ev.Name {
		case events.CalibrationPhase:
			p, err := events.DecodeAs[events.CalibrationPhaseEvent](ev)
			if err != nil {
				t.Fatalf("decode phase: %v", err)
			}
			phases = append(phases, [2]string{p.From, p.To})
		case events.CalibrationTick:
			ticks++
		case events.CalibrationResult:
			results++
		}
	}

	want := [][2]string{
		{"Idle", "Countdown"},
		{"Countdown", "Sampling"},
		{"Sampling", "Reducing"},
		{"Reducing", "Converting"},
		{"Converting", "Reporting"},
		{"Reporting", "Idle"},
	}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, phases[i], want[i])
		}
	}
	if ticks != 3 {
		t.Errorf("got %d tick events, want 3 (start + 2 ticks)", ticks)
	}
	if results != 1 {
		t.Errorf("got %d result events, want 1", results)
	}
}

func TestControllerFailures(t *testing.T) {
	boom := errors.New("pointer unplugged")

	tests := []struct {
		name        string
		sampler     *fakeSampler
		cfg         func() *Config
		wantErr     func(error) bool
		wantSampled int
	}{
		{
			name:    "invalid screen",
			sampler: &fakeSampler{samples: referenceSamples},
			cfg: func() *Config {
				cfg := testConfig(0)
				cfg.Screen.WidthPx = 0
				return cfg
			},
			wantErr:     area.IsInvalidInput,
			wantSampled: 0,
		},
		{
			name:    "invalid tablet",
			sampler: &fakeSampler{samples: referenceSamples},
			cfg: func() *Config {
				cfg := testConfig(0)
				cfg.Tablet = area.TabletProfile{Name: "Custom"}
				return cfg
			},
			wantErr:     area.IsInvalidInput,
			wantSampled: 0,
		},
		{
			name:    "nil config",
			sampler: &fakeSampler{samples: referenceSamples},
			cfg:     func() *Config { return nil },
			wantErr: area.IsInvalidInput,
		},
		{
			name:        "sampler failure",
			sampler:     &fakeSampler{err: boom},
			cfg:         func() *Config { return testConfig(0) },
			wantErr:     func(err error) bool { return errors.Is(err, boom) },
			wantSampled: 1,
		},
		{
			name:        "no samples",
			sampler:     &fakeSampler{},
			cfg:         func() *Config { return testConfig(0) },
			wantErr:     func(err error) bool { return errors.Is(err, area.ErrInsufficientData) },
			wantSampled: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(tt.sampler, 0, nil)
			res, err := c.Run(tt.cfg())
			if !tt.wantErr(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if res != nil {
				t.Errorf("expected no partial result, got %+v", res)
			}
			if tt.sampler.calls != tt.wantSampled {
				t.Errorf("sampler called %d times, want %d", tt.sampler.calls, tt.wantSampled)
			}
			st := c.Status()
			if st.Phase != PhaseIdle || st.Message == "" || st.Result != nil {
				t.Errorf("expected idle with error and no result, got %+v", st)
			}
		})
	}
}

func TestControllerRecoversAfterFailure(t *testing.T) {
	s := &fakeSampler{err: errors.New("boom")}
	c, _ := newTestController(s, 0, nil)
	if _, err := c.Run(testConfig(0)); err == nil {
		t.Fatalf("expected first run to fail")
	}

	s.err = nil
	s.samples = referenceSamples
	if _, err := c.Run(testConfig(0)); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if msg := c.Status().Message; msg != "" {
		t.Errorf("stale error after successful run: %q", msg)
	}
}

func TestControllerInProgress(t *testing.T) {
	c, _ := newTestController(&fakeSampler{samples: referenceSamples}, 0, nil)
	c.state.Phase = PhaseSampling

	if _, err := c.Run(testConfig(0)); !errors.Is(err, ErrCalibrationInProgress) {
		t.Fatalf("expected ErrCalibrationInProgress, got %v", err)
	}
	if !c.Busy() {
		t.Errorf("controller should still be busy")
	}
}

func TestControllerStart(t *testing.T) {
	block := make(chan struct{})
	s := &fakeSampler{samples: referenceSamples}
	s.onCall = func() { <-block }
	c, _ := newTestController(s, 0, nil)

	done := make(chan error, 1)
	if err := c.Start(testConfig(0), func(_ *area.Result, err error) { done <- err }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// The controller is claimed before Start returns.
	if err := c.Start(testConfig(0), nil); !errors.Is(err, ErrCalibrationInProgress) {
		t.Fatalf("expected ErrCalibrationInProgress, got %v", err)
	}

	close(block)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("background run failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("background run did not finish")
	}
	if c.Busy() {
		t.Errorf("controller should be idle after the run")
	}
}

func TestControllerStartRejectsInvalidConfig(t *testing.T) {
	c, _ := newTestController(&fakeSampler{}, 0, nil)
	cfg := testConfig(0)
	cfg.SampleInterval = 0
	if err := c.Start(cfg, nil); !area.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if c.Busy() {
		t.Errorf("controller must stay idle after a rejected start")
	}
}
