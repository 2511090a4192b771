package calibration

import (
	"reflect"
	"testing"
	"time"
)

// fakeTicks returns a tick source that has n ticks ready and counts stops.
func fakeTicks(n int) (tickSource, *int, *chan time.Time) {
	stops := 0
	var ch chan time.Time
	src := func(time.Duration) (<-chan time.Time, func()) {
		ch = make(chan time.Time, n)
		for i := 0; i < n; i++ {
			ch <- time.Time{}
		}
		return ch, func() { stops++ }
	}
	return src, &stops, &ch
}

func TestCountdownTenTicks(t *testing.T) {
	src, stops, ch := fakeTicks(10)
	c := &Countdown{Ticks: 10, Interval: time.Second, newTicker: src}

	var seen []int
	c.Run(func(remaining int) { seen = append(seen, remaining) })

	want := []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("counter sequence = %v, want %v", seen, want)
	}
	if len(*ch) != 0 {
		t.Errorf("expected all 10 ticks consumed, %d left", len(*ch))
	}
	if *stops != 1 {
		t.Errorf("ticker stopped %d times, want 1", *stops)
	}
}

func TestCountdownZeroTicks(t *testing.T) {
	c := &Countdown{Ticks: 0, Interval: time.Second, newTicker: func(time.Duration) (<-chan time.Time, func()) {
		t.Fatalf("ticker must not be created for an empty countdown")
		return nil, nil
	}}

	var seen []int
	c.Run(func(remaining int) { seen = append(seen, remaining) })
	if !reflect.DeepEqual(seen, []int{0}) {
		t.Fatalf("counter sequence = %v, want [0]", seen)
	}
}

func TestCountdownRealTicker(t *testing.T) {
	c := NewCountdown(3, time.Millisecond)
	last := -1
	start := time.Now()
	c.Run(func(remaining int) { last = remaining })
	if last != 0 {
		t.Fatalf("countdown ended at %d, want 0", last)
	}
	if time.Since(start) < 3*time.Millisecond {
		t.Errorf("countdown finished too early: %v", time.Since(start))
	}
}
