package pointer

import (
	"errors"
	"testing"

	"github.com/penarea/penarea/pkg/area"
)

func TestReplayCycles(t *testing.T) {
	r := NewReplay(area.Sample{X: 1, Y: 2}, area.Sample{X: 3, Y: 4})

	want := [][2]int{{1, 2}, {3, 4}, {1, 2}}
	for i, w := range want {
		x, y, err := r.CurrentPointerPosition()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if x != w[0] || y != w[1] {
			t.Errorf("read %d = (%d,%d), want (%d,%d)", i, x, y, w[0], w[1])
		}
	}
	if r.Reads() != 3 {
		t.Errorf("Reads() = %d, want 3", r.Reads())
	}
}

func TestReplayEmpty(t *testing.T) {
	x, y, err := NewReplay().CurrentPointerPosition()
	if err != nil || x != 0 || y != 0 {
		t.Fatalf("got (%d,%d,%v), want origin", x, y, err)
	}
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	var s Source = Func(func() (int, int, error) { return 0, 0, boom })
	if _, _, err := s.CurrentPointerPosition(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
