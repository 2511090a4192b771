package area

import (
	"errors"
	"testing"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    BoundingBox
	}{
		{
			name:    "single sample",
			samples: []Sample{{X: 7, Y: 9}},
			want:    BoundingBox{MinX: 7, MinY: 9, MaxX: 7, MaxY: 9},
		},
		{
			name:    "reference samples",
			samples: []Sample{{100, 200}, {150, 180}, {300, 400}, {120, 190}},
			want:    BoundingBox{MinX: 100, MinY: 180, MaxX: 300, MaxY: 400},
		},
		{
			name:    "duplicates",
			samples: []Sample{{5, 5}, {5, 5}, {5, 5}},
			want:    BoundingBox{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5},
		},
		{
			name:    "negative coordinates from a secondary monitor",
			samples: []Sample{{-1920, 10}, {0, -5}, {100, 20}},
			want:    BoundingBox{MinX: -1920, MinY: -5, MaxX: 100, MaxY: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(tt.samples)
			if err != nil {
				t.Fatalf("Reduce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Reduce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReduceEmpty(t *testing.T) {
	for _, samples := range [][]Sample{nil, {}} {
		box, err := Reduce(samples)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got box=%v err=%v", box, err)
		}
	}
}

func TestReduceBoundsArePresentAndOrdered(t *testing.T) {
	samples := []Sample{{42, 7}, {-3, 88}, {17, 17}, {99, -12}, {0, 0}, {64, 31}}

	box, err := Reduce(samples)
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if box.MinX > box.MaxX || box.MinY > box.MaxY {
		t.Fatalf("box is not ordered: %v", box)
	}

	xs := map[int]bool{}
	ys := map[int]bool{}
	for _, s := range samples {
		xs[s.X] = true
		ys[s.Y] = true
	}
	for _, x := range []int{box.MinX, box.MaxX} {
		if !xs[x] {
			t.Errorf("x bound %d not present in input", x)
		}
	}
	for _, y := range []int{box.MinY, box.MaxY} {
		if !ys[y] {
			t.Errorf("y bound %d not present in input", y)
		}
	}

	// Order independence.
	reversed := make([]Sample, len(samples))
	for i, s := range samples {
		reversed[len(samples)-1-i] = s
	}
	box2, err := Reduce(reversed)
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if box2 != box {
		t.Errorf("Reduce() depends on order: %v != %v", box2, box)
	}
}
