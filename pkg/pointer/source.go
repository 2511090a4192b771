// Package pointer provides the current pointer position capability that the
// sampler polls. Platform implementations live in build-tagged files;
// Replay is a synthetic source for tests and dry runs.
package pointer

import (
	"errors"
	"sync"

	"github.com/penarea/penarea/pkg/area"
)

// ErrUnsupported is returned by Default on platforms without a pointer
// backend.
var ErrUnsupported = errors.New("reading the pointer position is not supported on this platform")

// Source reports where the system pointer currently is, in screen pixels
// with a top-left origin.
type Source interface {
	CurrentPointerPosition() (x, y int, err error)
}

// Func adapts a plain function to Source.
type Func func() (x, y int, err error)

func (f Func) CurrentPointerPosition() (int, int, error) { return f() }

// Replay cycles through a fixed list of positions. It is safe for
// concurrent use.
type Replay struct {
	mu     sync.Mutex
	points []area.Sample
	next   int
}

// NewReplay returns a Replay over points. An empty list always reports the
// origin.
func NewReplay(points ...area.Sample) *Replay {
	return &Replay{points: points}
}

func (r *Replay) CurrentPointerPosition() (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.points) == 0 {
		return 0, 0, nil
	}
	p := r.points[r.next%len(r.points)]
	r.next++
	return p.X, p.Y, nil
}

// Reads returns how many positions have been handed out so far.
func (r *Replay) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}
