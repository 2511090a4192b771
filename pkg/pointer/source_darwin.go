//go:build darwin

package pointer

import (
	"math"

	"github.com/progrium/darwinkit/macos/appkit"
)

type appKitSource struct{}

// Default returns the AppKit backed source. AppKit reports the mouse in
// points with a bottom-left origin, so Y is flipped against the main screen.
func Default() (Source, error) {
	return appKitSource{}, nil
}

func (appKitSource) CurrentPointerPosition() (int, int, error) {
	loc := appkit.Event_MouseLocation()
	height := appkit.Screen_MainScreen().Frame().Size.Height

	x := int(math.Round(float64(loc.X)))
	y := int(math.Round(float64(height - loc.Y)))
	return x, y, nil
}
