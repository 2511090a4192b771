package area

import (
	"fmt"
	"math"
	"strconv"
)

// Sample is one polled pointer position in screen pixels.
type Sample struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BoundingBox is the minimal axis-aligned pixel rectangle containing a set
// of samples. MinX <= MaxX and MinY <= MaxY always hold for boxes returned
// by Reduce.
type BoundingBox struct {
	MinX int `json:"minX"`
	MinY int `json:"minY"`
	MaxX int `json:"maxX"`
	MaxY int `json:"maxY"`
}

// Width returns the horizontal extent in pixels.
func (b BoundingBox) Width() int { return b.MaxX - b.MinX }

// Height returns the vertical extent in pixels.
func (b BoundingBox) Height() int { return b.MaxY - b.MinY }

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// ScreenProfile is the pointer coordinate space in pixels.
type ScreenProfile struct {
	WidthPx  int `json:"widthPx"`
	HeightPx int `json:"heightPx"`
}

// Validate rejects zero or negative dimensions.
func (s ScreenProfile) Validate() error {
	if s.WidthPx <= 0 || s.HeightPx <= 0 {
		return &InvalidScreenProfileError{Screen: s}
	}
	return nil
}

// TabletProfile is the physical surface of a tablet in millimetres. Name is
// the preset it came from, or the custom sentinel.
type TabletProfile struct {
	Name     string  `json:"name,omitempty"`
	WidthMm  float64 `json:"widthMm"`
	HeightMm float64 `json:"heightMm"`
}

// MaxTabletMm bounds a tablet side so that areas stay finite.
const MaxTabletMm = 1e6

// Validate requires both dimensions to be finite, positive and at most
// MaxTabletMm.
func (t TabletProfile) Validate() error {
	if err := CheckTabletMm("tablet width", t.WidthMm); err != nil {
		return err
	}
	return CheckTabletMm("tablet height", t.HeightMm)
}

// CheckTabletMm validates one tablet dimension named field.
func CheckTabletMm(field string, v float64) error {
	switch {
	case math.IsNaN(v), !(v > 0):
		return NewInvalidInputError(field, formatMm(v), "must be greater than 0 mm")
	case math.IsInf(v, 0), v > MaxTabletMm:
		return NewInvalidInputError(field, formatMm(v), "too large")
	}
	return nil
}

// AreaMm2 is the total physical surface of the tablet.
func (t TabletProfile) AreaMm2() float64 { return t.WidthMm * t.HeightMm }

// MmPoint is a coordinate on the tablet surface in millimetres.
type MmPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p MmPoint) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

func formatMm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
