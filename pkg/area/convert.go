package area

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
)

// PixelToMm maps a pixel coordinate onto the tablet surface using an
// independent linear scale per axis: mm = px * (tablet_mm / screen_px).
func PixelToMm(px, py int, screen ScreenProfile, tablet TabletProfile) (MmPoint, error) {
	if err := screen.Validate(); err != nil {
		return MmPoint{}, err
	}

	mmPerPxX := tablet.WidthMm / float64(screen.WidthPx)
	mmPerPxY := tablet.HeightMm / float64(screen.HeightPx)

	return MmPoint{
		X: float64(px) * mmPerPxX,
		Y: float64(py) * mmPerPxY,
	}, nil
}

// Result is the outcome of one calibration run. It is derived on demand and
// only lives as long as its presentation.
type Result struct {
	Box         BoundingBox   `json:"box"`
	Screen      ScreenProfile `json:"screen"`
	Tablet      TabletProfile `json:"tablet"`
	SampleCount int           `json:"sampleCount,omitempty"`

	TopLeft     MmPoint `json:"topLeft"`
	BottomRight MmPoint `json:"bottomRight"`

	PlayfieldWidthMm  float64 `json:"playfieldWidthMm"`
	PlayfieldHeightMm float64 `json:"playfieldHeightMm"`
	TabletAreaMm2     float64 `json:"tabletAreaMm2"`
	PlayfieldAreaMm2  float64 `json:"playfieldAreaMm2"`
	UnusedAreaMm2     float64 `json:"unusedAreaMm2"`
}

// Convert maps both corners of box into millimetres and computes the area
// figures for the playfield they span.
func Convert(box BoundingBox, screen ScreenProfile, tablet TabletProfile) (Result, error) {
	if err := tablet.Validate(); err != nil {
		return Result{}, err
	}

	topLeft, err := PixelToMm(box.MinX, box.MinY, screen, tablet)
	if err != nil {
		return Result{}, err
	}
	bottomRight, err := PixelToMm(box.MaxX, box.MaxY, screen, tablet)
	if err != nil {
		return Result{}, err
	}

	playfield := r2.RectFromPoints(
		r2.Point{X: topLeft.X, Y: topLeft.Y},
		r2.Point{X: bottomRight.X, Y: bottomRight.Y},
	)
	size := playfield.Size()

	tabletArea := tablet.AreaMm2()
	playfieldArea := size.X * size.Y

	return Result{
		Box:               box,
		Screen:            screen,
		Tablet:            tablet,
		TopLeft:           topLeft,
		BottomRight:       bottomRight,
		PlayfieldWidthMm:  size.X,
		PlayfieldHeightMm: size.Y,
		TabletAreaMm2:     tabletArea,
		PlayfieldAreaMm2:  playfieldArea,
		UnusedAreaMm2:     tabletArea - playfieldArea,
	}, nil
}

// Summary renders the result as the multi-line text shown to the operator.
func (r Result) Summary() string {
	var sb strings.Builder
	sb.WriteString("Detected tablet area in millimeters (min-max coordinates):\n")
	fmt.Fprintf(&sb, "Top-left: %.2f mm, %.2f mm\n", r.TopLeft.X, r.TopLeft.Y)
	fmt.Fprintf(&sb, "Bottom-right: %.2f mm, %.2f mm\n", r.BottomRight.X, r.BottomRight.Y)
	fmt.Fprintf(&sb, "Playfield: %.2f x %.2f mm\n", r.PlayfieldWidthMm, r.PlayfieldHeightMm)
	fmt.Fprintf(&sb, "Tablet area: %.2f mm², playfield area: %.2f mm², unused area: %.2f mm²", r.TabletAreaMm2, r.PlayfieldAreaMm2, r.UnusedAreaMm2)
	return sb.String()
}
