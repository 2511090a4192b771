package area

// Reduce returns the exact axis-aligned bounds of samples in a single pass.
// The result does not depend on sample order. An empty slice yields
// ErrInsufficientData rather than a degenerate box.
func Reduce(samples []Sample) (BoundingBox, error) {
	if len(samples) == 0 {
		return BoundingBox{}, ErrInsufficientData
	}

	first := samples[0]
	box := BoundingBox{MinX: first.X, MinY: first.Y, MaxX: first.X, MaxY: first.Y}
	for _, s := range samples[1:] {
		box.MinX = min(box.MinX, s.X)
		box.MinY = min(box.MinY, s.Y)
		box.MaxX = max(box.MaxX, s.X)
		box.MaxY = max(box.MaxY, s.Y)
	}

	return box, nil
}
