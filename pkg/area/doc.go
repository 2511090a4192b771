// Package area defines the measurement pipeline shared by every penarea
// front end. It contains:
//
//   - Sample, BoundingBox: pixel-space inputs and their reduction
//   - ScreenProfile, TabletProfile: the two coordinate spaces being mapped
//   - PixelToMm, Convert: the per-axis linear pixel to millimetre mapping
//   - Result: the derived, never persisted outcome of one calibration run
//
// The package performs no I/O. Pointer polling, countdowns and cues live in
// the sampler and calibration packages.
package area
