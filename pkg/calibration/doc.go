// Package calibration runs one tablet-area measurement from start to
// finish. It contains:
//
//   - Phase: the discrete steps of the calibration state machine
//   - Config: the explicit inputs of a run, passed by the front end
//   - Countdown: the fixed number of timed ticks before sampling
//   - Controller: sequences countdown, sampling, reduction and conversion
//   - Status: a synthesized view model returned by the daemon and used by front ends
//
// These types are shared across the CLI, daemon, client and GUI code to
// keep JSON contracts consistent.
package calibration
