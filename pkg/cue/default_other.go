//go:build !windows

package cue

// Default rings the terminal bell on stderr.
func Default() Cue {
	return Bell{}
}
