//go:build !darwin && !windows

package pointer

// Default has no backend on this platform.
func Default() (Source, error) {
	return nil, ErrUnsupported
}
