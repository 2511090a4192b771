//go:build windows

package pointer

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

// POINT from winuser.h.
type winPoint struct {
	X int32
	Y int32
}

type cursorSource struct{}

// Default returns the GetCursorPos backed source.
func Default() (Source, error) {
	if err := procGetCursorPos.Find(); err != nil {
		return nil, err
	}
	return cursorSource{}, nil
}

func (cursorSource) CurrentPointerPosition() (int, int, error) {
	var pt winPoint
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return 0, 0, err
	}
	return int(pt.X), int(pt.Y), nil
}
