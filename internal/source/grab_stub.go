//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package source

import (
	"fmt"
	"image"
)

// Grab captures the screen.
func Grab(string) (*image.RGBA, error) {
	return nil, fmt.Errorf("screen capture is not supported on this platform")
}
