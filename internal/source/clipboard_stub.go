//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package source

import (
	"fmt"
	"image"
)

// Clipboard decodes the image currently held by the clipboard.
func Clipboard() (*image.RGBA, error) {
	return nil, fmt.Errorf("clipboard images are not supported on this platform")
}
