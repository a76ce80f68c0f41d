package theme

import (
	"image/color"
)

// Theme defines the colors used to draw the crop view.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area not covered by the image
	Foreground color.RGBA // Status text

	// Status bar
	StatusBackground color.RGBA

	// Canvas
	CheckerLight color.RGBA // Backdrop behind transparent pixels
	CheckerDark  color.RGBA
	Shadow       color.RGBA // Drop shadow under the image

	// Crop overlay
	Dim            color.RGBA // Covers the image outside every crop rectangle
	Outline        color.RGBA
	OutlineFocused color.RGBA
	Handle         color.RGBA // Resize handle fill
	HandleBorder   color.RGBA
}

// Default returns the hardcoded default theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{48, 48, 48, 255},
		Foreground:       color.RGBA{240, 240, 240, 255},
		StatusBackground: color.RGBA{32, 32, 32, 255},
		CheckerLight:     color.RGBA{220, 220, 220, 255},
		CheckerDark:      color.RGBA{192, 192, 192, 255},
		Shadow:           color.RGBA{0, 0, 0, 140},
		Dim:              color.RGBA{50, 50, 50, 125},
		Outline:          color.RGBA{255, 255, 255, 255},
		OutlineFocused:   color.RGBA{255, 138, 0, 255},
		Handle:           color.RGBA{255, 138, 0, 255},
		HandleBorder:     color.RGBA{255, 255, 255, 255},
	}
}
