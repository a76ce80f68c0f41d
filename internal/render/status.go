package render

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/cropview/internal/theme"
)

// StatusHeight is the height of the status bar in pixels.
const StatusHeight = 20

// StatusBar draws text into a bar along the bottom of dst.
func StatusBar(dst *image.RGBA, text string, th *theme.Theme) {
	b := dst.Bounds()
	rect := image.Rect(b.Min.X, b.Max.Y-StatusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, rect, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(th.Foreground),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(rect.Min.X+6, rect.Max.Y-5),
	}
	d.DrawString(text)
}
