// Package render draws the crop view: the transformed image on its backdrop,
// the crop rectangle overlay and the status bar.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/cropview/internal/geom"
	"github.com/example/cropview/internal/theme"
)

const checkerSize = 8

// Canvas fills dst with the background and draws img through the image to
// screen transform m. It returns the screen rectangle covered by the image.
func Canvas(dst *image.RGBA, img image.Image, m geom.Matrix, th *theme.Theme) image.Rectangle {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if img == nil {
		return image.Rectangle{}
	}
	onScreen := m.MapRect(geom.FromImage(img.Bounds())).Round()
	DropShadow(dst, onScreen, DefaultShadowOptions(), th.Shadow)
	visible := onScreen.Intersect(dst.Bounds())
	if visible.Empty() {
		return onScreen
	}
	drawCheckerboard(dst, visible, checkerSize, th.CheckerLight, th.CheckerDark)

	interp := xdraw.Interpolator(xdraw.ApproxBiLinear)
	if m.ScaleX() >= 2 {
		// Keep pixels crisp when zoomed in.
		interp = xdraw.NearestNeighbor
	}
	interp.Transform(dst, m.Aff3(), img, img.Bounds(), draw.Over, nil)
	return onScreen
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := dark
			if ((x/size)+(y/size))%2 == 0 {
				c = light
			}
			dst.SetRGBA(x, y, c)
		}
	}
}
