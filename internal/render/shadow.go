package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under the image.
type ShadowOptions struct {
	Radius int
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow offset down and to the right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 12,
		Offset: image.Pt(6, 6),
	}
}

// DropShadow draws the blurred shadow of the opaque rectangle r onto dst
// using col. Only the part of the shadow inside dst is computed.
func DropShadow(dst draw.Image, r image.Rectangle, opts ShadowOptions, col color.RGBA) {
	if r.Empty() || col.A == 0 {
		return
	}
	radius := max(opts.Radius, 0)
	shadow := r.Add(opts.Offset)
	padded := shadow.Inset(-radius)
	// A blur only reaches radius pixels, so a band of 2*radius around the
	// visible part is enough to get the edges right.
	area := padded.Intersect(dst.Bounds().Inset(-2 * radius))
	if area.Empty() {
		return
	}

	mask := image.NewAlpha(area.Sub(area.Min))
	solid := shadow.Intersect(area).Sub(area.Min)
	draw.Draw(mask, solid, image.Opaque, image.Point{}, draw.Src)

	blurred := blurAlpha(mask, radius)
	target := area.Intersect(dst.Bounds())
	draw.DrawMask(dst, target, image.NewUniform(col), image.Point{}, blurred, target.Min.Sub(area.Min), draw.Over)
}

// blurAlpha applies a separable box blur of the given radius.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		out := image.NewAlpha(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewAlpha(bounds)
	dst := image.NewAlpha(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}

	return dst
}
