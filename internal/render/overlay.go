package render

import (
	"image"
	"image/color"
	"image/draw"
)

const (
	handleSize   = 10
	outlineWidth = 2
	dashLength   = 6
)

// Box is one crop rectangle as it appears on screen.
type Box struct {
	Rect    image.Rectangle
	Focused bool
	// Grow is set while the rectangle is being resized.
	Grow bool
}

// Colors is the subset of a theme the overlay uses.
type Colors struct {
	Dim, Outline, OutlineFocused, Handle, HandleBorder color.RGBA
}

// Overlay dims area outside every box, then outlines the boxes. Focused or
// resizing boxes get handles on their corners and edges.
func Overlay(dst *image.RGBA, area image.Rectangle, boxes []Box, c Colors) {
	dimOutside(dst, area, boxes, c.Dim)
	for _, b := range boxes {
		if b.Rect.Empty() {
			continue
		}
		if b.Focused || b.Grow {
			drawRect(dst, b.Rect, c.OutlineFocused, outlineWidth)
			for _, hr := range HandleRects(b.Rect) {
				draw.Draw(dst, hr, image.NewUniform(c.Handle), image.Point{}, draw.Src)
				drawRect(dst, hr, c.HandleBorder, 1)
			}
			continue
		}
		drawDashedRect(dst, b.Rect, dashLength, outlineWidth, c.Outline, c.Dim)
	}
}

func dimOutside(dst *image.RGBA, area image.Rectangle, boxes []Box, col color.RGBA) {
	area = area.Intersect(dst.Bounds())
	if area.Empty() || col.A == 0 {
		return
	}
	mask := image.NewAlpha(area)
	draw.Draw(mask, area, image.Opaque, image.Point{}, draw.Src)
	for _, b := range boxes {
		if r := b.Rect.Intersect(area); !r.Empty() {
			draw.Draw(mask, r, image.Transparent, image.Point{}, draw.Src)
		}
	}
	draw.DrawMask(dst, area, image.NewUniform(col), image.Point{}, mask, area.Min, draw.Over)
}

// HandleRects returns the eight handle squares of rect: corners first in
// clockwise order from top-left, then the edge midpoints top, right, bottom,
// left.
func HandleRects(rect image.Rectangle) []image.Rectangle {
	hs := handleSize / 2
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	at := func(x, y int) image.Rectangle { return image.Rect(x-hs, y-hs, x+hs, y+hs) }
	return []image.Rectangle{
		at(rect.Min.X, rect.Min.Y),
		at(rect.Max.X, rect.Min.Y),
		at(rect.Max.X, rect.Max.Y),
		at(rect.Min.X, rect.Max.Y),
		at(cx, rect.Min.Y),
		at(rect.Max.X, cy),
		at(cx, rect.Max.Y),
		at(rect.Min.X, cy),
	}
}

// drawRect strokes the inside of rect with the given thickness.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.RGBA, thick int) {
	u := image.NewUniform(col)
	thick = min(thick, rect.Dx()/2, rect.Dy()/2)
	if thick <= 0 {
		draw.Draw(dst, rect, u, image.Point{}, draw.Over)
		return
	}
	for _, r := range []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick),
		image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y+thick, rect.Min.X+thick, rect.Max.Y-thick),
		image.Rect(rect.Max.X-thick, rect.Min.Y+thick, rect.Max.X, rect.Max.Y-thick),
	} {
		draw.Draw(dst, r, u, image.Point{}, draw.Over)
	}
}

// drawDashedRect strokes rect with alternating dashes of c1 and c2.
func drawDashedRect(dst *image.RGBA, rect image.Rectangle, dash, thick int, c1, c2 color.RGBA) {
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}
	pick := func(i int) color.RGBA {
		if (i/dash)%2 == 0 {
			return c1
		}
		return c2
	}
	b := dst.Bounds()
	set := func(x, y int, c color.RGBA) {
		if image.Pt(x, y).In(b) {
			dst.SetRGBA(x, y, c)
		}
	}
	for i := 0; i < rect.Dx(); i++ {
		c := pick(i)
		for t := 0; t < thick; t++ {
			set(rect.Min.X+i, rect.Min.Y+t, c)
			set(rect.Max.X-1-i, rect.Max.Y-1-t, c)
		}
	}
	for i := 0; i < rect.Dy(); i++ {
		c := pick(i)
		for t := 0; t < thick; t++ {
			set(rect.Max.X-1-t, rect.Min.Y+i, c)
			set(rect.Min.X+t, rect.Max.Y-1-i, c)
		}
	}
}
