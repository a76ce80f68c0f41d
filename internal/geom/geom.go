// Package geom provides the float rectangle and affine transform types shared
// by the crop model, the viewer and the interaction core.
package geom

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Rect is an axis-aligned rectangle in float coordinates. Min is inclusive and
// Max exclusive, matching image.Rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// R is shorthand for Rect{x0, y0, x1, y1}.
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
}

// FromImage converts an integer rectangle.
func FromImage(r image.Rectangle) Rect {
	return Rect{float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)}
}

func (r Rect) Dx() float64      { return r.MaxX - r.MinX }
func (r Rect) Dy() float64      { return r.MaxY - r.MinY }
func (r Rect) CenterX() float64 { return (r.MinX + r.MaxX) / 2 }
func (r Rect) CenterY() float64 { return (r.MinY + r.MaxY) / 2 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.MinX >= r.MaxX || r.MinY >= r.MaxY }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{r.MinX + dx, r.MinY + dy, r.MaxX + dx, r.MaxY + dy}
}

// Round converts r to the nearest integer rectangle.
func (r Rect) Round() image.Rectangle {
	return image.Rect(
		int(math.Round(r.MinX)), int(math.Round(r.MinY)),
		int(math.Round(r.MaxX)), int(math.Round(r.MaxY)),
	)
}

// Matrix is a 2-D affine transform. The zero value is not the identity; use
// Identity.
type Matrix struct {
	m f64.Aff3
}

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{f64.Aff3{1, 0, 0, 0, 1, 0}} }

// Scaling returns a transform scaling by (sx, sy) around the origin.
func Scaling(sx, sy float64) Matrix { return Matrix{f64.Aff3{sx, 0, 0, 0, sy, 0}} }

// Translation returns a transform translating by (tx, ty).
func Translation(tx, ty float64) Matrix { return Matrix{f64.Aff3{1, 0, tx, 0, 1, ty}} }

// FromAff3 wraps an existing affine matrix.
func FromAff3(a f64.Aff3) Matrix { return Matrix{a} }

// Aff3 returns the underlying matrix, suitable for x/image/draw transforms.
func (m Matrix) Aff3() f64.Aff3 { return m.m }

// Then returns the transform that applies m first and n second.
func (m Matrix) Then(n Matrix) Matrix {
	a, b := n.m, m.m
	return Matrix{f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}}
}

// PostTranslate appends a translation.
func (m Matrix) PostTranslate(dx, dy float64) Matrix {
	return m.Then(Translation(dx, dy))
}

// PostScale appends a uniform scale about (cx, cy).
func (m Matrix) PostScale(s, cx, cy float64) Matrix {
	return m.Then(Translation(-cx, -cy)).Then(Scaling(s, s)).Then(Translation(cx, cy))
}

// ScaleX returns the horizontal scale factor.
func (m Matrix) ScaleX() float64 { return m.m[0] }

// ScaleY returns the vertical scale factor.
func (m Matrix) ScaleY() float64 { return m.m[4] }

// TransX returns the horizontal translation.
func (m Matrix) TransX() float64 { return m.m[2] }

// TransY returns the vertical translation.
func (m Matrix) TransY() float64 { return m.m[5] }

// MapPoint transforms a single point.
func (m Matrix) MapPoint(x, y float64) (float64, float64) {
	return m.m[0]*x + m.m[1]*y + m.m[2], m.m[3]*x + m.m[4]*y + m.m[5]
}

// MapRect transforms r and returns the bounding box of the result.
func (m Matrix) MapRect(r Rect) Rect {
	x0, y0 := m.MapPoint(r.MinX, r.MinY)
	x1, y1 := m.MapPoint(r.MaxX, r.MaxY)
	x2, y2 := m.MapPoint(r.MinX, r.MaxY)
	x3, y3 := m.MapPoint(r.MaxX, r.MinY)
	return Rect{
		MinX: math.Min(math.Min(x0, x1), math.Min(x2, x3)),
		MinY: math.Min(math.Min(y0, y1), math.Min(y2, y3)),
		MaxX: math.Max(math.Max(x0, x1), math.Max(x2, x3)),
		MaxY: math.Max(math.Max(y0, y1), math.Max(y2, y3)),
	}
}

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Matrix) Invert() (Matrix, bool) {
	a := m.m
	det := a[0]*a[4] - a[1]*a[3]
	if det == 0 {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{f64.Aff3{
		a[4] * inv,
		-a[1] * inv,
		(a[1]*a[5] - a[4]*a[2]) * inv,
		-a[3] * inv,
		a[0] * inv,
		(a[3]*a[2] - a[0]*a[5]) * inv,
	}}, true
}

// Lerp interpolates every coefficient between m and n. t is clamped to [0, 1].
func (m Matrix) Lerp(n Matrix, t float64) Matrix {
	if t <= 0 {
		return m
	}
	if t >= 1 {
		return n
	}
	var out f64.Aff3
	for i := range out {
		out[i] = m.m[i] + (n.m[i]-m.m[i])*t
	}
	return Matrix{out}
}
