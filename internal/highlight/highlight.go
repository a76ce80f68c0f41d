// Package highlight implements the crop rectangle model: one adjustable
// rectangle in image coordinates, its on-screen projection, and the hit
// testing and motion rules used while the user drags it.
package highlight

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/example/cropview/internal/geom"
)

// DefaultHitTolerance is the distance in screen pixels within which an edge
// counts as grabbed.
const DefaultHitTolerance = 20

// DefaultMinSize is the smallest width or height, in image units, a rectangle
// may be resized to.
const DefaultMinSize = 1

// ModifyMode reports what the user is currently doing with a rectangle.
type ModifyMode int

const (
	ModeNone ModifyMode = iota
	ModeMove
	ModeGrow
)

func (m ModifyMode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeGrow:
		return "grow"
	default:
		return "none"
	}
}

// HitPosition is a bit set naming the part of a rectangle under the pointer.
// Edge bits combine into corners, giving eight resize handles.
type HitPosition int

const (
	HitNone    HitPosition = 0
	GrowLeft   HitPosition = 1
	GrowRight  HitPosition = 2
	GrowTop    HitPosition = 4
	GrowBottom HitPosition = 8
	Move       HitPosition = 16
)

// IsResize reports whether p names at least one edge.
func (p HitPosition) IsResize() bool {
	return p&(GrowLeft|GrowRight|GrowTop|GrowBottom) != 0
}

func (p HitPosition) String() string {
	if p == HitNone {
		return "none"
	}
	if p == Move {
		return "move"
	}
	var parts []string
	for _, e := range []struct {
		bit  HitPosition
		name string
	}{{GrowLeft, "left"}, {GrowRight, "right"}, {GrowTop, "top"}, {GrowBottom, "bottom"}} {
		if p&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("HitPosition(%d)", int(p))
	}
	return strings.Join(parts, "+")
}

// Highlight is a single crop rectangle.
type Highlight struct {
	imageRect geom.Rect
	cropRect  geom.Rect
	drawRect  image.Rectangle
	matrix    geom.Matrix

	mode    ModifyMode
	focused bool
	hidden  bool

	// aspect is width/height, zero when the rectangle may take any shape.
	aspect    float64
	minSize   float64
	tolerance float64
}

// Option modifies a Highlight during creation.
type Option func(*Highlight)

// WithFixedAspect locks the width/height ratio of the initial crop rectangle.
func WithFixedAspect() Option {
	return func(h *Highlight) {
		if h.cropRect.Dy() > 0 {
			h.aspect = h.cropRect.Dx() / h.cropRect.Dy()
		}
	}
}

// WithMinSize sets the minimum width and height in image units.
func WithMinSize(size float64) Option {
	return func(h *Highlight) {
		if size > 0 {
			h.minSize = size
		}
	}
}

// WithHitTolerance sets how close, in screen pixels, the pointer has to be to
// an edge to grab it.
func WithHitTolerance(px float64) Option {
	return func(h *Highlight) {
		if px > 0 {
			h.tolerance = px
		}
	}
}

// New creates a rectangle covering cropRect inside an image with the given
// bounds. cropRect is clamped into the image and grown to the minimum size.
func New(imageRect, cropRect geom.Rect, opts ...Option) *Highlight {
	h := &Highlight{
		imageRect: imageRect,
		cropRect:  cropRect,
		matrix:    geom.Identity(),
		minSize:   DefaultMinSize,
		tolerance: DefaultHitTolerance,
	}
	for _, o := range opts {
		o(h)
	}
	h.cropRect = h.normalize(h.cropRect)
	h.Invalidate()
	return h
}

func (h *Highlight) minDims() (float64, float64) {
	minW, minH := h.minSize, h.minSize
	if h.aspect > 0 {
		minW = math.Max(h.minSize, h.minSize*h.aspect)
		minH = minW / h.aspect
	}
	return math.Min(minW, h.imageRect.Dx()), math.Min(minH, h.imageRect.Dy())
}

func (h *Highlight) normalize(r geom.Rect) geom.Rect {
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	minW, minH := h.minDims()
	img := h.imageRect
	w := clamp(r.Dx(), minW, img.Dx())
	ht := clamp(r.Dy(), minH, img.Dy())
	if h.aspect > 0 {
		// Shrink both sides together so the locked ratio survives.
		w = math.Max(math.Min(r.Dx(), math.Min(img.Dx(), img.Dy()*h.aspect)), minW)
		ht = r.Dy()
		if w != r.Dx() {
			ht = math.Min(w/h.aspect, img.Dy())
		}
	}
	r.MinX = clamp(r.MinX, img.MinX, img.MaxX-w)
	r.MinY = clamp(r.MinY, img.MinY, img.MaxY-ht)
	r.MaxX = r.MinX + w
	r.MaxY = r.MinY + ht
	return r
}

// CropRect returns the rectangle in image coordinates.
func (h *Highlight) CropRect() geom.Rect { return h.cropRect }

// DrawRect returns the rectangle in screen coordinates under the current
// transform.
func (h *Highlight) DrawRect() image.Rectangle { return h.drawRect }

// ImageRect returns the bounds the rectangle is confined to.
func (h *Highlight) ImageRect() geom.Rect { return h.imageRect }

// Aspect returns the locked width/height ratio or zero.
func (h *Highlight) Aspect() float64 { return h.aspect }

func (h *Highlight) Mode() ModifyMode        { return h.mode }
func (h *Highlight) SetMode(m ModifyMode)    { h.mode = m }
func (h *Highlight) Focused() bool           { return h.focused }
func (h *Highlight) SetFocused(focused bool) { h.focused = focused }
func (h *Highlight) Hidden() bool            { return h.hidden }
func (h *Highlight) SetHidden(hidden bool)   { h.hidden = hidden }

// SetMatrix installs the image to screen transform and refreshes DrawRect.
func (h *Highlight) SetMatrix(m geom.Matrix) {
	h.matrix = m
	h.Invalidate()
}

// Invalidate recomputes DrawRect from the crop rectangle and transform.
func (h *Highlight) Invalidate() {
	h.drawRect = h.matrix.MapRect(h.cropRect).Round()
}

// HitTest reports which part of the rectangle lies under the screen point
// (x, y). Edges are grabbed within the hit tolerance; a point inside the
// rectangle but away from every edge grabs the body.
func (h *Highlight) HitTest(x, y float64) HitPosition {
	if h.hidden {
		return HitNone
	}
	r := geom.FromImage(h.drawRect)
	tol := h.tolerance

	vertical := y >= r.MinY-tol && y < r.MaxY+tol
	horizontal := x >= r.MinX-tol && x < r.MaxX+tol

	hit := HitNone
	dl, dr := math.Abs(r.MinX-x), math.Abs(r.MaxX-x)
	if vertical {
		switch {
		case dl < tol && dr < tol:
			// Narrow rectangle: both edges in range, take the closer one.
			if dl <= dr {
				hit |= GrowLeft
			} else {
				hit |= GrowRight
			}
		case dl < tol:
			hit |= GrowLeft
		case dr < tol:
			hit |= GrowRight
		}
	}
	dt, db := math.Abs(r.MinY-y), math.Abs(r.MaxY-y)
	if horizontal {
		switch {
		case dt < tol && db < tol:
			if dt <= db {
				hit |= GrowTop
			} else {
				hit |= GrowBottom
			}
		case dt < tol:
			hit |= GrowTop
		case db < tol:
			hit |= GrowBottom
		}
	}
	if hit == HitNone && r.Contains(x, y) {
		hit = Move
	}
	return hit
}

// ApplyMotion applies a pointer movement of (dx, dy) screen pixels using the
// handle hit. Move translates the rectangle, edge handles resize it with the
// opposite edges anchored. The result always stays inside the image, keeps the
// minimum size and, when locked, the aspect ratio.
func (h *Highlight) ApplyMotion(hit HitPosition, dx, dy float64) {
	if hit == HitNone {
		return
	}
	sx, sy := h.matrix.ScaleX(), h.matrix.ScaleY()
	if sx == 0 || sy == 0 {
		return
	}
	if hit == Move {
		h.moveBy(dx/sx, dy/sy)
		return
	}
	if hit&(GrowLeft|GrowRight) == 0 {
		dx = 0
	}
	if hit&(GrowTop|GrowBottom) == 0 {
		dy = 0
	}
	if dx == 0 && dy == 0 {
		return
	}
	if h.aspect > 0 {
		h.growAspect(hit, dx/sx, dy/sy)
	} else {
		h.growFree(hit, dx/sx, dy/sy)
	}
	h.Invalidate()
}

func (h *Highlight) moveBy(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	r := h.cropRect.Offset(dx, dy)
	img := h.imageRect
	if r.MinX < img.MinX {
		r = r.Offset(img.MinX-r.MinX, 0)
	} else if r.MaxX > img.MaxX {
		r = r.Offset(img.MaxX-r.MaxX, 0)
	}
	if r.MinY < img.MinY {
		r = r.Offset(0, img.MinY-r.MinY)
	} else if r.MaxY > img.MaxY {
		r = r.Offset(0, img.MaxY-r.MaxY)
	}
	h.cropRect = r
	h.Invalidate()
}

func (h *Highlight) growFree(hit HitPosition, dx, dy float64) {
	r := h.cropRect
	img := h.imageRect
	minW, minH := h.minDims()
	switch {
	case hit&GrowLeft != 0:
		r.MinX = clamp(r.MinX+dx, img.MinX, r.MaxX-minW)
	case hit&GrowRight != 0:
		r.MaxX = clamp(r.MaxX+dx, r.MinX+minW, img.MaxX)
	}
	switch {
	case hit&GrowTop != 0:
		r.MinY = clamp(r.MinY+dy, img.MinY, r.MaxY-minH)
	case hit&GrowBottom != 0:
		r.MaxY = clamp(r.MaxY+dy, r.MinY+minH, img.MaxY)
	}
	h.cropRect = r
}

func (h *Highlight) growAspect(hit HitPosition, dx, dy float64) {
	r := h.cropRect
	img := h.imageRect
	a := h.aspect
	minW, _ := h.minDims()

	w, ht := r.Dx(), r.Dy()
	horizontal := hit&(GrowLeft|GrowRight) != 0
	vertical := hit&(GrowTop|GrowBottom) != 0
	if hit&GrowLeft != 0 {
		w -= dx
	} else if hit&GrowRight != 0 {
		w += dx
	}
	if hit&GrowTop != 0 {
		ht -= dy
	} else if hit&GrowBottom != 0 {
		ht += dy
	}
	// The axis with the larger relative change drives the other one.
	if horizontal && (!vertical || math.Abs(w/r.Dx()-1) >= math.Abs(ht/r.Dy()-1)) {
		ht = w / a
	} else {
		w = ht * a
	}

	var maxW, maxH float64
	switch {
	case hit&GrowLeft != 0:
		maxW = r.MaxX - img.MinX
	case hit&GrowRight != 0:
		maxW = img.MaxX - r.MinX
	default:
		maxW = 2 * math.Min(r.CenterX()-img.MinX, img.MaxX-r.CenterX())
	}
	switch {
	case hit&GrowTop != 0:
		maxH = r.MaxY - img.MinY
	case hit&GrowBottom != 0:
		maxH = img.MaxY - r.MinY
	default:
		maxH = 2 * math.Min(r.CenterY()-img.MinY, img.MaxY-r.CenterY())
	}
	w = clamp(w, minW, math.Min(maxW, maxH*a))
	ht = w / a

	switch {
	case hit&GrowLeft != 0:
		r.MinX = r.MaxX - w
	case hit&GrowRight != 0:
		r.MaxX = r.MinX + w
	default:
		cx := r.CenterX()
		r.MinX, r.MaxX = cx-w/2, cx+w/2
	}
	switch {
	case hit&GrowTop != 0:
		r.MinY = r.MaxY - ht
	case hit&GrowBottom != 0:
		r.MaxY = r.MinY + ht
	default:
		cy := r.CenterY()
		r.MinY, r.MaxY = cy-ht/2, cy+ht/2
	}
	h.cropRect = r
}

// clamp bounds v to [lo, hi]; lo wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
