// Package viewport keeps the crop rectangle being edited on screen. It
// computes pans and zoom targets and leaves applying them to the viewer.
package viewport

import (
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/example/cropview/internal/geom"
)

const (
	// DefaultFillFraction is the share of the viewport a centred rectangle
	// should cover.
	DefaultFillFraction = 0.6
	// DefaultZoomThreshold is the relative zoom change below which CenterOn
	// leaves the zoom alone.
	DefaultZoomThreshold = 0.1
	// DefaultMinZoom is fit-to-screen.
	DefaultMinZoom = 1.0
)

// Viewer is the part of the image viewer the reactor drives.
type Viewer interface {
	// ImageTransform maps image coordinates to screen coordinates.
	ImageTransform() geom.Matrix
	// Scale is the zoom factor relative to fit-to-screen.
	Scale() float64
	ZoomTo(scale, centerX, centerY float64, animated bool)
	PanBy(dx, dy float64)
	// Bounds is the visible area in screen coordinates.
	Bounds() image.Rectangle
}

// Target is a rectangle the reactor can keep visible.
type Target interface {
	DrawRect() image.Rectangle
	CropRect() geom.Rect
}

// Reactor computes centring and panning adjustments for a Viewer.
type Reactor struct {
	viewer    Viewer
	fill      float64
	threshold float64
	minZoom   float64
	logger    *slog.Logger
}

// Option configures a Reactor.
type Option func(*Reactor)

// WithFillFraction sets the viewport share used when zooming to a rectangle.
func WithFillFraction(f float64) Option {
	return func(r *Reactor) {
		if f > 0 {
			r.fill = f
		}
	}
}

// WithZoomThreshold sets the relative change needed before CenterOn zooms.
func WithZoomThreshold(t float64) Option {
	return func(r *Reactor) {
		if t >= 0 {
			r.threshold = t
		}
	}
}

// WithMinZoom sets the smallest zoom CenterOn will request.
func WithMinZoom(z float64) Option {
	return func(r *Reactor) {
		if z > 0 {
			r.minZoom = z
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reactor) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Reactor driving v.
func New(v Viewer, opts ...Option) *Reactor {
	r := &Reactor{
		viewer:    v,
		fill:      DefaultFillFraction,
		threshold: DefaultZoomThreshold,
		minZoom:   DefaultMinZoom,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// PanFor returns the smallest pan that brings rect inside bounds. On each axis
// pulling the near edge in wins over pulling the far edge in.
func PanFor(bounds, rect image.Rectangle) (dx, dy int) {
	dx1 := max(0, bounds.Min.X-rect.Min.X)
	dx2 := min(0, bounds.Max.X-rect.Max.X)
	dy1 := max(0, bounds.Min.Y-rect.Min.Y)
	dy2 := min(0, bounds.Max.Y-rect.Max.Y)
	dx, dy = dx2, dy2
	if dx1 != 0 {
		dx = dx1
	}
	if dy1 != 0 {
		dy = dy1
	}
	return dx, dy
}

// EnsureVisible pans the viewer so the target's draw rectangle lies inside the
// viewport and returns the pan applied.
func (r *Reactor) EnsureVisible(t Target) (dx, dy int) {
	dx, dy = PanFor(r.viewer.Bounds(), t.DrawRect())
	if dx != 0 || dy != 0 {
		r.logger.Debug("ensure visible", "dx", dx, "dy", dy)
		r.viewer.PanBy(float64(dx), float64(dy))
	}
	return dx, dy
}

// ZoomFor returns the zoom CenterOn would aim for and whether it differs enough
// from the current one to be applied.
func (r *Reactor) ZoomFor(t Target) (zoom float64, change bool) {
	scale := r.viewer.Scale()
	draw := t.DrawRect()
	bounds := r.viewer.Bounds()
	if draw.Dx() <= 0 || draw.Dy() <= 0 || scale <= 0 {
		return scale, false
	}
	z1 := float64(bounds.Dx()) / float64(draw.Dx()) * r.fill
	z2 := float64(bounds.Dy()) / float64(draw.Dy()) * r.fill
	zoom = math.Max(r.minZoom, math.Min(z1, z2)*scale)
	return zoom, math.Abs(zoom-scale)/zoom > r.threshold
}

// CenterOn zooms towards the target when its size on screen changed
// noticeably, then makes sure it is visible. It reports whether a zoom was
// requested.
func (r *Reactor) CenterOn(t Target, animated bool) bool {
	zoom, change := r.ZoomFor(t)
	if change {
		crop := t.CropRect()
		cx, cy := r.viewer.ImageTransform().MapPoint(crop.CenterX(), crop.CenterY())
		r.logger.Debug("center on", "zoom", zoom, "cx", cx, "cy", cy, "animated", animated)
		r.viewer.ZoomTo(zoom, cx, cy, animated)
	}
	r.EnsureVisible(t)
	return change
}
