// Package viewer implements a pan and zoom view onto an image. The image is
// first fitted into the viewport by a base transform; user zoom and pan are
// kept in a second transform applied on top in screen space.
package viewer

import (
	"image"
	"math"
	"time"

	"github.com/example/cropview/internal/geom"
)

const (
	// ZoomStep is the factor applied by ZoomIn and ZoomOut.
	ZoomStep = 1.25
	// DefaultMaxZoom caps the user zoom relative to the fitted image.
	DefaultMaxZoom = 8.0
	// DefaultAnimation is the duration of animated transitions.
	DefaultAnimation = 300 * time.Millisecond
	// maxFitScale limits how far a small image is blown up to fit the view.
	maxFitScale = 3.0
)

type animation struct {
	from, to geom.Matrix
	start    time.Time
}

// View holds the transform from image to screen coordinates.
//
// View is not safe for concurrent use.
type View struct {
	bounds image.Rectangle
	image  image.Rectangle

	base geom.Matrix
	user geom.Matrix

	maxZoom  float64
	duration time.Duration
	now      func() time.Time
	onChange func()

	anim *animation
}

// Option configures a View.
type Option func(*View)

// WithMaxZoom sets the largest user zoom.
func WithMaxZoom(z float64) Option {
	return func(v *View) {
		if z >= 1 {
			v.maxZoom = z
		}
	}
}

// WithAnimation sets the duration of animated transitions. Zero disables
// animation.
func WithAnimation(d time.Duration) Option {
	return func(v *View) {
		if d >= 0 {
			v.duration = d
		}
	}
}

// WithClock replaces time.Now for animation timing.
func WithClock(now func() time.Time) Option { return func(v *View) { v.now = now } }

// WithOnChange registers fn to run after every transform change.
func WithOnChange(fn func()) Option { return func(v *View) { v.onChange = fn } }

// New creates a View with an empty viewport.
func New(opts ...Option) *View {
	v := &View{
		base:     geom.Identity(),
		user:     geom.Identity(),
		maxZoom:  DefaultMaxZoom,
		duration: DefaultAnimation,
		now:      time.Now,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// SetOnChange replaces the change hook.
func (v *View) SetOnChange(fn func()) { v.onChange = fn }

// SetImage shows an image with the given bounds and resets zoom and pan.
func (v *View) SetImage(bounds image.Rectangle) {
	v.image = bounds
	v.user = geom.Identity()
	v.anim = nil
	v.fit()
}

// Layout sets the viewport size in pixels. The image is refitted and the
// user transform is kept.
func (v *View) Layout(w, h int) {
	v.bounds = image.Rect(0, 0, w, h)
	v.fit()
}

func (v *View) fit() {
	v.base = geom.Identity()
	iw, ih := float64(v.image.Dx()), float64(v.image.Dy())
	vw, vh := float64(v.bounds.Dx()), float64(v.bounds.Dy())
	if iw > 0 && ih > 0 && vw > 0 && vh > 0 {
		s := math.Min(math.Min(vw/iw, vh/ih), maxFitScale)
		v.base = geom.Translation(-float64(v.image.Min.X), -float64(v.image.Min.Y)).
			Then(geom.Scaling(s, s)).
			Then(geom.Translation((vw-iw*s)/2, (vh-ih*s)/2))
	}
	v.changed()
}

// Bounds returns the viewport in screen coordinates.
func (v *View) Bounds() image.Rectangle { return v.bounds }

// ImageBounds returns the bounds of the shown image.
func (v *View) ImageBounds() image.Rectangle { return v.image }

// ImageTransform maps image coordinates to screen coordinates.
func (v *View) ImageTransform() geom.Matrix { return v.base.Then(v.user) }

// Scale returns the user zoom; 1 is the fitted image.
func (v *View) Scale() float64 { return v.user.ScaleX() }

// TargetScale is the zoom factor a running animation ends at, or Scale when
// nothing is animating.
func (v *View) TargetScale() float64 { return v.target().ScaleX() }

// Animating reports whether a transition is in progress.
func (v *View) Animating() bool { return v.anim != nil }

// target is the user transform once any running animation completes.
func (v *View) target() geom.Matrix {
	if v.anim != nil {
		return v.anim.to
	}
	return v.user
}

func (v *View) set(m geom.Matrix, animated bool) {
	if animated && v.duration > 0 {
		v.anim = &animation{from: v.user, to: m, start: v.now()}
		return
	}
	v.anim = nil
	v.user = m
	v.changed()
}

// ZoomTo zooms to scale keeping the screen point (cx, cy) fixed, then
// recentres.
func (v *View) ZoomTo(scale, cx, cy float64, animated bool) {
	scale = math.Max(1, math.Min(scale, v.maxZoom))
	t := v.target()
	cur := t.ScaleX()
	if cur <= 0 {
		return
	}
	m := t.PostScale(scale/cur, cx, cy)
	v.set(v.centered(m), animated)
}

// ZoomIn zooms one step about the viewport centre.
func (v *View) ZoomIn() { v.zoomStep(ZoomStep) }

// ZoomOut zooms out one step about the viewport centre.
func (v *View) ZoomOut() { v.zoomStep(1 / ZoomStep) }

func (v *View) zoomStep(f float64) {
	c := geom.FromImage(v.bounds)
	v.ZoomTo(v.TargetScale()*f, c.CenterX(), c.CenterY(), false)
}

// Reset drops any zoom and pan.
func (v *View) Reset(animated bool) { v.set(geom.Identity(), animated) }

// PanBy moves the image by (dx, dy) screen pixels.
func (v *View) PanBy(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	if v.anim != nil {
		v.anim.from = v.anim.from.PostTranslate(dx, dy)
		v.anim.to = v.anim.to.PostTranslate(dx, dy)
	}
	v.user = v.user.PostTranslate(dx, dy)
	v.changed()
}

// Recenter centres an image smaller than the viewport and removes empty
// space at the edges of a larger one.
func (v *View) Recenter(animated bool) {
	t := v.target()
	m := v.centered(t)
	if m == t {
		return
	}
	v.set(m, animated)
}

func (v *View) centered(user geom.Matrix) geom.Matrix {
	if v.image.Empty() || v.bounds.Empty() {
		return user
	}
	r := v.base.Then(user).MapRect(geom.FromImage(v.image))
	b := geom.FromImage(v.bounds)
	dx := centerShift(r.MinX, r.MaxX, b.MinX, b.MaxX)
	dy := centerShift(r.MinY, r.MaxY, b.MinY, b.MaxY)
	if dx == 0 && dy == 0 {
		return user
	}
	return user.PostTranslate(dx, dy)
}

func centerShift(lo, hi, vlo, vhi float64) float64 {
	switch {
	case hi-lo < vhi-vlo:
		return (vlo+vhi)/2 - (lo+hi)/2
	case lo > vlo:
		return vlo - lo
	case hi < vhi:
		return vhi - hi
	}
	return 0
}

// Step advances a running animation to now. It reports whether the
// animation is still running afterwards.
func (v *View) Step(now time.Time) bool {
	a := v.anim
	if a == nil {
		return false
	}
	t := 1.0
	if v.duration > 0 {
		t = float64(now.Sub(a.start)) / float64(v.duration)
	}
	if t >= 1 {
		v.anim = nil
		v.user = a.to
	} else {
		v.user = a.from.Lerp(a.to, t)
	}
	v.changed()
	return v.anim != nil
}

// ScreenToImage maps a screen point back into image coordinates.
func (v *View) ScreenToImage(x, y float64) (float64, float64, bool) {
	inv, ok := v.ImageTransform().Invert()
	if !ok {
		return 0, 0, false
	}
	ix, iy := inv.MapPoint(x, y)
	return ix, iy, true
}

func (v *View) changed() {
	if v.onChange != nil {
		v.onChange()
	}
}
