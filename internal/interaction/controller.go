// Package interaction turns pointer events into edits of a set of crop
// rectangles: it resolves which rectangle and handle a press grabs, feeds
// drags into the rectangle model, tracks focus while the user picks one
// rectangle, and asks the viewport to keep the edited rectangle on screen.
//
// A Controller is not safe for concurrent use. All calls are expected on the
// goroutine delivering input events.
package interaction

import (
	"io"
	"log/slog"

	"github.com/example/cropview/internal/geom"
	"github.com/example/cropview/internal/highlight"
	"github.com/example/cropview/internal/viewport"
)

// EventKind is the phase of a pointer event.
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
)

func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	default:
		return "unknown"
	}
}

// State is the controller state derived from the host flags and the drag.
type State int

const (
	StateIdle State = iota
	StateDragging
	StatePicking
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StatePicking:
		return "picking"
	default:
		return "idle"
	}
}

// Rectangle is the crop rectangle contract the controller works against.
// *highlight.Highlight implements it.
type Rectangle interface {
	viewport.Target
	HitTest(x, y float64) highlight.HitPosition
	ApplyMotion(hit highlight.HitPosition, dx, dy float64)
	Mode() highlight.ModifyMode
	SetMode(highlight.ModifyMode)
	Focused() bool
	SetFocused(bool)
	Hidden() bool
	SetHidden(bool)
	SetMatrix(geom.Matrix)
}

// Viewer is the pan/zoom image view the rectangles are shown in. It must call
// Controller.SyncTransform whenever its transform changes.
type Viewer interface {
	viewport.Viewer
	Recenter(animated bool)
}

// Host owns the screen-level flags the controller reads on every event.
type Host interface {
	PickModeActive() bool
	SavingInProgress() bool
	SetPickModeActive(active bool)
	SetSelectedCrop(r Rectangle)
}

type drag struct {
	target       Rectangle
	hit          highlight.HitPosition
	lastX, lastY float64
}

// Controller is the pointer event state machine.
type Controller struct {
	viewer  Viewer
	host    Host
	reactor *viewport.Reactor
	redraw  func()
	logger  *slog.Logger

	rects []Rectangle
	// drag is set between a press that grabbed a handle and the next
	// release. A release that never arrives leaves it set until the next
	// press or release.
	drag *drag
}

// Option configures a Controller.
type Option func(*Controller)

// WithReactor replaces the default viewport reactor.
func WithReactor(r *viewport.Reactor) Option { return func(c *Controller) { c.reactor = r } }

// WithRedraw registers the callback invoked whenever visible state changes.
func WithRedraw(fn func()) Option { return func(c *Controller) { c.redraw = fn } }

// WithLogger sets the logger for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Controller for rectangles shown in viewer.
func New(viewer Viewer, host Host, opts ...Option) *Controller {
	c := &Controller{
		viewer: viewer,
		host:   host,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	if c.reactor == nil {
		c.reactor = viewport.New(viewer, viewport.WithLogger(c.logger))
	}
	return c
}

// AddRectangle appends r. Earlier rectangles win when several are hit.
func (c *Controller) AddRectangle(r Rectangle) {
	r.SetMatrix(c.viewer.ImageTransform())
	c.rects = append(c.rects, r)
	c.invalidate()
}

// ClearRectangles removes every rectangle and forgets any drag.
func (c *Controller) ClearRectangles() {
	c.rects = nil
	c.drag = nil
	c.invalidate()
}

// Rectangles returns the rectangles in hit-test order.
func (c *Controller) Rectangles() []Rectangle {
	out := make([]Rectangle, len(c.rects))
	copy(out, c.rects)
	return out
}

// State reports the current state.
func (c *Controller) State() State {
	switch {
	case c.host.PickModeActive():
		return StatePicking
	case c.drag != nil:
		return StateDragging
	default:
		return StateIdle
	}
}

// DragTarget returns the rectangle and handle being dragged, if any.
func (c *Controller) DragTarget() (Rectangle, highlight.HitPosition, bool) {
	if c.drag == nil {
		return nil, highlight.HitNone, false
	}
	return c.drag.target, c.drag.hit, true
}

// SyncTransform copies the viewer transform into every rectangle.
func (c *Controller) SyncTransform() {
	m := c.viewer.ImageTransform()
	for _, r := range c.rects {
		r.SetMatrix(m)
	}
	c.invalidate()
}

// Layout refreshes the rectangles after the view was resized and re-centres
// on the focused rectangle.
func (c *Controller) Layout() {
	c.SyncTransform()
	for _, r := range c.rects {
		if r.Focused() {
			c.reactor.CenterOn(r, true)
		}
	}
}

// HandlePointerEvent runs one transition. It returns false, without touching
// any state, while the host is saving.
func (c *Controller) HandlePointerEvent(kind EventKind, x, y float64) bool {
	if c.host.SavingInProgress() {
		return false
	}
	c.resolve(kind, x, y)
	c.settle(kind)
	return true
}

// resolve applies the drag, focus or motion part of a transition.
func (c *Controller) resolve(kind EventKind, x, y float64) {
	picking := c.host.PickModeActive()
	switch kind {
	case EventDown:
		if picking {
			c.recomputeFocus(x, y)
		} else {
			c.beginDrag(x, y)
		}
	case EventMove:
		if picking {
			c.recomputeFocus(x, y)
		} else if c.drag != nil {
			c.continueDrag(x, y)
		}
	case EventUp:
		if picking {
			c.commitPick()
		} else if c.drag != nil {
			c.endDrag()
		}
		c.drag = nil
	}
}

// settle re-centres the view after a transition.
func (c *Controller) settle(kind EventKind) {
	switch kind {
	case EventMove:
		// Nothing to pan into when not zoomed.
		if c.viewer.Scale() == 1 {
			c.viewer.Recenter(false)
		}
	case EventUp:
		c.viewer.Recenter(true)
	}
}

// hit returns the first visible rectangle under (x, y).
func (c *Controller) hit(x, y float64) (int, Rectangle, highlight.HitPosition) {
	for i, r := range c.rects {
		if r.Hidden() {
			continue
		}
		if h := r.HitTest(x, y); h != highlight.HitNone {
			return i, r, h
		}
	}
	return -1, nil, highlight.HitNone
}

func (c *Controller) recomputeFocus(x, y float64) {
	for _, r := range c.rects {
		r.SetFocused(false)
	}
	if i, r, _ := c.hit(x, y); r != nil {
		r.SetFocused(true)
		c.logger.Debug("focus", "index", i)
	}
	c.invalidate()
}

func (c *Controller) beginDrag(x, y float64) {
	i, r, h := c.hit(x, y)
	if r == nil {
		c.drag = nil
		return
	}
	c.drag = &drag{target: r, hit: h, lastX: x, lastY: y}
	if h == highlight.Move {
		r.SetMode(highlight.ModeMove)
	} else {
		r.SetMode(highlight.ModeGrow)
	}
	c.logger.Debug("drag start", "index", i, "hit", h)
	c.invalidate()
}

func (c *Controller) continueDrag(x, y float64) {
	d := c.drag
	d.target.ApplyMotion(d.hit, x-d.lastX, y-d.lastY)
	d.lastX, d.lastY = x, y
	c.reactor.EnsureVisible(d.target)
	c.invalidate()
}

func (c *Controller) endDrag() {
	d := c.drag
	c.reactor.CenterOn(d.target, true)
	d.target.SetMode(highlight.ModeNone)
	c.logger.Debug("drag end", "hit", d.hit)
	c.invalidate()
}

// commitPick turns the focused rectangle into the selection.
func (c *Controller) commitPick() {
	var selected Rectangle
	for _, r := range c.rects {
		if r.Focused() {
			selected = r
			break
		}
	}
	if selected == nil {
		return
	}
	c.host.SetSelectedCrop(selected)
	c.hideAllExcept(selected)
	c.reactor.CenterOn(selected, true)
	c.host.SetPickModeActive(false)
	c.logger.Debug("picked", "rect", selected.CropRect())
	c.invalidate()
}

func (c *Controller) hideAllExcept(keep Rectangle) {
	for _, r := range c.rects {
		if r != keep {
			r.SetHidden(true)
		}
	}
}

func (c *Controller) invalidate() {
	if c.redraw != nil {
		c.redraw()
	}
}
