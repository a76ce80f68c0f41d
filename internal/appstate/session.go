package appstate

import (
	"fmt"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/cropview/internal/highlight"
	"github.com/example/cropview/internal/interaction"
	"github.com/example/cropview/internal/notify"
	"github.com/example/cropview/internal/preset"
	"github.com/example/cropview/internal/render"
	"github.com/example/cropview/internal/viewer"
	"github.com/example/cropview/internal/viewport"
)

// panStep is the distance in pixels the arrow keys pan the view.
const panStep = 10

// session is the window-independent part of the crop screen. All methods run
// on the event loop goroutine.
type session struct {
	app   *AppState
	view  *viewer.View
	ctrl  *interaction.Controller
	rects []*highlight.Highlight
	keys  *keymap

	width, height int
	pressed       bool
	dirty         bool
}

func newSession(a *AppState) (*session, error) {
	if a.Image == nil {
		return nil, fmt.Errorf("no image to crop")
	}
	s := &session{app: a, keys: newKeymap()}
	s.view = viewer.New(
		viewer.WithMaxZoom(a.View.MaxZoom),
		viewer.WithAnimation(time.Duration(a.View.AnimationMS)*time.Millisecond),
	)
	reactor := viewport.New(s.view,
		viewport.WithFillFraction(a.View.FillFraction),
		viewport.WithZoomThreshold(a.View.ZoomThreshold),
		viewport.WithMinZoom(a.View.MinZoom),
		viewport.WithLogger(a.logger),
	)
	s.ctrl = interaction.New(s.view, a,
		interaction.WithReactor(reactor),
		interaction.WithRedraw(func() { s.dirty = true }),
		interaction.WithLogger(a.logger),
	)
	s.view.SetOnChange(s.ctrl.SyncTransform)
	s.view.SetImage(a.Image.Bounds())

	var p preset.Preset
	if a.Preset != nil {
		p = *a.Preset
	}
	if p.Aspect == "" {
		p.Aspect = a.Crop.Aspect
	}
	rects, err := p.Highlights(a.Image.Bounds(),
		highlight.WithMinSize(a.Crop.MinSize),
		highlight.WithHitTolerance(a.Crop.HitTolerance),
	)
	if err != nil {
		return nil, fmt.Errorf("crop rectangles: %w", err)
	}
	s.rects = rects
	for _, r := range rects {
		s.ctrl.AddRectangle(r)
	}
	if len(rects) > 1 {
		a.SetPickModeActive(true)
	}
	if len(rects) == 1 && !a.PickModeActive() {
		rects[0].SetFocused(true)
		a.selected = rects[0]
	}
	s.registerActions()
	return s, nil
}

func (s *session) registerActions() {
	s.keys.register("pick", "P:pick", shortcutList{{Rune: 'p'}}, func() bool {
		s.pick()
		return false
	})
	s.keys.register("zoomin", "+/-:zoom", shortcutList{{Rune: '+'}, {Rune: '='}, {Code: key.CodeKeypadPlusSign}}, func() bool {
		s.view.ZoomIn()
		return false
	})
	s.keys.register("zoomout", "", shortcutList{{Rune: '-'}, {Code: key.CodeKeypadHyphenMinus}}, func() bool {
		s.view.ZoomOut()
		return false
	})
	s.keys.register("reset", "0:fit", shortcutList{{Rune: '0'}}, func() bool {
		s.view.Reset(true)
		return false
	})
	pan := func(dx, dy float64) func() bool {
		return func() bool {
			s.view.PanBy(dx, dy)
			s.view.Recenter(false)
			return false
		}
	}
	s.keys.register("left", "", shortcutList{{Code: key.CodeLeftArrow}}, pan(panStep, 0))
	s.keys.register("right", "", shortcutList{{Code: key.CodeRightArrow}}, pan(-panStep, 0))
	s.keys.register("up", "", shortcutList{{Code: key.CodeUpArrow}}, pan(0, panStep))
	s.keys.register("down", "", shortcutList{{Code: key.CodeDownArrow}}, pan(0, -panStep))
	s.keys.register("commit", "Enter:crop", shortcutList{{Code: key.CodeReturnEnter}, {Code: key.CodeKeypadEnter}}, s.commit)
	s.keys.register("quit", "Esc:quit", shortcutList{{Code: key.CodeEscape}, {Rune: 'q'}}, func() bool {
		return true
	})
}

// pick shows every rectangle again and lets the user choose one.
func (s *session) pick() {
	if s.app.SavingInProgress() {
		return
	}
	for _, r := range s.rects {
		r.SetHidden(false)
		r.SetFocused(false)
		r.SetMode(highlight.ModeNone)
	}
	s.app.SetPickModeActive(true)
	s.dirty = true
}

// commit confirms the selected crop. It reports whether the window should
// close.
func (s *session) commit() bool {
	if s.app.SavingInProgress() || s.app.PickModeActive() {
		return false
	}
	target := s.app.selected
	if target == nil {
		for _, r := range s.rects {
			if !r.Hidden() {
				target = r
				break
			}
		}
	}
	if target == nil {
		return false
	}
	s.app.commit(target)
	return true
}

// resize lays the view out for a window of w by h pixels.
func (s *session) resize(w, h int) {
	s.width, s.height = w, h
	vh := h - render.StatusHeight
	if vh < 0 {
		vh = 0
	}
	s.view.Layout(w, vh)
	s.ctrl.Layout()
	s.dirty = true
}

// mouse feeds a mouse event to the controller. Motion only counts while the
// left button is held.
func (s *session) mouse(e mouse.Event) {
	x, y := float64(e.X), float64(e.Y)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		s.pressed = true
		s.ctrl.HandlePointerEvent(interaction.EventDown, x, y)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		s.pressed = false
		s.ctrl.HandlePointerEvent(interaction.EventUp, x, y)
	case e.Direction == mouse.DirNone && s.pressed:
		s.ctrl.HandlePointerEvent(interaction.EventMove, x, y)
	case e.Button == mouse.ButtonWheelUp:
		s.view.ZoomTo(s.view.TargetScale()*viewer.ZoomStep, x, y, false)
	case e.Button == mouse.ButtonWheelDown:
		s.view.ZoomTo(s.view.TargetScale()/viewer.ZoomStep, x, y, false)
		s.view.Recenter(false)
	}
}

// key runs the action bound to e and reports whether the window should close.
func (s *session) key(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	name, ok := s.keys.lookup(e)
	if !ok {
		return false
	}
	s.app.logger.Debug("key action", "action", name)
	s.dirty = true
	return s.keys.trigger(name)
}

// tick advances a running animation.
func (s *session) tick(now time.Time) bool {
	return s.view.Step(now)
}

// takeDirty reports and clears the pending redraw flag.
func (s *session) takeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// status returns the text shown in the status bar.
func (s *session) status() string {
	var mode string
	switch {
	case s.app.SavingInProgress():
		mode = "saving"
	case s.app.PickModeActive():
		mode = "pick a rectangle"
	default:
		mode = s.ctrl.State().String()
	}
	text := fmt.Sprintf("%s  zoom %.0f%%", mode, s.view.Scale()*100)
	if r, ok := s.app.Selected(); ok {
		text += "  " + notify.Describe(r)
	}
	return text + "  " + s.keys.helpText()
}

// snapshot captures what the paint goroutine needs to draw one frame.
func (s *session) snapshot() paintState {
	st := paintState{
		width:     s.width,
		height:    s.height,
		img:       s.app.Image,
		transform: s.view.ImageTransform(),
		theme:     s.app.Theme,
		status:    s.status(),
	}
	for _, r := range s.rects {
		if r.Hidden() {
			continue
		}
		st.boxes = append(st.boxes, render.Box{
			Rect:    r.DrawRect(),
			Focused: r.Focused(),
			Grow:    r.Mode() == highlight.ModeGrow,
		})
	}
	return st
}
