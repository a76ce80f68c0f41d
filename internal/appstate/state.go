package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/cropview/internal/render"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a frame is forced to finish rendering.
const frameDropThreshold = 10

// frameInterval is the delay between animation frames.
const frameInterval = 16 * time.Millisecond

const (
	maxWindowWidth  = 1280
	maxWindowHeight = 800
)

// tickEvent asks the event loop to advance a running animation.
type tickEvent struct{}

// Run opens the crop window and blocks until it is closed.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window event loop on s.
func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()

	sess, err := newSession(a)
	if err != nil {
		log.Printf("crop view: %v", err)
		return
	}

	width, height := windowSize(a.Image.Bounds())
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	var ticking bool
	schedule := func() {
		if ticking || !sess.view.Animating() {
			return
		}
		ticking = true
		time.AfterFunc(frameInterval, func() { w.Send(tickEvent{}) })
	}
	refresh := func() {
		if sess.takeDirty() {
			w.Send(paint.Event{})
		}
		schedule()
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			sess.resize(e.WidthPx, e.HeightPx)
			refresh()
		case tickEvent:
			ticking = false
			if sess.tick(time.Now()) {
				sess.dirty = true
			}
			refresh()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			st := sess.snapshot()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			sess.mouse(e)
			refresh()
		case key.Event:
			if sess.key(e) {
				return
			}
			refresh()
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// windowSize fits the image, capped to a comfortable size, above the status
// bar.
func windowSize(b image.Rectangle) (int, int) {
	w, h := b.Dx(), b.Dy()
	if w > maxWindowWidth || h > maxWindowHeight {
		s := min(float64(maxWindowWidth)/float64(w), float64(maxWindowHeight)/float64(h))
		w, h = int(float64(w)*s), int(float64(h)*s)
	}
	return max(w, 320), max(h, 200) + render.StatusHeight
}
