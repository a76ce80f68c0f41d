package viewer

import (
	"image"
	"testing"
	"time"
)

func newView(opts ...Option) *View {
	v := New(opts...)
	v.Layout(400, 400)
	v.SetImage(image.Rect(0, 0, 200, 100))
	return v
}

func TestFitCentresImage(t *testing.T) {
	v := newView()
	x, y := v.ImageTransform().MapPoint(0, 0)
	if x != 0 || y != 100 {
		t.Fatalf("origin maps to (%v,%v), want (0,100)", x, y)
	}
	x, y = v.ImageTransform().MapPoint(200, 100)
	if x != 400 || y != 300 {
		t.Fatalf("corner maps to (%v,%v), want (400,300)", x, y)
	}
	if v.Scale() != 1 {
		t.Fatalf("scale = %v", v.Scale())
	}
}

func TestZoomToKeepsPivot(t *testing.T) {
	v := newView()
	v.ZoomTo(2, 200, 200, false)
	if v.Scale() != 2 {
		t.Fatalf("scale = %v", v.Scale())
	}
	x, y := v.ImageTransform().MapPoint(100, 50)
	if x != 200 || y != 200 {
		t.Fatalf("pivot moved to (%v,%v)", x, y)
	}
}

func TestRecenterRemovesGap(t *testing.T) {
	v := newView()
	v.ZoomTo(2, 200, 200, false)
	v.PanBy(-300, 0)
	x, _ := v.ImageTransform().MapPoint(0, 0)
	if x != -500 {
		t.Fatalf("after pan x = %v, want -500", x)
	}
	v.Recenter(false)
	x, _ = v.ImageTransform().MapPoint(0, 0)
	if x != -400 {
		t.Fatalf("after recenter x = %v, want -400", x)
	}
}

func TestZoomIsClamped(t *testing.T) {
	v := newView(WithMaxZoom(4))
	v.ZoomTo(100, 200, 200, false)
	if v.Scale() != 4 {
		t.Fatalf("scale = %v, want 4", v.Scale())
	}
	v.ZoomTo(0.25, 200, 200, false)
	if v.Scale() != 1 {
		t.Fatalf("scale = %v, want 1", v.Scale())
	}
	x, y := v.ImageTransform().MapPoint(0, 0)
	if x != 0 || y != 100 {
		t.Fatalf("zooming out should recentre, origin at (%v,%v)", x, y)
	}
}

func TestZoomSteps(t *testing.T) {
	v := newView()
	v.ZoomOut()
	if v.Scale() != 1 {
		t.Fatalf("zoom out below fit: %v", v.Scale())
	}
	v.ZoomIn()
	if v.Scale() != ZoomStep {
		t.Fatalf("scale = %v, want %v", v.Scale(), ZoomStep)
	}
	v.Reset(false)
	if v.Scale() != 1 {
		t.Fatalf("reset scale = %v", v.Scale())
	}
}

func TestAnimatedZoom(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	v := newView(WithClock(func() time.Time { return now }))
	v.ZoomTo(2, 200, 200, true)
	if !v.Animating() || v.Scale() != 1 {
		t.Fatalf("animating %v scale %v", v.Animating(), v.Scale())
	}
	if !v.Step(start.Add(150 * time.Millisecond)) {
		t.Fatal("animation ended early")
	}
	if v.Scale() != 1.5 {
		t.Fatalf("midway scale = %v, want 1.5", v.Scale())
	}
	if v.Step(start.Add(DefaultAnimation)) {
		t.Fatal("animation should be done")
	}
	if v.Scale() != 2 || v.Animating() {
		t.Fatalf("final scale %v animating %v", v.Scale(), v.Animating())
	}
}

func TestRecenterDuringAnimationTargetsEnd(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := newView(WithClock(func() time.Time { return start }))
	v.ZoomTo(2, 200, 200, true)
	v.Recenter(true)
	v.Step(start.Add(time.Second))
	if v.Scale() != 2 {
		t.Fatalf("scale = %v, want 2", v.Scale())
	}
}

func TestOnChange(t *testing.T) {
	calls := 0
	v := newView(WithOnChange(func() { calls++ }))
	calls = 0
	v.Recenter(false)
	if calls != 0 {
		t.Fatalf("centred image should not change, got %d calls", calls)
	}
	v.PanBy(0, 0)
	if calls != 0 {
		t.Fatal("zero pan should not notify")
	}
	v.PanBy(10, 0)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestScreenToImage(t *testing.T) {
	v := newView()
	v.ZoomTo(2, 200, 200, false)
	x, y, ok := v.ScreenToImage(200, 200)
	if !ok || x != 100 || y != 50 {
		t.Fatalf("got (%v,%v,%v), want (100,50,true)", x, y, ok)
	}
}

func TestTargetScaleDuringAnimation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := newView(WithClock(func() time.Time { return start }))
	v.ZoomTo(2, 200, 200, true)
	if v.Scale() != 1 || v.TargetScale() != 2 {
		t.Fatalf("scale %v target %v, want 1 and 2", v.Scale(), v.TargetScale())
	}
	v.ZoomIn()
	if v.Scale() != 2.5 {
		t.Fatalf("zoom in during animation gave %v, want 2.5", v.Scale())
	}
}
