package highlight

import (
	"math"
	"testing"

	"github.com/example/cropview/internal/geom"
)

var imageBounds = geom.R(0, 0, 1000, 1000)

func TestHitTest(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 300, 300))
	tests := []struct {
		name string
		x, y float64
		want HitPosition
	}{
		{"left edge", 100, 200, GrowLeft},
		{"right edge within tolerance", 315, 200, GrowRight},
		{"top edge", 200, 105, GrowTop},
		{"bottom edge", 200, 290, GrowBottom},
		{"top left corner", 95, 95, GrowLeft | GrowTop},
		{"bottom right corner", 310, 305, GrowRight | GrowBottom},
		{"body", 200, 200, Move},
		{"outside", 500, 500, HitNone},
		{"above the tolerance band", 200, 50, HitNone},
		{"beside an edge but past its extent", 100, 400, HitNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := h.HitTest(tc.x, tc.y); got != tc.want {
				t.Fatalf("HitTest(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestHitTestHiddenIsNone(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 300, 300))
	h.SetHidden(true)
	if got := h.HitTest(200, 200); got != HitNone {
		t.Fatalf("hidden rectangle hit %v", got)
	}
}

func TestHitTestNarrowPicksCloserEdge(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 110, 200))
	if got := h.HitTest(107, 150); got != GrowRight {
		t.Fatalf("got %v, want right", got)
	}
	if got := h.HitTest(102, 150); got != GrowLeft {
		t.Fatalf("got %v, want left", got)
	}
}

func TestHitTestUsesDrawRect(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 300, 300))
	h.SetMatrix(geom.Scaling(2, 2))
	if got := h.HitTest(400, 400); got != Move {
		t.Fatalf("got %v, want move under 2x zoom", got)
	}
	if got := h.HitTest(600, 400); got != GrowRight {
		t.Fatalf("got %v, want right edge at screen x=600", got)
	}
}

func TestApplyMotionMoveClampsToImage(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 300, 300))
	h.ApplyMotion(Move, -500, 40)
	if got, want := h.CropRect(), geom.R(0, 140, 200, 340); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	h.ApplyMotion(Move, 5000, 5000)
	if got, want := h.CropRect(), geom.R(800, 800, 1000, 1000); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyMotionConvertsScreenDeltas(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 300, 300))
	h.SetMatrix(geom.Scaling(2, 2))
	h.ApplyMotion(GrowRight, 20, 0)
	if got := h.CropRect().MaxX; got != 310 {
		t.Fatalf("MaxX = %v, want 310", got)
	}
}

func TestApplyMotionResizesFromEdge(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 300, 300))
	h.ApplyMotion(GrowLeft|GrowTop, -30, 20)
	if got, want := h.CropRect(), geom.R(70, 120, 300, 300); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	// A vertical delta on a side handle is ignored.
	h.ApplyMotion(GrowRight, 10, 500)
	if got, want := h.CropRect(), geom.R(70, 120, 310, 300); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyMotionNeverInverts(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 300, 300), WithMinSize(10))
	h.ApplyMotion(GrowRight|GrowBottom, -1000, -1000)
	r := h.CropRect()
	if r.Dx() != 10 || r.Dy() != 10 {
		t.Fatalf("expected clamp to minimum size, got %v", r)
	}
	h.ApplyMotion(GrowLeft, 5000, 0)
	if r := h.CropRect(); r.Dx() != 10 || r.MinX != 100 {
		t.Fatalf("left edge crossed right edge: %v", r)
	}
}

func TestApplyMotionSequenceStaysInBounds(t *testing.T) {
	handles := []HitPosition{
		GrowLeft, GrowRight, GrowTop, GrowBottom,
		GrowLeft | GrowTop, GrowRight | GrowTop, GrowLeft | GrowBottom, GrowRight | GrowBottom,
		Move,
	}
	deltas := []float64{-900, -250, -33.5, -1, 0, 0.25, 7, 120, 2000}
	for _, locked := range []bool{false, true} {
		opts := []Option{WithMinSize(1)}
		if locked {
			opts = append(opts, WithFixedAspect())
		}
		h := New(imageBounds, geom.R(200, 300, 600, 500), opts...)
		aspect := h.CropRect().Dx() / h.CropRect().Dy()
		for i, hit := range handles {
			for j, dx := range deltas {
				dy := deltas[(i+j*3)%len(deltas)]
				h.ApplyMotion(hit, dx, dy)
				r := h.CropRect()
				if r.Dx() < 1 || r.Dy() < 1 {
					t.Fatalf("locked=%v: %v (%v,%v) shrank below minimum: %v", locked, hit, dx, dy, r)
				}
				if r.MinX < 0 || r.MinY < 0 || r.MaxX > 1000 || r.MaxY > 1000 {
					t.Fatalf("locked=%v: %v (%v,%v) left the image: %v", locked, hit, dx, dy, r)
				}
				if locked && math.Abs(r.Dx()/r.Dy()-aspect) > 1e-9 {
					t.Fatalf("aspect drifted to %v after %v (%v,%v)", r.Dx()/r.Dy(), hit, dx, dy)
				}
			}
		}
	}
}

func TestApplyMotionZeroDeltaIsIdentity(t *testing.T) {
	for _, locked := range []bool{false, true} {
		var opts []Option
		if locked {
			opts = append(opts, WithFixedAspect())
		}
		h := New(imageBounds, geom.R(123.25, 47.5, 401.75, 333.125), opts...)
		h.SetMatrix(geom.Scaling(1.7, 1.7).PostTranslate(-13, 22))
		before := h.CropRect()
		for _, hit := range []HitPosition{Move, GrowLeft | GrowBottom, GrowTop} {
			h.ApplyMotion(hit, 0, 0)
		}
		if got := h.CropRect(); got != before {
			t.Fatalf("locked=%v: zero deltas changed %v to %v", locked, before, got)
		}
	}
}

func TestApplyMotionAspectSideHandleCentersOtherAxis(t *testing.T) {
	h := New(imageBounds, geom.R(100, 100, 200, 150), WithFixedAspect())
	h.ApplyMotion(GrowRight, 100, 0)
	if got, want := h.CropRect(), geom.R(100, 75, 300, 175); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyMotionAspectStopsAtImageEdge(t *testing.T) {
	h := New(imageBounds, geom.R(600, 800, 800, 900), WithFixedAspect())
	h.ApplyMotion(GrowRight|GrowBottom, 1000, 1000)
	r := h.CropRect()
	if r.MaxY != 1000 || r.Dx() != 400 || r.MinX != 600 {
		t.Fatalf("expected growth limited by bottom edge, got %v", r)
	}
}

func TestNewClampsIntoImage(t *testing.T) {
	h := New(geom.R(0, 0, 100, 100), geom.R(80, -10, 150, 5), WithMinSize(10))
	if got, want := h.CropRect(), geom.R(30, 0, 100, 15); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNewOversizeKeepsLockedAspect(t *testing.T) {
	h := New(geom.R(0, 0, 100, 100), geom.R(0, 0, 300, 150), WithFixedAspect())
	if got, want := h.CropRect(), geom.R(0, 0, 100, 50); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if h.Aspect() != 2 {
		t.Fatalf("aspect = %v, want 2", h.Aspect())
	}
	h.SetMatrix(geom.Identity())
	h.ApplyMotion(GrowRight, -10, 0)
	r := h.CropRect()
	if math.Abs(r.Dx()/r.Dy()-2) > 1e-9 {
		t.Fatalf("ratio after drag = %v, want 2", r.Dx()/r.Dy())
	}
}
