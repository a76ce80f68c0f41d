package geom

import (
	"image"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestThenAppliesInOrder(t *testing.T) {
	m := Scaling(2, 2).Then(Translation(10, 5))
	x, y := m.MapPoint(3, 4)
	if !almostEqual(x, 16) || !almostEqual(y, 13) {
		t.Fatalf("got (%v, %v), want (16, 13)", x, y)
	}
}

func TestPostScaleKeepsPivotFixed(t *testing.T) {
	m := Identity().PostScale(3, 50, 40)
	x, y := m.MapPoint(50, 40)
	if !almostEqual(x, 50) || !almostEqual(y, 40) {
		t.Fatalf("pivot moved to (%v, %v)", x, y)
	}
	if m.ScaleX() != 3 || m.ScaleY() != 3 {
		t.Fatalf("unexpected scale %v,%v", m.ScaleX(), m.ScaleY())
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Scaling(1.5, 1.5).PostTranslate(-20, 30)
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("expected invertible matrix")
	}
	x, y := m.MapPoint(7, 9)
	bx, by := inv.MapPoint(x, y)
	if !almostEqual(bx, 7) || !almostEqual(by, 9) {
		t.Fatalf("round trip gave (%v, %v)", bx, by)
	}
	if _, ok := Scaling(0, 1).Invert(); ok {
		t.Fatal("singular matrix reported invertible")
	}
}

func TestMapRectAndRound(t *testing.T) {
	r := Scaling(2, 2).PostTranslate(1, 1).MapRect(R(0, 0, 10, 5))
	if got, want := r.Round(), image.Rect(1, 1, 21, 11); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLerpClamps(t *testing.T) {
	a, b := Identity(), Translation(10, 0)
	if got := a.Lerp(b, 0.5).TransX(); !almostEqual(got, 5) {
		t.Fatalf("midpoint trans %v", got)
	}
	if a.Lerp(b, 2) != b || a.Lerp(b, -1) != a {
		t.Fatal("lerp should clamp to endpoints")
	}
}
