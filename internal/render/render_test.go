package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/cropview/internal/geom"
	"github.com/example/cropview/internal/theme"
)

func testColors() Colors {
	th := theme.Default()
	return Colors{
		Dim:            color.RGBA{0, 0, 0, 128},
		Outline:        th.Outline,
		OutlineFocused: th.OutlineFocused,
		Handle:         th.Handle,
		HandleBorder:   th.HandleBorder,
	}
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestOverlayDimsOutsideBoxes(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	fill(dst, white)
	boxes := []Box{{Rect: image.Rect(20, 20, 60, 60)}}
	Overlay(dst, dst.Bounds(), boxes, testColors())

	if got := dst.RGBAAt(40, 40); got != white {
		t.Fatalf("inside pixel changed to %v", got)
	}
	if got := dst.RGBAAt(80, 80); got.R >= 255 || got.R < 100 {
		t.Fatalf("outside pixel = %v, want dimmed", got)
	}
}

func TestOverlayFocusedHasHandles(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	c := testColors()
	c.Dim = color.RGBA{}
	box := image.Rect(20, 20, 80, 80)
	Overlay(dst, dst.Bounds(), []Box{{Rect: box, Focused: true}}, c)

	// Centre of the top-left handle.
	if got := dst.RGBAAt(20, 20); got != c.Handle {
		t.Fatalf("handle pixel = %v, want %v", got, c.Handle)
	}
	// Outline away from any handle.
	if got := dst.RGBAAt(35, 20); got != c.OutlineFocused {
		t.Fatalf("outline pixel = %v, want %v", got, c.OutlineFocused)
	}
}

func TestHandleRects(t *testing.T) {
	hs := HandleRects(image.Rect(0, 0, 100, 50))
	if len(hs) != 8 {
		t.Fatalf("got %d handles", len(hs))
	}
	if hs[0] != image.Rect(-5, -5, 5, 5) {
		t.Errorf("top-left handle = %v", hs[0])
	}
	if hs[5] != image.Rect(95, 20, 105, 30) {
		t.Errorf("right handle = %v", hs[5])
	}
}

func TestDropShadowBlurs(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	r := image.Rect(10, 10, 30, 30)
	DropShadow(dst, r, ShadowOptions{Radius: 4, Offset: image.Pt(6, 6)}, color.RGBA{0, 0, 0, 255})

	if dst.RGBAAt(25, 25).A == 0 {
		t.Fatal("expected shadow inside the offset rectangle")
	}
	// Just outside the hard shadow edge the blur still leaves some alpha.
	if a := dst.RGBAAt(37, 25).A; a == 0 || a == 255 {
		t.Fatalf("expected partial alpha at the blurred edge, got %d", a)
	}
	if dst.RGBAAt(55, 5).A != 0 {
		t.Fatal("shadow leaked far from the rectangle")
	}
}

func TestDropShadowOffscreen(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DropShadow(dst, image.Rect(500, 500, 600, 600), DefaultShadowOptions(), color.RGBA{A: 255})
	for _, p := range dst.Pix {
		if p != 0 {
			t.Fatal("offscreen shadow touched dst")
		}
	}
}

func TestCanvasDrawsImage(t *testing.T) {
	th := theme.Default()
	th.Shadow = color.RGBA{}
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{255, 0, 0, 255}
	fill(src, red)

	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	onScreen := Canvas(dst, src, geom.Translation(5, 5), th)
	if onScreen != image.Rect(5, 5, 15, 15) {
		t.Fatalf("image rect = %v", onScreen)
	}
	if got := dst.RGBAAt(10, 10); got != red {
		t.Fatalf("image pixel = %v", got)
	}
	if got := dst.RGBAAt(30, 30); got != th.Background {
		t.Fatalf("background pixel = %v", got)
	}
}

func TestStatusBar(t *testing.T) {
	th := theme.Default()
	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	StatusBar(dst, "zoom 100%", th)
	if got := dst.RGBAAt(199, 99); got != th.StatusBackground {
		t.Fatalf("status corner = %v", got)
	}
	if got := dst.RGBAAt(199, 50); got == th.StatusBackground {
		t.Fatal("status bar too tall")
	}
}
