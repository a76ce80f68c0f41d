package source

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.RGBA{R: 200, G: 10, B: 20, A: 255})
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	if err := os.WriteFile(path, encodePNG(t), 0644); err != nil {
		t.Fatal(err)
	}
	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 2); got.R != 200 || got.G != 10 {
		t.Fatalf("pixel = %v", got)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Fatal("expected error")
	}
}

func TestToRGBAMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 13))
	src.Set(11, 12, color.RGBA{R: 1, A: 255})
	got := ToRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if got.RGBAAt(1, 2).R != 1 {
		t.Fatal("pixel not copied")
	}
	same := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if ToRGBA(same) != same {
		t.Fatal("origin anchored RGBA should be returned as is")
	}
}

func TestLoadURL(t *testing.T) {
	data := encodePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	img, err := Load(context.Background(), srv.URL+"/img.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, err := Load(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestFindMonitor(t *testing.T) {
	mons := []Monitor{
		{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1920, 1080)},
		{Index: 1, Name: "eDP-1", Rect: image.Rect(1920, 0, 3840, 1080), Primary: true},
	}
	tests := []struct {
		sel     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"primary", 1, false},
		{"1", 1, false},
		{"#0", 0, false},
		{"edp", 1, false},
		{"5", 0, true},
		{"dp-9", 0, true},
	}
	for _, tt := range tests {
		got, err := FindMonitor(mons, tt.sel)
		if (err != nil) != tt.wantErr {
			t.Errorf("FindMonitor(%q) err = %v", tt.sel, err)
			continue
		}
		if err == nil && got.Index != tt.want {
			t.Errorf("FindMonitor(%q) = %d, want %d", tt.sel, got.Index, tt.want)
		}
	}
	if _, err := FindMonitor(nil, ""); err == nil {
		t.Error("expected error for empty list")
	}
}

func TestCropTo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	img.Set(60, 10, color.RGBA{G: 9, A: 255})
	got, err := cropTo(img, image.Rect(50, 0, 100, 50))
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != image.Rect(0, 0, 50, 50) || got.RGBAAt(10, 10).G != 9 {
		t.Fatalf("unexpected crop %v", got.Bounds())
	}
	if _, err := cropTo(img, image.Rect(200, 0, 300, 50)); err == nil {
		t.Fatal("expected error for rect outside the image")
	}
}
