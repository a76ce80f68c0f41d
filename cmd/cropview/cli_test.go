package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/cropview/internal/appstate"
	"github.com/example/cropview/internal/config"
	"github.com/example/cropview/internal/theme"
)

func testRoot() *root {
	return &root{
		fs:      flag.NewFlagSet("cropview", flag.ContinueOnError),
		program: "cropview",
		config:  config.New(),
	}
}

func stubWindow(t *testing.T) **appstate.AppState {
	t.Helper()
	var got *appstate.AppState
	original := runWindowFn
	runWindowFn = func(st *appstate.AppState) { got = st }
	t.Cleanup(func() { runWindowFn = original })
	return &got
}

func TestOpenRunLoadError(t *testing.T) {
	original := loadImageFn
	sentinel := errors.New("boom")
	loadImageFn = func(context.Context, string) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { loadImageFn = original })

	cmd, err := parseOpenCmd([]string{"missing.png"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = cmd.Run()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "cropview open: open missing.png"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestOpenRunConfiguresWindow(t *testing.T) {
	original := loadImageFn
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	loadImageFn = func(context.Context, string) (*image.RGBA, error) { return img, nil }
	t.Cleanup(func() { loadImageFn = original })
	got := stubWindow(t)

	r := testRoot()
	r.activeTheme = theme.Default()
	cmd, err := parseOpenCmd([]string{"-aspect", "16:9", "-pick", "dir/photo.png"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, errCanceled) {
		t.Fatalf("expected cancel without commit, got %v", err)
	}
	st := *got
	if st == nil {
		t.Fatalf("window not run")
	}
	if st.Image != img {
		t.Fatalf("window shows a different image")
	}
	if st.Title != "cropview - photo.png" {
		t.Fatalf("title %q", st.Title)
	}
	if st.Preset.Aspect != "16:9" {
		t.Fatalf("aspect %q", st.Preset.Aspect)
	}
	if !st.PickModeActive() {
		t.Fatalf("pick mode not requested")
	}
}

func TestCropRejectsBadAspect(t *testing.T) {
	cmd, err := parseClipboardCmd([]string{"-aspect", "wide"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	called := false
	original := clipboardFn
	clipboardFn = func() (*image.RGBA, error) { called = true; return nil, nil }
	t.Cleanup(func() { clipboardFn = original })
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "-aspect") {
		t.Fatalf("expected aspect error, got %v", err)
	}
	if called {
		t.Fatalf("clipboard read before flags were validated")
	}
}

func TestGrabPassesDisplay(t *testing.T) {
	original := grabFn
	var display string
	grabFn = func(d string) (*image.RGBA, error) {
		display = d
		return nil, errors.New("no X server")
	}
	t.Cleanup(func() { grabFn = original })

	cmd, err := parseGrabCmd([]string{"-display", "primary"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "grab screen") {
		t.Fatalf("expected grab error, got %v", err)
	}
	if display != "primary" {
		t.Fatalf("display %q", display)
	}
}

func TestOpenNeedsOneArgument(t *testing.T) {
	_, err := parseOpenCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "cropview open") || !strings.Contains(help, "-rects") {
		t.Fatalf("help text missing details:\n%s", help)
	}
}

func TestRootUsage(t *testing.T) {
	r := newRoot()
	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "clipboard") || !strings.Contains(help, "-theme") {
		t.Fatalf("root help incomplete:\n%s", help)
	}
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.rc")
	rc := "theme = light\n\n[notify]\nselect = true\ncommit = true\n"
	if err := os.WriteFile(path, []byte(rc), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CROPVIEW_THEME", "")

	r := newRoot()
	if err := r.fs.Parse([]string{"-config", path, "-notify-commit=false", "version"}); err != nil {
		t.Fatal(err)
	}
	r.loadConfig()
	if !r.selectAlerts {
		t.Fatalf("select alerts should come from config")
	}
	if r.commitAlerts {
		t.Fatalf("command line should override config")
	}
	if got := r.resolveTheme().Name; !strings.EqualFold(got, "light") {
		t.Fatalf("theme %q want light", got)
	}

	t.Setenv("CROPVIEW_THEME", "contrast")
	if got := r.resolveTheme().Name; !strings.EqualFold(got, "contrast") {
		t.Fatalf("env theme %q want contrast", got)
	}
	r.themeName = "default"
	if got := r.resolveTheme().Name; got != theme.Default().Name {
		t.Fatalf("flag theme %q want default", got)
	}
}

func TestUnknownThemeFallsBack(t *testing.T) {
	r := testRoot()
	r.themeName = "no-such-theme"
	if got := r.resolveTheme().Name; got != theme.Default().Name {
		t.Fatalf("theme %q want default", got)
	}
}
