package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/example/cropview/internal/appstate"
	"github.com/example/cropview/internal/notify"
	"github.com/example/cropview/internal/preset"
	"github.com/example/cropview/internal/source"
)

// Image sources and the window runner, replaced in tests.
var (
	loadImageFn = source.Load
	clipboardFn = source.Clipboard
	grabFn      = source.Grab
	runWindowFn = func(st *appstate.AppState) { st.Run() }
)

var errCanceled = errors.New("crop canceled")

// cropCmd opens an image in the crop window. open, clipboard and grab only
// differ in where the image comes from.
type cropCmd struct {
	*root
	name   string
	fs     *flag.FlagSet
	load   func(ctx context.Context) (*image.RGBA, string, error)
	stdout io.Writer

	rectsPath string
	aspect    string
	pick      bool
	display   string
}

func (c *cropCmd) Program() string        { return c.root.subcommand(c.name) }
func (c *cropCmd) FlagSet() *flag.FlagSet { return c.fs }

func newCropCmd(name string, r *root) *cropCmd {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	c := &cropCmd{root: r, name: name, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.rectsPath, "rects", "", "YAML preset with the initial crop rectangles")
	fs.StringVar(&c.aspect, "aspect", "", "fixed aspect ratio such as 16:9 (overrides config)")
	fs.BoolVar(&c.pick, "pick", false, "start by picking one of the rectangles")
	return c
}

func parseOpenCmd(args []string, r *root) (*cropCmd, error) {
	c := newCropCmd("open", r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	src := c.fs.Arg(0)
	c.load = func(ctx context.Context) (*image.RGBA, string, error) {
		img, err := loadImageFn(ctx, src)
		if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", src, err)
		}
		return img, filepath.Base(src), nil
	}
	return c, nil
}

func parseClipboardCmd(args []string, r *root) (*cropCmd, error) {
	c := newCropCmd("clipboard", r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	c.load = func(context.Context) (*image.RGBA, string, error) {
		img, err := clipboardFn()
		if err != nil {
			return nil, "", fmt.Errorf("read clipboard: %w", err)
		}
		return img, "clipboard", nil
	}
	return c, nil
}

func parseGrabCmd(args []string, r *root) (*cropCmd, error) {
	c := newCropCmd("grab", r)
	c.fs.StringVar(&c.display, "display", "", "monitor to grab: primary, an index, or part of the output name")
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	c.load = func(context.Context) (*image.RGBA, string, error) {
		img, err := grabFn(c.display)
		if err != nil {
			return nil, "", fmt.Errorf("grab screen: %w", err)
		}
		return img, "screen", nil
	}
	return c, nil
}

// loadPreset reads the rectangles file and applies the aspect ratio flag.
func (c *cropCmd) loadPreset() (*preset.Preset, error) {
	p := &preset.Preset{}
	if c.rectsPath != "" {
		var err error
		if p, err = preset.Read(c.rectsPath); err != nil {
			return nil, err
		}
	}
	if c.aspect != "" {
		if _, err := preset.ParseAspect(c.aspect); err != nil {
			return nil, fmt.Errorf("-aspect: %w", err)
		}
		p.Aspect = c.aspect
	}
	return p, nil
}

func (c *cropCmd) Run() error {
	p, err := c.loadPreset()
	if err != nil {
		return fmt.Errorf("%s: %w", c.Program(), err)
	}
	img, title, err := c.load(context.Background())
	if err != nil {
		return fmt.Errorf("%s: %w", c.Program(), err)
	}

	var (
		crop      image.Rectangle
		committed bool
	)
	opts := []appstate.Option{
		appstate.WithImage(img),
		appstate.WithTitle(fmt.Sprintf("%s - %s", c.root.program, title)),
		appstate.WithPreset(p),
		appstate.WithCropSettings(c.root.config.Crop),
		appstate.WithViewSettings(c.root.config.View),
		appstate.WithPickMode(c.pick),
		appstate.WithOnCommit(func(r image.Rectangle) {
			crop = r
			committed = true
		}),
	}
	if c.root.activeTheme != nil {
		opts = append(opts, appstate.WithTheme(c.root.activeTheme))
	}
	if c.root.notifier != nil {
		opts = append(opts, appstate.WithNotifier(c.root.notifier))
	}
	if c.root.logger != nil {
		opts = append(opts, appstate.WithLogger(c.root.logger))
	}
	runWindowFn(appstate.New(opts...))

	if !committed {
		return errCanceled
	}
	fmt.Fprintln(c.stdout, notify.Describe(crop))
	return nil
}
