package source

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Monitor describes one output in the X11 screen layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

var errNoMonitors = errors.New("no monitors available")

// FindMonitor resolves a selector ("primary", an index, "#index" or part of
// the output name) against monitors. An empty selector picks the first one.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return monitors[0], nil
	}
	if sel == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// cropTo copies the part of img inside r, relative to the origin of img.
func cropTo(img *image.RGBA, r image.Rectangle) (*image.RGBA, error) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("monitor outside captured screen")
	}
	sub, ok := img.SubImage(r).(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected sub image type")
	}
	return ToRGBA(sub), nil
}
