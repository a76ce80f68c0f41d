// Package preset reads and writes the initial crop rectangles for an image.
package preset

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/cropview/internal/geom"
	"github.com/example/cropview/internal/highlight"
)

// Version is written into new preset files.
const Version = "1"

// Preset is a list of crop rectangles with an optional locked aspect ratio.
type Preset struct {
	Version string      `yaml:"version"`
	Aspect  string      `yaml:"aspect,omitempty"` // "16:9" or a plain ratio such as "1.5"
	Rects   []Rectangle `yaml:"rects"`
}

// Rectangle is a crop rectangle in image pixels.
type Rectangle struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Rect converts r to an image rectangle.
func (r Rectangle) Rect() image.Rectangle { return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H) }

// FromRect converts an image rectangle.
func FromRect(r image.Rectangle) Rectangle {
	return Rectangle{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Read loads a preset from a YAML file.
func Read(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if _, err := ParseAspect(p.Aspect); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	for i, r := range p.Rects {
		if r.W <= 0 || r.H <= 0 {
			return nil, fmt.Errorf("preset %s: rect %d has empty size %dx%d", path, i, r.W, r.H)
		}
	}
	return &p, nil
}

// Write saves p as YAML.
func Write(p *Preset, path string) error {
	if p.Version == "" {
		p.Version = Version
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseAspect parses "W:H" or a decimal ratio. An empty string or "0" means
// no locked aspect and returns zero.
func ParseAspect(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if w, h, ok := strings.Cut(s, ":"); ok {
		x, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid aspect %q: %w", s, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid aspect %q: %w", s, err)
		}
		if x <= 0 || y <= 0 {
			return 0, fmt.Errorf("invalid aspect %q: sides must be positive", s)
		}
		return x / y, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid aspect %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid aspect %q: must not be negative", s)
	}
	return v, nil
}

// Default returns a rectangle centred in bounds whose longer side is four
// fifths of the shorter image side. A non-zero aspect shortens the other side.
func Default(bounds image.Rectangle, aspect float64) image.Rectangle {
	side := min(bounds.Dx(), bounds.Dy()) * 4 / 5
	w, h := side, side
	switch {
	case aspect > 1:
		h = int(float64(w) / aspect)
	case aspect > 0 && aspect < 1:
		w = int(float64(h) * aspect)
	}
	w, h = max(w, 1), max(h, 1)
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// fitAspect shrinks r around its centre until it has the given ratio.
func fitAspect(r geom.Rect, aspect float64) geom.Rect {
	if aspect <= 0 || r.Empty() {
		return r
	}
	w, h := r.Dx(), r.Dy()
	if w/h > aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}
	cx, cy := r.CenterX(), r.CenterY()
	return geom.R(cx-w/2, cy-h/2, cx+w/2, cy+h/2)
}

// Highlights builds rectangle models for every preset rectangle inside an
// image with the given bounds. An empty preset yields the Default rectangle.
func (p *Preset) Highlights(bounds image.Rectangle, opts ...highlight.Option) ([]*highlight.Highlight, error) {
	aspect, err := ParseAspect(p.Aspect)
	if err != nil {
		return nil, err
	}
	rects := make([]image.Rectangle, 0, len(p.Rects))
	for _, r := range p.Rects {
		rects = append(rects, r.Rect())
	}
	if len(rects) == 0 {
		rects = append(rects, Default(bounds, aspect))
	}
	if aspect > 0 {
		opts = append(opts, highlight.WithFixedAspect())
	}
	img := geom.FromImage(bounds)
	out := make([]*highlight.Highlight, 0, len(rects))
	for _, r := range rects {
		out = append(out, highlight.New(img, fitAspect(geom.FromImage(r), aspect), opts...))
	}
	return out, nil
}
