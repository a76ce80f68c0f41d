package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/cropview/internal/theme"
)

// Crop holds the rectangle model settings.
type Crop struct {
	Aspect       string // "W:H", a ratio, or empty for free resizing
	MinSize      float64
	HitTolerance float64
}

// View holds the viewer and viewport settings.
type View struct {
	FillFraction  float64
	ZoomThreshold float64
	MinZoom       float64
	MaxZoom       float64
	AnimationMS   int
}

// Notify holds notification settings.
type Notify struct {
	Select bool
	Commit bool
}

// Config holds the application configuration.
type Config struct {
	Theme  string
	Crop   Crop
	View   View
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Crop: Crop{
			MinSize:      1,
			HitTolerance: 20,
		},
		View: View{
			FillFraction:  0.6,
			ZoomThreshold: 0.1,
			MinZoom:       1,
			MaxZoom:       8,
			AnimationMS:   300,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[crop]\n")
	if c.Crop.Aspect != "" {
		fmt.Fprintf(&sb, "aspect = %s\n", c.Crop.Aspect)
	}
	fmt.Fprintf(&sb, "min_size = %s\n", formatFloat(c.Crop.MinSize))
	fmt.Fprintf(&sb, "hit_tolerance = %s\n", formatFloat(c.Crop.HitTolerance))
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "fill_fraction = %s\n", formatFloat(c.View.FillFraction))
	fmt.Fprintf(&sb, "zoom_threshold = %s\n", formatFloat(c.View.ZoomThreshold))
	fmt.Fprintf(&sb, "min_zoom = %s\n", formatFloat(c.View.MinZoom))
	fmt.Fprintf(&sb, "max_zoom = %s\n", formatFloat(c.View.MaxZoom))
	fmt.Fprintf(&sb, "animation_ms = %d\n", c.View.AnimationMS)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "select = %v\n", c.Notify.Select)
	fmt.Fprintf(&sb, "commit = %v\n", c.Notify.Commit)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
