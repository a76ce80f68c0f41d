package appstate

import (
	"image"
	"io"
	"log/slog"
	"sync"

	"github.com/example/cropview/internal/config"
	"github.com/example/cropview/internal/interaction"
	"github.com/example/cropview/internal/notify"
	"github.com/example/cropview/internal/preset"
	"github.com/example/cropview/internal/theme"
)

// AppState holds application configuration for the UI and implements
// interaction.Host.
type AppState struct {
	Image  *image.RGBA
	Title  string
	Preset *preset.Preset
	Theme  *theme.Theme
	Crop   config.Crop
	View   config.View

	notifier *notify.Notifier
	logger   *slog.Logger

	pickMode bool
	saving   bool
	selected interaction.Rectangle

	onCommit  func(image.Rectangle)
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithImage sets the image displayed by the application.
func WithImage(img *image.RGBA) Option { return func(a *AppState) { a.Image = img } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithPreset sets the initial crop rectangles.
func WithPreset(p *preset.Preset) Option { return func(a *AppState) { a.Preset = p } }

// WithTheme sets the colors used for drawing.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithCropSettings configures the rectangle model.
func WithCropSettings(c config.Crop) Option { return func(a *AppState) { a.Crop = c } }

// WithViewSettings configures zooming and animation.
func WithViewSettings(v config.View) Option { return func(a *AppState) { a.View = v } }

// WithPickMode starts the window with pick mode active.
func WithPickMode(on bool) Option { return func(a *AppState) { a.pickMode = on } }

// WithNotifier reports selections through n.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithLogger sets the logger used by the interaction core.
func WithLogger(l *slog.Logger) Option { return func(a *AppState) { a.logger = l } }

// WithOnCommit registers a callback receiving the confirmed crop rectangle.
func WithOnCommit(fn func(image.Rectangle)) Option { return func(a *AppState) { a.onCommit = fn } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	defaults := config.New()
	a := &AppState{
		Title:  "cropview",
		Preset: &preset.Preset{},
		Theme:  theme.Default(),
		Crop:   defaults.Crop,
		View:   defaults.View,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// PickModeActive reports whether the user is choosing between rectangles.
func (a *AppState) PickModeActive() bool { return a.pickMode }

// SetPickModeActive switches pick mode.
func (a *AppState) SetPickModeActive(active bool) { a.pickMode = active }

// SavingInProgress reports whether the crop is being committed.
func (a *AppState) SavingInProgress() bool { return a.saving }

// SetSelectedCrop records the picked rectangle.
func (a *AppState) SetSelectedCrop(r interaction.Rectangle) {
	a.selected = r
	if r != nil {
		a.notifier.Select(r.CropRect().Round(), a.Image)
	}
}

// Selected returns the picked rectangle in image pixels.
func (a *AppState) Selected() (image.Rectangle, bool) {
	if a.selected == nil {
		return image.Rectangle{}, false
	}
	return a.selected.CropRect().Round(), true
}

// commit marks the crop as being saved and reports it. Further pointer
// events are ignored afterwards.
func (a *AppState) commit(r interaction.Rectangle) {
	a.saving = true
	a.selected = r
	rect := r.CropRect().Round()
	a.notifier.Commit(rect, a.Image)
	if a.onCommit != nil {
		a.onCommit(rect)
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}
