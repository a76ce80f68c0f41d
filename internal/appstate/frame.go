package appstate

import (
	"context"
	"image"
	"log"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/cropview/internal/geom"
	"github.com/example/cropview/internal/render"
	"github.com/example/cropview/internal/theme"
)

type paintState struct {
	width, height int
	img           *image.RGBA
	transform     geom.Matrix
	theme         *theme.Theme
	boxes         []render.Box
	status        string
}

// colors picks the overlay colors out of the theme.
func (st paintState) colors() render.Colors {
	return render.Colors{
		Dim:            st.theme.Dim,
		Outline:        st.theme.Outline,
		OutlineFocused: st.theme.OutlineFocused,
		Handle:         st.theme.Handle,
		HandleBorder:   st.theme.HandleBorder,
	}
}

// compose renders st into dst. It stops early once ctx is canceled and
// reports whether the frame is complete.
func compose(ctx context.Context, dst *image.RGBA, st paintState) bool {
	view := image.Rect(0, 0, st.width, st.height-render.StatusHeight)
	canvas := dst.SubImage(view).(*image.RGBA)
	area := render.Canvas(canvas, st.img, st.transform, st.theme)
	if ctx.Err() != nil {
		return false
	}
	render.Overlay(canvas, area, st.boxes, st.colors())
	if ctx.Err() != nil {
		return false
	}
	render.StatusBar(dst, st.status, st.theme)
	return ctx.Err() == nil
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	if st.width <= 0 || st.height <= render.StatusHeight {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !compose(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
