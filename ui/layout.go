package ui

import "github.com/papercomputeco/sketchflow/pkg/page"

// Region heights in cells. Bordered regions take one extra row on each side.
const (
	titleHeight  = 1
	gapHeight    = 1
	inputHeight  = 3
	buttonHeight = 3
	errorHeight  = 1
	helpHeight   = 1
)

// layout is where every region sits on screen. The terminal never scrolls,
// so screen and page coordinates are the same.
type layout struct {
	title     page.Rect
	input     page.Rect
	button    page.Rect
	errorLine page.Rect
	canvas    page.Rect
	help      page.Rect
}

func computeLayout(width, height, buttonWidth int) layout {
	w := float64(width)

	var l layout
	l.title = page.Rect{Width: w, Height: titleHeight}
	l.input = page.Rect{Top: titleHeight + gapHeight, Width: w, Height: inputHeight}
	l.button = page.Rect{Top: l.input.Bottom(), Width: float64(buttonWidth), Height: buttonHeight}
	l.errorLine = page.Rect{Top: l.button.Bottom(), Width: w, Height: errorHeight}

	canvasHeight := max(0, float64(height)-l.errorLine.Bottom()-helpHeight)
	l.canvas = page.Rect{Top: l.errorLine.Bottom(), Width: w, Height: canvasHeight}
	l.help = page.Rect{Top: l.canvas.Bottom(), Width: w, Height: helpHeight}
	return l
}

// element maps the stable page ids onto regions.
func (l layout) element(id string) (page.Rect, bool) {
	switch id {
	case page.ProcessInputID:
		return l.input, true
	case page.ConvertButtonID:
		return l.button, true
	case page.ErrorRegionID:
		return l.errorLine, true
	case page.CanvasID:
		return l.canvas, true
	}
	return page.Rect{}, false
}

func contains(r page.Rect, x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.Left && fx < r.Right() && fy >= r.Top && fy < r.Bottom()
}
