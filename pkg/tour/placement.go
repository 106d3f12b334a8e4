package tour

import (
	"github.com/papercomputeco/sketchflow/pkg/page"
)

// Geometry holds the spacing rules used when placing a card.
type Geometry struct {
	// Margin is the minimum distance between a clamped card and the viewport edge.
	Margin float64
	// Gap separates an Above card from its anchor.
	Gap float64
}

// DefaultGeometry is tuned for CSS pixels.
var DefaultGeometry = Geometry{Margin: 12, Gap: 12}

// Edges are screen-space offsets from the viewport edges. Nil edges are unset.
type Edges struct {
	Left   *float64
	Right  *float64
	Top    *float64
	Bottom *float64
}

// Offset returns a pointer to v, for building Edges literals.
func Offset(v float64) *float64 { return &v }

// Position is where a mounted card goes.
type Position struct {
	// Fixed positions use Edges in screen space and ignore scrolling.
	Fixed bool
	Edges Edges
	// Point is the page-space top-left corner for non-fixed positions.
	Point page.Point
}

// Placement computes a card position. It reports false when the card should
// stay where it was mounted (e.g. the anchor is missing).
type Placement interface {
	Locate(card page.Size, vp page.Viewport, g Geometry) (Position, bool)
}

// Anchor resolves the element a card is drawn against.
type Anchor func() (page.Element, bool)

// AnchorByID resolves the element with the given stable id through loc.
func AnchorByID(loc page.Locator, id string) Anchor {
	return func() (page.Element, bool) {
		if loc == nil {
			return nil, false
		}
		return loc(id)
	}
}

func (a Anchor) resolve(vp page.Viewport) (page.Rect, bool) {
	if a == nil {
		return page.Rect{}, false
	}
	el, ok := a()
	if !ok || el == nil {
		return page.Rect{}, false
	}
	return vp.PageRect(el.BoundingRect()), true
}

// Fixed pins the card to literal viewport edge offsets.
type Fixed struct {
	Edges Edges
}

// Locate implements Placement.
func (f Fixed) Locate(page.Size, page.Viewport, Geometry) (Position, bool) {
	return Position{Fixed: true, Edges: f.Edges}, true
}

// Above centres the card horizontally on its anchor and puts it just above.
// Only the vertical axis is clamped into the viewport.
type Above struct {
	Anchor Anchor
	Offset page.Point
}

// Locate implements Placement.
func (a Above) Locate(card page.Size, vp page.Viewport, g Geometry) (Position, bool) {
	box, ok := a.Anchor.resolve(vp)
	if !ok {
		return Position{}, false
	}

	left := box.Left + box.Width/2 - card.Width/2 + a.Offset.X
	left = max(left, vp.Scroll.X+g.Margin)

	top := box.Top - card.Height - g.Gap + a.Offset.Y
	top = clamp(top, vp.Scroll.Y+g.Margin, vp.Scroll.Y+vp.Height-card.Height-g.Margin)

	return Position{Point: page.Point{X: left, Y: top}}, true
}

// Centered puts the card over the middle of its anchor and clamps both axes
// so the whole card stays visible.
type Centered struct {
	Anchor Anchor
	Offset page.Point
}

// Locate implements Placement.
func (c Centered) Locate(card page.Size, vp page.Viewport, g Geometry) (Position, bool) {
	box, ok := c.Anchor.resolve(vp)
	if !ok {
		return Position{}, false
	}

	left := box.Left + box.Width/2 - card.Width/2 + c.Offset.X
	top := box.Top + box.Height/2 - card.Height/2 + c.Offset.Y

	left = clamp(left, vp.Scroll.X+g.Margin, vp.Scroll.X+vp.Width-card.Width-g.Margin)
	top = clamp(top, vp.Scroll.Y+g.Margin, vp.Scroll.Y+vp.Height-card.Height-g.Margin)

	return Position{Point: page.Point{X: left, Y: top}}, true
}

// clamp bounds v to [lo, hi]. When the card is larger than the viewport
// (hi < lo) the low bound wins so the card's top-left stays visible.
func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
