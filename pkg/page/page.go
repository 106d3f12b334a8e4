// Package page holds the stable element identifiers and the geometry shared by
// every host that renders the sketchflow page.
package page

// Stable identifiers of the page regions. Hosts must expose an element for each.
const (
	ProcessInputID  = "process-text"
	ConvertButtonID = "convert-button"
	ErrorRegionID   = "error-message"
	CanvasID        = "canvas"
	TourOverlayID   = "tour-overlay"
)

// Point is an x/y pair in host units (CSS pixels, terminal cells, ...).
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in host units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis aligned box. For Element.BoundingRect it is relative to the
// visible viewport, not the page.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right edge of the box.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom edge of the box.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Translate returns the box shifted by d.
func (r Rect) Translate(d Point) Rect {
	r.Left += d.X
	r.Top += d.Y
	return r
}

// Viewport is the visible part of the page.
type Viewport struct {
	// Scroll is the page-space offset of the viewport's top-left corner.
	Scroll Point
	Width  float64
	Height float64
}

// PageRect converts a viewport-relative box into page space.
func (v Viewport) PageRect(r Rect) Rect {
	return r.Translate(v.Scroll)
}

// Element is any page element whose geometry can be measured.
type Element interface {
	BoundingRect() Rect
}

// Locator resolves an element by its stable identifier. It reports false when
// the element is not present.
type Locator func(id string) (Element, bool)

// StaticElement is an Element with a fixed bounding box.
type StaticElement Rect

// BoundingRect implements Element.
func (e StaticElement) BoundingRect() Rect { return Rect(e) }
