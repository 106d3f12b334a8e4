package tour_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/sketchflow/pkg/page"
	"github.com/papercomputeco/sketchflow/pkg/tour"
)

func anchorAt(r page.Rect) tour.Anchor {
	return func() (page.Element, bool) { return page.StaticElement(r), true }
}

var _ = Describe("Placement", func() {
	var (
		vp   page.Viewport
		card page.Size
		g    tour.Geometry
	)

	BeforeEach(func() {
		vp = page.Viewport{Width: 1000, Height: 700}
		card = page.Size{Width: 200, Height: 100}
		g = tour.DefaultGeometry
	})

	Describe("Fixed", func() {
		It("passes the edges through in screen space", func() {
			edges := tour.Edges{Bottom: tour.Offset(20), Left: tour.Offset(30)}
			vp.Scroll = page.Point{X: 500, Y: 900}

			pos, ok := tour.Fixed{Edges: edges}.Locate(card, vp, g)

			Expect(ok).To(BeTrue())
			Expect(pos.Fixed).To(BeTrue())
			Expect(pos.Edges).To(Equal(edges))
		})
	})

	Describe("Above", func() {
		It("centres horizontally and sits a gap above the anchor", func() {
			a := tour.Above{Anchor: anchorAt(page.Rect{Left: 400, Top: 400, Width: 200, Height: 50})}

			pos, ok := a.Locate(card, vp, g)

			Expect(ok).To(BeTrue())
			Expect(pos.Fixed).To(BeFalse())
			Expect(pos.Point).To(Equal(page.Point{X: 400, Y: 400 - 100 - 12}))
		})

		It("adds the configured offset", func() {
			a := tour.Above{
				Anchor: anchorAt(page.Rect{Left: 400, Top: 400, Width: 200, Height: 50}),
				Offset: page.Point{X: 10, Y: -20},
			}

			pos, _ := a.Locate(card, vp, g)

			Expect(pos.Point).To(Equal(page.Point{X: 410, Y: 268}))
		})

		It("clamps below the top margin when the anchor is near the top", func() {
			a := tour.Above{Anchor: anchorAt(page.Rect{Left: 400, Top: 30, Width: 200, Height: 50})}

			pos, _ := a.Locate(card, vp, g)

			Expect(pos.Point.Y).To(Equal(12.0))
		})

		It("keeps a left margin but does not clamp the right edge", func() {
			left := tour.Above{Anchor: anchorAt(page.Rect{Left: 0, Top: 400, Width: 20, Height: 20})}
			pos, _ := left.Locate(card, vp, g)
			Expect(pos.Point.X).To(Equal(12.0))

			right := tour.Above{Anchor: anchorAt(page.Rect{Left: 980, Top: 400, Width: 20, Height: 20})}
			pos, _ = right.Locate(card, vp, g)
			Expect(pos.Point.X).To(Equal(890.0))
		})

		It("works in page space when the page is scrolled", func() {
			vp.Scroll = page.Point{X: 0, Y: 1000}
			a := tour.Above{Anchor: anchorAt(page.Rect{Left: 400, Top: 400, Width: 200, Height: 50})}

			pos, _ := a.Locate(card, vp, g)

			Expect(pos.Point).To(Equal(page.Point{X: 400, Y: 1288}))
		})

		It("stays inside the viewport vertically for any anchor in the viewport", func() {
			for top := 0.0; top <= vp.Height-20; top += 17 {
				for _, scroll := range []float64{0, 250} {
					vp.Scroll = page.Point{Y: scroll}
					a := tour.Above{Anchor: anchorAt(page.Rect{Left: 400, Top: top, Width: 200, Height: 20})}

					pos, ok := a.Locate(card, vp, g)

					Expect(ok).To(BeTrue())
					screenY := pos.Point.Y - scroll
					Expect(screenY).To(BeNumerically(">=", g.Margin))
					Expect(screenY + card.Height).To(BeNumerically("<=", vp.Height-g.Margin))
				}
			}
		})

		It("reports a missing anchor", func() {
			a := tour.Above{Anchor: func() (page.Element, bool) { return nil, false }}
			_, ok := a.Locate(card, vp, g)
			Expect(ok).To(BeFalse())

			_, ok = tour.Above{}.Locate(card, vp, g)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Centered", func() {
		It("centres the card over the anchor", func() {
			c := tour.Centered{Anchor: anchorAt(page.Rect{Left: 300, Top: 200, Width: 400, Height: 300})}

			pos, ok := c.Locate(card, vp, g)

			Expect(ok).To(BeTrue())
			Expect(pos.Point).To(Equal(page.Point{X: 400, Y: 300}))
		})

		It("clamps both axes into the viewport", func() {
			c := tour.Centered{Anchor: anchorAt(page.Rect{Left: 950, Top: 680, Width: 100, Height: 100})}

			pos, _ := c.Locate(card, vp, g)

			Expect(pos.Point).To(Equal(page.Point{X: 1000 - 200 - 12, Y: 700 - 100 - 12}))
		})

		It("prefers the top-left margin when the card is larger than the viewport", func() {
			c := tour.Centered{Anchor: anchorAt(page.Rect{Left: 0, Top: 0, Width: 100, Height: 100})}
			huge := page.Size{Width: 2000, Height: 2000}

			pos, _ := c.Locate(huge, vp, g)

			Expect(pos.Point).To(Equal(page.Point{X: 12, Y: 12}))
		})

		It("honours a custom geometry", func() {
			c := tour.Centered{Anchor: anchorAt(page.Rect{Left: 0, Top: 0, Width: 10, Height: 10})}

			pos, _ := c.Locate(card, vp, tour.Geometry{Margin: 1, Gap: 1})

			Expect(pos.Point).To(Equal(page.Point{X: 1, Y: 1}))
		})
	})
})
