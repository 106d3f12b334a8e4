package tour_test

import (
	"github.com/papercomputeco/sketchflow/pkg/page"
	"github.com/papercomputeco/sketchflow/pkg/tour"
)

// recordingSurface is an in-memory overlay that keeps every mounted card.
type recordingSurface struct {
	viewport page.Viewport
	cardSize page.Size

	mounted []*recordedCard
	clears  int
}

type recordedCard struct {
	card     tour.Card
	size     page.Size
	pos      tour.Position
	placed   bool
	attached bool
}

func (c *recordedCard) Size() page.Size { return c.size }

func (c *recordedCard) Place(pos tour.Position) {
	c.pos = pos
	c.placed = true
}

func (s *recordingSurface) Viewport() page.Viewport { return s.viewport }

func (s *recordingSurface) Clear() {
	s.clears++
	for _, c := range s.mounted {
		c.attached = false
	}
}

func (s *recordingSurface) Mount(card tour.Card) tour.CardHandle {
	c := &recordedCard{card: card, size: s.cardSize, attached: true}
	s.mounted = append(s.mounted, c)
	return c
}

// visible returns the cards still attached to the overlay.
func (s *recordingSurface) visible() []*recordedCard {
	var out []*recordedCard
	for _, c := range s.mounted {
		if c.attached {
			out = append(out, c)
		}
	}
	return out
}

func (s *recordingSurface) last() *recordedCard {
	if len(s.mounted) == 0 {
		return nil
	}
	return s.mounted[len(s.mounted)-1]
}

func locatorOf(elements map[string]page.Rect) page.Locator {
	return func(id string) (page.Element, bool) {
		r, ok := elements[id]
		if !ok {
			return nil, false
		}
		return page.StaticElement(r), true
	}
}
