package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/papercomputeco/sketchflow/pkg/page"
	"github.com/papercomputeco/sketchflow/pkg/tour"
)

// cardWidth is the widest a tour card gets, borders included.
const cardWidth = 44

// overlay is the tour.Surface of the terminal page. While a card is mounted
// the page underneath is drawn faint and swallows input, playing the role of
// the backdrop.
type overlay struct {
	styles   Styles
	viewport func() page.Viewport
	card     *mountedCard
}

type mountedCard struct {
	card tour.Card
	view string
	size page.Size
	pos  *tour.Position
}

func newOverlay(styles Styles, viewport func() page.Viewport) *overlay {
	return &overlay{styles: styles, viewport: viewport}
}

// Viewport implements tour.Surface.
func (o *overlay) Viewport() page.Viewport { return o.viewport() }

// Clear implements tour.Surface.
func (o *overlay) Clear() { o.card = nil }

// Mount implements tour.Surface.
func (o *overlay) Mount(c tour.Card) tour.CardHandle {
	view := o.render(c)
	o.card = &mountedCard{
		card: c,
		view: view,
		size: page.Size{
			Width:  float64(lipgloss.Width(view)),
			Height: float64(lipgloss.Height(view)),
		},
	}
	return o.card
}

// Active reports whether a card is mounted.
func (o *overlay) Active() bool { return o.card != nil }

// Advance fires the mounted card's advance action. The engine may replace
// the card while it runs.
func (o *overlay) Advance() {
	if o.card == nil || o.card.card.Advance == nil {
		return
	}
	advance := o.card.card.Advance
	advance()
}

func (o *overlay) render(c tour.Card) string {
	width := cardWidth
	if vw := int(o.viewport().Width) - 2; vw > 0 && vw < width {
		width = vw
	}
	inner := max(1, width-4)

	progress := o.styles.CardProgress.Render(fmt.Sprintf("%d/%d", c.Index+1, c.Total))
	message := lipgloss.NewStyle().Width(inner).Render(c.Message)
	control := o.styles.CardControl.Render("[ " + c.Control + " ]")

	return o.styles.Card.
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, progress, message, "", control))
}

// Compose draws the mounted card over base.
func (o *overlay) Compose(base string) string {
	if o.card == nil {
		return base
	}

	lines := strings.Split(base, "\n")
	for i, line := range lines {
		lines[i] = o.styles.Backdrop.Render(ansi.Strip(line))
	}

	x, y := o.card.origin(o.viewport())
	for i, cardLine := range strings.Split(o.card.view, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		lines[row] = splice(lines[row], cardLine, x)
	}
	return strings.Join(lines, "\n")
}

// Size implements tour.CardHandle.
func (c *mountedCard) Size() page.Size { return c.size }

// Place implements tour.CardHandle.
func (c *mountedCard) Place(pos tour.Position) { c.pos = &pos }

// origin is the card's top-left cell. Unplaced cards stay at the origin of
// the page.
func (c *mountedCard) origin(vp page.Viewport) (int, int) {
	if c.pos == nil {
		return 0, 0
	}
	p := *c.pos
	if !p.Fixed {
		return round(p.Point.X - vp.Scroll.X), round(p.Point.Y - vp.Scroll.Y)
	}

	var x, y float64
	switch {
	case p.Edges.Left != nil:
		x = *p.Edges.Left
	case p.Edges.Right != nil:
		x = vp.Width - c.size.Width - *p.Edges.Right
	}
	switch {
	case p.Edges.Top != nil:
		y = *p.Edges.Top
	case p.Edges.Bottom != nil:
		y = vp.Height - c.size.Height - *p.Edges.Bottom
	}
	return round(x), round(y)
}

// splice writes insert over line starting at cell x.
func splice(line, insert string, x int) string {
	x = max(0, x)
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(line, x+ansi.StringWidth(insert), "")
	return left + insert + right
}

func round(v float64) int { return int(math.Round(v)) }
