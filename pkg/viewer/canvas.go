package viewer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/papercomputeco/sketchflow/pkg/page"
)

// Node footprint used when the markup carries no interchange shapes.
const (
	layoutNodeWidth  = 100
	layoutNodeHeight = 80
	layoutSpacing    = 50
)

// View is the canvas zoom and pan: diagram coordinates map to canvas
// coordinates as p*Zoom + Offset.
type View struct {
	Zoom   float64
	Offset page.Point
}

// Canvas is the page's diagram viewer. It is safe for concurrent use: the
// conversion flow imports while the host renders.
type Canvas struct {
	padding float64
	style   string
	logger  *zap.Logger

	mu       sync.RWMutex
	size     page.Size
	diagram  *Diagram
	view     View
	renderer *glamour.TermRenderer
	wrap     int
}

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithPadding sets the space kept around a fitted diagram.
func WithPadding(p float64) CanvasOption {
	return func(c *Canvas) {
		c.padding = p
	}
}

// WithStyle selects the glamour style ("dark", "light", "notty", ...).
func WithStyle(style string) CanvasOption {
	return func(c *Canvas) {
		c.style = style
	}
}

// WithLogger sets the canvas logger.
func WithLogger(logger *zap.Logger) CanvasOption {
	return func(c *Canvas) {
		c.logger = logger
	}
}

// NewCanvas creates an empty canvas of the given size.
func NewCanvas(size page.Size, opts ...CanvasOption) *Canvas {
	c := &Canvas{
		padding: 1,
		style:   "dark",
		logger:  zap.NewNop(),
		size:    size,
		view:    View{Zoom: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resize updates the canvas dimensions. The current view is kept until the
// next FitToViewport.
func (c *Canvas) Resize(size page.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = size
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() page.Size {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

// Import replaces the shown diagram. Rejected markup leaves the previous
// diagram in place.
func (c *Canvas) Import(ctx context.Context, markup string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d, err := Parse(markup)
	if err != nil {
		c.logger.Debug("diagram rejected", zap.Error(err))
		return err
	}
	if _, ok := d.Bounds(); !ok {
		layoutLinear(d)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagram = d
	c.view = View{Zoom: 1}
	c.logger.Debug("diagram imported",
		zap.String("process", d.ProcessID),
		zap.Int("nodes", len(d.Nodes)),
		zap.Int("flows", len(d.Flows)),
	)
	return nil
}

// FitToViewport zooms and pans so the whole diagram fits the canvas with
// padding on every side.
func (c *Canvas) FitToViewport() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.diagram == nil {
		return
	}
	bounds, ok := c.diagram.Bounds()
	if !ok {
		return
	}

	gw, gh := bounds.Width, bounds.Height
	if gw <= 0 {
		gw = 1
	}
	if gh <= 0 {
		gh = 1
	}
	sx := (c.size.Width - 2*c.padding) / gw
	sy := (c.size.Height - 2*c.padding) / gh
	s := min(sx, sy)
	if s <= 0 {
		s = 1
	}

	c.view = View{
		Zoom: s,
		Offset: page.Point{
			X: c.padding - bounds.Left*s,
			Y: c.padding - bounds.Top*s,
		},
	}
}

// View returns the current zoom and pan.
func (c *Canvas) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// Diagram returns the shown diagram, if any.
func (c *Canvas) Diagram() (*Diagram, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.diagram, c.diagram != nil
}

// Markdown is the textual outline of the shown diagram.
func (c *Canvas) Markdown() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.diagram == nil {
		return ""
	}
	return outline(c.diagram, c.view)
}

// Render returns the outline formatted for a terminal of the canvas width.
func (c *Canvas) Render() (string, error) {
	md := c.Markdown()
	if md == "" {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	width := int(c.size.Width)
	if c.renderer == nil || c.wrap != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(c.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("create renderer: %w", err)
		}
		c.renderer = r
		c.wrap = width
	}
	return c.renderer.Render(md)
}

func outline(d *Diagram, v View) string {
	var sb strings.Builder

	title := d.Name
	if title == "" {
		title = d.ProcessID
	}
	fmt.Fprintf(&sb, "### %s\n\n", title)

	for i, n := range d.Walk() {
		fmt.Fprintf(&sb, "%d. %s %s\n", i+1, symbol(n.Kind), label(n))
		out := d.Outgoing(n.ID)
		if n.Kind != KindGateway || len(out) < 2 {
			continue
		}
		for _, f := range out {
			target, _ := d.Node(f.Target)
			branch := f.Name
			if branch == "" {
				branch = "—"
			}
			fmt.Fprintf(&sb, "    - *%s* → %s\n", branch, label(target))
		}
	}

	fmt.Fprintf(&sb, "\n_zoom %d%%_\n", int(v.Zoom*100+0.5))
	return sb.String()
}

func label(n Node) string {
	if n.Name != "" {
		return "**" + strings.ReplaceAll(n.Name, "\n", " ") + "**"
	}
	return "`" + n.ID + "`"
}

func symbol(k NodeKind) string {
	switch k {
	case KindStart:
		return "○"
	case KindEnd:
		return "◉"
	case KindGateway:
		return "◇"
	case KindEvent:
		return "◎"
	default:
		return "▭"
	}
}

// layoutLinear gives shapeless diagrams a left-to-right layout in walk order
// so they can still be fitted.
func layoutLinear(d *Diagram) {
	index := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		index[n.ID] = i
	}
	for col, n := range d.Walk() {
		d.Nodes[index[n.ID]].Bounds = &page.Rect{
			Left:   float64(col * (layoutNodeWidth + layoutSpacing)),
			Top:    0,
			Width:  layoutNodeWidth,
			Height: layoutNodeHeight,
		}
	}
}
