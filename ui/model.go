package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/papercomputeco/sketchflow/pkg/convert"
	"github.com/papercomputeco/sketchflow/pkg/page"
	"github.com/papercomputeco/sketchflow/pkg/placeholder"
	"github.com/papercomputeco/sketchflow/pkg/tour"
	"github.com/papercomputeco/sketchflow/pkg/viewer"
)

const (
	title      = "تبدیل متن به نمودار BPMN"
	emptyState = "نموداری برای نمایش وجود ندارد."
)

// Config is the page configuration.
type Config struct {
	// RequestTimeout bounds each conversion; zero waits indefinitely.
	RequestTimeout time.Duration

	DemoText string
	Interval time.Duration

	Tour           bool
	TourStartDelay time.Duration
	Geometry       tour.Geometry

	// Dark selects the palette; GlamourStyle the canvas markdown style.
	Dark         bool
	GlamourStyle string
}

// CellGeometry is the tour spacing in terminal cells.
var CellGeometry = tour.Geometry{Margin: 1, Gap: 1}

type focusTarget int

const (
	focusNone focusTarget = iota
	focusInput
	focusButton
)

type convertedMsg struct {
	outcome convert.Outcome
}

// Model is the bubbletea model of the conversion page.
type Model struct {
	config Config
	logger *zap.Logger
	styles Styles
	keys   keyMap
	help   help.Model

	ctx    context.Context
	cancel context.CancelFunc

	input      textinput.Model
	focus      focusTarget
	page       *pageState
	canvas     *viewer.Canvas
	canvasView viewport.Model
	controller *convert.Controller
	animator   *placeholder.Animator
	ticks      *programScheduler
	overlay    *overlay
	tour       *tour.Engine

	width  int
	height int
}

// Option configures a Model.
type Option func(*options)

type options struct {
	scheduler placeholder.Scheduler
}

// WithScheduler replaces the Update-driven ticker behind the placeholder
// animation.
func WithScheduler(s placeholder.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// New builds the page around service.
func New(config Config, service convert.Service, logger *zap.Logger, opts ...Option) (*Model, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.GlamourStyle == "" {
		config.GlamourStyle = "light"
		if config.Dark {
			config.GlamourStyle = "dark"
		}
	}
	if config.Geometry == (tour.Geometry{}) {
		config.Geometry = CellGeometry
	}

	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Prompt = "› "

	m := &Model{
		config:     config,
		logger:     logger,
		styles:     DefaultStyles(config.Dark),
		keys:       defaultKeyMap(),
		help:       help.New(),
		ctx:        ctx,
		cancel:     cancel,
		input:      input,
		page:       newPageState(),
		canvasView: viewport.New(0, 0),
	}

	m.canvas = viewer.NewCanvas(page.Size{},
		viewer.WithStyle(config.GlamourStyle),
		viewer.WithLogger(logger.Named("canvas")),
	)
	m.controller = convert.NewController(m.page, m.canvas, service,
		convert.WithLogger(logger.Named("convert")),
		convert.WithTimeout(config.RequestTimeout),
	)

	m.ticks = newProgramScheduler()
	scheduler := o.scheduler
	if scheduler == nil {
		scheduler = m.ticks
	}
	m.animator = placeholder.New(inputTarget{input: &m.input}, config.DemoText,
		placeholder.WithInterval(config.Interval),
		placeholder.WithScheduler(scheduler),
		placeholder.WithLogger(logger.Named("placeholder")),
	)

	m.overlay = newOverlay(m.styles, m.viewport)
	if config.Tour {
		engine, err := tour.New(tour.DefaultSteps(m.locate, config.Geometry), m.overlay,
			tour.WithGeometry(config.Geometry),
			tour.WithStartDelay(config.TourStartDelay),
			tour.WithLogger(logger.Named("tour")),
			tour.WithDispatch(m.ticks.post(ctx)),
		)
		if err != nil {
			cancel()
			return nil, err
		}
		m.tour = engine
	}

	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.animator.Start()

	cmds := []tea.Cmd{m.page.wait(m.ctx), m.ticks.wait(m.ctx)}
	if m.tour != nil {
		cmds = append(cmds, m.startTour())
	}
	return tea.Batch(cmds...)
}

// startTour waits out the tour's start delay off the event loop. Begin comes
// back through the scheduler channel and runs inside Update.
func (m *Model) startTour() tea.Cmd {
	return func() tea.Msg {
		if err := m.tour.Start(m.ctx); err != nil {
			m.logger.Debug("tour start cancelled", zap.Error(err))
		}
		return nil
	}
}

// Close stops the animation, the tour and any conversion in flight.
func (m *Model) Close() {
	m.animator.Close()
	if m.tour != nil {
		m.tour.Close()
	}
	m.cancel()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case scheduledMsg:
		msg.fn()
		return m, m.ticks.wait(m.ctx)

	case pageChangedMsg:
		return m, m.page.wait(m.ctx)

	case convertedMsg:
		if msg.outcome.Status == convert.StatusRendered {
			m.refreshCanvas()
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// cursor blink and friends
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Close()
		return m, tea.Quit
	}

	if m.overlay.Active() {
		switch {
		case key.Matches(msg, m.keys.Advance):
			m.overlay.Advance()
		case key.Matches(msg, m.keys.Dismiss):
			m.tour.Close()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Convert):
		return m, m.convertCmd()
	case key.Matches(msg, m.keys.Focus):
		return m, m.cycleFocus()
	case key.Matches(msg, m.keys.Blur):
		return m, m.setFocus(focusNone)
	case key.Matches(msg, m.keys.Tour):
		if m.tour != nil {
			m.tour.Begin()
		}
		return m, nil
	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.canvasView, cmd = m.canvasView.Update(msg)
		return m, cmd
	}

	var focusCmd tea.Cmd
	if m.focus != focusInput {
		// typing anywhere goes to the description
		if msg.Type != tea.KeyRunes {
			return m, nil
		}
		focusCmd = m.setFocus(focusInput)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.page.setInput(m.input.Value())
	return m, tea.Batch(focusCmd, cmd)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if tea.MouseEvent(msg).IsWheel() {
		var cmd tea.Cmd
		m.canvasView, cmd = m.canvasView.Update(msg)
		return cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	// backdrop and card control both advance
	if m.overlay.Active() {
		m.overlay.Advance()
		return nil
	}

	l := m.layout()
	switch {
	case contains(l.button, msg.X, msg.Y):
		return m.convertCmd()
	case contains(l.input, msg.X, msg.Y):
		return m.setFocus(focusInput)
	default:
		return m.setFocus(focusNone)
	}
}

func (m *Model) convertCmd() tea.Cmd {
	if m.controller.InFlight() {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return convertedMsg{outcome: m.controller.Convert(ctx)}
	}
}

func (m *Model) cycleFocus() tea.Cmd {
	if m.focus == focusInput {
		return m.setFocus(focusButton)
	}
	return m.setFocus(focusInput)
}

func (m *Model) setFocus(f focusTarget) tea.Cmd {
	if f == m.focus {
		return nil
	}
	prev := m.focus
	m.focus = f

	var cmd tea.Cmd
	if f == focusInput {
		cmd = m.input.Focus()
	} else {
		m.input.Blur()
	}
	if prev == focusInput {
		m.animator.Blur()
	}
	return cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.input.Width = max(1, width-4-lipgloss.Width(m.input.Prompt))

	l := m.layout()
	m.canvasView.Width = width
	m.canvasView.Height = int(l.canvas.Height)
	m.canvas.Resize(page.Size{Width: l.canvas.Width, Height: l.canvas.Height})
	if _, ok := m.canvas.Diagram(); ok {
		m.canvas.FitToViewport()
	}
	m.refreshCanvas()

	if m.tour != nil {
		m.tour.Reposition()
	}
}

func (m *Model) refreshCanvas() {
	if _, ok := m.canvas.Diagram(); !ok {
		m.canvasView.SetContent(m.styles.Empty.Render(emptyState))
		return
	}
	out, err := m.canvas.Render()
	if err != nil {
		m.logger.Warn("could not render diagram", zap.Error(err))
		m.canvasView.SetContent(m.canvas.Markdown())
		return
	}
	m.canvasView.SetContent(out)
	m.canvasView.GotoTop()
}

func (m *Model) layout() layout {
	return computeLayout(m.width, m.height, lipgloss.Width(m.renderButton()))
}

func (m *Model) viewport() page.Viewport {
	return page.Viewport{Width: float64(m.width), Height: float64(m.height)}
}

// locate resolves page elements for tour anchors. Nothing is laid out
// before the first window size message.
func (m *Model) locate(id string) (page.Element, bool) {
	if m.width == 0 || m.height == 0 {
		return nil, false
	}
	r, ok := m.layout().element(id)
	if !ok {
		return nil, false
	}
	return page.StaticElement(r), true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	inputStyle := m.styles.Input
	if m.focus == focusInput {
		inputStyle = m.styles.InputFocused
	}

	errLine := ansi.Truncate(m.page.errorText(), m.width, "…")

	var km help.KeyMap = m.keys
	if m.overlay.Active() {
		km = tourHelp(m.keys)
	}

	parts := []string{
		m.styles.Title.Render(ansi.Truncate(title, m.width, "…")),
		"",
		inputStyle.Width(max(0, m.width-2)).Render(m.input.View()),
		m.renderButton(),
		m.styles.Error.Width(m.width).Render(errLine),
	}
	if m.canvasView.Height > 0 {
		parts = append(parts, m.canvasView.View())
	}
	parts = append(parts, m.help.View(km))

	return m.overlay.Compose(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) renderButton() string {
	a := m.page.currentAffordance()
	style := m.styles.Button
	switch {
	case !a.Enabled():
		style = m.styles.ButtonBusy
	case m.focus == focusButton:
		style = m.styles.ButtonFocused
	}
	return style.Render(a.Label())
}
