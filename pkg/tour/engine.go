package tour

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultStartDelay gives anchors time to settle before the first card is placed.
const DefaultStartDelay = 350 * time.Millisecond

// State is the live tour position. It only exists between Begin and dismissal.
type State struct {
	Index int
}

// Engine is the tour state machine. It is not safe for concurrent use: hosts
// drive it from their event loop.
type Engine struct {
	steps      []Step
	surface    Surface
	geometry   Geometry
	startDelay time.Duration
	logger     *zap.Logger
	dispatch   func(func())

	state  *State
	handle CardHandle
}

// Option configures an Engine.
type Option func(*Engine)

// WithGeometry overrides the margin and gap used for clamping.
func WithGeometry(g Geometry) Option {
	return func(e *Engine) {
		e.geometry = g
	}
}

// WithStartDelay sets how long Start waits before showing the first card.
func WithStartDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.startDelay = d
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDispatch sets how Start hands Begin back to the host's event loop.
// By default Begin runs on the goroutine that called Start.
func WithDispatch(fn func(func())) Option {
	return func(e *Engine) {
		e.dispatch = fn
	}
}

// New builds an engine over steps rendering into surface.
func New(steps []Step, surface Surface, opts ...Option) (*Engine, error) {
	if err := validateSteps(steps); err != nil {
		return nil, err
	}

	e := &Engine{
		steps:      append([]Step(nil), steps...),
		surface:    surface,
		geometry:   DefaultGeometry,
		startDelay: DefaultStartDelay,
		logger:     zap.NewNop(),
		dispatch:   func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Start waits for the start delay and then dispatches Begin. It returns the
// context error if ctx is done first, in which case no card is shown.
func (e *Engine) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.startDelay > 0 {
		t := time.NewTimer(e.startDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	e.dispatch(e.Begin)
	return nil
}

// Begin shows the first step. It is a no-op while the tour is running; after
// dismissal it replays the tour from the start.
func (e *Engine) Begin() {
	if e.state != nil {
		return
	}
	e.state = &State{Index: 0}
	e.logger.Debug("tour started", zap.Int("steps", len(e.steps)))
	e.render()
}

// Advance moves to the next step, or dismisses the tour from the last step.
func (e *Engine) Advance() {
	if e.state == nil {
		return
	}
	if e.state.Index+1 < len(e.steps) {
		e.state.Index++
		e.render()
		return
	}
	e.dismiss()
}

// Close tears the tour down immediately. Safe to call more than once.
func (e *Engine) Close() {
	if e.state == nil {
		return
	}
	e.dismiss()
}

// Reposition recomputes the current card's position, e.g. after the viewport
// was resized. The card is not rebuilt.
func (e *Engine) Reposition() {
	if e.state == nil || e.handle == nil {
		return
	}
	e.position(e.steps[e.state.Index], e.handle)
}

// Active reports whether a card is showing.
func (e *Engine) Active() bool { return e.state != nil }

// Index returns the current step index, or -1 when the tour is not running.
func (e *Engine) Index() int {
	if e.state == nil {
		return -1
	}
	return e.state.Index
}

// Len is the number of steps.
func (e *Engine) Len() int { return len(e.steps) }

func (e *Engine) dismiss() {
	e.logger.Debug("tour dismissed", zap.Int("at", e.state.Index))
	e.state = nil
	e.handle = nil
	e.surface.Clear()
}

// render rebuilds the overlay for the current step from scratch.
func (e *Engine) render() {
	step := e.steps[e.state.Index]

	card := Card{
		StepID:  step.ID,
		Message: step.Message,
		Control: NextLabel,
		Index:   e.state.Index,
		Total:   len(e.steps),
		Advance: e.Advance,
	}
	if card.Last() {
		card.Control = DoneLabel
	}

	e.surface.Clear()
	e.handle = e.surface.Mount(card)
	e.position(step, e.handle)
}

func (e *Engine) position(step Step, handle CardHandle) {
	pos, ok := step.Placement.Locate(handle.Size(), e.surface.Viewport(), e.geometry)
	if !ok {
		e.logger.Debug("tour anchor missing, card left unpositioned", zap.String("step", step.ID))
		return
	}
	handle.Place(pos)
}
