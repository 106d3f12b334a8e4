package convert

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Page is the part of the page the controller reads and writes.
// Implementations must be safe to call from the goroutine running Convert.
type Page interface {
	// InputText returns the raw description as typed.
	InputText() string
	// SetError replaces the error region text. An empty string clears it.
	SetError(msg string)
	// SetAffordance updates the trigger label and enabled flag.
	SetAffordance(a Affordance)
}

// Viewer renders diagram markup.
type Viewer interface {
	Import(ctx context.Context, markup string) error
	FitToViewport()
}

// Status is how a Convert call ended.
type Status int

const (
	// StatusRendered means the diagram was imported and fitted.
	StatusRendered Status = iota
	// StatusRejected means the input failed local validation.
	StatusRejected
	// StatusFailed means the service, transport or viewer failed.
	StatusFailed
	// StatusSkipped means another conversion was already in flight.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusRendered:
		return "rendered"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome summarises a Convert call. Err is kept for logging only; the page
// has already been updated with Message.
type Outcome struct {
	Status  Status
	Message string
	Err     error
}

// Controller owns the conversion request lifecycle.
type Controller struct {
	page    Page
	viewer  Viewer
	service Service
	logger  *zap.Logger
	timeout time.Duration

	inFlight atomic.Bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithTimeout bounds the service call. Zero waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.timeout = d
	}
}

// NewController wires a controller to its page, viewer and service.
func NewController(page Page, viewer Viewer, service Service, opts ...Option) *Controller {
	c := &Controller{
		page:    page,
		viewer:  viewer,
		service: service,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InFlight reports whether a conversion is running.
func (c *Controller) InFlight() bool { return c.inFlight.Load() }

// Convert runs one conversion. It never returns an error: every failure is
// written to the page's error region, and the trigger is back to Idle when
// Convert returns. A call made while another is in flight is skipped.
func (c *Controller) Convert(ctx context.Context) Outcome {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Debug("conversion already in flight, ignoring trigger")
		return Outcome{Status: StatusSkipped}
	}
	defer c.inFlight.Store(false)

	c.page.SetError("")
	c.page.SetAffordance(Busy)
	defer c.page.SetAffordance(Idle)

	startTime := time.Now()
	err := c.run(ctx)
	if err == nil {
		c.logger.Info("diagram rendered", zap.Duration("duration", time.Since(startTime)))
		return Outcome{Status: StatusRendered}
	}

	msg := UserMessage(err)
	c.page.SetError(msg)

	status := StatusFailed
	if errors.Is(err, ErrEmptyInput) {
		status = StatusRejected
		c.logger.Debug("conversion rejected", zap.Error(err))
	} else {
		c.logger.Warn("conversion failed",
			zap.Error(err),
			zap.Bool("timeout", IsTimeout(err)),
			zap.Duration("duration", time.Since(startTime)),
		)
	}
	return Outcome{Status: status, Message: msg, Err: err}
}

func (c *Controller) run(ctx context.Context) error {
	text := strings.TrimSpace(c.page.InputText())
	if text == "" {
		return ErrEmptyInput
	}

	resp, err := c.request(ctx, Request{Text: text})
	if err != nil {
		return err
	}
	if resp == nil || resp.BPMN == "" {
		return &TransportError{Err: ErrMalformedResponse}
	}

	if err := c.viewer.Import(ctx, resp.BPMN); err != nil {
		return &RenderError{Err: err}
	}
	c.viewer.FitToViewport()
	return nil
}

func (c *Controller) request(ctx context.Context, req Request) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("converting description", zap.Int("runes", len([]rune(req.Text))))
	return c.service.Convert(ctx, req)
}
