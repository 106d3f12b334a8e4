// Package placeholder types a demo description into an input's placeholder,
// one character per tick, while the user is not interacting with the input.
package placeholder

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is the delay between two revealed characters.
const DefaultInterval = 60 * time.Millisecond

// DefaultDemoText is typed when no demo text is configured.
const DefaultDemoText = "مثال: مشتری سفارش را ثبت می‌کند. سپس انبار موجودی را بررسی می‌کند. اگر کالا موجود باشد، ارسال انجام می‌شود اما اگر موجود نباشد سفارش لغو می‌شود."

// Target is the input the animator writes to. It is only read, except for
// its placeholder.
type Target interface {
	Focused() bool
	Value() string
	SetPlaceholder(s string)
}

// Animator reveals demoText into a Target's placeholder.
type Animator struct {
	target    Target
	scheduler Scheduler
	demo      []rune
	interval  time.Duration
	logger    *zap.Logger

	mu       sync.Mutex
	revealed int
	running  bool
	gen      uint64
	stop     func()
}

// Option configures an Animator.
type Option func(*Animator)

// WithInterval sets the per-character delay.
func WithInterval(d time.Duration) Option {
	return func(a *Animator) {
		a.interval = d
	}
}

// WithScheduler replaces the default ticker scheduler.
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) {
		a.scheduler = s
	}
}

// WithLogger sets the animator's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Animator) {
		a.logger = logger
	}
}

// New builds an animator; it does nothing until Start.
func New(target Target, demoText string, opts ...Option) *Animator {
	if demoText == "" {
		demoText = DefaultDemoText
	}
	a := &Animator{
		target:    target,
		scheduler: TickerScheduler{},
		demo:      []rune(demoText),
		interval:  DefaultInterval,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.interval <= 0 {
		a.interval = DefaultInterval
	}
	return a
}

// Start begins typing from the first character. It does nothing if the
// animation is already running.
func (a *Animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.startLocked()
}

func (a *Animator) startLocked() {
	if a.running {
		return
	}
	a.revealed = 0
	a.running = true
	a.gen++
	gen := a.gen
	a.target.SetPlaceholder("")
	a.stop = a.scheduler.Every(a.interval, func() { a.tick(gen) })
	a.logger.Debug("placeholder animation started", zap.Uint64("gen", gen))
}

// Blur restarts the animation when the input lost focus while empty.
func (a *Animator) Blur() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running || strings.TrimSpace(a.target.Value()) != "" {
		return
	}
	a.startLocked()
}

// Close cancels the timer.
func (a *Animator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.haltLocked()
}

// Running reports whether the timer is scheduled.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Revealed is the number of demo characters currently in the placeholder.
func (a *Animator) Revealed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.revealed
}

func (a *Animator) tick(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Ticks queued by a cancelled timer are dropped.
	if !a.running || gen != a.gen {
		return
	}

	if a.target.Focused() || strings.TrimSpace(a.target.Value()) != "" {
		a.logger.Debug("placeholder animation suspended", zap.Int("revealed", a.revealed))
		a.haltLocked()
		return
	}

	if a.revealed >= len(a.demo) {
		a.haltLocked()
		return
	}
	a.revealed++
	a.target.SetPlaceholder(string(a.demo[:a.revealed]))
	if a.revealed == len(a.demo) {
		a.haltLocked()
	}
}

func (a *Animator) haltLocked() {
	if !a.running {
		return
	}
	a.running = false
	if a.stop != nil {
		a.stop()
		a.stop = nil
	}
}
