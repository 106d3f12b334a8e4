package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type scheduledMsg struct {
	fn func()
}

// programScheduler is a placeholder.Scheduler whose callbacks run inside
// Update: the ticker goroutine only hands fn over a channel. post queues
// other off-loop work the same way.
type programScheduler struct {
	ticks chan func()
}

func newProgramScheduler() *programScheduler {
	return &programScheduler{ticks: make(chan func(), 1)}
}

func (s *programScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case s.ticks <- fn:
				case <-done:
					return
				}
			}
		}
	}()
	return sync.OnceFunc(func() { close(done) })
}

// post returns a func that queues fn for Update, dropping it once ctx is done.
func (s *programScheduler) post(ctx context.Context) func(func()) {
	return func(fn func()) {
		select {
		case s.ticks <- fn:
		case <-ctx.Done():
		}
	}
}

// wait blocks until the next queued callback, or returns nil once ctx is done.
func (s *programScheduler) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-s.ticks:
			return scheduledMsg{fn: fn}
		case <-ctx.Done():
			return nil
		}
	}
}
