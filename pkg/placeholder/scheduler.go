package placeholder

import (
	"sync"
	"time"
)

// Scheduler runs fn every d until the returned stop func is called. Stop must
// be idempotent. A tick already in flight may still run after stop returns.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) func()

// Every implements Scheduler.
func (f SchedulerFunc) Every(d time.Duration, fn func()) func() { return f(d, fn) }

// TickerScheduler runs fn on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

// Every implements Scheduler.
func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return sync.OnceFunc(func() {
		ticker.Stop()
		close(done)
	})
}
