package eraser

import (
	"sync"
	"time"
)

// Task is a scheduled callback which can be cancelled.
type Task interface {
	Cancel()
}

// Scheduler runs the widget callbacks. Every callback, including the
// completion of background work, must be invoked on the same goroutine
// the widget handlers are called from.
type Scheduler interface {
	// AfterFunc calls fn once, after the delay.
	AfterFunc(d time.Duration, fn func()) Task
	// Every calls fn repeatedly at the given interval until cancelled.
	Every(d time.Duration, fn func()) Task
	// Go runs work in the background and calls the returned function back.
	Go(work func() func())
}

// Loop is a Scheduler serializing every callback onto the goroutine
// draining its Events channel, usually the GUI event loop.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a new event loop.
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Events returns the channel of callbacks to run on the loop goroutine.
func (l *Loop) Events() <-chan func() {
	return l.queue
}

// Close stops accepting new callbacks. Pending timers and tickers
// are not able to post anything after Close returns.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// post queues fn for the loop goroutine. It must not be called from the loop goroutine.
func (l *Loop) post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// loopTask is cancelled from the loop goroutine and its callbacks check the
// flag on the same goroutine, so a task firing concurrently with Cancel never runs.
type loopTask struct {
	cancelled bool
	stop      func()
}

func (t *loopTask) Cancel() {
	if t.cancelled {
		return
	}
	t.cancelled = true
	t.stop()
}

func (t *loopTask) run(fn func()) func() {
	return func() {
		if !t.cancelled {
			fn()
		}
	}
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Task {
	t := &loopTask{}
	timer := time.AfterFunc(d, func() { l.post(t.run(fn)) })
	t.stop = func() { timer.Stop() }
	return t
}

// Every implements Scheduler.
func (l *Loop) Every(d time.Duration, fn func()) Task {
	t := &loopTask{}
	quit := make(chan struct{})
	t.stop = func() { close(quit) }

	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.post(t.run(fn))
			case <-quit:
				return
			case <-l.done:
				return
			}
		}
	}()
	return t
}

// Go implements Scheduler.
func (l *Loop) Go(work func() func()) {
	go func() {
		if cb := work(); cb != nil {
			l.post(cb)
		}
	}()
}
