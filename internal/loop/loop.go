package loop

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

// ErrStopped is returned by Run when the loop has already run once.
var ErrStopped = errors.New("loop already stopped")

// Loop serializes closures onto a single goroutine. Everything that touches
// a session's store or flag is posted here.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	ran   chan struct{}
}

func New(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
		ran:   make(chan struct{}, 1),
	}
}

// Post queues fn for execution on the loop goroutine. It reports false,
// without running fn, once the loop has exited.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call posts fn and waits for it to finish.
func (l *Loop) Call(fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() { defer close(finished); fn() }) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted closures until ctx is done. A loop runs at most once.
func (l *Loop) Run(ctx context.Context) error {
	select {
	case l.ran <- struct{}{}:
	default:
		return ErrStopped
	}
	defer close(l.done)

	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-ctx.Done():
			log.Trace("loop_exit_requested")
			return nil
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
