package boundary

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Fallback is what a failed boundary renders in place of its child.
const Fallback = "Email Error (press enter to close)"

// RenderError is raised, via panic, by renderers that want to signal a
// fault with a specific message.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string { return "render: " + e.Reason }

// Boundary wraps the rendering of one item. A fault inside the render
// function puts the boundary in the failed state, where it shows Fallback
// until the user dismisses it. Dismissing runs the cleanup callback and
// re-enables normal rendering.
type Boundary struct {
	onClear func()
	err     error
	log     log.FieldLogger
}

func New(onClear func(), logger log.FieldLogger) *Boundary {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Boundary{onClear: onClear, log: logger}
}

// Render returns the output of render, or Fallback if render panics or the
// boundary is already failed.
func (b *Boundary) Render(render func() string) (out string) {
	if b.err != nil {
		return Fallback
	}

	defer func() {
		if r := recover(); r != nil {
			b.err = asError(r)
			b.log.WithError(b.err).Error("render_fault")
			out = Fallback
		}
	}()
	return render()
}

func asError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return &RenderError{Reason: v}
	default:
		return &RenderError{Reason: fmt.Sprint(v)}
	}
}

func (b *Boundary) Failed() bool { return b.err != nil }

// Err is the fault that failed the boundary, or nil.
func (b *Boundary) Err() error { return b.err }

// Dismiss acknowledges the fault: the cleanup callback runs and the
// boundary goes back to rendering its child. It does nothing if the
// boundary has not failed.
func (b *Boundary) Dismiss() {
	if b.err == nil {
		return
	}
	if b.onClear != nil {
		b.onClear()
	}
	b.err = nil
}
