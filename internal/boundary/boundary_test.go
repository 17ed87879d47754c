package boundary

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestHealthyRender(t *testing.T) {
	logger, hook := test.NewNullLogger()
	b := New(func() { t.Error("cleanup must not run") }, logger)

	assert.Equal(t, "hello", b.Render(func() string { return "hello" }))
	assert.False(t, b.Failed())

	b.Dismiss()
	assert.Empty(t, hook.AllEntries())
}

func TestFaultShowsFallbackUntilDismissed(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cleared := 0
	b := New(func() { cleared++ }, logger)

	calls := 0
	faulty := func() string {
		calls++
		panic(&RenderError{Reason: "Bad Blood"})
	}

	assert.Equal(t, Fallback, b.Render(faulty))
	assert.True(t, b.Failed())
	assert.EqualError(t, b.Err(), "render: Bad Blood")
	assert.Equal(t, "render_fault", hook.LastEntry().Message)

	assert.Equal(t, Fallback, b.Render(faulty))
	assert.Equal(t, 1, calls, "failed boundary does not re-render its child")

	b.Dismiss()
	assert.Equal(t, 1, cleared)
	assert.False(t, b.Failed())
	assert.Equal(t, "ok", b.Render(func() string { return "ok" }))

	b.Dismiss()
	assert.Equal(t, 1, cleared)
}

func TestPanicValues(t *testing.T) {
	logger, _ := test.NewNullLogger()

	b := New(nil, logger)
	b.Render(func() string { panic("plain string") })
	assert.EqualError(t, b.Err(), "render: plain string")

	sentinel := errors.New("boom")
	b = New(nil, logger)
	b.Render(func() string { panic(sentinel) })
	assert.ErrorIs(t, b.Err(), sentinel)

	b = New(nil, logger)
	b.Render(func() string { panic(7) })
	assert.EqualError(t, b.Err(), "render: 7")
	b.Dismiss()
	assert.False(t, b.Failed())
}

func TestSet(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewSet(logger)

	var cleared []string
	a := s.Get("a", func() { cleared = append(cleared, "a") })
	assert.Same(t, a, s.Get("a", nil))
	s.Get("b", func() { cleared = append(cleared, "b") })
	s.Get("c", nil).Render(func() string { panic("c") })

	a.Render(func() string { panic("a") })
	assert.Equal(t, []string{"a", "c"}, s.Failed([]string{"a", "b", "c"}))

	s.Dismiss("a")
	s.Dismiss("missing")
	assert.Equal(t, []string{"a"}, cleared)

	s.Prune([]string{"b"})
	assert.Empty(t, s.Failed([]string{"a", "b", "c"}))
	assert.NotSame(t, a, s.Get("a", nil))
}
