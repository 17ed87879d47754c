package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formidamail/internal/app"
	"formidamail/internal/loop"
	"formidamail/internal/model"
)

func openScope(t *testing.T, authenticated bool, seed ...model.EmailRecord) *app.Scope {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := app.Open(context.Background(), app.Config{
		Authenticated: authenticated,
		Seed:          seed,
		Interval:      time.Hour,
		Logger:        logger,
	})
	t.Cleanup(s.Close)
	return s
}

func TestExec(t *testing.T) {
	s := openScope(t, false)
	var out bytes.Buffer

	require.NoError(t, Exec("ls", s, &out))
	assert.Contains(t, out.String(), "access denied")

	out.Reset()
	require.NoError(t, Exec("login", s, &out))
	require.NoError(t, Exec("ls", s, &out))
	assert.Contains(t, out.String(), `"Taylor Swift" <tswift@gmail.com>`)

	out.Reset()
	require.NoError(t, Exec("rm 1", s, &out))
	require.NoError(t, Exec("ls", s, &out))
	assert.Equal(t, "removed 1\ninbox empty\n   [undo 1]\n", out.String())

	out.Reset()
	require.NoError(t, Exec("rm 1", s, &out))
	require.NoError(t, Exec("undo", s, &out))
	require.NoError(t, Exec("undo", s, &out))
	assert.Equal(t, "no email with id 1\nrestored\nnothing to undo\n", out.String())

	assert.ErrorIs(t, Exec("quit", s, &out), ErrQuit)
	assert.Error(t, Exec("rm", s, &out))
	assert.Error(t, Exec("frobnicate", s, &out))
	assert.NoError(t, Exec("   ", s, &out))
}

func TestListMarksUndoSlot(t *testing.T) {
	s := openScope(t, true, model.EmailRecord{ID: "a"}, model.EmailRecord{ID: "b"}, model.EmailRecord{ID: "c"})
	require.True(t, s.Store.Remove("b"))

	var out bytes.Buffer
	require.NoError(t, Exec("ls", s, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "a")
	assert.Equal(t, "[undo b]", strings.TrimSpace(lines[1]))
	assert.Contains(t, lines[2], "c")
}

func TestServe(t *testing.T) {
	s := openScope(t, false)
	l := loop.New(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	var out bytes.Buffer
	in := strings.NewReader("login\nrm 1\nbogus\nundo\nquit\nlogout\n")
	require.NoError(t, Serve(ctx, in, &out, s, l.Call))

	var authenticated bool
	var n int
	require.True(t, l.Call(func() { authenticated = s.Auth.IsAuthenticated(); n = s.Store.Len() }))
	assert.True(t, authenticated, "lines after quit are not run")
	assert.Equal(t, 1, n)
	assert.Contains(t, out.String(), "usage:")
}
