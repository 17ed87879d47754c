package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formidamail/internal/app"
	"formidamail/internal/mockdata"
	"formidamail/internal/model"
)

func newTestModel(t *testing.T, opts Options) *AppModel {
	t.Helper()
	logger, _ := test.NewNullLogger()
	opts.Logger = logger
	if opts.Scope.Interval == 0 {
		opts.Scope.Interval = time.Hour
	}
	if opts.Scope.Generator == nil {
		opts.Scope.Generator = mockdata.New(1)
	}
	m := NewAppModel(context.Background(), opts)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func press(m *AppModel, key string) {
	switch key {
	case "enter":
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	default:
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

func TestDeniedUntilLogin(t *testing.T) {
	m := newTestModel(t, Options{})

	assert.Contains(t, m.View(), "Access denied")
	press(m, "d")
	assert.Equal(t, 1, m.scope.Store.Len(), "keys are ignored while logged out")

	press(m, "l")
	assert.True(t, m.scope.Auth.IsAuthenticated())
	view := m.View()
	assert.Contains(t, view, "Taylor Swift")
	assert.Contains(t, view, "logout")

	press(m, "l")
	assert.False(t, m.scope.Auth.IsAuthenticated())
	assert.Contains(t, m.View(), "Log in")
}

func TestRemoveShowsUndoRow(t *testing.T) {
	m := newTestModel(t, Options{Scope: app.Config{Authenticated: true}})

	press(m, "d")
	assert.Equal(t, 0, m.scope.Store.Len())
	require.Len(t, m.inboxList.Items(), 1)
	_, isUndo := m.inboxList.Items()[0].(undoItem)
	assert.True(t, isUndo)
	assert.Contains(t, m.View(), "UNDO")

	press(m, "enter")
	assert.Equal(t, model.Seed(), m.scope.Store.Snapshot().Emails)
	assert.NotContains(t, m.View(), "UNDO")

	press(m, "u")
	assert.Equal(t, "Nothing to undo", m.status)
}

func TestDriverTicksArriveAsMessages(t *testing.T) {
	m := newTestModel(t, Options{Scope: app.Config{Authenticated: true, Capacity: 3}})

	for i := 0; i < 5; i++ {
		m.Update(dispatchMsg(func() { m.scope.Driver.Tick() }))
	}
	assert.Equal(t, 3, m.scope.Store.Len())
	assert.Len(t, m.inboxList.Items(), 3)
	assert.Equal(t, "Inbox (3)", m.inboxList.Title)
}

func TestRenderFaultRecovery(t *testing.T) {
	m := newTestModel(t, Options{
		Scope:       app.Config{Authenticated: true},
		FaultSender: "Taylor Swift",
	})

	view := m.View()
	assert.Contains(t, view, "Email Error")
	assert.Equal(t, []string{"1"}, m.boundaries.Failed(m.state.IDs()))

	press(m, "d")
	assert.Equal(t, 1, m.scope.Store.Len(), "modal swallows other keys")

	press(m, "enter")
	assert.Equal(t, 0, m.scope.Store.Len(), "closing the modal removes the email")
	assert.Empty(t, m.boundaries.Failed([]string{"1"}))
	assert.NotContains(t, m.View(), "[enter] Close")

	press(m, "u")
	assert.Contains(t, m.View(), "Email Error", "the restored email faults again")
}

func TestInboxItemsSplicesUndo(t *testing.T) {
	a, b, c := model.EmailRecord{ID: "a"}, model.EmailRecord{ID: "b"}, model.EmailRecord{ID: "c"}
	items := inboxItems(model.InboxState{
		Emails:  []model.EmailRecord{a, c},
		Removed: &model.RemovedInfo{Record: b, Index: 1},
	})

	require.Len(t, items, 3)
	assert.Equal(t, previewItem{a}, items[0])
	assert.Equal(t, undoItem{model.RemovedInfo{Record: b, Index: 1}}, items[1])
	assert.Equal(t, previewItem{c}, items[2])

	assert.Len(t, inboxItems(model.InboxState{}), 0)
}

func TestEmptyInbox(t *testing.T) {
	m := newTestModel(t, Options{Scope: app.Config{Authenticated: true, Seed: []model.EmailRecord{}}})
	assert.Contains(t, m.View(), "Your inbox is empty.")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
