package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"formidamail/internal/app"
	"formidamail/internal/boundary"
	"formidamail/internal/inbox"
	"formidamail/internal/model"
)

type Options struct {
	Scope       app.Config // Dispatch is supplied by the model
	FaultSender string     // previews from this sender fail to render
	Logger      log.FieldLogger
}

// AppModel is the inbox screen. It owns one session scope for as long as it
// is mounted; Close releases it.
type AppModel struct {
	scope       *app.Scope
	boundaries  *boundary.Set
	faultSender string
	log         log.FieldLogger

	Err    error
	status string

	inboxList list.Model
	state     model.InboxState

	width, height int

	mu      sync.Mutex
	program *tea.Program
}

func NewAppModel(ctx context.Context, opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	m := &AppModel{
		boundaries:  boundary.NewSet(logger.WithField("component", "boundary")),
		faultSender: opts.FaultSender,
		log:         logger,
	}

	l := list.New([]list.Item{}, inboxDelegate{m: m}, 0, 0)
	l.Title = "Inbox"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("q")
	m.inboxList = l

	cfg := opts.Scope
	cfg.Dispatch = m.dispatch
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	m.scope = app.Open(ctx, cfg)

	m.scope.Store.Subscribe(func(c inbox.Change) { m.refresh(c.State) })
	m.scope.Auth.Subscribe(func(authenticated bool) {
		if authenticated {
			m.status = "Logged in"
		} else {
			m.status = "Logged out"
		}
	})
	m.refresh(m.scope.Store.Snapshot())
	return m
}

// SetProgram stores a reference to the tea.Program so the driver can send
// its ticks to the Update loop. Ticks that fire before a program is set
// are dropped.
func (m *AppModel) SetProgram(p *tea.Program) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.program = p
}

func (m *AppModel) dispatch(task func()) {
	m.mu.Lock()
	p := m.program
	m.mu.Unlock()
	if p != nil {
		p.Send(dispatchMsg(task))
	}
}

// Close stops the session's driver.
func (m *AppModel) Close() {
	m.scope.Close()
}

func (m *AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) refresh(st model.InboxState) {
	m.state = st
	m.boundaries.Prune(st.IDs())

	m.inboxList.SetItems(inboxItems(st))
	if n := len(m.inboxList.Items()); n > 0 && m.inboxList.Index() >= n {
		m.inboxList.Select(n - 1)
	}
	m.inboxList.Title = fmt.Sprintf("Inbox (%d)", len(st.Emails))
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.inboxList.SetSize(msg.Width, msg.Height-4) // navbar + footer
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dispatchMsg:
		msg()
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.inboxList, cmd = m.inboxList.Update(msg)
	return m, cmd
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "l":
		m.scope.Auth.Toggle()
		return m, clearStatusAfter(2 * time.Second)
	}

	if !m.scope.Auth.IsAuthenticated() {
		return m, nil
	}

	// An open error modal takes every key until it is closed.
	if failed := m.boundaries.Failed(m.state.IDs()); len(failed) > 0 {
		if key == "enter" || key == "esc" {
			m.boundaries.Dismiss(failed[0])
		}
		return m, nil
	}

	switch key {
	case "d", "#", "backspace", "delete":
		return m.removeSelected()
	case "u":
		return m.undo()
	case "enter":
		if _, ok := m.inboxList.SelectedItem().(undoItem); ok {
			return m.undo()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inboxList, cmd = m.inboxList.Update(msg)
	return m, cmd
}

func (m *AppModel) removeSelected() (tea.Model, tea.Cmd) {
	item, ok := m.inboxList.SelectedItem().(previewItem)
	if !ok {
		return m, nil
	}
	m.scope.Store.Remove(item.ID)
	m.status = fmt.Sprintf("Removed %q", item.Title)
	return m, clearStatusAfter(2 * time.Second)
}

func (m *AppModel) undo() (tea.Model, tea.Cmd) {
	if !m.scope.Store.Undo() {
		m.status = "Nothing to undo"
	} else {
		m.status = "Restored"
	}
	return m, clearStatusAfter(2 * time.Second)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusMsg("")
	})
}

// View renders the navbar and either the inbox or the reason it is hidden.
func (m *AppModel) View() string {
	if m.Err != nil {
		return "Error: " + m.Err.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(navbar(m.scope.Auth.IsAuthenticated(), m.width))
	b.WriteString("\n")

	switch {
	case !m.scope.Auth.IsAuthenticated():
		b.WriteString(deniedView())
	case len(m.state.Emails) == 0 && m.state.Removed == nil:
		b.WriteString(emptyView())
	default:
		b.WriteString(m.inboxList.View())
		if failed := m.boundaries.Failed(m.state.IDs()); len(failed) > 0 {
			b.WriteString("\n")
			b.WriteString(modalView())
		}
	}

	b.WriteString("\n")
	b.WriteString(inboxFooter(m.scope.Auth.IsAuthenticated()))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return b.String()
}
