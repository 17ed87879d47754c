package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"formidamail/internal/boundary"
	"formidamail/internal/model"
	"formidamail/internal/util"
)

// previewItem wraps EmailRecord for the list display.
type previewItem struct {
	model.EmailRecord
}

func (p previewItem) FilterValue() string { return p.Name + " " + p.Title }

// undoItem marks where the last removed email used to be.
type undoItem struct {
	model.RemovedInfo
}

func (u undoItem) FilterValue() string { return "" }

// inboxItems lays out the previews with the undo row spliced in at the
// removed email's old position.
func inboxItems(st model.InboxState) []list.Item {
	items := make([]list.Item, 0, len(st.Emails)+1)
	for _, e := range st.Emails {
		items = append(items, previewItem{e})
	}
	if st.Removed != nil {
		idx := st.Removed.Index
		if idx > len(items) {
			idx = len(items)
		}
		items = append(items, nil)
		copy(items[idx+1:], items[idx:])
		items[idx] = undoItem{*st.Removed}
	}
	return items
}

var (
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	undoStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	faultStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// inboxDelegate renders each preview inside its recovery boundary.
type inboxDelegate struct {
	m *AppModel
}

func (d inboxDelegate) Height() int                             { return 2 }
func (d inboxDelegate) Spacing() int                            { return 1 }
func (d inboxDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d inboxDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	cursor := "  "
	if index == l.Index() {
		cursor = selectedStyle.Render("> ")
	}

	switch it := item.(type) {
	case undoItem:
		fmt.Fprintf(w, "%s%s\n  %s", cursor, undoStyle.Render("UNDO"),
			bodyStyle.Render("restore "+it.Record.Title))

	case previewItem:
		id := it.ID
		store := d.m.scope.Store
		b := d.m.boundaries.Get(id, func() { store.Remove(id) })
		out := b.Render(func() string {
			return d.m.renderPreview(it.EmailRecord, l.Width()-2)
		})
		if b.Failed() {
			out = faultStyle.Render(boundary.Fallback) + "\n" + bodyStyle.Render(it.Name)
		}
		lines := strings.SplitN(out, "\n", 2)
		fmt.Fprintf(w, "%s%s", cursor, lines[0])
		if len(lines) > 1 {
			fmt.Fprintf(w, "\n  %s", lines[1])
		}
	}
}

// renderPreview draws one email. Previews from the configured fault sender
// fail, which exercises the recovery boundary.
func (m *AppModel) renderPreview(e model.EmailRecord, width int) string {
	if m.faultSender != "" && e.Name == m.faultSender {
		panic(&boundary.RenderError{Reason: "Bad Blood"})
	}
	if width < 20 {
		width = 20
	}
	clip := lipgloss.NewStyle().MaxWidth(width)

	head := nameStyle.Render(util.FormatSender(e.Name, e.Email)) + "  " + titleStyle.Render(e.Title)
	return clip.Render(head) + "\n" + clip.Render(bodyStyle.Render(e.Body))
}

func deniedView() string {
	return "\n  Access denied. Log in to see your inbox.\n"
}

func emptyView() string {
	return "\n  Your inbox is empty.\n"
}

func inboxFooter(authenticated bool) string {
	if !authenticated {
		return footerStyle.Render("l: log in  q: quit")
	}
	return footerStyle.Render("d: remove  u: undo  enter: undo/close error  l: log out  q: quit")
}
