package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	navItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingTop(1)
)

func navbar(authenticated bool, width int) string {
	item := "Log in"
	if authenticated {
		item = "logout"
	}
	logo := logoStyle.Render("Formidamail")
	nav := navItemStyle.Render("[l] " + item)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(nav)
	if gap < 2 {
		gap = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, lipgloss.NewStyle().Width(gap).Render(""), nav)
}
