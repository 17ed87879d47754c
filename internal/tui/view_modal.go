package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("196")).
	Padding(0, 2)

func modalView() string {
	return modalStyle.Render(faultStyle.Render("Email Error") + "\n\n" + "[enter] Close")
}
