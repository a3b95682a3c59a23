package terminal

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	SuccessSymbol  = "✓"
	ErrorSymbol    = "✗"
	ContinueSymbol = "→"
)

var (
	appStyle = lipgloss.NewStyle().Margin(1, 2)

	// Header styles
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	bulletSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Input styles
	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Background(lipgloss.NoColor{}).
			Padding(0, 1)

	inputFocusedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Background(lipgloss.NoColor{}).
				Padding(0, 1)

	// Option list
	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	optionSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)

	optionValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	// Buttons
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Bold(true).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Padding(0, 2)

	attachmentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boldStyle = lipgloss.NewStyle().
			Bold(true)
)

func Bold(s string) string {
	return boldStyle.Render(s)
}
