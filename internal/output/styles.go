package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the CLI. Use these instead of inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: rule names, editor kinds, paths.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "created" rule status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "updated" rule status.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "removed" rule status and diff deletions.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" rule status.
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Rule status words printed after each write.
const (
	StatusCreated   = "created"
	StatusUpdated   = "updated"
	StatusUnchanged = "unchanged"
	StatusRemoved   = "removed"
	StatusSkipped   = "skipped"
	statusFailed    = "failed"
)

// StatusFailed is the status word for a rule that could not be written.
const StatusFailed = statusFailed

func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusUpdated:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged, StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(colorRed)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minRuleColumnWidth keeps status words aligned across lines.
const minRuleColumnWidth = 40

// FormatRuleLine renders "name -> path" with a right-aligned, color-coded status.
// An empty path renders the name alone.
func FormatRuleLine(name, path, status string) string {
	plain := name
	styled := StyleNoun.Render(name)
	if path != "" {
		plain += " -> " + path
		styled += StyleDim.Render(" -> ") + path
	}

	padding := minRuleColumnWidth - len(plain)
	if padding < 2 {
		padding = 2
	}

	return styled + strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Foreground(colorBoldRed).Render("✘")
	return cross + " " + msg
}
