package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/studyflow-app/studyflow/internal/notify"
	"github.com/studyflow-app/studyflow/internal/tui"
)

// ConsoleNotifier renders engine notifications as styled terminal lines.
type ConsoleNotifier struct {
	success  lipgloss.Style
	errStyle lipgloss.Style
	info     lipgloss.Style
	body     lipgloss.Style
}

// NewConsoleNotifier creates the CLI notification sink.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess)).Bold(true),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorError)).Bold(true),
		info:     lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright)).Bold(true),
		body:     lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText)),
	}
}

// Notify implements notify.Notifier.
func (c *ConsoleNotifier) Notify(n notify.Notification) {
	var title string
	switch n.Severity {
	case notify.SeveritySuccess:
		title = c.success.Render("✅ " + n.Title)
	case notify.SeverityError:
		title = c.errStyle.Render("❌ " + n.Title)
	default:
		title = c.info.Render("ℹ️  " + n.Title)
	}
	fmt.Println(title)
	if n.Description != "" {
		fmt.Println(c.body.Render("   " + n.Description))
	}
}
