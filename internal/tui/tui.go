package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow-app/studyflow/internal/store"
)

// RunCalendarTUI starts the interactive calendar view.
func RunCalendarTUI(tasks *store.TaskStore, sessions *store.SessionStore) error {
	model := NewCalendarModel(tasks, sessions)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
