package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studyflow-app/studyflow/internal/models"
	"github.com/studyflow-app/studyflow/internal/schedule"
	"github.com/studyflow-app/studyflow/internal/store"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusCalendar Focus = iota
	FocusForm
)

// CalendarModel is the TUI model for the month calendar: a day grid with
// session markers, the selected day's session list, and a new-session form.
type CalendarModel struct {
	width  int
	height int

	sessions *store.SessionStore
	tasks    *store.TaskStore

	// Derived views, rebuilt from the session snapshot after every write
	index *schedule.DayIndex

	month    time.Time // first day of the visible month
	selected time.Time // selected calendar day

	focus Focus
	form  *sessionForm

	err       error
	statusMsg string
}

// NewCalendarModel creates the calendar TUI over owner-scoped stores.
func NewCalendarModel(tasks *store.TaskStore, sessions *store.SessionStore) CalendarModel {
	now := time.Now()
	selected := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return CalendarModel{
		sessions: sessions,
		tasks:    tasks,
		index:    schedule.NewDayIndex(sessions.List()),
		month:    time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		selected: selected,
		focus:    FocusCalendar,
	}
}

// Init implements tea.Model.
func (m CalendarModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusForm {
			return m.updateForm(msg)
		}
		return m.updateCalendar(msg)
	}

	return m, nil
}

func (m CalendarModel) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "left", "h":
		m.selected = m.selected.AddDate(0, 0, -1)
	case "right", "l":
		m.selected = m.selected.AddDate(0, 0, 1)
	case "up", "k":
		m.selected = m.selected.AddDate(0, 0, -7)
	case "down", "j":
		m.selected = m.selected.AddDate(0, 0, 7)

	case "pgup", "[":
		m.month = m.month.AddDate(0, -1, 0)
		m.selected = m.month
		return m, nil
	case "pgdown", "]":
		m.month = m.month.AddDate(0, 1, 0)
		m.selected = m.month
		return m, nil

	case "t":
		now := time.Now()
		m.selected = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	case "n":
		form := newSessionForm(m.selected)
		m.form = &form
		m.focus = FocusForm
		m.statusMsg = ""
		return m, nil

	case "x":
		// Delete the first session of the selected day
		day := m.index.Day(m.selected)
		if len(day) > 0 {
			if err := m.sessions.Delete(day[0].ID); err != nil {
				m.err = err
			} else {
				m.index.Rebuild(m.sessions.List())
				m.statusMsg = "Session deleted"
			}
		}
		return m, nil
	}

	// Keep the visible month in step with the selection
	if m.selected.Month() != m.month.Month() || m.selected.Year() != m.month.Year() {
		m.month = time.Date(m.selected.Year(), m.selected.Month(), 1, 0, 0, 0, 0, time.Local)
	}
	return m, nil
}

func (m CalendarModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.focus = FocusCalendar
		m.form = nil
		return m, nil
	}

	done, cmd := m.form.update(msg)
	if !done {
		return m, cmd
	}

	req, err := m.form.request()
	if err != nil {
		m.form.validationErr = err.Error()
		return m, nil
	}

	created, err := m.sessions.Create(req)
	if err != nil {
		// InvalidRange and friends are user-correctable: stay in the form
		m.form.validationErr = err.Error()
		return m, nil
	}

	m.index.Add(*created)
	m.selected = schedule.DayOf(created.StartTime).Time()
	m.month = time.Date(m.selected.Year(), m.selected.Month(), 1, 0, 0, 0, 0, time.Local)
	m.statusMsg = fmt.Sprintf("Added \"%s\"", created.Title)
	m.focus = FocusCalendar
	m.form = nil
	return m, nil
}

// View renders the calendar grid next to the selected day's sessions
func (m CalendarModel) View() string {
	if m.focus == FocusForm {
		return m.form.view()
	}

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	header := titleStyle.Render(m.month.Format("January 2006"))

	grid := m.renderGrid()
	sessions := m.renderDaySessions()

	panel := lipgloss.JoinHorizontal(lipgloss.Top, grid, "   ", sessions)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	help := helpStyle.Render("←→↑↓ move · [/] month · t today · n new session · x delete · q quit")

	parts := []string{header, "", panel, "", help}
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
		parts = append(parts, statusStyle.Render(m.statusMsg))
	}
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		parts = append(parts, errStyle.Render("Error: "+m.err.Error()))
	}

	return lipgloss.NewStyle().Margin(1, 2).Render(strings.Join(parts, "\n"))
}

func (m CalendarModel) renderGrid() string {
	dayHeaderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	markedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMint)).Bold(true)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorCardBackground)).
		Background(lipgloss.Color(ColorAccentMain)).
		Bold(true)

	var b strings.Builder
	b.WriteString(dayHeaderStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	days := m.index.Days()
	selectedKey := schedule.DayOf(m.selected)

	// Monday-first offset of the month's first weekday
	offset := (int(m.month.Weekday()) + 6) % 7
	cell := m.month.AddDate(0, 0, -offset)

	for week := 0; week < 6; week++ {
		cells := make([]string, 0, 7)
		for wd := 0; wd < 7; wd++ {
			key := schedule.DayOf(cell)
			label := fmt.Sprintf("%2d", cell.Day())

			var rendered string
			switch {
			case key == selectedKey:
				rendered = selectedStyle.Render(label)
			case cell.Month() != m.month.Month():
				rendered = dimStyle.Render(label)
			default:
				if _, ok := days[key]; ok {
					rendered = markedStyle.Render(label)
				} else {
					rendered = normalStyle.Render(label)
				}
			}
			cells = append(cells, rendered)
			cell = cell.AddDate(0, 0, 1)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)
	return borderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m CalendarModel) renderDaySessions() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	subjectStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMint))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.selected.Format("Monday, 2 January")))
	b.WriteString("\n\n")

	day := m.index.Day(m.selected)
	if len(day) == 0 {
		b.WriteString(emptyStyle.Render("No sessions. Press 'n' to add one."))
	}
	for _, s := range day {
		b.WriteString(timeStyle.Render(fmt.Sprintf("%s–%s",
			s.StartTime.Format("15:04"), s.EndTime.Format("15:04"))))
		b.WriteString("  " + s.Title)
		if s.Subject != "" {
			b.WriteString("  " + subjectStyle.Render("@"+s.Subject))
		}
		if s.RelatedTaskID != "" {
			b.WriteString("  " + m.relatedTaskLabel(s))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(44).Render(b.String())
}

// relatedTaskLabel resolves the weak task reference best-effort; a dangling id
// renders as "unknown task" rather than erroring.
func (m CalendarModel) relatedTaskLabel(s models.Session) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	if task, err := m.tasks.Get(s.RelatedTaskID); err == nil {
		return style.Render("(" + task.Title + ")")
	}
	return style.Render("(unknown task)")
}
