package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studyflow-app/studyflow/internal/models"
	"github.com/studyflow-app/studyflow/internal/parser"
	"github.com/studyflow-app/studyflow/internal/store"
)

// Form field indices
const (
	fieldTitle = iota
	fieldDate
	fieldFrom
	fieldTo
	fieldSubject
	fieldCount
)

// sessionForm is the inline new-session form shown over the calendar.
type sessionForm struct {
	inputs        []textinput.Model
	focused       int
	validationErr string
}

func newSessionForm(day time.Time) sessionForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[fieldTitle].Placeholder = "Session title... (required)"
	inputs[fieldTitle].CharLimit = 200
	inputs[fieldTitle].Focus()

	inputs[fieldDate].Placeholder = "dd/mm/yyyy"
	inputs[fieldDate].SetValue(day.Format("02/01/2006"))
	inputs[fieldDate].CharLimit = 10

	inputs[fieldFrom].Placeholder = "09:00"
	inputs[fieldFrom].CharLimit = 5

	inputs[fieldTo].Placeholder = "10:00"
	inputs[fieldTo].CharLimit = 5

	inputs[fieldSubject].Placeholder = "Subject, e.g. " + strings.Join(models.Subjects[:3], ", ") + " (optional)"
	inputs[fieldSubject].CharLimit = 50

	return sessionForm{inputs: inputs}
}

// update routes a key to the focused input. It returns true when the user
// submitted the form from the last field.
func (f *sessionForm) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab", "down":
		if msg.String() == "enter" && f.focused == fieldCount-1 {
			return true, nil
		}
		f.setFocus((f.focused + 1) % fieldCount)
		return false, nil
	case "shift+tab", "up":
		f.setFocus((f.focused + fieldCount - 1) % fieldCount)
		return false, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return false, cmd
}

func (f *sessionForm) setFocus(i int) {
	f.inputs[f.focused].Blur()
	f.focused = i
	f.inputs[i].Focus()
}

// request converts the form fields into a create request. Time parsing errors
// surface here; the range invariant is checked by the store.
func (f *sessionForm) request() (store.CreateSessionRequest, error) {
	day, err := parser.ParseDay(strings.TrimSpace(f.inputs[fieldDate].Value()))
	if err != nil {
		return store.CreateSessionRequest{}, err
	}

	from := strings.TrimSpace(f.inputs[fieldFrom].Value())
	if from == "" {
		from = "09:00"
	}
	to := strings.TrimSpace(f.inputs[fieldTo].Value())
	if to == "" {
		to = "10:00"
	}

	start, err := parser.ParseClock(day, from)
	if err != nil {
		return store.CreateSessionRequest{}, err
	}
	end, err := parser.ParseClock(day, to)
	if err != nil {
		return store.CreateSessionRequest{}, err
	}

	return store.CreateSessionRequest{
		Title:     strings.TrimSpace(f.inputs[fieldTitle].Value()),
		StartTime: start,
		EndTime:   end,
		Subject:   strings.TrimSpace(f.inputs[fieldSubject].Value()),
	}, nil
}

func (f *sessionForm) view() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)

	labels := []string{"Title", "Date", "From", "To", "Subject"}

	var b strings.Builder
	b.WriteString(titleStyle.Render("New study session"))
	b.WriteString("\n\n")
	for i, input := range f.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	if f.validationErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		b.WriteString("\n" + errStyle.Render("⚠ "+f.validationErr) + "\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	b.WriteString("\n" + helpStyle.Render("enter/tab next · enter on Subject saves · esc cancel"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Margin(1, 2)
	return borderStyle.Render(b.String())
}
