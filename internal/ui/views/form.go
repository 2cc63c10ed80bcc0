package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/tminus/internal/ui/theme"
)

const (
	fieldName = iota
	fieldDate
)

// FormView is the new-countdown form: a name and a target date
type FormView struct {
	width int

	name   textinput.Model
	date   textinput.Model
	focus  int
	active bool
}

// NewFormView creates a closed form
func NewFormView() FormView {
	name := textinput.New()
	name.Placeholder = "What are you counting down to?"
	name.CharLimit = 256

	date := textinput.New()
	date.Placeholder = "2026-12-31 18:00, tomorrow 9am or +10m"
	date.CharLimit = 64

	return FormView{name: name, date: date}
}

// SetSize sets the view width
func (v FormView) SetSize(width int) FormView {
	v.width = width
	inner := width - 14
	if inner < 20 {
		inner = 20
	}
	v.name.Width = inner
	v.date.Width = inner
	return v
}

// IsActive reports whether the form is open
func (v FormView) IsActive() bool {
	return v.active
}

// Open shows the form with the name field focused
func (v FormView) Open() (FormView, tea.Cmd) {
	v.active = true
	v.focus = fieldName
	v.date.Blur()
	cmd := v.name.Focus()
	return v, tea.Batch(cmd, textinput.Blink)
}

// Close hides the form. Field contents are kept so a reopened form
// resumes where it left off.
func (v FormView) Close() FormView {
	v.active = false
	v.name.Blur()
	v.date.Blur()
	return v
}

// Reset clears both fields
func (v FormView) Reset() FormView {
	v.name.Reset()
	v.date.Reset()
	v.focus = fieldName
	return v
}

// NextField moves focus to the other field
func (v FormView) NextField() (FormView, tea.Cmd) {
	if v.focus == fieldName {
		v.focus = fieldDate
		v.name.Blur()
		cmd := v.date.Focus()
		return v, cmd
	}
	v.focus = fieldName
	v.date.Blur()
	cmd := v.name.Focus()
	return v, cmd
}

// Values returns the raw name and date text
func (v FormView) Values() (name, date string) {
	return v.name.Value(), v.date.Value()
}

// Update forwards input to the focused field
func (v FormView) Update(msg tea.Msg) (FormView, tea.Cmd) {
	var cmd tea.Cmd
	if v.focus == fieldName {
		v.name, cmd = v.name.Update(msg)
	} else {
		v.date, cmd = v.date.Update(msg)
	}
	return v, cmd
}

// View renders the form panel
func (v FormView) View() string {
	styles := theme.Current.Styles

	row := func(label string, in textinput.Model, focused bool) string {
		in.PlaceholderStyle = styles.Placeholder
		style := styles.Input
		if focused {
			style = styles.InputFocused
		}
		return lipgloss.JoinHorizontal(lipgloss.Center,
			styles.DigitLabel.Width(8).Render(label),
			style.Render(in.View()),
		)
	}

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("New countdown"))
	b.WriteString("\n")
	b.WriteString(row("Name", v.name, v.focus == fieldName))
	b.WriteString("\n")
	b.WriteString(row("Date", v.date, v.focus == fieldDate))

	return styles.Panel.Render(b.String())
}
