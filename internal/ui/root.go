package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/tminus/internal/app"
	"github.com/dori/tminus/internal/engine"
	"github.com/dori/tminus/internal/model"
	"github.com/dori/tminus/internal/ui/theme"
	"github.com/dori/tminus/internal/ui/views"
)

// RootModel is the main application model
type RootModel struct {
	app      *app.App
	keys     KeyMap
	help     help.Model
	interval time.Duration
	clock    func() time.Time
	width    int
	height   int

	board       views.BoardView
	form        views.FormView
	flash       bool
	helpVisible bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates the root model and performs the initial render
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	m := RootModel{
		app:      application,
		keys:     DefaultKeyMap(),
		help:     h,
		interval: application.Config.TickInterval,
		clock:    time.Now,
		board:    views.NewBoardView(),
		form:     views.NewFormView(),
	}
	if m.interval <= 0 {
		m.interval = time.Second
	}

	if err := application.Engine.Start(m.clock()); err != nil {
		m.errorMsg = err.Error()
	}
	m.sync()
	return m
}

// Init starts the tick loop
func (m RootModel) Init() tea.Cmd {
	return m.tick()
}

func (m RootModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

// sync copies the engine's cards into the board
func (m *RootModel) sync() {
	e := m.app.Engine
	m.board = m.board.SetCards(e.Cards(), e.Filter()).SetFlash(m.flash)
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.form = m.form.SetSize(m.width)
		m.board = m.board.SetSize(m.width, m.contentHeight())
		return m, nil

	case TickMsg:
		res := m.app.Engine.Tick(msg.At)
		m.flash = !m.flash
		if len(res.Completed) > 0 {
			m.statusMsg = completedStatus(res.Completed)
		}
		m.sync()
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	// Cursor blink and other input messages
	if m.form.IsActive() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear status/error on any keypress
	m.statusMsg = ""
	m.errorMsg = ""

	inputMode := m.form.IsActive()

	switch {
	case key.Matches(msg, m.keys.Quit):
		// ctrl+c always quits, but 'q' only quits when not typing
		if msg.String() == "ctrl+c" || !inputMode {
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.ThemeCycle):
		theme.SetTheme(theme.Next())
		m.statusMsg = fmt.Sprintf("Theme: %s", theme.Current.Theme.Name)
		return m, nil
	}

	if inputMode {
		return m.handleFormKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m RootModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form = m.form.Close()
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		var cmd tea.Cmd
		m.form, cmd = m.form.NextField()
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		name, date := m.form.Values()
		timer, err := m.app.Engine.Create(name, date, m.clock())
		if err != nil {
			// Keep what was typed so it can be corrected
			m.errorMsg = formError(err)
			return m, nil
		}
		m.form = m.form.Reset().Close()
		m.resize()
		m.statusMsg = fmt.Sprintf("Counting down to %s", engine.SanitizeName(timer.Name))
		m.sync()
		m.board = m.board.CursorTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m RootModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.app.Engine

	switch {
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil
	}

	// Everything else is hidden behind the help overlay
	if m.helpVisible {
		if key.Matches(msg, m.keys.Cancel) {
			m.helpVisible = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		var cmd tea.Cmd
		m.form, cmd = m.form.Open()
		m.resize()
		return m, cmd

	case key.Matches(msg, m.keys.Recent):
		return m.setFilter(model.FilterRecent)
	case key.Matches(msg, m.keys.ImportantV):
		return m.setFilter(model.FilterImportant)
	case key.Matches(msg, m.keys.Completed):
		return m.setFilter(model.FilterCompleted)
	case key.Matches(msg, m.keys.CycleFilter):
		return m.setFilter(e.Filter().Next())

	case key.Matches(msg, m.keys.Up):
		m.board = m.board.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.board = m.board.MoveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.board = m.board.CursorTop()
	case key.Matches(msg, m.keys.Bottom):
		m.board = m.board.CursorBottom()

	case key.Matches(msg, m.keys.Important):
		card, ok := m.board.Selected()
		if !ok {
			return m, nil
		}
		if _, err := e.ToggleImportant(card.Timer.ID, m.clock()); err != nil {
			m.errorMsg = fmt.Sprintf("Failed to update %s: %v", card.Title, err)
		}
		m.sync()

	case key.Matches(msg, m.keys.Delete):
		card, ok := m.board.Selected()
		if !ok {
			return m, nil
		}
		if _, err := e.Delete(card.Timer.ID, m.clock()); err != nil {
			m.errorMsg = fmt.Sprintf("Failed to delete %s: %v", card.Title, err)
		} else {
			m.statusMsg = fmt.Sprintf("Deleted %s", card.Title)
		}
		m.sync()
	}

	return m, nil
}

func (m RootModel) setFilter(f model.Filter) (tea.Model, tea.Cmd) {
	if _, err := m.app.Engine.SetFilter(f, m.clock()); err != nil {
		m.errorMsg = err.Error()
	}
	m.sync()
	m.board = m.board.CursorTop()
	return m, nil
}

// resize recomputes the board height after the form opens or closes
func (m *RootModel) resize() {
	m.board = m.board.SetSize(m.width, m.contentHeight())
}

// contentHeight is the space left for the board after header, footer and
// the form when it is open
func (m RootModel) contentHeight() int {
	// 1 line header + 1 blank + 2 footer lines + 1 status line
	h := m.height - 5
	if m.form.IsActive() {
		h -= lipgloss.Height(m.form.View())
	}
	if h < 0 {
		h = 0
	}
	return h
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader(), "")

	contentHeight := m.height - 5
	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		if m.form.IsActive() {
			content = m.form.View() + "\n"
		}
		content += m.board.View()
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the title and the filter tabs with their counts
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	e := m.app.Engine

	title := styles.Header.Render("tminus")

	counts := e.Counts()
	tabs := make([]string, 0, len(model.Filters()))
	for _, f := range model.Filters() {
		label := fmt.Sprintf("%s %d", f.Label(), counts.For(f))
		if f == e.Filter() {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.Tab.Render(label))
		}
	}

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, append([]string{title}, tabs...)...)
	rightSide := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1).
		Render(fmt.Sprintf("theme: %s", t.Name))

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}
	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the status line and key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	switch {
	case m.form.IsActive():
		line1 = key("enter", "create") + sep +
			key("tab", "next field") + sep +
			key("esc", "cancel")
	case m.helpVisible:
		line1 = key("?/esc", "close help")
	default:
		line1 = key("j/k", "navigate") + sep +
			key("1-3", "filter") + sep +
			key("ctrl+t", "theme")
		line2 = m.help.View(m.keys)
	}

	lines := []string{statusLine, line1}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return styles.Footer.Render(strings.Join(lines, "\n"))
}

// renderHelp renders the help overlay from the key map
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	sections := []string{"Navigation", "Countdowns", "Filters", "New countdown", "General"}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tminus Help"))
	b.WriteString("\n")

	for i, group := range m.keys.FullHelp() {
		b.WriteString(sectionStyle.Render(sections[i]))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(descStyle.Render(h.Desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Dates: 2026-12-31 18:00, 12/31/2026, tomorrow 9am, 17:30, +1h30m, in 10m"))

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func completedStatus(done []model.Timer) string {
	if len(done) == 1 {
		return fmt.Sprintf("⏰ %s is done!", engine.SanitizeName(done[0].Name))
	}
	return fmt.Sprintf("⏰ %d countdowns finished", len(done))
}

func formError(err error) string {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return fmt.Sprintf("Failed to create countdown: %v", err)
}
