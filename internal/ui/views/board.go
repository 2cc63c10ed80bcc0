package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dori/tminus/internal/engine"
	"github.com/dori/tminus/internal/model"
	"github.com/dori/tminus/internal/ui/theme"
)

// cardHeight is the rendered height of one card including its margin
const cardHeight = 7

var fieldLabels = [4]string{"Days", "Hours", "Minutes", "Seconds"}

// BoardView draws the visible countdown cards
type BoardView struct {
	width  int
	height int

	cards        []engine.Card
	filter       model.Filter
	cursor       int
	scrollOffset int // First visible card index
	flash        bool
}

// NewBoardView creates an empty board
func NewBoardView() BoardView {
	return BoardView{filter: model.FilterRecent}
}

// SetSize sets the view dimensions
func (v BoardView) SetSize(width, height int) BoardView {
	v.width = width
	v.height = height
	v.ensureCursorVisible()
	return v
}

// SetCards replaces the cards, keeping the cursor on the same timer when
// it is still visible
func (v BoardView) SetCards(cards []engine.Card, filter model.Filter) BoardView {
	selectedID := ""
	if card, ok := v.Selected(); ok {
		selectedID = card.Timer.ID
	}

	v.cards = cards
	v.filter = filter

	if selectedID != "" {
		for i, c := range cards {
			if c.Timer.ID == selectedID {
				v.cursor = i
				break
			}
		}
	}
	v.clampCursor()
	v.ensureCursorVisible()
	return v
}

// SetFlash sets the phase of the completed-card flash
func (v BoardView) SetFlash(on bool) BoardView {
	v.flash = on
	return v
}

// MoveCursor moves the cursor by delta cards
func (v BoardView) MoveCursor(delta int) BoardView {
	v.cursor += delta
	v.clampCursor()
	v.ensureCursorVisible()
	return v
}

// CursorTop moves the cursor to the first card
func (v BoardView) CursorTop() BoardView {
	v.cursor = 0
	v.ensureCursorVisible()
	return v
}

// CursorBottom moves the cursor to the last card
func (v BoardView) CursorBottom() BoardView {
	v.cursor = len(v.cards) - 1
	v.clampCursor()
	v.ensureCursorVisible()
	return v
}

// Cursor returns the cursor index
func (v BoardView) Cursor() int {
	return v.cursor
}

// Selected returns the card under the cursor
func (v BoardView) Selected() (engine.Card, bool) {
	if v.cursor < 0 || v.cursor >= len(v.cards) {
		return engine.Card{}, false
	}
	return v.cards[v.cursor], true
}

func (v *BoardView) clampCursor() {
	if v.cursor >= len(v.cards) {
		v.cursor = len(v.cards) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v BoardView) visibleCount() int {
	n := v.height / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

// ensureCursorVisible adjusts scrollOffset to keep cursor in view
func (v *BoardView) ensureCursorVisible() {
	visible := v.visibleCount()

	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}

	maxOffset := len(v.cards) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.scrollOffset > maxOffset {
		v.scrollOffset = maxOffset
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// View renders the board
func (v BoardView) View() string {
	t := theme.Current.Theme

	if len(v.cards) == 0 {
		return lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(1, 2).
			Render(v.emptyMessage())
	}

	var b strings.Builder
	scrollStyle := lipgloss.NewStyle().Foreground(t.Subtle)

	if v.scrollOffset > 0 {
		b.WriteString(scrollStyle.Render(fmt.Sprintf("  ↑ %d more above", v.scrollOffset)))
		b.WriteString("\n")
	}

	end := v.scrollOffset + v.visibleCount()
	if end > len(v.cards) {
		end = len(v.cards)
	}
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderCard(v.cards[i], i == v.cursor))
		b.WriteString("\n")
	}

	if end < len(v.cards) {
		b.WriteString(scrollStyle.Render(fmt.Sprintf("  ↓ %d more below", len(v.cards)-end)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (v BoardView) emptyMessage() string {
	switch v.filter {
	case model.FilterImportant:
		return "No important countdowns running. Press i on a card to mark it."
	case model.FilterCompleted:
		return "Nothing has finished yet."
	default:
		return "No countdowns yet. Press a to add one."
	}
}

// RenderCard draws a single card outside of a board
func RenderCard(card engine.Card, selected, flash bool) string {
	return BoardView{flash: flash}.renderCard(card, selected)
}

func (v BoardView) renderCard(card engine.Card, selected bool) string {
	styles := theme.Current.Styles

	// Header: title and badges
	header := styles.CardTitle.Render(card.Title)
	var badges []string
	if card.ShowImportantBadge() {
		badges = append(badges, styles.Badge.Render("★ Important"))
	}
	if card.Timer.Completed {
		badges = append(badges, styles.BadgeDone.Render("✔ Completed"))
	}
	if len(badges) > 0 {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", strings.Join(badges, ""))
	}

	// Countdown fields
	fields := card.Fields()
	digits := make([]string, len(fields))
	labels := make([]string, len(fields))
	for i, f := range fields {
		digits[i] = styles.Digit.Render(f)
		labels[i] = styles.DigitLabel.Render(fieldLabels[i])
	}

	// Banner or target line
	var footer string
	if card.Expired {
		footer = styles.Banner.Render("🎉 Time's up! 🎉")
	} else {
		footer = styles.Target.Render("until " + card.Timer.Target.Format("Mon Jan 2 2006 15:04:05"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, digits...),
		lipgloss.JoinHorizontal(lipgloss.Top, labels...),
		footer,
	)

	style := styles.Card
	switch {
	case card.Expired && v.flash:
		style = styles.CardFlash
	case selected:
		style = styles.CardSelected
	case card.Expired:
		style = styles.CardCompleted
	}
	if v.width > 4 {
		style = style.Width(v.width - 4)
	}

	cursor := "  "
	if selected {
		cursor = "> "
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cursor, style.Render(body))
}
