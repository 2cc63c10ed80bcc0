package engine

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/dori/tminus/internal/model"
)

// Card is the display state of one visible timer
type Card struct {
	Timer     model.Timer
	Title     string // sanitized name
	Countdown model.Countdown
	Expired   bool // show the "time's up" banner
}

// Fields returns the four zero-padded countdown fields
func (c Card) Fields() [4]string {
	return c.Countdown.Fields()
}

// ShowImportantBadge reports whether the importance badge applies
func (c Card) ShowImportantBadge() bool {
	return c.Timer.Important && !c.Timer.Completed
}

func newCard(t model.Timer) Card {
	return Card{
		Timer:   t,
		Title:   SanitizeName(t.Name),
		Expired: t.Completed,
	}
}

// update pushes the timer's remaining time into the card.
// Completed cards stay pinned at zero.
func (c *Card) update(t model.Timer, now time.Time) {
	c.Timer = t
	if t.Completed {
		c.Countdown = model.Countdown{}
		c.Expired = true
		return
	}
	c.Countdown = model.DecomposeDuration(t.Remaining(now))
	c.Expired = false
}

// SanitizeName strips terminal escape sequences and control characters so a
// timer name cannot restyle or move the cursor on the user's terminal.
func SanitizeName(name string) string {
	name = ansi.Strip(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, name)
}
