package views

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dori/tminus/internal/engine"
	"github.com/dori/tminus/internal/model"
)

func testCard(important, completed bool) engine.Card {
	target := time.Date(2026, 12, 31, 18, 0, 0, 0, time.Local)
	card := engine.Card{
		Timer: model.Timer{
			ID:        "t1",
			Name:      "Launch",
			Target:    target,
			Important: important,
			Completed: completed,
		},
		Title:     "Launch",
		Countdown: model.Countdown{Days: 1, Hours: 2, Minutes: 3, Seconds: 4},
	}
	if completed {
		card.Countdown = model.Countdown{}
		card.Expired = true
	}
	return card
}

func TestRenderCard(t *testing.T) {
	tests := []struct {
		name    string
		card    engine.Card
		want    []string
		wantNot []string
	}{
		{
			name:    "pending",
			card:    testCard(false, false),
			want:    []string{"Launch", "01", "02", "03", "04", "Days", "Hours", "Minutes", "Seconds", "until Thu Dec 31 2026 18:00:00"},
			wantNot: []string{"★ Important", "✔ Completed", "Time's up!"},
		},
		{
			name:    "pending important",
			card:    testCard(true, false),
			want:    []string{"★ Important"},
			wantNot: []string{"✔ Completed", "Time's up!"},
		},
		{
			name:    "completed important",
			card:    testCard(true, true),
			want:    []string{"✔ Completed", "Time's up!", "00"},
			wantNot: []string{"★ Important", "until "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(RenderCard(tt.card, false, false))
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("missing %q in:\n%s", s, out)
				}
			}
			for _, s := range tt.wantNot {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %q in:\n%s", s, out)
				}
			}
		})
	}
}

func TestRenderCardCursor(t *testing.T) {
	card := testCard(false, false)
	if out := ansi.Strip(RenderCard(card, true, false)); !strings.HasPrefix(out, "> ") {
		t.Errorf("selected card should start with the cursor:\n%s", out)
	}
	if out := ansi.Strip(RenderCard(card, false, false)); strings.HasPrefix(out, "> ") {
		t.Errorf("unselected card shows the cursor:\n%s", out)
	}
}

func TestBoardKeepsSelectionAcrossRenders(t *testing.T) {
	a, b := testCard(false, false), testCard(false, false)
	a.Timer.ID, b.Timer.ID = "a", "b"

	v := NewBoardView().SetSize(80, 40)
	v = v.SetCards([]engine.Card{b, a}, model.FilterRecent).MoveCursor(1)
	if sel, _ := v.Selected(); sel.Timer.ID != "a" {
		t.Fatalf("selected = %s, want a", sel.Timer.ID)
	}

	// A new card at the head must not move the cursor off a
	c := testCard(false, false)
	c.Timer.ID = "c"
	v = v.SetCards([]engine.Card{c, b, a}, model.FilterRecent)
	if sel, _ := v.Selected(); sel.Timer.ID != "a" {
		t.Errorf("selected = %s after insert, want a", sel.Timer.ID)
	}

	// Removing the selected card clamps onto the last one
	v = v.SetCards([]engine.Card{c, b}, model.FilterRecent)
	if sel, ok := v.Selected(); !ok || sel.Timer.ID != "b" {
		t.Errorf("selected = %+v after delete, want b", sel.Timer.ID)
	}
}
