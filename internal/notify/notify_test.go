package notify

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildArgs(t *testing.T) {
	args := buildArgs(Notification{
		Title:   "-Launch",
		Body:    "now",
		Urgency: UrgencyCritical,
		Timeout: 10 * time.Second,
		Icon:    "alarm-symbolic",
	})

	got := strings.Join(args, " ")
	want := "-u critical -t 10000 -i alarm-symbolic -a tminus -- -Launch now"
	if got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestDisabledNotifierIsNoop(t *testing.T) {
	n := NewNotifier(false)
	n.command = "definitely-not-a-real-binary"
	if err := n.SendTimerComplete("Launch", time.Now()); err != nil {
		t.Errorf("disabled notifier returned %v", err)
	}
}

func TestMissingCommand(t *testing.T) {
	n := NewNotifier(true)
	n.command = "definitely-not-a-real-binary"
	if err := n.SendTimerComplete("Launch", time.Now()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestTimerCompleteEscapesMarkup(t *testing.T) {
	target := time.Date(2026, 12, 31, 18, 0, 0, 0, time.Local)
	args := buildArgs(timerComplete("A & <B>", target))

	body := args[len(args)-1]
	want := "A &amp; &lt;B&gt; (Thu Dec 31 18:00:00)"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
	if title := args[len(args)-2]; title != "Time's up!" {
		t.Errorf("title = %q", title)
	}
}
