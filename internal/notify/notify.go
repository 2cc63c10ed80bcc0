package notify

import (
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"time"
)

// ErrUnavailable means no notification command was found on PATH
var ErrUnavailable = errors.New("desktop notifications unavailable")

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	command string
}

// NewNotifier creates a new notifier
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		command: "notify-send",
	}
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	path, err := exec.LookPath(n.command)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	cmd := exec.Command(path, buildArgs(notification)...)
	return cmd.Run()
}

func buildArgs(notification Notification) []string {
	args := []string{}

	// Add urgency
	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Add timeout (in milliseconds)
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "tminus")

	// "--" keeps a title starting with "-" from being read as a flag
	args = append(args, "--", notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	return args
}

// SendTimerComplete announces that a countdown reached its target.
// The name is escaped for servers that parse body markup.
func (n *Notifier) SendTimerComplete(name string, target time.Time) error {
	return n.Send(timerComplete(name, target))
}

func timerComplete(name string, target time.Time) Notification {
	return Notification{
		Title:   "Time's up!",
		Body:    fmt.Sprintf("%s (%s)", html.EscapeString(name), target.Format("Mon Jan 2 15:04:05")),
		Urgency: UrgencyCritical,
		Timeout: 10 * time.Second,
		Icon:    "alarm-symbolic",
	}
}
