package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports rejected timer input. The store is left untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Timer is a named countdown to a fixed instant
type Timer struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Target      time.Time  `json:"target"`
	Important   bool       `json:"important"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Remaining returns the time left until the target, relative to now.
// The result is negative once the target has passed.
func (t *Timer) Remaining(now time.Time) time.Duration {
	return t.Target.Sub(now)
}

// IsDue reports whether the target instant has been reached
func (t *Timer) IsDue(now time.Time) bool {
	return t.Remaining(now) <= 0
}

// State returns "completed" or "pending"
func (t *Timer) State() string {
	if t.Completed {
		return "completed"
	}
	return "pending"
}

// ValidateInput checks the user-supplied name and parsed target.
// The name is returned trimmed.
func ValidateInput(name string, target time.Time, now time.Time) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Reason: "event name is required"}
	}
	if target.IsZero() {
		return "", &ValidationError{Field: "date", Reason: "a valid date/time is required"}
	}
	// Millisecond resolution, matching how targets are stored
	if target.UnixMilli() <= now.UnixMilli() {
		return "", &ValidationError{Field: "date", Reason: "please choose a future date/time"}
	}
	return name, nil
}
