package ui

import (
	"time"
)

// TickMsg is sent once per tick interval
type TickMsg struct {
	At time.Time
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}
