package model

import (
	"fmt"
	"time"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Countdown is a remaining duration split into whole units
type Countdown struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Decompose splits a millisecond duration using floor division.
// Negative input is treated as zero.
func Decompose(remainingMs int64) Countdown {
	if remainingMs < 0 {
		remainingMs = 0
	}
	return Countdown{
		Days:    remainingMs / msPerDay,
		Hours:   (remainingMs % msPerDay) / msPerHour,
		Minutes: (remainingMs % msPerHour) / msPerMinute,
		Seconds: (remainingMs % msPerMinute) / msPerSecond,
	}
}

// DecomposeDuration is Decompose for a time.Duration
func DecomposeDuration(d time.Duration) Countdown {
	return Decompose(d.Milliseconds())
}

// Milliseconds returns the whole-second total the countdown represents
func (c Countdown) Milliseconds() int64 {
	return c.Days*msPerDay + c.Hours*msPerHour + c.Minutes*msPerMinute + c.Seconds*msPerSecond
}

// IsZero reports whether every component is zero
func (c Countdown) IsZero() bool {
	return c == Countdown{}
}

// Fields returns days, hours, minutes and seconds, each padded to two digits.
// Days are never capped, so they may be wider.
func (c Countdown) Fields() [4]string {
	return [4]string{
		pad2(c.Days),
		pad2(c.Hours),
		pad2(c.Minutes),
		pad2(c.Seconds),
	}
}

// String renders DD:HH:MM:SS
func (c Countdown) String() string {
	f := c.Fields()
	return f[0] + ":" + f[1] + ":" + f[2] + ":" + f[3]
}

func pad2(n int64) string {
	return fmt.Sprintf("%02d", n)
}
