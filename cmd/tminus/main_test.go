package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestFormatTarget(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		target time.Time
		want   string
	}{
		{now.Add(time.Hour), "today"},
		{now.Add(24 * time.Hour), "tomorrow"},
		{time.Date(2026, 12, 31, 18, 0, 0, 0, time.Local), "Thu, Dec 31"},
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local), "Jan 1, 2027"},
	}

	for _, tt := range tests {
		if got := formatTarget(tt.target, now); got != tt.want {
			t.Errorf("formatTarget(%v) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestHandleWhenExitCodes(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		args []string
		want int
	}{
		{nil, 1},
		{[]string{"+1h30m"}, 0},
		{[]string{"tomorrow", "9am"}, 0},
		{[]string{"someday"}, 1},
		{[]string{"2020-01-01"}, 1},
	}

	for _, tt := range tests {
		if got := handleWhen(tt.args, now); got != tt.want {
			t.Errorf("handleWhen(%q) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestReportClose(t *testing.T) {
	var buf bytes.Buffer
	reportClose(&buf, closerFunc(func() error { return nil }))
	if buf.Len() != 0 {
		t.Errorf("clean close printed %q", buf.String())
	}

	err := multierr.Combine(errors.New("failed to close database"), errors.New("failed to release lock"))
	reportClose(&buf, closerFunc(func() error { return err }))
	out := buf.String()
	for _, want := range []string{"failed to close database", "failed to release lock"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
