// Package dateparse turns the free-text date field into an instant in local time.
package dateparse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	anydate "github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrEmpty is returned for a blank input
var ErrEmpty = errors.New("date/time is required")

// Any text carrying a four-digit year is an absolute date
var yearPattern = regexp.MustCompile(`\d{4}`)

var phrases = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// Parse interprets s relative to now.
//
// Supported forms:
//
//	2026-12-31 23:59      absolute, any layout araddon/dateparse knows
//	1/2/2027, Dec 31, 2026
//	23:59, 3pm            today at that time
//	tomorrow 9am          natural phrases, via olebedev/when
//	in 10 minutes
//	today, tomorrow       end of today, start of tomorrow
//	+90s, in 1h30m        offset from now (Go duration syntax)
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	lower := strings.ToLower(s)

	if rest, ok := strings.CutPrefix(lower, "+"); ok {
		d, err := time.ParseDuration(strings.ReplaceAll(rest, " ", ""))
		if err != nil {
			return time.Time{}, fmt.Errorf("bad offset %q: %w", s, err)
		}
		return now.Add(d), nil
	}
	if rest, ok := strings.CutPrefix(lower, "in "); ok {
		if d, err := time.ParseDuration(strings.ReplaceAll(rest, " ", "")); err == nil {
			return now.Add(d), nil
		}
	}

	switch lower {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location()), nil
	case "tomorrow":
		return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location()), nil
	}

	if yearPattern.MatchString(s) {
		t, err := anydate.ParseIn(s, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
		}
		return t, nil
	}

	r, err := phrases.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date/time %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("unrecognized date/time %q", s)
	}
	return r.Time, nil
}
