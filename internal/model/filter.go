package model

import (
	"fmt"
	"strings"
)

// Filter selects which timers are shown
type Filter string

const (
	FilterRecent    Filter = "recent"
	FilterImportant Filter = "important"
	FilterCompleted Filter = "completed"
)

// Filters lists every mode in display order
func Filters() []Filter {
	return []Filter{FilterRecent, FilterImportant, FilterCompleted}
}

// ParseFilter accepts the lowercase mode name
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterRecent, FilterImportant, FilterCompleted:
		return f, nil
	case "":
		return FilterRecent, nil
	default:
		return "", fmt.Errorf("unknown filter %q (expected recent, important or completed)", s)
	}
}

// Label returns the tab title for a filter
func (f Filter) Label() string {
	switch f {
	case FilterImportant:
		return "Important"
	case FilterCompleted:
		return "Completed"
	default:
		return "Recent"
	}
}

// Next returns the following filter, wrapping around
func (f Filter) Next() Filter {
	all := Filters()
	for i, candidate := range all {
		if candidate == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterRecent
}

// Matches reports whether a timer belongs to the filter's view
func (f Filter) Matches(t Timer) bool {
	switch f {
	case FilterImportant:
		return t.Important && !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Select projects timers onto the filter, keeping their order.
// The input slice is never modified.
func Select(timers []Timer, mode Filter) []Timer {
	out := make([]Timer, 0, len(timers))
	for _, t := range timers {
		if mode.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
