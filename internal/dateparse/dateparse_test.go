package dateparse

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	now := time.Date(2026, 10, 15, 14, 0, 0, 0, loc)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-12-31 23:59", time.Date(2026, 12, 31, 23, 59, 0, 0, loc)},
		{"2026-12-31T23:59:30", time.Date(2026, 12, 31, 23, 59, 30, 0, loc)},
		{"2026-12-31", time.Date(2026, 12, 31, 0, 0, 0, 0, loc)},
		{"2027-01-02T03:04:05Z", time.Date(2027, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"18:45", time.Date(2026, 10, 15, 18, 45, 0, 0, loc)},
		{"tomorrow 09:00", time.Date(2026, 10, 16, 9, 0, 0, 0, loc)},
		{"Tomorrow", time.Date(2026, 10, 16, 0, 0, 0, 0, loc)},
		{"today", time.Date(2026, 10, 15, 23, 59, 59, 0, loc)},
		{"1/2/2027", time.Date(2027, 1, 2, 0, 0, 0, 0, loc)},
		{"12/31/2026", time.Date(2026, 12, 31, 0, 0, 0, 0, loc)},
		{"Dec 31, 2026", time.Date(2026, 12, 31, 0, 0, 0, 0, loc)},
		{"3pm", time.Date(2026, 10, 15, 15, 0, 0, 0, loc)},
		{"tomorrow 9am", time.Date(2026, 10, 16, 9, 0, 0, 0, loc)},
		{"in 10 minutes", now.Add(10 * time.Minute)},
		{"+2s", now.Add(2 * time.Second)},
		{"in 1h 30m", now.Add(90 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in, now)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	now := time.Now()

	if _, err := Parse("   ", now); !errors.Is(err, ErrEmpty) {
		t.Errorf("blank input: err = %v, want ErrEmpty", err)
	}
	for _, in := range []string{"next blursday", "+soon", "someday", "2026-13-45"} {
		if _, err := Parse(in, now); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}
