package window

import (
	"testing"
	"time"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

func TestParseDateShapes(t *testing.T) {
	want := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	tests := []string{
		"20260210",
		"2026-02-10",
		"2026-02-10T09:30:00Z",
		"2026-02-10T09:30:00+09:00",
		"2026-02-10T09:30:00",
		"2026-02-10 09:30:00",
		"  20260210  ",
	}
	for _, in := range tests {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "soon", "2026/02/10", "202602"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q): expected error", in)
		}
	}
}

func TestWithin(t *testing.T) {
	today := time.Date(2026, 2, 10, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"no bounds always included", "", "", true},
		{"end yesterday excluded", "", "20260209", false},
		{"end today included", "", "20260210", true},
		{"end future included", "", "20260228", true},
		{"start within lookback", "20260204", "", true},
		{"start older than lookback", "20260202", "", false},
		{"start exactly at lookback edge", "20260203", "", true},
		{"stale start but window still open", "20260201", "20260228", true},
		{"stale start and window closed", "20260101", "20260131", false},
		{"iso datetime end today", "", "2026-02-10T23:59:00+09:00", true},
	}
	for _, tt := range tests {
		it := item.Item{ApplyStart: tt.start, ApplyEnd: tt.end}
		got, err := Within(it, today, 7)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: Within = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWithinUnparsableDate(t *testing.T) {
	it := item.Item{ApplyEnd: "until further notice"}
	ok, err := Within(it, time.Now(), 7)
	if err == nil {
		t.Fatal("expected error for unparsable apply_end")
	}
	if ok {
		t.Error("unparsable date must not include the item")
	}
}

func TestWithinUnparsableStartWithOpenEnd(t *testing.T) {
	// A valid open end date does not excuse a garbage start date; both
	// bounds must parse before the item is judged.
	it := item.Item{ApplyStart: "soon", ApplyEnd: "20990101"}
	ok, err := Within(it, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 7)
	if err == nil {
		t.Fatal("expected error for unparsable apply_start")
	}
	if ok {
		t.Error("unparsable date must not include the item")
	}
}
