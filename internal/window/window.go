// Package window decides whether an announcement's application period is
// still worth surfacing relative to a reference day.
package window

import (
	"fmt"
	"strings"
	"time"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

// Layouts accepted for application dates. Government APIs hand out compact
// 8-digit dates, feeds tend to carry ISO-8601 with or without a time part.
var dateLayouts = []string{
	"20060102",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a calendar date from any of the supported shapes. The
// time-of-day component, if present, is discarded.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return day(t), nil
	}
	return time.Time{}, fmt.Errorf("unsupported date %q", s)
}

// Within reports whether the item's application window is still worth
// surfacing. A closed window (apply_end before today) always excludes. An
// item whose window is known to still be open is kept regardless of how old
// its start date is; the lookback cutoff on apply_start only prunes items
// with no closing date, where staleness is the only signal available.
// A missing bound never excludes. An unparsable date returns an error so the
// caller can log and drop the item.
func Within(it item.Item, today time.Time, lookbackDays int) (bool, error) {
	ref := day(today)

	var start, end time.Time
	hasStart := it.ApplyStart != ""
	hasEnd := it.ApplyEnd != ""

	if hasStart {
		var err error
		if start, err = ParseDate(it.ApplyStart); err != nil {
			return false, fmt.Errorf("apply_start: %w", err)
		}
	}
	if hasEnd {
		var err error
		if end, err = ParseDate(it.ApplyEnd); err != nil {
			return false, fmt.Errorf("apply_end: %w", err)
		}
	}

	if hasEnd {
		return !end.Before(ref), nil
	}
	if hasStart && start.Before(ref.AddDate(0, 0, -lookbackDays)) {
		return false, nil
	}
	return true, nil
}

// day truncates to midnight UTC so comparisons are by calendar date only.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
