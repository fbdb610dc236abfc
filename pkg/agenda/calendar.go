package agenda

import (
	"sort"
	"time"
)

// Index builds the calendar marker set from a normalized list: every
// date key with at least one visit maps to true. Presence is binary;
// counts are never kept. Visits that failed to normalize to a date are
// not marked.
func Index(visits []Visit) map[string]bool {
	marked := make(map[string]bool, len(visits))
	for _, v := range visits {
		if v.DateKey != "" {
			marked[v.DateKey] = true
		}
	}
	return marked
}

// FilterDay returns the visits whose date key exactly equals key. The
// result is always a new slice; the input is never mutated.
func FilterDay(visits []Visit, key string) []Visit {
	day := make([]Visit, 0)
	for _, v := range visits {
		if v.DateKey == key {
			day = append(day, v)
		}
	}
	return day
}

// Today is the default selected date key: the current calendar date in
// the given location.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format("2006-01-02")
}

// Upcoming returns the visits at or after now, soonest first. Visits
// without a parsed instant are excluded.
func Upcoming(visits []Visit, now time.Time) []Visit {
	upcoming := make([]Visit, 0, len(visits))
	for _, v := range visits {
		if !v.Instant.IsZero() && !v.Instant.Before(now) {
			upcoming = append(upcoming, v)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Instant.Before(upcoming[j].Instant)
	})
	return upcoming
}
