package agenda

import (
	"errors"
	"testing"
)

// TestLoaderLifecycle walks the idle -> loading -> ready transitions and
// the derived views.
func TestLoaderLifecycle(t *testing.T) {
	l := NewLoader(denver)

	if snap := l.Snapshot(); snap.State != StateIdle {
		t.Errorf("new loader state = %v, want idle", snap.State)
	}

	seq := l.Begin()
	if snap := l.Snapshot(); snap.State != StateLoading {
		t.Errorf("state after Begin = %v, want loading", snap.State)
	}

	if !l.Complete(seq, []RawVisit{
		{ID: "v1", Datetime: "2025-03-01T09:00"},
		{ID: "v2", Datetime: "2025-03-02T10:00"},
	}) {
		t.Fatal("Complete with current sequence was discarded")
	}

	snap := l.Snapshot()
	if snap.State != StateReady {
		t.Errorf("state after Complete = %v, want ready", snap.State)
	}
	if len(snap.Visits) != 2 {
		t.Errorf("loaded %d visits, want 2", len(snap.Visits))
	}
	if !snap.Marked["2025-03-01"] || !snap.Marked["2025-03-02"] {
		t.Errorf("Marked = %v, missing expected dates", snap.Marked)
	}

	// Selecting a date re-derives the day view without a refetch
	l.SelectDate("2025-03-02")
	snap = l.Snapshot()
	if snap.SelectedDate != "2025-03-02" {
		t.Errorf("SelectedDate = %q, want 2025-03-02", snap.SelectedDate)
	}
	if len(snap.DayVisits) != 1 || snap.DayVisits[0].ID != "v2" {
		t.Errorf("DayVisits = %+v, want just v2", snap.DayVisits)
	}
	if snap.State != StateReady {
		t.Errorf("SelectDate changed state to %v", snap.State)
	}
}

// TestLoaderStaleResponses verifies that only the most recently
// requested fetch may complete or fail; older responses are discarded.
func TestLoaderStaleResponses(t *testing.T) {
	l := NewLoader(denver)

	first := l.Begin()
	second := l.Begin()

	// The superseded fetch arrives late and must be dropped
	if l.Complete(first, []RawVisit{{ID: "stale", Datetime: "2025-01-01T00:00"}}) {
		t.Error("stale Complete was applied")
	}
	if snap := l.Snapshot(); snap.State != StateLoading || len(snap.Visits) != 0 {
		t.Errorf("stale Complete changed state: %v, %d visits", snap.State, len(snap.Visits))
	}

	if !l.Complete(second, []RawVisit{{ID: "fresh", Datetime: "2025-03-01T09:00"}}) {
		t.Fatal("current Complete was discarded")
	}
	snap := l.Snapshot()
	if len(snap.Visits) != 1 || snap.Visits[0].ID != "fresh" {
		t.Errorf("Visits = %+v, want just the fresh fetch", snap.Visits)
	}

	// A stale failure cannot clobber newer data either
	if l.Fail(first, errors.New("timeout")) {
		t.Error("stale Fail was applied")
	}
	if snap := l.Snapshot(); snap.State != StateReady || snap.Err != nil {
		t.Errorf("stale Fail changed state: %v, err %v", snap.State, snap.Err)
	}
}

// TestLoaderFailAndRefresh verifies the error state and that a later
// refresh recovers from it.
func TestLoaderFailAndRefresh(t *testing.T) {
	l := NewLoader(denver)

	seq := l.Begin()
	fetchErr := errors.New("connection refused")
	if !l.Fail(seq, fetchErr) {
		t.Fatal("current Fail was discarded")
	}
	snap := l.Snapshot()
	if snap.State != StateError || !errors.Is(snap.Err, fetchErr) {
		t.Errorf("state = %v, err = %v; want error state with the fetch error", snap.State, snap.Err)
	}

	seq = l.Begin()
	if !l.Complete(seq, []RawVisit{{ID: "v1", Datetime: "2025-03-01T09:00"}}) {
		t.Fatal("refresh Complete was discarded")
	}
	snap = l.Snapshot()
	if snap.State != StateReady || snap.Err != nil {
		t.Errorf("refresh did not clear the error: %v, %v", snap.State, snap.Err)
	}
}

// TestSnapshotImmutable verifies mutating a snapshot does not affect the
// loader's own list.
func TestSnapshotImmutable(t *testing.T) {
	l := NewLoader(denver)
	seq := l.Begin()
	l.Complete(seq, []RawVisit{{ID: "v1", Datetime: "2025-03-01T09:00"}})

	snap := l.Snapshot()
	snap.Visits[0].ID = "tampered"
	snap.Marked["2099-12-31"] = true

	fresh := l.Snapshot()
	if fresh.Visits[0].ID != "v1" {
		t.Error("mutating a snapshot's visits leaked into the loader")
	}
	if fresh.Marked["2099-12-31"] {
		t.Error("mutating a snapshot's index leaked into the loader")
	}
}
