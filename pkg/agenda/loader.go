package agenda

import (
	"sync"
	"time"
)

// State is the fetch lifecycle of a Loader.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Snapshot is an immutable view of a Loader's state. Slices and maps are
// copies; callers may hold one across later loads.
type Snapshot struct {
	State        State
	Visits       []Visit
	Marked       map[string]bool
	SelectedDate string
	DayVisits    []Visit
	Err          error
}

// Loader coordinates the fetch -> normalize -> view sequence for one
// screenful of visits. Each refresh gets a sequence number from Begin;
// Complete and Fail are applied only when they carry the most recently
// issued sequence, so a slow response can never overwrite a newer one.
type Loader struct {
	mu       sync.Mutex
	loc      *time.Location
	state    State
	seq      uint64
	visits   []Visit
	selected string
	err      error
}

// NewLoader creates an idle Loader with today selected.
func NewLoader(loc *time.Location) *Loader {
	if loc == nil {
		loc = time.Local
	}
	return &Loader{
		loc:      loc,
		state:    StateIdle,
		selected: Today(loc),
	}
}

// Begin marks the loader loading and returns the sequence number the
// eventual Complete or Fail must present. A ready loader keeps its
// current list visible while the refresh is in flight.
func (l *Loader) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	l.state = StateLoading
	return l.seq
}

// Complete normalizes and installs a fetched list. It reports false and
// changes nothing when seq is stale, meaning Begin was called again
// after this fetch started.
func (l *Loader) Complete(seq uint64, raws []RawVisit) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		return false
	}
	l.visits = NormalizeAll(raws, l.loc)
	l.state = StateReady
	l.err = nil
	return true
}

// Fail records a fetch error. Stale sequences are discarded the same way
// Complete discards them.
func (l *Loader) Fail(seq uint64, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		return false
	}
	l.state = StateError
	l.err = err
	return true
}

// SelectDate changes the selected day. The day view is re-derived from
// the already-loaded list; no refetch happens.
func (l *Loader) SelectDate(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.selected = key
}

// Snapshot returns a copy of the current state with the calendar index
// and the selected day's visits derived from the loaded list.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	visits := make([]Visit, len(l.visits))
	copy(visits, l.visits)

	return Snapshot{
		State:        l.state,
		Visits:       visits,
		Marked:       Index(l.visits),
		SelectedDate: l.selected,
		DayVisits:    FilterDay(l.visits, l.selected),
		Err:          l.err,
	}
}
