package agenda

import (
	"encoding/json"
	"testing"
	"time"
)

var denver = time.FixedZone("MST", -7*60*60)

// TestRawVisitShapes verifies every wire shape decodes into the same
// raw record fields.
func TestRawVisitShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want RawVisit
	}{
		{
			name: "bare instant string",
			body: `"2025-03-01T14:30:00Z"`,
			want: RawVisit{Datetime: "2025-03-01T14:30:00Z"},
		},
		{
			name: "date and time fields",
			body: `{"id":"v1","date":"2025-03-01","time":"14:30","contact":"c1"}`,
			want: RawVisit{ID: "v1", Date: "2025-03-01", Time: "14:30", Contact: RawContact{ID: "c1"}},
		},
		{
			name: "combined datetime with embedded contact",
			body: `{"_id":"v2","datetime":"2025-03-01T14:30:00Z","contact":{"_id":"c2","firstName":"Maria","lastName":"Garcia"},"notes":"bring pamphlets"}`,
			want: RawVisit{
				ID:       "v2",
				Datetime: "2025-03-01T14:30:00Z",
				Contact:  RawContact{ID: "c2", FirstName: "Maria", LastName: "Garcia"},
				Notes:    "bring pamphlets",
			},
		},
		{
			name: "id field instead of _id",
			body: `{"id":"v3","datetime":"2025-03-01T09:00:00Z","contact":{"id":"c3","firstName":"Joseph"}}`,
			want: RawVisit{ID: "v3", Datetime: "2025-03-01T09:00:00Z", Contact: RawContact{ID: "c3", FirstName: "Joseph"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RawVisit
			if err := json.Unmarshal([]byte(tt.body), &got); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestNormalizeEquivalence verifies date+time and combined datetime
// inputs normalize to the same canonical record.
func TestNormalizeEquivalence(t *testing.T) {
	split := Normalize(RawVisit{ID: "a", Date: "2025-03-01", Time: "14:30"}, denver)
	combined := Normalize(RawVisit{ID: "a", Datetime: "2025-03-01T14:30"}, denver)

	if split.DateKey != combined.DateKey {
		t.Errorf("DateKey mismatch: %q vs %q", split.DateKey, combined.DateKey)
	}
	if split.Time != combined.Time {
		t.Errorf("Time mismatch: %q vs %q", split.Time, combined.Time)
	}
	if !split.Instant.Equal(combined.Instant) {
		t.Errorf("Instant mismatch: %v vs %v", split.Instant, combined.Instant)
	}
	if split.DateKey != "2025-03-01" || split.Time != "14:30" {
		t.Errorf("unexpected normalization: %q %q", split.DateKey, split.Time)
	}
}

// TestNormalizeLocalDateKey verifies the date key uses the local
// calendar date, not UTC, so evening visits near the UTC boundary do
// not shift to the next day.
func TestNormalizeLocalDateKey(t *testing.T) {
	v := Normalize(RawVisit{Datetime: "2025-03-01T23:30:00-07:00"}, denver)
	if v.DateKey != "2025-03-01" {
		t.Errorf("DateKey = %q, want local date 2025-03-01 (UTC date is 03-02)", v.DateKey)
	}
	if v.Time != "23:30" {
		t.Errorf("Time = %q, want 23:30", v.Time)
	}
}

// TestNormalizeTotal verifies normalization never fails, degrading to
// placeholders instead.
func TestNormalizeTotal(t *testing.T) {
	tests := []struct {
		name string
		raw  RawVisit
	}{
		{"empty record", RawVisit{}},
		{"garbage datetime", RawVisit{ID: "x", Datetime: "not-a-date"}},
		{"garbage date and time", RawVisit{Date: "??", Time: "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Normalize(tt.raw, denver)
			if !v.Instant.IsZero() {
				t.Errorf("expected zero Instant, got %v", v.Instant)
			}
			if v.DateKey != "" || v.Time != "" {
				t.Errorf("expected empty DateKey/Time, got %q %q", v.DateKey, v.Time)
			}
		})
	}

	// Date-only input still yields a date key
	v := Normalize(RawVisit{Date: "2025-03-01"}, denver)
	if v.DateKey != "2025-03-01" {
		t.Errorf("date-only DateKey = %q, want 2025-03-01", v.DateKey)
	}
}

// TestContactNameFallback verifies missing name fields degrade to an
// empty display name rather than an error.
func TestContactNameFallback(t *testing.T) {
	bare := Normalize(RawVisit{Contact: RawContact{ID: "c1"}}, denver)
	if bare.ContactName != "" {
		t.Errorf("bare id ContactName = %q, want empty", bare.ContactName)
	}
	if bare.ContactID != "c1" {
		t.Errorf("ContactID = %q, want c1", bare.ContactID)
	}

	firstOnly := Normalize(RawVisit{Contact: RawContact{ID: "c2", FirstName: "Joseph"}}, denver)
	if firstOnly.ContactName != "Joseph" {
		t.Errorf("ContactName = %q, want Joseph (no trailing space)", firstOnly.ContactName)
	}

	full := Normalize(RawVisit{Contact: RawContact{ID: "c3", FirstName: "Maria", LastName: "Garcia"}}, denver)
	if full.ContactName != "Maria Garcia" {
		t.Errorf("ContactName = %q, want Maria Garcia", full.ContactName)
	}
}
