package types

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

// TestFlexTimeLayouts verifies every accepted datetime shape parses to
// the same wall-clock instant.
func TestFlexTimeLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"rfc3339", `"2025-03-01T14:30:00Z"`},
		{"no zone", `"2025-03-01T14:30:00"`},
		{"space separated", `"2025-03-01 14:30"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexTime
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			got := f.Time()
			if got.Year() != 2025 || got.Month() != time.March || got.Day() != 1 {
				t.Errorf("date = %v, want 2025-03-01", got)
			}
			if got.Hour() != 14 || got.Minute() != 30 {
				t.Errorf("time = %02d:%02d, want 14:30", got.Hour(), got.Minute())
			}
		})
	}
}

func TestFlexTimeDateOnly(t *testing.T) {
	var f FlexTime
	if err := json.Unmarshal([]byte(`"2025-03-01"`), &f); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	got := f.Time()
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("date-only input has nonzero time: %v", got)
	}
}

func TestFlexTimeRejectsGarbage(t *testing.T) {
	var f FlexTime
	if err := json.Unmarshal([]byte(`"tomorrow-ish"`), &f); err == nil {
		t.Error("expected an error for an unparseable datetime")
	}
	if err := json.Unmarshal([]byte(`12345`), &f); err == nil {
		t.Error("expected an error for a non-string datetime")
	}
}

func TestFlexTimeNull(t *testing.T) {
	var f FlexTime
	if err := json.Unmarshal([]byte(`null`), &f); err != nil {
		t.Fatalf("null should be accepted: %v", err)
	}
	if !f.IsZero() {
		t.Error("null should leave the time zero")
	}
}

// TestFlexStrings verifies tags decode from both the array shape and the
// comma-separated string shape.
func TestFlexStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexStrings
	}{
		{"array", `["investigator","english"]`, FlexStrings{"investigator", "english"}},
		{"comma separated", `"investigator, english"`, FlexStrings{"investigator", "english"}},
		{"empty entries dropped", `["", " ", "kept"]`, FlexStrings{"kept"}},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexStrings
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(f, tt.want) {
				t.Errorf("got %v, want %v", f, tt.want)
			}
		})
	}
}
