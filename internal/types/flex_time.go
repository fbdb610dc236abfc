package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for visit instants, in order of preference. Mobile
// clients send RFC3339, older ones send "YYYY-MM-DD HH:MM" or a bare date.
var flexTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FlexTime is a time.Time that can be unmarshaled from any of the datetime
// string shapes observed on the wire.
type FlexTime time.Time

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexTime: expected string, got %s", strings.TrimSpace(string(data)))
	}

	t, err := ParseFlexTime(s)
	if err != nil {
		return err
	}
	*f = FlexTime(t)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(f).Format(time.RFC3339))
}

// Time converts FlexTime back to time.Time.
func (f FlexTime) Time() time.Time {
	return time.Time(f)
}

// IsZero reports whether the underlying time is unset.
func (f FlexTime) IsZero() bool {
	return time.Time(f).IsZero()
}

// ParseFlexTime parses an instant using the accepted layouts. Layouts
// without a zone are interpreted in the server's local time.
func ParseFlexTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("FlexTime: empty datetime")
	}
	for _, layout := range flexTimeLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("FlexTime: invalid datetime %q", s)
}
