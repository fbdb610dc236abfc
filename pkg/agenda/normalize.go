// Package agenda normalizes visit records fetched from the API into one
// canonical shape and derives the calendar views built from them.
package agenda

import (
	"encoding/json"
	"strings"
	"time"
)

// instantLayouts are tried in order when parsing a combined datetime.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// RawContact is a contact reference as the API returns it: either a bare
// id string or an embedded object.
type RawContact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// UnmarshalJSON accepts a bare id string or a contact object keyed by
// either "_id" or "id".
func (rc *RawContact) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*rc = RawContact{ID: id}
		return nil
	}

	var obj struct {
		MongoID   string `json:"_id"`
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	rc.ID = obj.MongoID
	if rc.ID == "" {
		rc.ID = obj.ID
	}
	rc.FirstName = obj.FirstName
	rc.LastName = obj.LastName
	rc.Phone = obj.Phone
	return nil
}

// DisplayName resolves the contact's display name, empty when the
// reference carried no name fields.
func (rc RawContact) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(rc.FirstName) + " " + strings.TrimSpace(rc.LastName))
}

// RawVisit is a visit record in any of the shapes observed on the wire:
// a bare instant string, an object with separate date and time fields,
// or an object with a combined datetime field.
type RawVisit struct {
	ID       string     `json:"id"`
	Contact  RawContact `json:"contact"`
	Date     string     `json:"date"`
	Time     string     `json:"time"`
	Datetime string     `json:"datetime"`
	Notes    string     `json:"notes"`
}

// UnmarshalJSON accepts either a bare instant string or a visit object.
func (rv *RawVisit) UnmarshalJSON(data []byte) error {
	var instant string
	if err := json.Unmarshal(data, &instant); err == nil {
		*rv = RawVisit{Datetime: instant}
		return nil
	}

	var obj struct {
		MongoID  string     `json:"_id"`
		ID       string     `json:"id"`
		Contact  RawContact `json:"contact"`
		Date     string     `json:"date"`
		Time     string     `json:"time"`
		Datetime string     `json:"datetime"`
		Notes    string     `json:"notes"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	rv.ID = obj.MongoID
	if rv.ID == "" {
		rv.ID = obj.ID
	}
	rv.Contact = obj.Contact
	rv.Date = obj.Date
	rv.Time = obj.Time
	rv.Datetime = obj.Datetime
	rv.Notes = obj.Notes
	return nil
}

// Visit is the canonical in-memory shape every raw record normalizes to.
// DateKey is the local calendar date (YYYY-MM-DD) of the instant and
// Time is the local time of day (HH:MM); both are derived exactly once,
// here, so downstream comparisons are plain string equality.
type Visit struct {
	ID          string
	ContactID   string
	ContactName string
	Instant     time.Time
	DateKey     string
	Time        string
	Notes       string
}

// Normalize converts a raw record into the canonical shape. It is total:
// unparseable fields degrade to placeholders (empty name, zero Instant,
// empty DateKey) rather than failing the load.
func Normalize(raw RawVisit, loc *time.Location) Visit {
	if loc == nil {
		loc = time.Local
	}

	v := Visit{
		ID:          raw.ID,
		ContactID:   raw.Contact.ID,
		ContactName: raw.Contact.DisplayName(),
		Notes:       raw.Notes,
	}

	instant, ok := parseInstant(raw, loc)
	if !ok {
		return v
	}

	local := instant.In(loc)
	v.Instant = instant
	v.DateKey = local.Format("2006-01-02")
	v.Time = local.Format("15:04")
	return v
}

// NormalizeAll normalizes a whole fetched list.
func NormalizeAll(raws []RawVisit, loc *time.Location) []Visit {
	visits := make([]Visit, 0, len(raws))
	for _, raw := range raws {
		visits = append(visits, Normalize(raw, loc))
	}
	return visits
}

func parseInstant(raw RawVisit, loc *time.Location) (time.Time, bool) {
	candidate := strings.TrimSpace(raw.Datetime)
	if candidate == "" && raw.Date != "" {
		candidate = strings.TrimSpace(raw.Date)
		if t := strings.TrimSpace(raw.Time); t != "" {
			candidate += "T" + t
		}
	}
	if candidate == "" {
		return time.Time{}, false
	}

	for _, layout := range instantLayouts {
		// Layouts without a zone are interpreted in the target location.
		if parsed, err := time.ParseInLocation(layout, candidate, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
