package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contact genders. Anything outside this set is stored as GenderUnknown.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// Contact is a person record scoped to the user that created it. Owner and
// Missionary are both set to the creator; reads must match either field.
type Contact struct {
	ID              string         `gorm:"type:char(36);primaryKey" json:"id"`
	Owner           string         `gorm:"type:char(36);not null;index:idx_contacts_owner_phone" json:"owner"`
	Missionary      string         `gorm:"type:char(36);not null;index" json:"missionary"`
	FirstName       string         `gorm:"size:255;not null" json:"firstName"`
	LastName        string         `gorm:"size:255" json:"lastName"`
	Phone           string         `gorm:"size:64;index:idx_contacts_owner_phone" json:"phone"`
	Address         string         `gorm:"size:512" json:"address"`
	Lat             *float64       `json:"lat,omitempty"`
	Lng             *float64       `json:"lng,omitempty"`
	Age             *int           `json:"age,omitempty"`
	Gender          string         `gorm:"size:16;not null;default:unknown" json:"gender"`
	Language        string         `gorm:"size:64" json:"language"`
	Tags            datatypes.JSON `gorm:"type:json" json:"tags,omitempty"`
	BaptismDate     *time.Time     `json:"baptismDate,omitempty"`
	Progress        int            `gorm:"not null;default:0" json:"progress"`
	NextAppointment *time.Time     `json:"nextAppointment,omitempty"`
	NotesSummary    string         `gorm:"size:1024" json:"notesSummary,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// DisplayName returns "firstName lastName" trimmed of a trailing space
// when the last name is empty.
func (c *Contact) DisplayName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// TableName overrides the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
