package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visit is a scheduled appointment with a contact. UserID is the user who
// scheduled it; every read is scoped to that user. ReminderScheduled is
// flipped by the notification subsystem, never by the API itself.
type Visit struct {
	ID                string    `gorm:"type:char(36);primaryKey" json:"id"`
	ContactID         string    `gorm:"type:char(36);not null;index" json:"-"`
	Contact           *Contact  `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	UserID            string    `gorm:"type:char(36);not null;index" json:"user"`
	Datetime          time.Time `gorm:"not null;index" json:"datetime"`
	Notes             string    `gorm:"type:text" json:"notes"`
	ReminderScheduled bool      `gorm:"not null;default:false" json:"reminderScheduled"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// TableName overrides the table name for Visit
func (Visit) TableName() string {
	return "visits"
}
