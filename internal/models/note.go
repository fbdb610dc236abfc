package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a free-text annotation attached to a contact. Notes are
// append-only; display order is creation time ascending.
type Note struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ContactID string    `gorm:"type:char(36);not null;index" json:"contact"`
	AuthorID  string    `gorm:"type:char(36);index" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// TableName overrides the table name for Note
func (Note) TableName() string {
	return "notes"
}
