package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/missionconnect/missionconnect/internal/models"
	"gorm.io/gorm"
)

// ListNotes returns the notes of an owned contact in creation order.
// A contact the caller does not own is ErrNotFound, never a partial list.
func ListNotes(db *gorm.DB, userID, contactID string) ([]models.Note, error) {
	if _, err := GetContact(db, userID, contactID); err != nil {
		return nil, err
	}

	var notes []models.Note
	if err := db.Where("contact_id = ?", contactID).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote appends a note to an owned contact. Notes have no update
// operation; text is required.
func CreateNote(db *gorm.DB, userID, contactID, text string) (*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	if _, err := GetContact(db, userID, contactID); err != nil {
		return nil, err
	}

	note := models.Note{
		ContactID: contactID,
		AuthorID:  userID,
		Text:      text,
	}
	if err := db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes a single note. The note's contact must be owned by
// the caller; otherwise the note does not exist as far as they can tell.
func DeleteNote(db *gorm.DB, userID, noteID string) error {
	var note models.Note
	if err := db.Where("id = ?", noteID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if _, err := GetContact(db, userID, note.ContactID); err != nil {
		return err
	}

	return db.Delete(&note).Error
}
