package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/missionconnect/missionconnect/internal/models"
	"gorm.io/gorm"
)

// CreateVisit schedules a visit with an owned contact. The contact must
// exist and belong to the caller; both absence and foreign ownership are
// ErrNotFound. The existence check and insert share a transaction so a
// concurrent contact deletion cannot produce a dangling visit. The created
// visit is returned with the contact embedded, saving the client a second
// lookup.
func CreateVisit(db *gorm.DB, userID, contactID string, at time.Time, notes string) (*models.Visit, error) {
	if contactID == "" {
		return nil, fmt.Errorf("%w: contact is required", ErrValidation)
	}
	if at.IsZero() {
		return nil, fmt.Errorf("%w: datetime is required", ErrValidation)
	}

	visit := models.Visit{
		ContactID: contactID,
		UserID:    userID,
		Datetime:  at,
		Notes:     notes,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var contact models.Contact
		err := tx.Where("id = ?", contactID).
			Where("owner = ? OR missionary = ?", userID, userID).
			First(&contact).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Create(&visit).Error; err != nil {
			return err
		}
		visit.Contact = &contact

		return touchNextAppointment(tx, contactID)
	})
	if err != nil {
		return nil, err
	}

	return &visit, nil
}

// ListVisits returns all of the caller's visits, soonest first, each with
// its contact embedded.
func ListVisits(db *gorm.DB, userID string) ([]models.Visit, error) {
	var visits []models.Visit
	if err := db.Preload("Contact").
		Where("user_id = ?", userID).
		Order("datetime ASC").
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// DeleteVisit removes one of the caller's visits. A visit scheduled by a
// different user is ErrNotFound.
func DeleteVisit(db *gorm.DB, userID, visitID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var visit models.Visit
		err := tx.Where("id = ? AND user_id = ?", visitID, userID).First(&visit).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&visit).Error; err != nil {
			return err
		}
		return touchNextAppointment(tx, visit.ContactID)
	})
}
