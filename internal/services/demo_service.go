package services

import (
	"time"

	"github.com/missionconnect/missionconnect/internal/models"
	"gorm.io/gorm"
)

var demoContacts = []ContactInput{
	{
		FirstName: "Joseph", LastName: "Smith",
		Phone: "(555)123-4567", Address: "Salt Lake City, UT",
		Tags: []string{"english"}, Lat: f64(40.7608), Lng: f64(-111.8910),
	},
	{
		FirstName: "Maria", LastName: "Garcia",
		Phone: "(555)234-5678", Address: "Provo, UT",
		Tags: []string{"spanish"}, Lat: f64(40.2338), Lng: f64(-111.6585),
	},
}

// SeedDemo populates the demo account with sample contacts, a note, and a
// visit, all in one transaction so a mid-seed failure leaves nothing
// behind. Idempotent: an account that already has contacts is left alone
// and the existing count is returned.
func SeedDemo(db *gorm.DB, userID string) (int, error) {
	var count int
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Contact{}).Where("owner = ?", userID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			count = int(existing)
			return nil
		}

		created := make([]*models.Contact, 0, len(demoContacts))
		for _, input := range demoContacts {
			contact, err := CreateContact(tx, userID, input)
			if err != nil {
				return err
			}
			created = append(created, contact)
		}

		if _, err := CreateNote(tx, userID, created[0].ID, "Demo note 1"); err != nil {
			return err
		}
		if _, err := CreateVisit(tx, userID, created[0].ID, time.Now().Add(24*time.Hour), "Demo visit"); err != nil {
			return err
		}

		count = len(created)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ClearDemo wipes everything the demo account created.
func ClearDemo(db *gorm.DB, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var contacts []models.Contact
		if err := tx.Where("owner = ?", userID).Find(&contacts).Error; err != nil {
			return err
		}
		for _, c := range contacts {
			if err := tx.Where("contact_id = ?", c.ID).Delete(&models.Note{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Visit{}).Error; err != nil {
			return err
		}
		return tx.Where("owner = ?", userID).Delete(&models.Contact{}).Error
	})
}

func f64(v float64) *float64 { return &v }
