package helpers

import (
	"testing"
	"time"

	"github.com/missionconnect/missionconnect/internal/models"
	"gorm.io/gorm"
)

// CreateTestUser creates a user row directly, bypassing the auth flow.
func CreateTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateTestContact creates a contact owned by the given user.
func CreateTestContact(t *testing.T, db *gorm.DB, ownerID, firstName, lastName, phone string) *models.Contact {
	t.Helper()
	contact := models.Contact{
		Owner:      ownerID,
		Missionary: ownerID,
		FirstName:  firstName,
		LastName:   lastName,
		Phone:      phone,
		Gender:     models.GenderUnknown,
	}
	if err := db.Create(&contact).Error; err != nil {
		t.Fatalf("Failed to create contact: %v", err)
	}
	return &contact
}

// CreateTestNote appends a note to a contact.
func CreateTestNote(t *testing.T, db *gorm.DB, contactID, authorID, text string) *models.Note {
	t.Helper()
	note := models.Note{
		ContactID: contactID,
		AuthorID:  authorID,
		Text:      text,
	}
	if err := db.Create(&note).Error; err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	return &note
}

// CreateTestVisit schedules a visit between a user and a contact.
func CreateTestVisit(t *testing.T, db *gorm.DB, userID, contactID string, at time.Time) *models.Visit {
	t.Helper()
	visit := models.Visit{
		ContactID: contactID,
		UserID:    userID,
		Datetime:  at,
	}
	if err := db.Create(&visit).Error; err != nil {
		t.Fatalf("Failed to create visit: %v", err)
	}
	return &visit
}
