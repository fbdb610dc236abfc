package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/missionconnect/missionconnect/internal/models"
	"github.com/missionconnect/missionconnect/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ContactInput carries the fields a client may set when creating a contact.
type ContactInput struct {
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Phone        string            `json:"phone"`
	Address      string            `json:"address"`
	Lat          *float64          `json:"lat"`
	Lng          *float64          `json:"lng"`
	Age          *int              `json:"age"`
	Gender       string            `json:"gender"`
	Language     string            `json:"language"`
	Tags         types.FlexStrings `json:"tags"`
	BaptismDate  *types.FlexTime   `json:"baptismDate"`
	Progress     int               `json:"progress"`
	NotesSummary string            `json:"notesSummary"`
}

// ownedContacts scopes a query to contacts the user may see. The owner and
// missionary columns are set to the same value on create, but reads match
// either so records survive a future ownership split.
func ownedContacts(db *gorm.DB, userID string) *gorm.DB {
	q := db.Model(&models.Contact{}).Where("owner = ? OR missionary = ?", userID, userID)
	if db.Dialector.Name() == "mysql" {
		q = q.Clauses(hints.UseIndex("idx_contacts_owner_phone"))
	}
	return q
}

// ListContacts returns the caller's contacts ordered by first name. When
// query is non-empty it is matched case-insensitively against the first
// name, last name, and "first last" concatenation. The match runs on the
// owner-scoped rows only, so another user's contacts can never leak into
// the result regardless of the query.
func ListContacts(db *gorm.DB, userID, query string) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := ownedContacts(db, userID).Order("first_name ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}

	if query == "" {
		return contacts, nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	filtered := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		first := strings.ToLower(c.FirstName)
		last := strings.ToLower(c.LastName)
		full := first + " " + last
		if strings.Contains(first, q) || strings.Contains(last, q) || strings.Contains(full, q) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// GetContact returns a single contact by id, applying the same ownership
// predicate as ListContacts. An id owned by another user is ErrNotFound.
func GetContact(db *gorm.DB, userID, contactID string) (*models.Contact, error) {
	var contact models.Contact
	err := db.Where("id = ?", contactID).
		Where("owner = ? OR missionary = ?", userID, userID).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// CreateContact validates and persists a contact owned by the caller.
// At most one contact per (owner, phone) pair may exist when a phone is
// present; a second yields ErrDuplicate. The check and insert share a
// transaction so concurrent creates cannot both pass it.
func CreateContact(db *gorm.DB, userID string, input ContactInput) (*models.Contact, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.FirstName == "" {
		return nil, fmt.Errorf("%w: firstName is required", ErrValidation)
	}
	if input.Progress < 0 || input.Progress > 5 {
		return nil, fmt.Errorf("%w: progress must be between 0 and 5", ErrValidation)
	}

	gender := input.Gender
	switch gender {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
	default:
		gender = models.GenderUnknown
	}

	contact := models.Contact{
		Owner:        userID,
		Missionary:   userID,
		FirstName:    input.FirstName,
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        input.Phone,
		Address:      input.Address,
		Lat:          input.Lat,
		Lng:          input.Lng,
		Age:          input.Age,
		Gender:       gender,
		Language:     input.Language,
		Progress:     input.Progress,
		NotesSummary: input.NotesSummary,
	}
	if len(input.Tags) > 0 {
		raw, err := json.Marshal(input.Tags.Slice())
		if err != nil {
			return nil, err
		}
		contact.Tags = raw
	}
	if input.BaptismDate != nil && !input.BaptismDate.IsZero() {
		t := input.BaptismDate.Time()
		contact.BaptismDate = &t
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if contact.Phone != "" {
			var count int64
			if err := tx.Model(&models.Contact{}).
				Where("owner = ? AND phone = ?", userID, contact.Phone).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: a contact with this phone number already exists", ErrDuplicate)
			}
		}
		return tx.Create(&contact).Error
	})
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// DeleteContact removes an owned contact together with its notes and
// visits. The cascade runs in one transaction so a failure leaves nothing
// dangling. Returns the number of rows removed across all three tables.
func DeleteContact(db *gorm.DB, userID, contactID string) (int64, error) {
	var affected int64

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

		res := tx.Where("contact_id = ?", contact.ID).Delete(&models.Note{})
		if res.Error != nil {
			return res.Error
		}
		affected += res.RowsAffected

		res = tx.Where("contact_id = ?", contact.ID).Delete(&models.Visit{})
		if res.Error != nil {
			return res.Error
		}
		affected += res.RowsAffected

		res = tx.Delete(&contact)
		if res.Error != nil {
			return res.Error
		}
		affected += res.RowsAffected

		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// touchNextAppointment records the soonest upcoming visit on the contact
// row so list screens can show it without a join.
func touchNextAppointment(tx *gorm.DB, contactID string) error {
	var next models.Visit
	err := tx.Where("contact_id = ? AND datetime >= ?", contactID, time.Now()).
		Order("datetime ASC").
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Model(&models.Contact{}).Where("id = ?", contactID).
				Update("next_appointment", nil).Error
		}
		return err
	}
	return tx.Model(&models.Contact{}).Where("id = ?", contactID).
		Update("next_appointment", next.Datetime).Error
}
