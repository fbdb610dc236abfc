package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/services"
	"github.com/missionconnect/missionconnect/internal/utils"
	"gorm.io/gorm"
)

// ContactHandler handles contact routes
type ContactHandler struct {
	DB *gorm.DB
}

// List handles GET /api/contacts?q=
// @Summary List contacts
// @Description List the caller's contacts, optionally filtered by a case-insensitive name query
// @Tags Contacts
// @Produce json
// @Param q query string false "Name search query"
// @Success 200 {array} models.Contact
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "contacts.authorization")
	}

	contacts, err := services.ListContacts(h.DB, userID, c.Query("q"))
	if err != nil {
		return serviceErrorResponse(c, err, "Not found", "contacts.list")
	}

	return c.Status(fiber.StatusOK).JSON(contacts)
}

// Create handles POST /api/contacts
// @Summary Create a contact
// @Description Create a contact owned by the caller
// @Tags Contacts
// @Accept json
// @Produce json
// @Param body body services.ContactInput true "Contact fields"
// @Success 201 {object} models.Contact
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "contacts.authorization")
	}

	var input services.ContactInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "contacts.validation.input")
	}

	contact, err := services.CreateContact(h.DB, userID, input)
	if err != nil {
		return serviceErrorResponse(c, err, "Not found", "contacts.create")
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// Get handles GET /api/contacts/:id
// @Summary Get a contact
// @Description Fetch a single owned contact by id
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} models.Contact
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "contacts.authorization")
	}

	contact, err := services.GetContact(h.DB, userID, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "Contact not found", "contacts.get")
	}

	return c.Status(fiber.StatusOK).JSON(contact)
}

// Delete handles DELETE /api/contacts/:id
// @Summary Delete a contact
// @Description Delete an owned contact along with its notes and visits
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "contacts.authorization")
	}

	affected, err := services.DeleteContact(h.DB, userID, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "Contact not found", "contacts.delete")
	}

	return utils.DeleteSuccessResponse(c, affected)
}
