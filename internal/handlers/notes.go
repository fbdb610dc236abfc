package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/services"
	"github.com/missionconnect/missionconnect/internal/utils"
	"gorm.io/gorm"
)

// NoteHandler handles note routes
type NoteHandler struct {
	DB *gorm.DB
}

// List handles GET /api/contacts/:id/notes
// @Summary List notes
// @Description List the notes of an owned contact in creation order
// @Tags Notes
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {array} models.Note
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contacts/{id}/notes [get]
func (h *NoteHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "notes.authorization")
	}

	notes, err := services.ListNotes(h.DB, userID, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "Contact not found", "notes.list")
	}

	return c.Status(fiber.StatusOK).JSON(notes)
}

// Create handles POST /api/contacts/:id/notes
// @Summary Add a note
// @Description Append a free-text note to an owned contact
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param body body object true "text"
// @Success 201 {object} models.Note
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contacts/{id}/notes [post]
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "notes.authorization")
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "notes.validation.input")
	}

	note, err := services.CreateNote(h.DB, userID, c.Params("id"), body.Text)
	if err != nil {
		return serviceErrorResponse(c, err, "Contact not found", "notes.create")
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

// Delete handles DELETE /api/notes/:id
// @Summary Delete a note
// @Description Delete a single note from an owned contact
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "notes.authorization")
	}

	if err := services.DeleteNote(h.DB, userID, c.Params("id")); err != nil {
		return serviceErrorResponse(c, err, "Note not found", "notes.delete")
	}

	return utils.DeleteSuccessResponse(c, 1)
}
