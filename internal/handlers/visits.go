package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/services"
	"github.com/missionconnect/missionconnect/internal/types"
	"github.com/missionconnect/missionconnect/internal/utils"
	"gorm.io/gorm"
)

// VisitHandler handles visit routes
type VisitHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/visits
// @Summary Schedule a visit
// @Description Schedule a visit with an owned contact; the contact is embedded in the response
// @Tags Visits
// @Accept json
// @Produce json
// @Param body body object true "contact, datetime, notes"
// @Success 201 {object} models.Visit
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /visits [post]
func (h *VisitHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "visits.authorization")
	}

	var body struct {
		Contact  string `json:"contact"`
		Datetime string `json:"datetime"`
		Notes    string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "visits.validation.input")
	}

	if body.Contact == "" || body.Datetime == "" {
		return utils.ErrorResponse(c, "Contact and datetime are required", fiber.StatusBadRequest, "visits.validation.input")
	}

	at, err := types.ParseFlexTime(body.Datetime)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid datetime format. Provide ISO datetime", fiber.StatusBadRequest, "visits.validation.datetime")
	}

	visit, err := services.CreateVisit(h.DB, userID, body.Contact, at, body.Notes)
	if err != nil {
		return serviceErrorResponse(c, err, fmt.Sprintf("Contact '%s' not found", body.Contact), "visits.create")
	}

	return c.Status(fiber.StatusCreated).JSON(visit)
}

// List handles GET /api/visits
// @Summary List visits
// @Description List the caller's visits ascending by datetime, contacts embedded
// @Tags Visits
// @Produce json
// @Success 200 {array} models.Visit
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /visits [get]
func (h *VisitHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "visits.authorization")
	}

	visits, err := services.ListVisits(h.DB, userID)
	if err != nil {
		return serviceErrorResponse(c, err, "Not found", "visits.list")
	}

	return c.Status(fiber.StatusOK).JSON(visits)
}

// Delete handles DELETE /api/visits/:id
// @Summary Delete a visit
// @Description Delete one of the caller's visits
// @Tags Visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /visits/{id} [delete]
func (h *VisitHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "visits.authorization")
	}

	if err := services.DeleteVisit(h.DB, userID, c.Params("id")); err != nil {
		return serviceErrorResponse(c, err, "Visit not found", "visits.delete")
	}

	return utils.DeleteSuccessResponse(c, 1)
}
