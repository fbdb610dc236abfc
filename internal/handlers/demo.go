package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/middleware"
	"github.com/missionconnect/missionconnect/internal/services"
	"github.com/missionconnect/missionconnect/internal/utils"
	"gorm.io/gorm"
)

// DemoHandler seeds and clears sample data for the configured demo account.
type DemoHandler struct {
	DB        *gorm.DB
	DemoEmail string
}

func (h *DemoHandler) isDemoUser(c *fiber.Ctx) bool {
	email, _ := c.Locals(middleware.LocalUserEmail).(string)
	return h.DemoEmail != "" && email == h.DemoEmail
}

// Init handles POST /api/demo/init
// @Summary Seed demo data
// @Description Populate the demo account with sample contacts, a note, and a visit
// @Tags Demo
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /demo/init [post]
func (h *DemoHandler) Init(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "demo.authorization")
	}
	if !h.isDemoUser(c) {
		return utils.ErrorResponse(c, "Only the demo account may seed demo data", fiber.StatusForbidden, "demo.authorization")
	}

	count, err := services.SeedDemo(h.DB, userID)
	if err != nil {
		return serviceErrorResponse(c, err, "Not found", "demo.init")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Demo init",
		"ok":           true,
		"contactCount": count,
	})
}

// Clear handles DELETE /api/demo/clear
// @Summary Clear demo data
// @Description Remove everything the demo account created
// @Tags Demo
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /demo/clear [delete]
func (h *DemoHandler) Clear(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "demo.authorization")
	}
	if !h.isDemoUser(c) {
		return utils.ErrorResponse(c, "Only the demo account may clear demo data", fiber.StatusForbidden, "demo.authorization")
	}

	if err := services.ClearDemo(h.DB, userID); err != nil {
		return serviceErrorResponse(c, err, "Not found", "demo.clear")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Demo cleared",
		"ok":      true,
	})
}
