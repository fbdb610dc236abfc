package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/middleware"
	"github.com/missionconnect/missionconnect/internal/services"
	"github.com/missionconnect/missionconnect/internal/utils"
)

// getUserID extracts the authenticated user id from context (set by the
// auth middleware).
func getUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user not found in context")
	}
	return userID, nil
}

// serviceErrorResponse maps service sentinel errors to HTTP responses.
// Validation and duplicate messages are surfaced verbatim; not-found is
// identical for absent and unowned records.
func serviceErrorResponse(c *fiber.Ctx, err error, notFoundMessage, errorType string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, errorType+".validation")
	case errors.Is(err, services.ErrDuplicate):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, errorType+".duplicate")
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.ErrorResponse(c, "Invalid credentials", fiber.StatusUnauthorized, errorType)
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, notFoundMessage)
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}
