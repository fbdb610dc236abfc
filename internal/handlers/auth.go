package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/security"
	"github.com/missionconnect/missionconnect/internal/services"
	"github.com/missionconnect/missionconnect/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration and login routes
type AuthHandler struct {
	DB     *gorm.DB
	Hasher *security.Hasher
	Tokens *security.TokenProvider
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create a user account and return it with a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "name, email, password"
// @Success 200 {object} services.AuthResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	result, err := services.Register(h.DB, h.Hasher, h.Tokens, body.Name, body.Email, body.Password)
	if err != nil {
		return serviceErrorResponse(c, err, "Not found", "auth.register")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Authenticate by email and password, returning the user and a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "email, password"
// @Success 200 {object} services.AuthResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	result, err := services.Login(h.DB, h.Hasher, h.Tokens, body.Email, body.Password)
	if err != nil {
		return serviceErrorResponse(c, err, "Not found", "auth.login")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
