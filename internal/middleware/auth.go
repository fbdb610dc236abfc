package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/security"
	"github.com/missionconnect/missionconnect/internal/types"
)

// Locals keys set by RequireAuth.
const (
	LocalUserID    = "userID"
	LocalUserEmail = "userEmail"
)

// RequireAuth validates the Authorization bearer token and stores the
// caller's identity in the request context. Every failure mode returns the
// same 401 so callers learn nothing about why a credential was rejected.
func RequireAuth(tokens *security.TokenProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized()
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized()
		}

		userID, email, err := tokens.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			return unauthorized()
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserEmail, email)

		return c.Next()
	}
}

func unauthorized() error {
	return &types.CustomError{
		Code:    fiber.StatusUnauthorized,
		Message: "Unauthorized",
		Type:    "auth.token",
	}
}
