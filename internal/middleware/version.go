package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/types"
)

// LocalAPIVersion is the Locals key holding the negotiated API version.
const LocalAPIVersion = "apiVersion"

// CurrentAPIVersion is served when the client sends no X-Api-Version
// header or a bare major/minor alias.
const CurrentAPIVersion = "1.0.0"

// NegotiateVersion resolves the X-Api-Version request header. Missing
// headers and "1"/"1.0" aliases resolve to CurrentAPIVersion; any other
// major is rejected so old clients fail loudly instead of misparsing
// responses. The resolved version is stored in Locals and echoed back.
func NegotiateVersion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", CurrentAPIVersion)

		switch version {
		case "1", "1.0":
			version = CurrentAPIVersion
		}

		if !strings.HasPrefix(version, "1.") {
			return &types.CustomError{
				Code:    fiber.StatusBadRequest,
				Message: "Unsupported API version: " + version,
				Type:    "request.version",
			}
		}

		c.Locals(LocalAPIVersion, version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
