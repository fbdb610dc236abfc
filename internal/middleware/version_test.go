package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/missionconnect/missionconnect/internal/types"
)

func versionApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if ce, ok := err.(*types.CustomError); ok {
				return c.Status(ce.Code).JSON(fiber.Map{"message": ce.Message})
			}
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
	})
	app.Use(NegotiateVersion())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalAPIVersion).(string))
	})
	return app
}

func TestNegotiateVersion(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"absent header", "", fiber.StatusOK, CurrentAPIVersion},
		{"major alias", "1", fiber.StatusOK, CurrentAPIVersion},
		{"minor alias", "1.0", fiber.StatusOK, CurrentAPIVersion},
		{"exact", "1.0.0", fiber.StatusOK, "1.0.0"},
		{"unknown major", "2.0.0", fiber.StatusBadRequest, ""},
		{"garbage", "latest", fiber.StatusBadRequest, ""},
	}

	app := versionApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("X-Api-Version", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != fiber.StatusOK {
				return
			}
			buf := make([]byte, 16)
			n, _ := resp.Body.Read(buf)
			if got := string(buf[:n]); got != tt.wantBody {
				t.Errorf("resolved version = %q, want %q", got, tt.wantBody)
			}
			if echoed := resp.Header.Get("X-Api-Version"); echoed != tt.wantBody {
				t.Errorf("echoed header = %q, want %q", echoed, tt.wantBody)
			}
		})
	}
}
