package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/config"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"github.com/woningspotters/woningspotters-api/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// AdminRequired admits a request when one of these holds:
// 1. X-Admin-Token matches the configured bcrypt hash
// 2. the session user id or email is on the configured admin lists
// 3. the session user's profile has is_admin set
//
// Routes using it must run OptionalJWT first so the session is available.
func AdminRequired(profiles repository.ProfileRepository, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)
	adminUserIDs := parseCSV(cfg.AdminUserIDs)
	tokenHash := []byte(cfg.AdminTokenHash)

	return func(c *fiber.Ctx) error {
		if len(tokenHash) > 0 {
			if token := c.Get("X-Admin-Token"); token != "" &&
				bcrypt.CompareHashAndPassword(tokenHash, []byte(token)) == nil {
				return c.Next()
			}
		}

		userID, err := session.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authenticated",
			})
		}

		email := strings.ToLower(session.Email(c))
		if contains(adminEmails, email) || contains(adminUserIDs, userID.String()) {
			return c.Next()
		}

		profile, err := profiles.GetProfile(c.UserContext(), userID)
		if err == nil && profile.IsAdmin {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	if val == "" {
		return false
	}
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
