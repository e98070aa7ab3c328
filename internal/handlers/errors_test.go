package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/services"
)

func answer(t *testing.T, handler fiber.Handler) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", handler)
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantUpgrade bool
		wantLimit   int
	}{
		{"validation", &services.ValidationError{Message: "Locatie is verplicht"}, 400, "Locatie is verplicht", false, 0},
		{"quota free", &services.QuotaExceededError{Limit: 5, Tier: models.TierFree}, 429, "Je hebt je dagelijkse limiet van 5 zoekopdrachten bereikt", true, 5},
		{"quota ultra", &services.QuotaExceededError{Limit: 500, Tier: models.TierUltra}, 429, "Je hebt je dagelijkse limiet van 500 zoekopdrachten bereikt", false, 500},
		{"upgrade", services.ErrUpgradeRequired, 403, "Upgrade to Pro", true, 0},
		{"wrapped not found", fmt.Errorf("lookup: %w", services.ErrPaymentNotFound), 404, "Payment not found", false, 0},
		{"duplicate favorite", services.ErrAlreadyFavorited, 409, "Property already in favorites", false, 0},
		{"unknown", errors.New("connection reset"), 500, "Internal server error", false, 0},
		{"upstream", fmt.Errorf("%w: apify", services.ErrUpstream), 500, "Er ging iets mis bij een externe dienst, probeer het later opnieuw", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := answer(t, func(c *fiber.Ctx) error {
				return writeError(c, tt.err, "Upgrade to Pro")
			})
			assert.Equal(t, tt.wantStatus, status)
			assert.True(t, body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantUpgrade, body.RequiresUpgrade)
			assert.Equal(t, tt.wantLimit, body.Limit)
		})
	}
}

func TestErrorHandlerFiberErrors(t *testing.T) {
	status, body := answer(t, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	assert.Equal(t, fiber.StatusTeapot, status)
	assert.Equal(t, "short and stout", body.Message)

	status, body = answer(t, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "db host 10.0.0.4 unreachable")
	})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "Internal server error", body.Message)
}
