package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/geocode"
	"github.com/woningspotters/woningspotters-api/internal/services"
	"github.com/woningspotters/woningspotters-api/internal/session"
)

type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Suggestion, error)
}

type AccountHandler struct {
	accountService *services.AccountService
	geocoder       Geocoder
}

func NewAccountHandler(accountService *services.AccountService, geocoder Geocoder) *AccountHandler {
	return &AccountHandler{accountService: accountService, geocoder: geocoder}
}

func (h *AccountHandler) Account(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	resp, err := h.accountService.Account(c.UserContext(), userID, session.Email(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PublicStats never fails the page it is shown on: errors answer zero counts.
func (h *AccountHandler) PublicStats(c *fiber.Ctx) error {
	stats, err := h.accountService.PublicStats(c.UserContext())
	if err != nil {
		slog.Error("public stats failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.PublicStatsResponse{})
	}
	return c.JSON(stats)
}

func (h *AccountHandler) Geocode(c *fiber.Ctx) error {
	suggestions, err := h.geocoder.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		slog.Warn("geocode failed", "error", err)
		return c.JSON(dto.GeocodeResponse{Suggestions: []geocode.Suggestion{}})
	}
	return c.JSON(dto.GeocodeResponse{Suggestions: suggestions})
}
