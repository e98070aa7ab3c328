package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/services"
	"github.com/woningspotters/woningspotters-api/internal/session"
)

const upgradeForAlerts = "Alerts are only available for Pro and Ultra users"

type AlertHandler struct {
	alertService *services.AlertService
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	alerts, err := h.alertService.List(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err, upgradeForAlerts)
	}
	return c.JSON(fiber.Map{"alerts": alerts})
}

func (h *AlertHandler) Create(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	var req dto.AlertRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	alert, err := h.alertService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return writeError(c, err, upgradeForAlerts)
	}
	return c.JSON(fiber.Map{"alert": alert})
}

func (h *AlertHandler) Toggle(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	var req dto.AlertToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.alertService.SetActive(c.UserContext(), userID, &req); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Alert not found")
		}
		return writeError(c, err, upgradeForAlerts)
	}
	return c.JSON(fiber.Map{"alert": fiber.Map{"id": req.AlertID, "is_active": *req.IsActive}})
}

func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	var req dto.AlertDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.alertService.Delete(c.UserContext(), userID, req.AlertID); err != nil {
		return writeError(c, err, upgradeForAlerts)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
