package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.AdminStatsResponse{Stats: *stats})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, limit := services.Pagination(c.QueryInt("page", 1), c.QueryInt("limit", 20), 20)
	resp, err := h.adminService.ListUsers(c.UserContext(), c.Query("search"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.adminService.UpdateTier(c.UserContext(), &req); err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		return writeError(c, err, "")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
