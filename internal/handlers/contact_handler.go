package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.contactService.Submit(c.UserContext(), &req); err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
