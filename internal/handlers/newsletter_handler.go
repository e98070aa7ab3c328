package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/services"
)

type NewsletterHandler struct {
	newsletterService *services.NewsletterService
	siteURL           string
}

func NewNewsletterHandler(newsletterService *services.NewsletterService, siteURL string) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService, siteURL: siteURL}
}

func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.newsletterService.Subscribe(c.UserContext(), req.Email); err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Unsubscribe handles the link in every newsletter and redirects to the site.
func (h *NewsletterHandler) Unsubscribe(c *fiber.Ctx) error {
	err := h.newsletterService.Unsubscribe(c.UserContext(), c.Query("token"))
	switch {
	case errors.Is(err, services.ErrInvalidToken):
		return c.Redirect(h.siteURL+"/?error=invalid_email", fiber.StatusFound)
	case err != nil:
		return c.Redirect(h.siteURL+"/?error=unsubscribe_failed", fiber.StatusFound)
	}
	return c.Redirect(h.siteURL+"/uitschrijven/bevestigd", fiber.StatusFound)
}

// Send mails a digest to all active subscribers. It is protected by the
// newsletter API key rather than a user session.
func (h *NewsletterHandler) Send(c *fiber.Ctx) error {
	key := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if err := h.newsletterService.Authorize(key); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.SendNewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	resp, err := h.newsletterService.Send(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(resp)
}

func (h *NewsletterHandler) AdminList(c *fiber.Ctx) error {
	page, limit := services.Pagination(c.QueryInt("page", 1), c.QueryInt("limit", 50), 50)
	subscribers, total, err := h.newsletterService.List(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.SubscriberListResponse{Subscribers: subscribers, Total: total, Page: page, Limit: limit})
}
