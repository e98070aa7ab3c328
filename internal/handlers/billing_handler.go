package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/services"
	"github.com/woningspotters/woningspotters-api/internal/session"
)

type BillingHandler struct {
	billingService *services.BillingService
	accountService *services.AccountService
}

func NewBillingHandler(billingService *services.BillingService, accountService *services.AccountService) *BillingHandler {
	return &BillingHandler{billingService: billingService, accountService: accountService}
}

func (h *BillingHandler) CreatePayment(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	email := session.Email(c)
	if _, err := h.accountService.EnsureProfile(c.UserContext(), userID, email); err != nil {
		return err
	}

	resp, err := h.billingService.CreatePayment(c.UserContext(), userID, email, req.Plan)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(resp)
}

// Webhook receives Mollie payment notifications. Only the payment id is
// read from the request; everything else is fetched from Mollie.
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	var req dto.MollieWebhook
	if err := c.BodyParser(&req); err != nil {
		req.ID = c.FormValue("id")
	}

	if err := h.billingService.HandleWebhook(c.UserContext(), req.ID); err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		return writeError(c, err, "")
	}
	return c.JSON(dto.WebhookResponse{Received: true})
}

func (h *BillingHandler) Cancel(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	if err := h.billingService.Cancel(c.UserContext(), userID); err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Subscription canceled"})
}

// Activate confirms a paid checkout when the webhook cannot reach the API.
func (h *BillingHandler) Activate(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	var req dto.ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	tier, err := h.billingService.Activate(c.UserContext(), userID, req.Plan)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.ActivateResponse{Success: true, SubscriptionTier: string(tier)})
}
