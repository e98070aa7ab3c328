package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/services"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
}

// writeError answers err with the matching client error. Anything it does
// not recognise is returned so ErrorHandler turns it into a 500.
func writeError(c *fiber.Ctx, err error, upgradeMessage string) error {
	var (
		validation *services.ValidationError
		quota      *services.QuotaExceededError
		alertLimit *services.AlertLimitError
		incomplete *services.PaymentIncompleteError
	)
	switch {
	case errors.As(err, &validation):
		return errorJSON(c, fiber.StatusBadRequest, validation.Message)
	case errors.As(err, &quota):
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Error:           true,
			Message:         quota.Error(),
			RequiresUpgrade: quota.Tier != models.TierUltra,
			Limit:           quota.Limit,
		})
	case errors.As(err, &alertLimit):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:           true,
			Message:         alertLimit.Error(),
			RequiresUpgrade: alertLimit.Tier != models.TierUltra,
			Limit:           alertLimit.Limit,
		})
	case errors.As(err, &incomplete):
		return errorJSON(c, fiber.StatusBadRequest, incomplete.Error())
	case errors.Is(err, services.ErrUpgradeRequired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:           true,
			Message:         upgradeMessage,
			RequiresUpgrade: true,
		})
	case errors.Is(err, services.ErrAlreadyFavorited):
		return errorJSON(c, fiber.StatusConflict, "Property already in favorites")
	case errors.Is(err, services.ErrAlreadySubscribed):
		return errorJSON(c, fiber.StatusConflict, "Dit e-mailadres is al aangemeld.")
	case errors.Is(err, services.ErrPaymentNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Payment not found")
	case errors.Is(err, services.ErrProfileNotFound):
		return errorJSON(c, fiber.StatusNotFound, "User profile not found")
	case errors.Is(err, services.ErrNoActiveSubscription):
		return errorJSON(c, fiber.StatusNotFound, "No active subscription found")
	case errors.Is(err, services.ErrNoPendingPayment):
		return errorJSON(c, fiber.StatusNotFound, "No pending payment found")
	case errors.Is(err, services.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return err
}

// ErrorHandler is the fiber error handler. Details of server errors are
// never exposed to the caller; the access log records them.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.Is(err, services.ErrUpstream):
		message = "Er ging iets mis bij een externe dienst, probeer het later opnieuw"
	}

	if code >= fiber.StatusInternalServerError && fe != nil {
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
