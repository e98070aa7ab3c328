package services

import (
	"errors"
	"fmt"

	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

var (
	ErrNotFound             = repository.ErrNotFound
	ErrUpgradeRequired      = errors.New("tier does not include this feature")
	ErrAlreadyFavorited     = errors.New("property already in favorites")
	ErrAlreadySubscribed    = errors.New("email already subscribed")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrNoPendingPayment     = errors.New("no pending payment")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUpstream             = errors.New("upstream service failed")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

type QuotaExceededError struct {
	Limit int
	Tier  models.Tier
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("Je hebt je dagelijkse limiet van %d zoekopdrachten bereikt", e.Limit)
}

type AlertLimitError struct {
	Limit int
	Tier  models.Tier
}

func (e *AlertLimitError) Error() string {
	return fmt.Sprintf("Je kunt maximaal %d alerts hebben met je %s abonnement", e.Limit, tierLabel(e.Tier))
}

// PaymentIncompleteError is returned when a payment exists but has not been paid.
type PaymentIncompleteError struct {
	Status string
}

func (e *PaymentIncompleteError) Error() string {
	return "Payment not completed"
}
