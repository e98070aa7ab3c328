package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/metrics"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/mollie"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

const paymentTypeSetup = "subscription_setup"

var paymentIDPattern = regexp.MustCompile(`^tr_[a-zA-Z0-9]+$`)

type Plan struct {
	Tier        models.Tier
	Amount      string
	Currency    string
	Interval    string
	Description string
}

var Plans = map[models.Tier]Plan{
	models.TierPro: {
		Tier:        models.TierPro,
		Amount:      "9.00",
		Currency:    "EUR",
		Interval:    "1 month",
		Description: "WoningScout Pro - Maandelijks abonnement",
	},
	models.TierUltra: {
		Tier:        models.TierUltra,
		Amount:      "29.00",
		Currency:    "EUR",
		Interval:    "1 month",
		Description: "WoningScout Ultra - Maandelijks abonnement",
	},
}

// PaymentGateway is the part of the Mollie API the billing flow uses.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, req mollie.CreateCustomerRequest) (*mollie.Customer, error)
	CreatePayment(ctx context.Context, req mollie.CreatePaymentRequest) (*mollie.Payment, error)
	GetPayment(ctx context.Context, id string) (*mollie.Payment, error)
	CreateSubscription(ctx context.Context, customerID string, req mollie.CreateSubscriptionRequest) (*mollie.Subscription, error)
	CancelSubscription(ctx context.Context, customerID, subscriptionID string) error
}

type BillingConfig struct {
	AppURL string
	// TestMode skips the first-payment sequence so test keys work without a mandate.
	TestMode bool
}

type BillingService struct {
	profiles repository.ProfileRepository
	billing  repository.BillingRepository
	gateway  PaymentGateway
	cfg      BillingConfig
	logger   *slog.Logger
	now      func() time.Time
}

func NewBillingService(profiles repository.ProfileRepository, billing repository.BillingRepository, gateway PaymentGateway, cfg BillingConfig, logger *slog.Logger) *BillingService {
	cfg.AppURL = strings.TrimRight(cfg.AppURL, "/")
	return &BillingService{profiles: profiles, billing: billing, gateway: gateway, cfg: cfg, logger: logger, now: time.Now}
}

func (s *BillingService) webhookURL() string {
	if s.cfg.AppURL == "" || strings.Contains(s.cfg.AppURL, "localhost") {
		return ""
	}
	return s.cfg.AppURL + "/api/mollie/webhook"
}

func planFor(name string) (Plan, error) {
	tier, ok := ParseTier(name)
	if !ok {
		return Plan{}, invalid("Invalid plan selected")
	}
	plan, ok := Plans[tier]
	if !ok {
		return Plan{}, invalid("Invalid plan selected")
	}
	return plan, nil
}

// CreatePayment starts the checkout for plan and stores the pending subscription.
func (s *BillingService) CreatePayment(ctx context.Context, userID uuid.UUID, email string, planName string) (*dto.CreatePaymentResponse, error) {
	plan, err := planFor(planName)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	customerID, err := s.ensureCustomer(ctx, profile, email)
	if err != nil {
		return nil, err
	}

	req := mollie.CreatePaymentRequest{
		Amount:      mollie.Amount{Currency: plan.Currency, Value: plan.Amount},
		Description: plan.Description,
		RedirectURL: fmt.Sprintf("%s/payment/success?plan=%s", s.cfg.AppURL, plan.Tier),
		WebhookURL:  s.webhookURL(),
		CustomerID:  customerID,
		Metadata: mollie.Metadata{
			UserID: userID.String(),
			Plan:   string(plan.Tier),
			Type:   paymentTypeSetup,
		},
	}
	if !s.cfg.TestMode {
		req.SequenceType = mollie.SequenceFirst
	}

	payment, err := s.gateway.CreatePayment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: create payment: %v", ErrUpstream, err)
	}

	sub := &models.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		MollieCustomerID: customerID,
		Plan:             plan.Tier,
		Status:           models.SubscriptionPending,
		Amount:           plan.Amount,
		Interval:         plan.Interval,
	}
	row := &models.Payment{
		ID:              uuid.New(),
		UserID:          userID,
		MolliePaymentID: payment.ID,
		Amount:          plan.Amount,
		Status:          mollie.StatusOpen,
		Description:     plan.Description,
	}
	if err := s.billing.CreatePendingSubscription(ctx, sub, row); err != nil {
		return nil, fmt.Errorf("store pending subscription: %w", err)
	}

	s.logger.Info("payment created", "user_id", userID.String(), "plan", plan.Tier, "payment_id", payment.ID)
	return &dto.CreatePaymentResponse{CheckoutURL: payment.CheckoutURL(), PaymentID: payment.ID}, nil
}

func (s *BillingService) ensureCustomer(ctx context.Context, profile *models.Profile, email string) (string, error) {
	if profile.MollieCustomerID != nil && *profile.MollieCustomerID != "" {
		return *profile.MollieCustomerID, nil
	}
	if profile.Email != "" {
		email = profile.Email
	}
	name := profile.FullName
	if name == "" {
		name = email
	}
	customer, err := s.gateway.CreateCustomer(ctx, mollie.CreateCustomerRequest{
		Name:     name,
		Email:    email,
		Metadata: map[string]string{"userId": profile.ID.String()},
	})
	if err != nil {
		return "", fmt.Errorf("%w: create customer: %v", ErrUpstream, err)
	}
	if err := s.profiles.SetMollieCustomerID(ctx, profile.ID, customer.ID); err != nil {
		return "", fmt.Errorf("store customer id: %w", err)
	}
	return customer.ID, nil
}

// HandleWebhook re-fetches the payment and applies its status. Repeated
// deliveries of an already recorded status are no-ops.
func (s *BillingService) HandleWebhook(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return invalid("No payment ID")
	}
	if !paymentIDPattern.MatchString(paymentID) {
		return invalid("Invalid payment ID format")
	}

	payment, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, mollie.ErrNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("%w: get payment: %v", ErrUpstream, err)
	}

	meta, ok := payment.Metadata()
	if !ok {
		return invalid("Invalid payment metadata")
	}
	userID, err := uuid.Parse(meta.UserID)
	if err != nil {
		return invalid("Invalid payment metadata")
	}
	plan, err := planFor(meta.Plan)
	if err != nil {
		return invalid("Invalid payment metadata")
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	previous, err := s.billing.GetPaymentByMollieID(ctx, payment.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if previous != nil && previous.Status == payment.Status {
		s.logger.Info("webhook status already processed", "payment_id", payment.ID, "status", payment.Status)
		return nil
	}

	// The status is stored only once the transition went through, so a
	// redelivered webhook retries a failed activation.
	if err := s.applyStatus(ctx, profile, payment, meta, plan); err != nil {
		return err
	}
	if err := s.recordStatus(ctx, userID, payment); err != nil {
		return err
	}
	metrics.RecordWebhook(payment.Status)
	return nil
}

func (s *BillingService) applyStatus(ctx context.Context, profile *models.Profile, payment *mollie.Payment, meta mollie.Metadata, plan Plan) error {
	switch payment.Status {
	case mollie.StatusPaid:
		if meta.Type == paymentTypeSetup {
			return s.startSubscription(ctx, profile, payment, plan)
		}
		if payment.SequenceType == mollie.SequenceRecurring {
			now := s.now().UTC()
			end := now.AddDate(0, 1, 0)
			return s.billing.RefreshSubscriptionPeriod(ctx, profile.ID, plan.Tier, now, &end)
		}
	case mollie.StatusFailed, mollie.StatusCanceled, mollie.StatusExpired:
		if meta.Type == paymentTypeSetup {
			return s.billing.DeletePendingSubscriptions(ctx, profile.ID)
		}
		if payment.SequenceType == mollie.SequenceRecurring {
			s.logger.Warn("recurring payment failed, downgrading", "user_id", profile.ID.String(), "payment_id", payment.ID)
			return s.billing.CancelSubscription(ctx, profile.ID, s.now().UTC())
		}
	}
	return nil
}

func (s *BillingService) recordStatus(ctx context.Context, userID uuid.UUID, payment *mollie.Payment) error {
	row := &models.Payment{
		ID:              uuid.New(),
		UserID:          userID,
		MolliePaymentID: payment.ID,
		Amount:          payment.Amount.Value,
		Status:          payment.Status,
		Description:     payment.Description,
	}
	if payment.Status == mollie.StatusPaid {
		paidAt := s.now().UTC()
		if payment.PaidAt != nil {
			paidAt = payment.PaidAt.UTC()
		}
		row.PaidAt = &paidAt
	}
	if err := s.billing.RecordPaymentStatus(ctx, row); err != nil {
		return fmt.Errorf("record payment status: %w", err)
	}
	return nil
}

func (s *BillingService) startSubscription(ctx context.Context, profile *models.Profile, payment *mollie.Payment, plan Plan) error {
	customerID := payment.CustomerID
	if customerID == "" && profile.MollieCustomerID != nil {
		customerID = *profile.MollieCustomerID
	}
	if customerID == "" {
		return fmt.Errorf("payment %s has no customer", payment.ID)
	}

	mollieSub, err := s.gateway.CreateSubscription(ctx, customerID, mollie.CreateSubscriptionRequest{
		Amount:      mollie.Amount{Currency: plan.Currency, Value: plan.Amount},
		Interval:    plan.Interval,
		Description: plan.Description,
		WebhookURL:  s.webhookURL(),
		Metadata:    mollie.Metadata{UserID: profile.ID.String(), Plan: string(plan.Tier)},
	})
	if err != nil {
		return fmt.Errorf("%w: create subscription: %v", ErrUpstream, err)
	}

	start := s.now().UTC()
	end, ok := mollieSub.NextPayment()
	if !ok {
		end = start.AddDate(0, 1, 0)
	}
	subID := mollieSub.ID
	sub := &models.Subscription{
		ID:                   uuid.New(),
		UserID:               profile.ID,
		MollieCustomerID:     customerID,
		MollieSubscriptionID: &subID,
		Plan:                 plan.Tier,
		Amount:               plan.Amount,
		Interval:             plan.Interval,
		CurrentPeriodStart:   &start,
		CurrentPeriodEnd:     &end,
	}
	if err := s.billing.ActivateSubscription(ctx, sub); err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	s.logger.Info("subscription activated", "user_id", profile.ID.String(), "plan", plan.Tier, "subscription_id", subID)
	return nil
}

// Cancel stops the caller's active subscription and downgrades to free.
func (s *BillingService) Cancel(ctx context.Context, userID uuid.UUID) error {
	sub, err := s.billing.GetActiveSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoActiveSubscription
		}
		return err
	}

	if sub.MollieSubscriptionID != nil && sub.MollieCustomerID != "" {
		err := s.gateway.CancelSubscription(ctx, sub.MollieCustomerID, *sub.MollieSubscriptionID)
		if err != nil && !errors.Is(err, mollie.ErrNotFound) {
			return fmt.Errorf("%w: cancel subscription: %v", ErrUpstream, err)
		}
	}

	if err := s.billing.CancelSubscription(ctx, userID, s.now().UTC()); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	s.logger.Info("subscription canceled", "user_id", userID.String(), "plan", sub.Plan)
	return nil
}

// Activate confirms the caller's latest open payment without waiting for the
// webhook. Used where Mollie cannot reach the API. The tier applied is the
// plan the payment was created for; a different requested plan is rejected.
func (s *BillingService) Activate(ctx context.Context, userID uuid.UUID, planName string) (models.Tier, error) {
	requested, err := planFor(planName)
	if err != nil {
		return "", err
	}

	row, err := s.billing.LatestOpenPayment(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNoPendingPayment
		}
		return "", err
	}

	payment, err := s.gateway.GetPayment(ctx, row.MolliePaymentID)
	if err != nil {
		if errors.Is(err, mollie.ErrNotFound) {
			return "", ErrPaymentNotFound
		}
		return "", fmt.Errorf("%w: get payment: %v", ErrUpstream, err)
	}

	meta, ok := payment.Metadata()
	if !ok || meta.UserID != userID.String() {
		return "", invalid("Invalid payment metadata")
	}
	plan, err := planFor(meta.Plan)
	if err != nil {
		return "", invalid("Invalid payment metadata")
	}
	if plan.Tier != requested.Tier {
		return "", invalid("Plan does not match payment")
	}

	if payment.Status != mollie.StatusPaid {
		if err := s.recordStatus(ctx, userID, payment); err != nil {
			return "", err
		}
		return "", &PaymentIncompleteError{Status: payment.Status}
	}

	start := s.now().UTC()
	end := start.AddDate(0, 0, 30)
	sub := &models.Subscription{
		ID:                 uuid.New(),
		UserID:             userID,
		MollieCustomerID:   payment.CustomerID,
		Plan:               plan.Tier,
		Amount:             plan.Amount,
		Interval:           plan.Interval,
		CurrentPeriodStart: &start,
		CurrentPeriodEnd:   &end,
	}
	if err := s.billing.ActivateSubscription(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrProfileNotFound
		}
		return "", fmt.Errorf("activate subscription: %w", err)
	}
	if err := s.recordStatus(ctx, userID, payment); err != nil {
		return "", err
	}
	return plan.Tier, nil
}
