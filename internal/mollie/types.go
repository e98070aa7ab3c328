package mollie

import (
	"encoding/json"
	"time"
)

const (
	StatusOpen     = "open"
	StatusPaid     = "paid"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
	StatusExpired  = "expired"

	SequenceFirst     = "first"
	SequenceRecurring = "recurring"
)

type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

type Link struct {
	Href string `json:"href"`
}

// Metadata is what we attach to payments and subscriptions.
type Metadata struct {
	UserID string `json:"userId"`
	Plan   string `json:"plan"`
	Type   string `json:"type,omitempty"`
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateCustomerRequest struct {
	Name     string            `json:"name,omitempty"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type Payment struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	Amount         Amount          `json:"amount"`
	Description    string          `json:"description"`
	SequenceType   string          `json:"sequenceType"`
	CustomerID     string          `json:"customerId"`
	SubscriptionID string          `json:"subscriptionId"`
	PaidAt         *time.Time      `json:"paidAt"`
	RawMetadata    json.RawMessage `json:"metadata"`
	Links          struct {
		Checkout *Link `json:"checkout"`
	} `json:"_links"`
}

// Metadata decodes the payment metadata. It reports false when the metadata
// is missing or lacks a user id or plan.
func (p *Payment) Metadata() (Metadata, bool) {
	var m Metadata
	if len(p.RawMetadata) == 0 {
		return m, false
	}
	if err := json.Unmarshal(p.RawMetadata, &m); err != nil {
		return m, false
	}
	return m, m.UserID != "" && m.Plan != ""
}

func (p *Payment) CheckoutURL() string {
	if p.Links.Checkout == nil {
		return ""
	}
	return p.Links.Checkout.Href
}

type CreatePaymentRequest struct {
	Amount       Amount   `json:"amount"`
	Description  string   `json:"description"`
	RedirectURL  string   `json:"redirectUrl"`
	WebhookURL   string   `json:"webhookUrl,omitempty"`
	CustomerID   string   `json:"customerId,omitempty"`
	SequenceType string   `json:"sequenceType,omitempty"`
	Metadata     Metadata `json:"metadata"`
}

type Subscription struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	NextPaymentDate string `json:"nextPaymentDate"`
}

// NextPayment parses NextPaymentDate (YYYY-MM-DD). It reports false when absent.
func (s *Subscription) NextPayment() (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, s.NextPaymentDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type CreateSubscriptionRequest struct {
	Amount      Amount   `json:"amount"`
	Interval    string   `json:"interval"`
	Description string   `json:"description"`
	WebhookURL  string   `json:"webhookUrl,omitempty"`
	Metadata    Metadata `json:"metadata"`
}
