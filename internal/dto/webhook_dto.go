package dto

type CreatePaymentRequest struct {
	Plan string `json:"plan"`
}

type CreatePaymentResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	PaymentID   string `json:"paymentId"`
}

type ActivateRequest struct {
	Plan string `json:"plan"`
}

type ActivateResponse struct {
	Success          bool   `json:"success"`
	SubscriptionTier string `json:"subscription_tier"`
}

// MollieWebhook is the form body Mollie posts. Only the id is trusted.
type MollieWebhook struct {
	ID string `form:"id" json:"id"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}
