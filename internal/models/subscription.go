package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

type Subscription struct {
	ID                   uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID               uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	MollieCustomerID     string             `gorm:"size:64" json:"mollie_customer_id"`
	MollieSubscriptionID *string            `gorm:"size:64;index" json:"mollie_subscription_id"`
	Plan                 Tier               `gorm:"size:20;not null" json:"plan"`
	Status               SubscriptionStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Amount               string             `gorm:"size:16;not null" json:"amount"`
	Interval             string             `gorm:"size:32;not null" json:"interval"`
	CurrentPeriodStart   *time.Time         `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time         `json:"current_period_end"`
	CanceledAt           *time.Time         `json:"canceled_at"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}
