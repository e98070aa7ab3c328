package models

import (
	"time"

	"github.com/google/uuid"
)

type Tier string

const (
	TierFree  Tier = "free"
	TierPro   Tier = "pro"
	TierUltra Tier = "ultra"
)

// Profile mirrors the auth user. The id is the subject of the session token.
type Profile struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string     `gorm:"size:255;index" json:"email"`
	FullName         string     `gorm:"size:255" json:"full_name"`
	SubscriptionTier Tier       `gorm:"size:20;not null;default:'free';index" json:"subscription_tier"`
	SearchesToday    int        `gorm:"not null;default:0" json:"searches_today"`
	LastSearchDate   *time.Time `gorm:"type:date" json:"last_search_date"`
	IsAdmin          bool       `gorm:"not null;default:false" json:"is_admin"`
	MollieCustomerID *string    `gorm:"size:64" json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
