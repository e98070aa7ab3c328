package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	MolliePaymentID string     `gorm:"size:64;not null;uniqueIndex" json:"mollie_payment_id"`
	Amount          string     `gorm:"size:16;not null" json:"amount"`
	Status          string     `gorm:"size:20;not null;index" json:"status"`
	Description     string     `gorm:"size:255" json:"description"`
	PaidAt          *time.Time `json:"paid_at"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
}
