package models

import (
	"time"

	"github.com/google/uuid"
)

type NewsletterSubscriber struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	IsActive     bool      `gorm:"not null;default:true;index" json:"is_active"`
	SubscribedAt time.Time `gorm:"not null" json:"subscribed_at"`
}
