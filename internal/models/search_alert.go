package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SearchCriteria is the stored form of a search request.
type SearchCriteria struct {
	Locatie    string `json:"locatie"`
	Type       string `json:"type,omitempty"`
	MinPrijs   string `json:"minPrijs,omitempty"`
	MaxPrijs   string `json:"maxPrijs,omitempty"`
	Kamers     string `json:"kamers,omitempty"`
	WoningType string `json:"woningType,omitempty"`
}

type SearchAlert struct {
	ID               uuid.UUID                          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID                          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string                             `gorm:"size:255;not null" json:"name"`
	SearchCriteria   datatypes.JSONType[SearchCriteria] `gorm:"type:jsonb;not null" json:"search_criteria"`
	IsActive         bool                               `gorm:"not null;default:true" json:"is_active"`
	LastCheckedAt    *time.Time                         `json:"last_checked_at"`
	LastResultsCount int                                `gorm:"not null;default:0" json:"last_results_count"`
	CreatedAt        time.Time                          `json:"created_at"`
	UpdatedAt        time.Time                          `json:"updated_at"`
}
