package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SearchHistory records one executed search, anonymous searches included.
type SearchHistory struct {
	ID          uuid.UUID                          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      *uuid.UUID                         `gorm:"type:uuid;index" json:"user_id"`
	Location    string                             `gorm:"size:255;not null" json:"location"`
	Filters     datatypes.JSONType[SearchCriteria] `gorm:"type:jsonb" json:"filters"`
	ResultCount int                                `gorm:"not null;default:0" json:"result_count"`
	CreatedAt   time.Time                          `gorm:"index" json:"created_at"`
}

func (SearchHistory) TableName() string { return "search_history" }
