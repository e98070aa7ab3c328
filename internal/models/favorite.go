package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Favorite struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_url" json:"user_id"`
	PropertyURL  string         `gorm:"type:text;not null;uniqueIndex:idx_favorites_user_url" json:"property_url"`
	PropertyData datatypes.JSON `gorm:"type:jsonb;not null" json:"property_data"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
}
