package models

import (
	"time"

	"github.com/google/uuid"
)

type NewsCategory string

const (
	CategoryMarktanalyse NewsCategory = "Marktanalyse"
	CategoryNieuwbouw    NewsCategory = "Nieuwbouw"
	CategoryHypotheek    NewsCategory = "Hypotheek"
	CategoryRegelgeving  NewsCategory = "Regelgeving"
	CategoryTips         NewsCategory = "Tips"
)

type NewsArticle struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string       `gorm:"type:text;not null" json:"title"`
	Summary     string       `gorm:"type:text;not null" json:"summary"`
	Content     *string      `gorm:"type:text" json:"content"`
	Category    NewsCategory `gorm:"size:32;not null;index" json:"category"`
	SourceURL   *string      `gorm:"type:text;uniqueIndex" json:"source_url"`
	ImageURL    *string      `gorm:"type:text" json:"image_url"`
	IsFeatured  bool         `gorm:"not null;default:false" json:"is_featured"`
	PublishedAt time.Time    `gorm:"not null;index" json:"published_at"`
	CreatedAt   time.Time    `json:"created_at"`
}
