package dto

import (
	"time"

	"github.com/woningspotters/woningspotters-api/internal/mail"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

type NewsListResponse struct {
	Success  bool                 `json:"success"`
	Articles []models.NewsArticle `json:"articles"`
	Total    int64                `json:"total"`
}

type ArticleInput struct {
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     *string    `json:"content"`
	Category    string     `json:"category"`
	SourceURL   *string    `json:"source_url"`
	ImageURL    *string    `json:"image_url"`
	IsFeatured  bool       `json:"is_featured"`
	PublishedAt *time.Time `json:"published_at"`
}

// CreateArticlesRequest accepts either a single article or {"articles": [...]}.
type CreateArticlesRequest struct {
	ArticleInput
	Articles []ArticleInput `json:"articles"`
}

type RefreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Total   int    `json:"total"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type SendNewsletterRequest struct {
	Subject  string         `json:"subject"`
	Articles []mail.Article `json:"articles"`
}

type SendNewsletterResponse struct {
	Sent    int    `json:"sent"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

type ContactRequest struct {
	Naam      string `json:"naam"`
	Email     string `json:"email"`
	Onderwerp string `json:"onderwerp"`
	Bericht   string `json:"bericht"`
}
