package dto

import (
	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/geocode"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

type AdminStats struct {
	TotalUsers            int64                 `json:"totalUsers"`
	UsersByTier           map[models.Tier]int64 `json:"usersByTier"`
	NewsletterSubscribers int64                 `json:"newsletterSubscribers"`
	ActiveSubscriptions   int64                 `json:"activeSubscriptions"`
	RecentSignups         int64                 `json:"recentSignups"`
	TotalRevenue          float64               `json:"totalRevenue"`
}

type AdminStatsResponse struct {
	Stats AdminStats `json:"stats"`
}

type UserListResponse struct {
	Users      []models.Profile `json:"users"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type UpdateUserRequest struct {
	UserID           uuid.UUID `json:"userId"`
	SubscriptionTier string    `json:"subscriptionTier"`
}

type SubscriberListResponse struct {
	Subscribers []models.NewsletterSubscriber `json:"subscribers"`
	Total       int64                         `json:"total"`
	Page        int                           `json:"page"`
	Limit       int                           `json:"limit"`
}

type PublicStatsResponse struct {
	Users    int64 `json:"users"`
	Searches int64 `json:"searches"`
	News     int64 `json:"news"`
}

type AccountResponse struct {
	Profile      *models.Profile      `json:"profile"`
	Quota        QuotaResponse        `json:"quota"`
	Subscription *models.Subscription `json:"subscription"`
}

type GeocodeResponse struct {
	Suggestions []geocode.Suggestion `json:"suggestions"`
}
