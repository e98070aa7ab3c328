// Package repository holds the persistence layer. Store talks to Postgres
// through GORM; Memory keeps the same contract in process for tests.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrLimitReached = errors.New("limit reached")
)

type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	CreateProfile(ctx context.Context, p *models.Profile) error
	// ConsumeSearch records one search for day if the daily count is below
	// limit. It reports false when the allowance is already used up.
	ConsumeSearch(ctx context.Context, id uuid.UUID, day time.Time, limit int) (bool, error)
	SetMollieCustomerID(ctx context.Context, id uuid.UUID, customerID string) error
	SetTier(ctx context.Context, id uuid.UUID, tier models.Tier) error
	ListProfiles(ctx context.Context, search string, limit, offset int) ([]models.Profile, int64, error)
}

type FavoriteRepository interface {
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	CreateFavorite(ctx context.Context, f *models.Favorite) error
	DeleteFavorite(ctx context.Context, userID uuid.UUID, propertyURL string) error
}

type AlertRepository interface {
	ListAlerts(ctx context.Context, userID uuid.UUID) ([]models.SearchAlert, error)
	// CreateAlert inserts a unless the owner already has limit alerts.
	CreateAlert(ctx context.Context, a *models.SearchAlert, limit int) error
	SetAlertActive(ctx context.Context, userID, alertID uuid.UUID, active bool) error
	DeleteAlert(ctx context.Context, userID, alertID uuid.UUID) error
}

type BillingRepository interface {
	CreatePendingSubscription(ctx context.Context, sub *models.Subscription, payment *models.Payment) error
	RecordPaymentStatus(ctx context.Context, p *models.Payment) error
	// ActivateSubscription promotes the owner's newest pending subscription for
	// sub.Plan (or inserts sub when none is pending), drops the remaining
	// pending rows and sets the profile tier to sub.Plan.
	ActivateSubscription(ctx context.Context, sub *models.Subscription) error
	RefreshSubscriptionPeriod(ctx context.Context, userID uuid.UUID, plan models.Tier, start time.Time, end *time.Time) error
	DeletePendingSubscriptions(ctx context.Context, userID uuid.UUID) error
	// CancelSubscription marks active subscriptions canceled and resets the tier to free.
	CancelSubscription(ctx context.Context, userID uuid.UUID, at time.Time) error
	GetActiveSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	LatestOpenPayment(ctx context.Context, userID uuid.UUID) (*models.Payment, error)
	GetPaymentByMollieID(ctx context.Context, molliePaymentID string) (*models.Payment, error)
}

type NewsRepository interface {
	ExistingSourceURLs(ctx context.Context, urls []string) (map[string]bool, error)
	CreateArticle(ctx context.Context, a *models.NewsArticle) error
	// FeatureNewest clears every featured flag and flags the newest article.
	FeatureNewest(ctx context.Context) error
	ListArticles(ctx context.Context, category string, limit, offset int) ([]models.NewsArticle, int64, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error
}

type NewsletterRepository interface {
	GetSubscriber(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	CreateSubscriber(ctx context.Context, s *models.NewsletterSubscriber) error
	SetSubscriberActive(ctx context.Context, email string, active bool) error
	ActiveSubscriberEmails(ctx context.Context) ([]string, error)
	ListSubscribers(ctx context.Context, limit, offset int) ([]models.NewsletterSubscriber, int64, error)
}

type SearchHistoryRepository interface {
	RecordSearch(ctx context.Context, h *models.SearchHistory) error
}

type StatsRepository interface {
	AdminCounts(ctx context.Context, signupsSince time.Time) (*AdminCounts, error)
	PublicCounts(ctx context.Context) (*PublicCounts, error)
}

type AdminCounts struct {
	TotalUsers            int64
	UsersByTier           map[models.Tier]int64
	NewsletterSubscribers int64
	ActiveSubscriptions   int64
	RecentSignups         int64
	TotalRevenue          float64
}

type PublicCounts struct {
	Users    int64
	Searches int64
	News     int64
}
