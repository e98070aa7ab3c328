package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

const recentSignupWindow = 7 * 24 * time.Hour

type AdminService struct {
	profiles repository.ProfileRepository
	stats    repository.StatsRepository
	now      func() time.Time
}

func NewAdminService(profiles repository.ProfileRepository, stats repository.StatsRepository) *AdminService {
	return &AdminService{profiles: profiles, stats: stats, now: time.Now}
}

func (s *AdminService) Stats(ctx context.Context) (*dto.AdminStats, error) {
	c, err := s.stats.AdminCounts(ctx, s.now().UTC().Add(-recentSignupWindow))
	if err != nil {
		return nil, err
	}
	byTier := map[models.Tier]int64{models.TierFree: 0, models.TierPro: 0, models.TierUltra: 0}
	for tier, n := range c.UsersByTier {
		if _, ok := byTier[tier]; ok {
			byTier[tier] = n
		}
	}
	return &dto.AdminStats{
		TotalUsers:            c.TotalUsers,
		UsersByTier:           byTier,
		NewsletterSubscribers: c.NewsletterSubscribers,
		ActiveSubscriptions:   c.ActiveSubscriptions,
		RecentSignups:         c.RecentSignups,
		TotalRevenue:          math.Round(c.TotalRevenue*100) / 100,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, search string, page, limit int) (*dto.UserListResponse, error) {
	users, total, err := s.profiles.ListProfiles(ctx, strings.TrimSpace(search), limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.Profile{}
	}
	return &dto.UserListResponse{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// UpdateTier sets a user's tier by hand without touching subscriptions.
func (s *AdminService) UpdateTier(ctx context.Context, req *dto.UpdateUserRequest) error {
	if req.UserID == uuid.Nil || req.SubscriptionTier == "" {
		return invalid("User ID and subscription tier are required")
	}
	tier, ok := ParseTier(req.SubscriptionTier)
	if !ok {
		return invalid("Invalid subscription tier")
	}
	err := s.profiles.SetTier(ctx, req.UserID, tier)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}

// Pagination normalizes page and limit query values.
func Pagination(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
