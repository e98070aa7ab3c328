package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

type QuotaService struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
	now      func() time.Time
}

func NewQuotaService(profiles repository.ProfileRepository, logger *slog.Logger) *QuotaService {
	return &QuotaService{profiles: profiles, logger: logger, now: time.Now}
}

// Check consumes one search for userID. Anonymous callers and callers whose
// profile cannot be loaded get the free allowance and nothing is stored.
func (s *QuotaService) Check(ctx context.Context, userID *uuid.UUID) (*dto.QuotaResponse, error) {
	free := LimitsFor(models.TierFree).SearchesPerDay
	if userID == nil {
		return quota(models.TierFree, 0, free), nil
	}

	profile, err := s.profiles.GetProfile(ctx, *userID)
	if err != nil {
		s.logger.Warn("quota check without profile, allowing search", "user_id", userID.String(), "error", err)
		return quota(models.TierFree, 0, free), nil
	}

	today := s.today()
	limit := LimitsFor(profile.SubscriptionTier).SearchesPerDay
	used := usedToday(profile, today)
	if used >= limit {
		return nil, &QuotaExceededError{Limit: limit, Tier: profile.SubscriptionTier}
	}

	ok, err := s.profiles.ConsumeSearch(ctx, *userID, today, limit)
	if err != nil {
		s.logger.Error("failed to record search", "user_id", userID.String(), "error", err)
		return quota(profile.SubscriptionTier, used, limit), nil
	}
	if !ok {
		return nil, &QuotaExceededError{Limit: limit, Tier: profile.SubscriptionTier}
	}
	return quota(profile.SubscriptionTier, used+1, limit), nil
}

// Usage reports today's consumption without recording a search.
func (s *QuotaService) Usage(ctx context.Context, userID uuid.UUID) (*dto.QuotaResponse, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	limit := LimitsFor(profile.SubscriptionTier).SearchesPerDay
	return quota(profile.SubscriptionTier, usedToday(profile, s.today()), limit), nil
}

func (s *QuotaService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func usedToday(p *models.Profile, today time.Time) int {
	if p.LastSearchDate == nil || p.LastSearchDate.Format(time.DateOnly) != today.Format(time.DateOnly) {
		return 0
	}
	return p.SearchesToday
}

func quota(tier models.Tier, used, limit int) *dto.QuotaResponse {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return &dto.QuotaResponse{Tier: tier, Used: used, Limit: limit, Remaining: remaining}
}
