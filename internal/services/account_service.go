package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

type AccountService struct {
	profiles repository.ProfileRepository
	billing  repository.BillingRepository
	stats    repository.StatsRepository
	quota    *QuotaService
	logger   *slog.Logger
}

func NewAccountService(profiles repository.ProfileRepository, billing repository.BillingRepository, stats repository.StatsRepository, quota *QuotaService, logger *slog.Logger) *AccountService {
	return &AccountService{profiles: profiles, billing: billing, stats: stats, quota: quota, logger: logger}
}

// EnsureProfile returns the caller's profile, creating a free one the first
// time a verified user shows up.
func (s *AccountService) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	p = &models.Profile{ID: userID, Email: email, SubscriptionTier: models.TierFree}
	if err := s.profiles.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.profiles.GetProfile(ctx, userID)
		}
		return nil, err
	}
	s.logger.Info("profile created", "user_id", userID.String())
	return p, nil
}

func (s *AccountService) Account(ctx context.Context, userID uuid.UUID, email string) (*dto.AccountResponse, error) {
	profile, err := s.EnsureProfile(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	q, err := s.quota.Usage(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AccountResponse{Profile: profile, Quota: *q}
	sub, err := s.billing.GetActiveSubscription(ctx, userID)
	switch {
	case err == nil:
		resp.Subscription = sub
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return resp, nil
}

func (s *AccountService) PublicStats(ctx context.Context) (*dto.PublicStatsResponse, error) {
	c, err := s.stats.PublicCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PublicStatsResponse{Users: c.Users, Searches: c.Searches, News: c.News}, nil
}
