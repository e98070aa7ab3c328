package repository

import (
	"context"
	"time"

	"github.com/woningspotters/woningspotters-api/internal/models"
)

func (s *Store) RecordSearch(ctx context.Context, h *models.SearchHistory) error {
	return s.db.WithContext(ctx).Create(h).Error
}

func (s *Store) AdminCounts(ctx context.Context, signupsSince time.Time) (*AdminCounts, error) {
	db := s.db.WithContext(ctx)
	counts := &AdminCounts{UsersByTier: map[models.Tier]int64{
		models.TierFree:  0,
		models.TierPro:   0,
		models.TierUltra: 0,
	}}

	if err := db.Model(&models.Profile{}).Count(&counts.TotalUsers).Error; err != nil {
		return nil, err
	}

	var tiers []struct {
		SubscriptionTier models.Tier
		Count            int64
	}
	if err := db.Model(&models.Profile{}).
		Select("subscription_tier, COUNT(*) AS count").
		Group("subscription_tier").
		Scan(&tiers).Error; err != nil {
		return nil, err
	}
	for _, t := range tiers {
		counts.UsersByTier[t.SubscriptionTier] = t.Count
	}

	if err := db.Model(&models.NewsletterSubscriber{}).
		Where("is_active = ?", true).
		Count(&counts.NewsletterSubscribers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionActive).
		Count(&counts.ActiveSubscriptions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Profile{}).
		Where("created_at >= ?", signupsSince).
		Count(&counts.RecentSignups).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Payment{}).
		Where("status = ?", "paid").
		Select("COALESCE(SUM(CAST(amount AS numeric)), 0)").
		Scan(&counts.TotalRevenue).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *Store) PublicCounts(ctx context.Context) (*PublicCounts, error) {
	db := s.db.WithContext(ctx)
	var counts PublicCounts
	if err := db.Model(&models.Profile{}).Count(&counts.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.SearchHistory{}).Count(&counts.Searches).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.NewsArticle{}).Count(&counts.News).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
