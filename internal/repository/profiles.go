package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

const consumeSearchSQL = `UPDATE profiles
SET searches_today = CASE WHEN last_search_date = CAST(? AS date) THEN searches_today + 1 ELSE 1 END,
	last_search_date = CAST(? AS date),
	updated_at = ?
WHERE id = ? AND (last_search_date IS DISTINCT FROM CAST(? AS date) OR searches_today < ?)`

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *models.Profile) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

// ConsumeSearch is a single conditional UPDATE so concurrent searches cannot
// both take the last slot of the day.
func (s *Store) ConsumeSearch(ctx context.Context, id uuid.UUID, day time.Time, limit int) (bool, error) {
	d := day.Format(time.DateOnly)
	res := s.db.WithContext(ctx).Exec(consumeSearchSQL, d, d, time.Now().UTC(), id, d, limit)
	if res.Error != nil {
		return false, fmt.Errorf("consume search: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) SetMollieCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	res := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", id).
		Update("mollie_customer_id", customerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetTier(ctx context.Context, id uuid.UUID, tier models.Tier) error {
	res := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", id).
		Update("subscription_tier", tier)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListProfiles(ctx context.Context, search string, limit, offset int) ([]models.Profile, int64, error) {
	var profiles []models.Profile
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Profile{})
	if search != "" {
		query = query.Where("email ILIKE ?", "%"+search+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
