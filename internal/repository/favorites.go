package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

func (s *Store) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (s *Store) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	return translate(s.db.WithContext(ctx).Create(f).Error)
}

func (s *Store) DeleteFavorite(ctx context.Context, userID uuid.UUID, propertyURL string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND property_url = ?", userID, propertyURL).
		Delete(&models.Favorite{}).Error
}
