package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) ListAlerts(ctx context.Context, userID uuid.UUID) ([]models.SearchAlert, error) {
	var alerts []models.SearchAlert
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// CreateAlert locks the owner's profile row for the count and insert.
func (s *Store) CreateAlert(ctx context.Context, a *models.SearchAlert, limit int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&owner, "id = ?", a.UserID).Error; err != nil {
			return translate(err)
		}

		var count int64
		if err := tx.Model(&models.SearchAlert{}).Where("user_id = ?", a.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(limit) {
			return ErrLimitReached
		}
		return tx.Create(a).Error
	})
}

func (s *Store) SetAlertActive(ctx context.Context, userID, alertID uuid.UUID, active bool) error {
	res := s.db.WithContext(ctx).Model(&models.SearchAlert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAlert(ctx context.Context, userID, alertID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", alertID, userID).
		Delete(&models.SearchAlert{}).Error
}
