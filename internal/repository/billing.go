package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreatePendingSubscription(ctx context.Context, sub *models.Subscription, payment *models.Payment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Create(payment).Error)
	})
}

// RecordPaymentStatus upserts on the Mollie payment id.
func (s *Store) RecordPaymentStatus(ctx context.Context, p *models.Payment) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mollie_payment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "paid_at"}),
	}).Create(p).Error
}

func (s *Store) ActivateSubscription(ctx context.Context, sub *models.Subscription) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending models.Subscription
		err := tx.Where("user_id = ? AND status = ? AND plan = ?", sub.UserID, models.SubscriptionPending, sub.Plan).
			Order("created_at DESC").
			First(&pending).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub.Status = models.SubscriptionActive
			if err := tx.Create(sub).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&pending).Updates(map[string]interface{}{
				"status":                 models.SubscriptionActive,
				"mollie_subscription_id": sub.MollieSubscriptionID,
				"current_period_start":   sub.CurrentPeriodStart,
				"current_period_end":     sub.CurrentPeriodEnd,
			}).Error; err != nil {
				return err
			}
		}

		// Abandoned checkouts for other plans never become active.
		if err := tx.Where("user_id = ? AND status = ?", sub.UserID, models.SubscriptionPending).
			Delete(&models.Subscription{}).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Profile{}).
			Where("id = ?", sub.UserID).
			Update("subscription_tier", sub.Plan)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Store) RefreshSubscriptionPeriod(ctx context.Context, userID uuid.UUID, plan models.Tier, start time.Time, end *time.Time) error {
	updates := map[string]interface{}{"current_period_start": start}
	if end != nil {
		updates["current_period_end"] = *end
	}
	return s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND status = ? AND plan = ?", userID, models.SubscriptionActive, plan).
		Updates(updates).Error
}

func (s *Store) DeletePendingSubscriptions(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionPending).
		Delete(&models.Subscription{}).Error
}

func (s *Store) CancelSubscription(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
			Updates(map[string]interface{}{
				"status":      models.SubscriptionCanceled,
				"canceled_at": at,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).
			Where("id = ?", userID).
			Update("subscription_tier", models.TierFree).Error
	})
}

func (s *Store) GetActiveSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (s *Store) LatestOpenPayment(ctx context.Context, userID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "open").
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) GetPaymentByMollieID(ctx context.Context, molliePaymentID string) (*models.Payment, error) {
	var p models.Payment
	if err := s.db.WithContext(ctx).Where("mollie_payment_id = ?", molliePaymentID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
