package repository

import (
	"context"

	"github.com/woningspotters/woningspotters-api/internal/models"
)

func (s *Store) GetSubscriber(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	if err := s.db.WithContext(ctx).First(&sub, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (s *Store) CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error {
	return translate(s.db.WithContext(ctx).Create(sub).Error)
}

func (s *Store) SetSubscriberActive(ctx context.Context, email string, active bool) error {
	res := s.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("email = ?", email).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ActiveSubscriberEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := s.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("is_active = ?", true).
		Order("subscribed_at ASC").
		Pluck("email", &emails).Error
	return emails, err
}

func (s *Store) ListSubscribers(ctx context.Context, limit, offset int) ([]models.NewsletterSubscriber, int64, error) {
	var subs []models.NewsletterSubscriber
	var total int64

	query := s.db.WithContext(ctx).Model(&models.NewsletterSubscriber{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("subscribed_at DESC").Limit(limit).Offset(offset).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
