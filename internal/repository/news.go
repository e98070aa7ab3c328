package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"gorm.io/gorm"
)

func (s *Store) ExistingSourceURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(urls))
	if len(urls) == 0 {
		return existing, nil
	}
	var found []string
	if err := s.db.WithContext(ctx).Model(&models.NewsArticle{}).
		Where("source_url IN ?", urls).
		Pluck("source_url", &found).Error; err != nil {
		return nil, err
	}
	for _, u := range found {
		existing[u] = true
	}
	return existing, nil
}

func (s *Store) CreateArticle(ctx context.Context, a *models.NewsArticle) error {
	return translate(s.db.WithContext(ctx).Create(a).Error)
}

func (s *Store) FeatureNewest(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.NewsArticle{}).
			Where("is_featured = ?", true).
			Update("is_featured", false).Error; err != nil {
			return err
		}

		var newest models.NewsArticle
		err := tx.Select("id").Order("published_at DESC").First(&newest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.NewsArticle{}).
			Where("id = ?", newest.ID).
			Update("is_featured", true).Error
	})
}

func (s *Store) ListArticles(ctx context.Context, category string, limit, offset int) ([]models.NewsArticle, int64, error) {
	var articles []models.NewsArticle
	var total int64

	query := s.db.WithContext(ctx).Model(&models.NewsArticle{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("published_at DESC").Limit(limit).Offset(offset).Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.NewsArticle{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
