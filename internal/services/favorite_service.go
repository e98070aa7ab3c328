package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"gorm.io/datatypes"
)

type FavoriteService struct {
	profiles  repository.ProfileRepository
	favorites repository.FavoriteRepository
}

func NewFavoriteService(profiles repository.ProfileRepository, favorites repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{profiles: profiles, favorites: favorites}
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	return s.favorites.ListFavorites(ctx, userID)
}

func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, req *dto.FavoriteRequest) (*models.Favorite, error) {
	url := strings.TrimSpace(req.PropertyURL)
	if url == "" || len(req.PropertyData) == 0 || string(req.PropertyData) == "null" {
		return nil, invalid("Property URL and data are required")
	}

	tier, err := tierOf(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	if !LimitsFor(tier).Favorites {
		return nil, ErrUpgradeRequired
	}

	fav := &models.Favorite{
		ID:           uuid.New(),
		UserID:       userID,
		PropertyURL:  url,
		PropertyData: datatypes.JSON(req.PropertyData),
	}
	if err := s.favorites.CreateFavorite(ctx, fav); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID uuid.UUID, propertyURL string) error {
	if strings.TrimSpace(propertyURL) == "" {
		return invalid("Property URL is required")
	}
	return s.favorites.DeleteFavorite(ctx, userID, propertyURL)
}

// tierOf returns the caller's tier. A missing profile counts as free.
func tierOf(ctx context.Context, profiles repository.ProfileRepository, userID uuid.UUID) (models.Tier, error) {
	p, err := profiles.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.TierFree, nil
	}
	if err != nil {
		return "", err
	}
	return p.SubscriptionTier, nil
}
