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

type AlertService struct {
	profiles repository.ProfileRepository
	alerts   repository.AlertRepository
}

func NewAlertService(profiles repository.ProfileRepository, alerts repository.AlertRepository) *AlertService {
	return &AlertService{profiles: profiles, alerts: alerts}
}

func (s *AlertService) List(ctx context.Context, userID uuid.UUID) ([]models.SearchAlert, error) {
	if _, err := s.requireAlerts(ctx, userID); err != nil {
		return nil, err
	}
	return s.alerts.ListAlerts(ctx, userID)
}

func (s *AlertService) Create(ctx context.Context, userID uuid.UUID, req *dto.AlertRequest) (*models.SearchAlert, error) {
	tier, err := s.requireAlerts(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.SearchCriteria == nil {
		return nil, invalid("Name and search criteria are required")
	}

	alert := &models.SearchAlert{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		SearchCriteria: datatypes.NewJSONType(*req.SearchCriteria),
		IsActive:       true,
	}
	limit := LimitsFor(tier).MaxAlerts
	if err := s.alerts.CreateAlert(ctx, alert, limit); err != nil {
		if errors.Is(err, repository.ErrLimitReached) {
			return nil, &AlertLimitError{Limit: limit, Tier: tier}
		}
		return nil, err
	}
	return alert, nil
}

// SetActive toggles one of the caller's alerts. Alerts owned by someone else
// are reported as not found.
func (s *AlertService) SetActive(ctx context.Context, userID uuid.UUID, req *dto.AlertToggleRequest) error {
	if req.AlertID == uuid.Nil || req.IsActive == nil {
		return invalid("Alert ID and isActive status are required")
	}
	return s.alerts.SetAlertActive(ctx, userID, req.AlertID, *req.IsActive)
}

func (s *AlertService) Delete(ctx context.Context, userID, alertID uuid.UUID) error {
	if alertID == uuid.Nil {
		return invalid("Alert ID is required")
	}
	return s.alerts.DeleteAlert(ctx, userID, alertID)
}

func (s *AlertService) requireAlerts(ctx context.Context, userID uuid.UUID) (models.Tier, error) {
	tier, err := tierOf(ctx, s.profiles, userID)
	if err != nil {
		return "", err
	}
	if !LimitsFor(tier).Alerts {
		return "", ErrUpgradeRequired
	}
	return tier, nil
}
