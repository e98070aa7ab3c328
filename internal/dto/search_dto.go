package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

type QuotaResponse struct {
	Tier      models.Tier `json:"tier"`
	Used      int         `json:"used"`
	Limit     int         `json:"limit"`
	Remaining int         `json:"remaining"`
}

type SearchResponse struct {
	Success      bool             `json:"success"`
	Data         []models.Listing `json:"data"`
	TotalResults int              `json:"totalResults"`
	Quota        *QuotaResponse   `json:"quota,omitempty"`
}

type FavoriteRequest struct {
	PropertyURL  string          `json:"propertyUrl"`
	PropertyData json.RawMessage `json:"propertyData"`
}

type AlertRequest struct {
	Name           string                 `json:"name"`
	SearchCriteria *models.SearchCriteria `json:"searchCriteria"`
}

type AlertToggleRequest struct {
	AlertID  uuid.UUID `json:"alertId"`
	IsActive *bool     `json:"isActive"`
}

type AlertDeleteRequest struct {
	AlertID uuid.UUID `json:"alertId"`
}

type ExportRequest struct {
	Results []models.Listing `json:"results"`
	Format  string           `json:"format"`
}
