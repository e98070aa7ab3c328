package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/apify"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/metrics"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"gorm.io/datatypes"
)

// Scraper runs a listing search on the scraping platform.
type Scraper interface {
	Configured() bool
	Search(ctx context.Context, in apify.RunInput) ([]models.Listing, error)
}

type SearchService struct {
	quota   *QuotaService
	scraper Scraper
	history repository.SearchHistoryRepository
	logger  *slog.Logger
}

func NewSearchService(quota *QuotaService, scraper Scraper, history repository.SearchHistoryRepository, logger *slog.Logger) *SearchService {
	return &SearchService{quota: quota, scraper: scraper, history: history, logger: logger}
}

func (s *SearchService) Search(ctx context.Context, userID *uuid.UUID, criteria models.SearchCriteria) (*dto.SearchResponse, error) {
	criteria.Locatie = strings.TrimSpace(criteria.Locatie)
	if criteria.Locatie == "" {
		return nil, invalid("Locatie is verplicht")
	}

	q, err := s.quota.Check(ctx, userID)
	if err != nil {
		var qe *QuotaExceededError
		if errors.As(err, &qe) {
			metrics.RecordSearch("quota_exceeded")
		}
		return nil, err
	}

	var listings []models.Listing
	if !s.scraper.Configured() {
		s.logger.Info("no scraper token configured, returning sample listings", "location", criteria.Locatie)
		listings = apify.SampleListings(criteria.Locatie)
		metrics.RecordSearch("sample")
	} else {
		start := time.Now()
		listings, err = s.scraper.Search(ctx, apify.InputFromCriteria(criteria))
		metrics.ObserveScraper(time.Since(start))
		if err != nil {
			metrics.RecordSearch("failed")
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		metrics.RecordSearch("ok")
	}

	s.record(ctx, userID, criteria, len(listings))

	return &dto.SearchResponse{
		Success:      true,
		Data:         listings,
		TotalResults: len(listings),
		Quota:        q,
	}, nil
}

func (s *SearchService) record(ctx context.Context, userID *uuid.UUID, criteria models.SearchCriteria, results int) {
	h := &models.SearchHistory{
		ID:          uuid.New(),
		UserID:      userID,
		Location:    criteria.Locatie,
		Filters:     datatypes.NewJSONType(criteria),
		ResultCount: results,
	}
	if err := s.history.RecordSearch(ctx, h); err != nil {
		s.logger.Warn("failed to record search history", "location", criteria.Locatie, "error", err)
	}
}
