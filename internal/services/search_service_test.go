package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/apify"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

type fakeScraper struct {
	configured bool
	listings   []models.Listing
	err        error
	inputs     []apify.RunInput
}

func (f *fakeScraper) Configured() bool { return f.configured }

func (f *fakeScraper) Search(_ context.Context, in apify.RunInput) ([]models.Listing, error) {
	f.inputs = append(f.inputs, in)
	return f.listings, f.err
}

func newSearchService(mem *repository.Memory, scraper Scraper) *SearchService {
	return NewSearchService(NewQuotaService(mem, testLogger()), scraper, mem, testLogger())
}

func TestSearchRequiresLocation(t *testing.T) {
	svc := newSearchService(repository.NewMemory(), &fakeScraper{})

	_, err := svc.Search(context.Background(), nil, models.SearchCriteria{Locatie: "  "})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Locatie is verplicht", ve.Message)
}

func TestSearchReturnsSampleWithoutToken(t *testing.T) {
	mem := repository.NewMemory()
	svc := newSearchService(mem, &fakeScraper{configured: false})

	resp, err := svc.Search(context.Background(), nil, models.SearchCriteria{Locatie: "Leiden"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, len(resp.Data), resp.TotalResults)
	assert.Equal(t, "Leiden", resp.Data[0].Plaats)

	counts, err := mem.PublicCounts(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Searches)
}

func TestSearchCallsScraperWithMappedInput(t *testing.T) {
	mem := repository.NewMemory()
	scraper := &fakeScraper{configured: true, listings: []models.Listing{{ID: "a", Titel: "Woning"}}}
	svc := newSearchService(mem, scraper)
	id := addProfile(t, mem, models.TierPro)

	resp, err := svc.Search(context.Background(), &id, models.SearchCriteria{
		Locatie: "Utrecht", Type: "koop", MinPrijs: "200000", Kamers: "3+", WoningType: "appartement",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalResults)
	assert.Equal(t, 1, resp.Quota.Used)
	assert.Equal(t, 30, resp.Quota.Limit)

	require.Len(t, scraper.inputs, 1)
	assert.Equal(t, "Utrecht", scraper.inputs[0].Location)
	assert.Equal(t, 3, scraper.inputs[0].MinRooms)
}

func TestSearchScraperFailureIsUpstream(t *testing.T) {
	svc := newSearchService(repository.NewMemory(), &fakeScraper{configured: true, err: errors.New("actor timed out")})

	_, err := svc.Search(context.Background(), nil, models.SearchCriteria{Locatie: "Delft"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSearchRejectedWhenQuotaUsed(t *testing.T) {
	mem := repository.NewMemory()
	scraper := &fakeScraper{configured: true}
	svc := newSearchService(mem, scraper)
	id := addProfile(t, mem, models.TierFree)

	for i := 0; i < 5; i++ {
		_, err := svc.Search(context.Background(), &id, models.SearchCriteria{Locatie: "Delft"})
		require.NoError(t, err)
	}
	_, err := svc.Search(context.Background(), &id, models.SearchCriteria{Locatie: "Delft"})
	var qe *QuotaExceededError
	require.ErrorAs(t, err, &qe)
	assert.Len(t, scraper.inputs, 5)
}
