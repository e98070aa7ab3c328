package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/news"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

type fakeFetcher struct {
	items map[string][]news.Item
}

func (f *fakeFetcher) Fetch(_ context.Context, src news.Source) ([]news.Item, error) {
	items, ok := f.items[src.URL]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return items, nil
}

var refreshSources = []news.Source{
	{Name: "Economie", URL: "https://feeds.example/economie", FilterForHousing: true},
	{Name: "Binnenland", URL: "https://feeds.example/binnenland", FilterForHousing: true},
	{Name: "Offline", URL: "https://feeds.example/offline", FilterForHousing: true},
}

func housingItems() map[string][]news.Item {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	return map[string][]news.Item{
		"https://feeds.example/economie": {
			{Title: "Hypotheekrente daalt verder", Description: "De hypotheekrente voor een woning zakt opnieuw.", Link: "https://nos.nl/1", Published: base},
			{Title: "Voetbaluitslagen", Description: "Ajax wint van PSV.", Link: "https://nos.nl/2", Published: base.Add(time.Hour)},
		},
		"https://feeds.example/binnenland": {
			{Title: "Woningmarkt krap in Utrecht", Description: "Huizenprijzen stijgen in de regio.", Link: "https://nos.nl/3", Published: base.Add(2 * time.Hour)},
			{Title: "Hypotheekrente daalt verder", Description: "De hypotheekrente voor een woning zakt opnieuw.", Link: "https://nos.nl/1", Published: base},
		},
	}
}

func TestRefreshStoresHousingNewsAndFeaturesNewest(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewNewsService(mem, &fakeFetcher{items: housingItems()}, refreshSources, testLogger())
	ctx := context.Background()

	res, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 0, res.Skipped)

	articles, total, err := svc.List(ctx, "", 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Woningmarkt krap in Utrecht", articles[0].Title)
	assert.True(t, articles[0].IsFeatured)
	assert.False(t, articles[1].IsFeatured)
	assert.Equal(t, models.CategoryHypotheek, articles[1].Category)

	res, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 2, res.Skipped)

	featured := 0
	articles, _, err = svc.List(ctx, "Alle", 50, 0)
	require.NoError(t, err)
	for _, a := range articles {
		if a.IsFeatured {
			featured++
		}
	}
	assert.Equal(t, 1, featured)
}

func TestRefreshWithNoItems(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewNewsService(mem, &fakeFetcher{}, refreshSources, testLogger())

	res, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &RefreshResult{}, res)
}

func TestToArticleDefaults(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	long := make([]rune, 600)
	for i := range long {
		long[i] = 'é'
	}

	a := toArticle(news.Item{Title: "Nieuwbouw in Almere", Link: "https://x"}, now)
	assert.Equal(t, "Nieuwbouw in Almere", a.Summary)
	assert.Equal(t, now, a.PublishedAt)
	assert.Equal(t, models.CategoryNieuwbouw, a.Category)

	a = toArticle(news.Item{Title: "t", Description: string(long), Link: "https://y"}, now)
	assert.Len(t, []rune(a.Summary), 500)
}

func TestCreateArticlesValidatesEach(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewNewsService(mem, &fakeFetcher{}, nil, testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, []dto.ArticleInput{
		{Title: "Ok", Summary: "Ok", Category: "Tips"},
		{Title: "Missing category", Summary: "x"},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	created, err := svc.Create(ctx, []dto.ArticleInput{{Title: "Ok", Summary: "Ok", Category: "Tips"}})
	require.NoError(t, err)
	require.Len(t, created, 1)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, created[0].ID), ErrNotFound)
}
