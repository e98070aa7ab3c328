package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

func favoriteReq(url string) *dto.FavoriteRequest {
	return &dto.FavoriteRequest{PropertyURL: url, PropertyData: json.RawMessage(`{"titel":"Woning"}`)}
}

func TestFavoritesRequirePaidTier(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewFavoriteService(mem, mem)
	id := addProfile(t, mem, models.TierFree)

	_, err := svc.Add(context.Background(), id, favoriteReq("https://funda.nl/1"))
	assert.ErrorIs(t, err, ErrUpgradeRequired)

	favs, err := svc.List(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestFavoritesAddDuplicateAndRemove(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewFavoriteService(mem, mem)
	id := addProfile(t, mem, models.TierPro)
	ctx := context.Background()

	fav, err := svc.Add(ctx, id, favoriteReq("https://funda.nl/1"))
	require.NoError(t, err)
	assert.Equal(t, id, fav.UserID)

	_, err = svc.Add(ctx, id, favoriteReq("https://funda.nl/1"))
	assert.ErrorIs(t, err, ErrAlreadyFavorited)

	other := addProfile(t, mem, models.TierUltra)
	_, err = svc.Add(ctx, other, favoriteReq("https://funda.nl/1"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, id, "https://funda.nl/1"))
	require.NoError(t, svc.Remove(ctx, id, "https://funda.nl/1"))

	mine, err := svc.List(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, mine)
	theirs, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestFavoritesValidation(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewFavoriteService(mem, mem)
	id := addProfile(t, mem, models.TierPro)

	_, err := svc.Add(context.Background(), id, &dto.FavoriteRequest{PropertyURL: "https://funda.nl/1"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Property URL and data are required", ve.Message)
}

func alertReq(name string) *dto.AlertRequest {
	return &dto.AlertRequest{Name: name, SearchCriteria: &models.SearchCriteria{Locatie: "Amsterdam", Type: "huur"}}
}

func TestAlertsRequirePaidTier(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewAlertService(mem, mem)
	id := addProfile(t, mem, models.TierFree)

	_, err := svc.List(context.Background(), id)
	assert.ErrorIs(t, err, ErrUpgradeRequired)
	_, err = svc.Create(context.Background(), id, alertReq("Amsterdam huur"))
	assert.ErrorIs(t, err, ErrUpgradeRequired)
}

func TestAlertsCapPerTier(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewAlertService(mem, mem)
	id := addProfile(t, mem, models.TierPro)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, id, alertReq("alert"))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, id, alertReq("one too many"))
	var le *AlertLimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Limit)
	assert.Equal(t, "Je kunt maximaal 3 alerts hebben met je Pro abonnement", le.Error())

	alerts, err := svc.List(ctx, id)
	require.NoError(t, err)
	assert.Len(t, alerts, 3)
}

func TestAlertsUltraMessage(t *testing.T) {
	err := &AlertLimitError{Limit: 10, Tier: models.TierUltra}
	assert.Equal(t, "Je kunt maximaal 10 alerts hebben met je Ultra abonnement", err.Error())
}

func TestAlertsForeignToggleIsNotFound(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewAlertService(mem, mem)
	owner := addProfile(t, mem, models.TierPro)
	intruder := addProfile(t, mem, models.TierPro)
	ctx := context.Background()

	alert, err := svc.Create(ctx, owner, alertReq("mine"))
	require.NoError(t, err)

	off := false
	err = svc.SetActive(ctx, intruder, &dto.AlertToggleRequest{AlertID: alert.ID, IsActive: &off})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, intruder, alert.ID))

	alerts, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].IsActive)

	require.NoError(t, svc.SetActive(ctx, owner, &dto.AlertToggleRequest{AlertID: alert.ID, IsActive: &off}))
	alerts, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.False(t, alerts[0].IsActive)
}

func TestAlertsValidation(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewAlertService(mem, mem)
	id := addProfile(t, mem, models.TierUltra)
	ctx := context.Background()

	_, err := svc.Create(ctx, id, &dto.AlertRequest{Name: "x"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Name and search criteria are required", ve.Message)

	err = svc.SetActive(ctx, id, &dto.AlertToggleRequest{AlertID: uuid.New()})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Alert ID and isActive status are required", ve.Message)
}
