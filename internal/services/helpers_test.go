package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func addProfile(t *testing.T, mem *repository.Memory, tier models.Tier) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, mem.CreateProfile(context.Background(), &models.Profile{
		ID:               id,
		Email:            id.String()[:8] + "@example.nl",
		SubscriptionTier: tier,
	}))
	return id
}

func tierOfUser(t *testing.T, mem *repository.Memory, id uuid.UUID) models.Tier {
	t.Helper()
	p, err := mem.GetProfile(context.Background(), id)
	require.NoError(t, err)
	return p.SubscriptionTier
}
