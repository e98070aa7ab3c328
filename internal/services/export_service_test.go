package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

func TestExportIsUltraOnly(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewExportService(mem)
	id := addProfile(t, mem, models.TierPro)

	_, err := svc.Export(context.Background(), id, []models.Listing{{Titel: "x"}}, "csv")
	assert.ErrorIs(t, err, ErrUpgradeRequired)
}

func TestExportRequiresResults(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewExportService(mem)
	id := addProfile(t, mem, models.TierUltra)

	_, err := svc.Export(context.Background(), id, nil, "csv")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Geen zoekresultaten om te exporteren", ve.Message)
}

func TestExportCSV(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewExportService(mem)
	svc.now = func() time.Time { return time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC) }
	id := addProfile(t, mem, models.TierUltra)

	listings := []models.Listing{{
		Titel:        `Ruim "herenhuis", centrum`,
		Adres:        "Keizersgracht 1",
		Postcode:     "1015 CJ",
		Plaats:       "Amsterdam",
		Prijs:        425000,
		Kamers:       4,
		Oppervlakte:  120,
		Type:         "Herenhuis",
		Bouwjaar:     1890,
		Energielabel: "C",
		Makelaar:     "Makelaar & Co",
		URL:          "https://funda.nl/1",
	}}

	out, err := svc.Export(context.Background(), id, listings, "csv")
	require.NoError(t, err)
	assert.Equal(t, "woningen-export-2026-06-15.csv", out.Filename)

	content := string(out.Content)
	require.True(t, strings.HasPrefix(content, "\ufeff"))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(content, "\ufeff"), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Titel,Adres,Postcode,Plaats,Prijs,Kamers,Oppervlakte (m2),Type,Bouwjaar,Energielabel,Makelaar,URL", lines[0])
	assert.Equal(t, `"Ruim ""herenhuis"", centrum",Keizersgracht 1,1015 CJ,Amsterdam,EUR 425.000,4,120,Herenhuis,1890,C,Makelaar & Co,https://funda.nl/1`, lines[1])

	out, err = svc.Export(context.Background(), id, listings, "excel")
	require.NoError(t, err)
	assert.Equal(t, "woningen-export-2026-06-15.xls", out.Filename)
}
