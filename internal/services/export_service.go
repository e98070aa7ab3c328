package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const utf8BOM = "\ufeff"

var exportHeader = []string{
	"Titel", "Adres", "Postcode", "Plaats", "Prijs", "Kamers", "Oppervlakte (m2)",
	"Type", "Bouwjaar", "Energielabel", "Makelaar", "URL",
}

type Export struct {
	Filename string
	Content  []byte
}

type ExportService struct {
	profiles repository.ProfileRepository
	printer  *message.Printer
	now      func() time.Time
}

func NewExportService(profiles repository.ProfileRepository) *ExportService {
	return &ExportService{
		profiles: profiles,
		printer:  message.NewPrinter(language.Dutch),
		now:      time.Now,
	}
}

// Export renders listings as a BOM-prefixed CSV. Format "excel" only changes
// the file extension.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID, listings []models.Listing, format string) (*Export, error) {
	tier, err := tierOf(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	if !LimitsFor(tier).Export {
		return nil, ErrUpgradeRequired
	}
	if len(listings) == 0 {
		return nil, invalid("Geen zoekresultaten om te exporteren")
	}

	content, err := s.render(listings)
	if err != nil {
		return nil, err
	}

	ext := "csv"
	if format == "excel" {
		ext = "xls"
	}
	return &Export{
		Filename: fmt.Sprintf("woningen-export-%s.%s", s.now().UTC().Format(time.DateOnly), ext),
		Content:  content,
	}, nil
}

func (s *ExportService) render(listings []models.Listing) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, l := range listings {
		row := []string{
			l.Titel,
			l.Adres,
			l.Postcode,
			l.Plaats,
			s.formatPrice(l.Prijs),
			optionalInt(l.Kamers),
			optionalInt(l.Oppervlakte),
			l.Type,
			optionalInt(l.Bouwjaar),
			l.Energielabel,
			l.Makelaar,
			l.URL,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) formatPrice(price int) string {
	return s.printer.Sprintf("EUR %d", price)
}

func optionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
