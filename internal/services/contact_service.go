package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/mail"
	"github.com/woningspotters/woningspotters-api/internal/metrics"
)

var contactSubjects = map[string]string{
	"vraag":        "Algemene vraag",
	"feedback":     "Feedback",
	"bug":          "Bug of probleem",
	"account":      "Account & abonnement",
	"samenwerking": "Samenwerking / Zakelijk",
	"anders":       "Anders",
}

type ContactConfig struct {
	SiteURL      string
	From         string
	ContactEmail string
}

type ContactService struct {
	mailer mail.Provider
	cfg    ContactConfig
	logger *slog.Logger
}

func NewContactService(mailer mail.Provider, cfg ContactConfig, logger *slog.Logger) *ContactService {
	return &ContactService{mailer: mailer, cfg: cfg, logger: logger}
}

// Submit forwards the form to the support inbox and confirms receipt to the sender.
func (s *ContactService) Submit(ctx context.Context, req *dto.ContactRequest) error {
	c := mail.Contact{
		Name:    strings.TrimSpace(req.Naam),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Onderwerp),
		Message: strings.TrimSpace(req.Bericht),
	}
	if c.Name == "" || c.Email == "" || c.Subject == "" || c.Message == "" {
		return invalid("Alle velden zijn verplicht")
	}
	if !strings.Contains(c.Email, "@") {
		return invalid("Ongeldig e-mailadres")
	}
	if text, ok := contactSubjects[c.Subject]; ok {
		c.Subject = text
	}

	err := s.mailer.Send(ctx, mail.Message{
		From:    s.cfg.From,
		To:      s.cfg.ContactEmail,
		ReplyTo: c.Email,
		Subject: fmt.Sprintf("[Contact] %s - %s", c.Subject, c.Name),
		HTML:    mail.ContactNotification(s.cfg.SiteURL, c),
	})
	metrics.RecordEmail("contact", err)
	if err != nil {
		return fmt.Errorf("%w: contact notification: %v", ErrUpstream, err)
	}

	err = s.mailer.Send(ctx, mail.Message{
		From:    s.cfg.From,
		To:      c.Email,
		Subject: "We hebben je bericht ontvangen - WoningSpotters",
		HTML:    mail.ContactConfirmation(s.cfg.SiteURL, c),
	})
	metrics.RecordEmail("contact_confirmation", err)
	if err != nil {
		s.logger.Error("failed to send contact confirmation", "error", err)
	}
	return nil
}
