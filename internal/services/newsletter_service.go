package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/mail"
	"github.com/woningspotters/woningspotters-api/internal/metrics"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	sendBatchSize       = 50
	unsubscribeAudience = "newsletter-unsubscribe"
	unsubscribeTTL      = 365 * 24 * time.Hour
)

type NewsletterConfig struct {
	SiteURL           string
	From              string
	APIKey            string
	UnsubscribeSecret string
}

type NewsletterService struct {
	repo   repository.NewsletterRepository
	mailer mail.Provider
	cfg    NewsletterConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewNewsletterService(repo repository.NewsletterRepository, mailer mail.Provider, cfg NewsletterConfig, logger *slog.Logger) *NewsletterService {
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	return &NewsletterService{repo: repo, mailer: mailer, cfg: cfg, logger: logger, now: time.Now}
}

// Subscribe adds or reactivates email and sends the welcome mail.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return invalid("Ongeldig e-mailadres")
	}

	existing, err := s.repo.GetSubscriber(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return ErrAlreadySubscribed
	case err == nil:
		if err := s.repo.SetSubscriberActive(ctx, email, true); err != nil {
			return err
		}
	case errors.Is(err, repository.ErrNotFound):
		sub := &models.NewsletterSubscriber{
			ID:           uuid.New(),
			Email:        email,
			IsActive:     true,
			SubscribedAt: s.now().UTC(),
		}
		if err := s.repo.CreateSubscriber(ctx, sub); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadySubscribed
			}
			return err
		}
	default:
		return err
	}

	unsubscribeURL, err := s.UnsubscribeURL(email)
	if err != nil {
		return err
	}
	err = s.mailer.Send(ctx, mail.Message{
		From:    s.cfg.From,
		To:      email,
		Subject: mail.WelcomeSubject,
		HTML:    mail.WelcomeEmail(s.cfg.SiteURL, unsubscribeURL),
	})
	metrics.RecordEmail("welcome", err)
	if err != nil {
		s.logger.Error("failed to send welcome email", "error", err)
	}
	return nil
}

// UnsubscribeToken signs email so unsubscribe links cannot be forged for other addresses.
func (s *NewsletterService) UnsubscribeToken(email string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   normalizeEmail(email),
		Audience:  jwt.ClaimStrings{unsubscribeAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(unsubscribeTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.UnsubscribeSecret))
	if err != nil {
		return "", fmt.Errorf("sign unsubscribe token: %w", err)
	}
	return signed, nil
}

func (s *NewsletterService) UnsubscribeURL(email string) (string, error) {
	token, err := s.UnsubscribeToken(email)
	if err != nil {
		return "", err
	}
	return s.cfg.SiteURL + "/api/newsletter/unsubscribe?token=" + url.QueryEscape(token), nil
}

// Unsubscribe deactivates the address named by token.
func (s *NewsletterService) Unsubscribe(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UnsubscribeSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(unsubscribeAudience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return ErrInvalidToken
	}
	err = s.repo.SetSubscriberActive(ctx, claims.Subject, false)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// Authorize checks the bearer key that protects Send.
func (s *NewsletterService) Authorize(key string) error {
	if s.cfg.APIKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Send mails the digest to every active subscriber, 50 at a time. Failed
// recipients are counted out of Sent but do not stop the run.
func (s *NewsletterService) Send(ctx context.Context, req *dto.SendNewsletterRequest) (*dto.SendNewsletterResponse, error) {
	if strings.TrimSpace(req.Subject) == "" || len(req.Articles) == 0 {
		return nil, invalid("Subject and articles are required")
	}

	emails, err := s.repo.ActiveSubscriberEmails(ctx)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return &dto.SendNewsletterResponse{Sent: 0, Total: 0, Message: "No active subscribers"}, nil
	}

	var sent atomic.Int64
	for start := 0; start < len(emails); start += sendBatchSize {
		end := min(start+sendBatchSize, len(emails))
		g, gctx := errgroup.WithContext(ctx)
		for _, email := range emails[start:end] {
			g.Go(func() error {
				unsubscribeURL, err := s.UnsubscribeURL(email)
				if err != nil {
					return err
				}
				err = s.mailer.Send(gctx, mail.Message{
					From:    s.cfg.From,
					To:      email,
					Subject: req.Subject,
					HTML:    mail.NewsletterEmail(s.cfg.SiteURL, req.Subject, req.Articles, unsubscribeURL),
				})
				metrics.RecordEmail("newsletter", err)
				if err != nil {
					s.logger.Error("failed to send newsletter", "recipient", email, "error", err)
					return nil
				}
				sent.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	s.logger.Info("newsletter sent", "sent", sent.Load(), "total", len(emails))
	return &dto.SendNewsletterResponse{Sent: int(sent.Load()), Total: len(emails)}, nil
}

func (s *NewsletterService) List(ctx context.Context, page, limit int) ([]models.NewsletterSubscriber, int64, error) {
	subs, total, err := s.repo.ListSubscribers(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	if subs == nil {
		subs = []models.NewsletterSubscriber{}
	}
	return subs, total, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
