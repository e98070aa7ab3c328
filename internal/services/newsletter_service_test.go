package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/mail"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

type flakyMailer struct {
	mu     sync.Mutex
	fail   map[string]bool
	sentTo []string
}

func (f *flakyMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[msg.To] {
		return errors.New("mailbox unavailable")
	}
	f.sentTo = append(f.sentTo, msg.To)
	return nil
}

func newNewsletter(mem *repository.Memory, mailer mail.Provider) *NewsletterService {
	return NewNewsletterService(mem, mailer, NewsletterConfig{
		SiteURL:           "https://woningspotters.nl",
		From:              "WoningSpotters <nieuws@woningspotters.nl>",
		APIKey:            "send-key",
		UnsubscribeSecret: "unsubscribe-secret",
	}, testLogger())
}

func TestSubscribeFlow(t *testing.T) {
	mem := repository.NewMemory()
	mailer := mail.NewMockProvider(testLogger())
	svc := newNewsletter(mem, mailer)
	ctx := context.Background()

	var ve *ValidationError
	require.ErrorAs(t, svc.Subscribe(ctx, "not-an-email"), &ve)
	assert.Equal(t, "Ongeldig e-mailadres", ve.Message)

	require.NoError(t, svc.Subscribe(ctx, " Jan@Example.nl "))
	assert.ErrorIs(t, svc.Subscribe(ctx, "jan@example.nl"), ErrAlreadySubscribed)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "jan@example.nl", sent[0].To)
	assert.Equal(t, mail.WelcomeSubject, sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "/api/newsletter/unsubscribe?token=")

	require.NoError(t, mem.SetSubscriberActive(ctx, "jan@example.nl", false))
	require.NoError(t, svc.Subscribe(ctx, "jan@example.nl"))
	sub, err := mem.GetSubscriber(ctx, "jan@example.nl")
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
}

func TestUnsubscribeToken(t *testing.T) {
	mem := repository.NewMemory()
	svc := newNewsletter(mem, mail.NewMockProvider(testLogger()))
	ctx := context.Background()
	require.NoError(t, svc.Subscribe(ctx, "piet@example.nl"))

	link, err := svc.UnsubscribeURL("piet@example.nl")
	require.NoError(t, err)
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	token := parsed.Query().Get("token")

	require.NoError(t, svc.Unsubscribe(ctx, token))
	sub, err := mem.GetSubscriber(ctx, "piet@example.nl")
	require.NoError(t, err)
	assert.False(t, sub.IsActive)

	assert.ErrorIs(t, svc.Unsubscribe(ctx, ""), ErrInvalidToken)
	assert.ErrorIs(t, svc.Unsubscribe(ctx, token+"x"), ErrInvalidToken)

	other := newNewsletter(mem, mail.NewMockProvider(testLogger()))
	other.cfg.UnsubscribeSecret = "different"
	forged, err := other.UnsubscribeToken("piet@example.nl")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Unsubscribe(ctx, forged), ErrInvalidToken)
}

func TestUnsubscribeTokenExpires(t *testing.T) {
	mem := repository.NewMemory()
	svc := newNewsletter(mem, mail.NewMockProvider(testLogger()))
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, err := svc.UnsubscribeToken("old@example.nl")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * unsubscribeTTL) }
	assert.ErrorIs(t, svc.Unsubscribe(context.Background(), token), ErrInvalidToken)
}

func TestSendCountsDeliveredMail(t *testing.T) {
	mem := repository.NewMemory()
	ctx := context.Background()
	seed := newNewsletter(mem, mail.NewMockProvider(testLogger()))
	var emails []string
	for i := 0; i < 120; i++ {
		e := fmt.Sprintf("lezer%d@example.nl", i)
		require.NoError(t, seed.Subscribe(ctx, e))
		emails = append(emails, e)
	}
	mailer := &flakyMailer{fail: map[string]bool{emails[0]: true}}
	svc := newNewsletter(mem, mailer)

	assert.ErrorIs(t, svc.Authorize("wrong"), ErrUnauthorized)
	require.NoError(t, svc.Authorize("send-key"))

	_, err := svc.Send(ctx, &dto.SendNewsletterRequest{Subject: "Weekoverzicht"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	resp, err := svc.Send(ctx, &dto.SendNewsletterRequest{
		Subject:  "Weekoverzicht",
		Articles: []mail.Article{{Title: "Rente daalt", Excerpt: "x", Category: "Hypotheek", URL: "https://woningspotters.nl/nieuws/1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, len(emails), resp.Total)
	assert.Equal(t, len(emails)-1, resp.Sent)
	assert.Len(t, mailer.sentTo, len(emails)-1)
}

func TestSendWithoutSubscribers(t *testing.T) {
	svc := newNewsletter(repository.NewMemory(), mail.NewMockProvider(testLogger()))

	resp, err := svc.Send(context.Background(), &dto.SendNewsletterRequest{
		Subject:  "Leeg",
		Articles: []mail.Article{{Title: "a"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Sent)
	assert.Equal(t, "No active subscribers", resp.Message)
}

func TestAuthorizeWithoutKeyConfigured(t *testing.T) {
	svc := NewNewsletterService(repository.NewMemory(), mail.NewMockProvider(testLogger()), NewsletterConfig{}, testLogger())
	assert.ErrorIs(t, svc.Authorize(""), ErrUnauthorized)
}
