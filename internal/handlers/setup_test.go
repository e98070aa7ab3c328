package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/apify"
	"github.com/woningspotters/woningspotters-api/internal/config"
	"github.com/woningspotters/woningspotters-api/internal/geocode"
	"github.com/woningspotters/woningspotters-api/internal/handlers"
	"github.com/woningspotters/woningspotters-api/internal/mail"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/mollie"
	"github.com/woningspotters/woningspotters-api/internal/news"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"github.com/woningspotters/woningspotters-api/internal/routes"
	"github.com/woningspotters/woningspotters-api/internal/services"
)

const jwtSecret = "handler-test-secret-handler-test-secret"

type fakeScraper struct{}

func (fakeScraper) Configured() bool { return true }

func (fakeScraper) Search(_ context.Context, in apify.RunInput) ([]models.Listing, error) {
	return []models.Listing{
		{ID: "1", Titel: "Grachtenpand", Plaats: in.Location, Prijs: 650000, URL: "https://funda.nl/1"},
		{ID: "2", Titel: "Bovenwoning", Plaats: in.Location, Prijs: 375000, URL: "https://funda.nl/2"},
	}, nil
}

type fakeGateway struct {
	mu       sync.Mutex
	payments map[string]*mollie.Payment
}

func (f *fakeGateway) CreateCustomer(_ context.Context, req mollie.CreateCustomerRequest) (*mollie.Customer, error) {
	return &mollie.Customer{ID: "cst_handler", Email: req.Email}, nil
}

func (f *fakeGateway) CreatePayment(_ context.Context, req mollie.CreatePaymentRequest) (*mollie.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	meta, _ := json.Marshal(req.Metadata)
	p := &mollie.Payment{
		ID:           "tr_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10],
		Status:       mollie.StatusOpen,
		Amount:       req.Amount,
		SequenceType: req.SequenceType,
		CustomerID:   req.CustomerID,
		RawMetadata:  meta,
	}
	p.Links.Checkout = &mollie.Link{Href: "https://www.mollie.com/checkout/" + p.ID}
	f.payments[p.ID] = p
	return p, nil
}

func (f *fakeGateway) GetPayment(_ context.Context, id string) (*mollie.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return nil, mollie.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeGateway) CreateSubscription(context.Context, string, mollie.CreateSubscriptionRequest) (*mollie.Subscription, error) {
	return &mollie.Subscription{ID: "sub_handler", Status: "active"}, nil
}

func (f *fakeGateway) CancelSubscription(context.Context, string, string) error { return nil }

func (f *fakeGateway) markPaid(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments[id].Status = mollie.StatusPaid
}

type fakeFetcher struct{}

func (fakeFetcher) Fetch(context.Context, news.Source) ([]news.Item, error) {
	return []news.Item{{
		Title:       "Huizenprijzen stijgen opnieuw",
		Link:        "https://nos.nl/artikel/1",
		Description: "De woningmarkt blijft krap, de huizenprijzen stijgen.",
		Published:   time.Date(2026, 3, 30, 8, 0, 0, 0, time.UTC),
	}}, nil
}

type fakeGeocoder struct{}

func (fakeGeocoder) Search(_ context.Context, q string) ([]geocode.Suggestion, error) {
	if len(q) < 3 {
		return []geocode.Suggestion{}, nil
	}
	return []geocode.Suggestion{{DisplayName: "Utrecht, Nederland", City: "Utrecht", Lat: "52.09", Lon: "5.12"}}, nil
}

type testEnv struct {
	app        *fiber.App
	repo       *repository.Memory
	mailer     *mail.MockProvider
	gateway    *fakeGateway
	newsletter *services.NewsletterService
	adminID    uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewMemory()
	mailer := mail.NewMockProvider(logger)
	gateway := &fakeGateway{payments: make(map[string]*mollie.Payment)}
	adminID := uuid.New()

	cfg := &config.Config{
		JWTSecret:    jwtSecret,
		AdminUserIDs: adminID.String(),
		AppURL:       "https://woningspotters.nl",
		SiteURL:      "https://woningspotters.nl",
		CORSOrigins:  "*",
	}

	quota := services.NewQuotaService(repo, logger)
	accounts := services.NewAccountService(repo, repo, repo, quota, logger)
	newsletter := services.NewNewsletterService(repo, mailer, services.NewsletterConfig{
		SiteURL:           cfg.SiteURL,
		From:              "nieuws@woningspotters.nl",
		APIKey:            "newsletter-key",
		UnsubscribeSecret: "unsubscribe-secret",
	}, logger)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Setup(app, cfg, repo,
		handlers.NewHealthHandler(func(context.Context) error { return nil }),
		handlers.NewSearchHandler(services.NewSearchService(quota, fakeScraper{}, repo, logger), accounts, services.NewExportService(repo)),
		handlers.NewFavoriteHandler(services.NewFavoriteService(repo, repo)),
		handlers.NewAlertHandler(services.NewAlertService(repo, repo)),
		handlers.NewBillingHandler(services.NewBillingService(repo, repo, gateway, services.BillingConfig{AppURL: cfg.AppURL}, logger), accounts),
		handlers.NewNewsHandler(services.NewNewsService(repo, fakeFetcher{}, []news.Source{{Name: "NOS", URL: "https://feeds.nos.nl/x"}}, logger)),
		handlers.NewNewsletterHandler(newsletter, cfg.SiteURL),
		handlers.NewContactHandler(services.NewContactService(mailer, services.ContactConfig{
			SiteURL:      cfg.SiteURL,
			From:         "noreply@woningspotters.nl",
			ContactEmail: "info@woningspotters.nl",
		}, logger)),
		handlers.NewAdminHandler(services.NewAdminService(repo, repo)),
		handlers.NewAccountHandler(accounts, fakeGeocoder{}),
	)

	return &testEnv{app: app, repo: repo, mailer: mailer, gateway: gateway, newsletter: newsletter, adminID: adminID}
}

func (e *testEnv) addUser(t *testing.T, tier models.Tier) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, e.repo.CreateProfile(context.Background(), &models.Profile{
		ID:               id,
		Email:            id.String()[:8] + "@example.nl",
		SubscriptionTier: tier,
	}))
	return id
}

func (e *testEnv) tier(t *testing.T, id uuid.UUID) models.Tier {
	t.Helper()
	p, err := e.repo.GetProfile(context.Background(), id)
	require.NoError(t, err)
	return p.SubscriptionTier
}

func bearer(t *testing.T, id uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   id.String(),
		"email": id.String()[:8] + "@example.nl",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return "Bearer " + s
}

type response struct {
	status int
	header http.Header
	raw    []byte
	body   map[string]any
}

// call sends a JSON request. userID may be uuid.Nil for anonymous calls.
func (e *testEnv) call(t *testing.T, method, path string, userID uuid.UUID, body any) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != uuid.Nil {
		req.Header.Set("Authorization", bearer(t, userID))
	}
	return e.do(t, req)
}

func (e *testEnv) do(t *testing.T, req *http.Request) response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	r := response{status: resp.StatusCode, header: resp.Header, raw: raw}
	_ = json.Unmarshal(raw, &r.body)
	return r
}
