package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woningspotters/woningspotters-api/internal/config"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"github.com/woningspotters/woningspotters-api/internal/session"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret string, sub uuid.UUID, email string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub.String(),
		"email": email,
		"aud":   "authenticated",
		"exp":   time.Now().Add(ttl).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func whoAmI(c *fiber.Ctx) error {
	id := session.OptionalUserID(c)
	if id == nil {
		return c.JSON(fiber.Map{"user": ""})
	}
	return c.JSON(fiber.Map{"user": id.String(), "email": session.Email(c)})
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestJWTProtected(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	app.Get("/me", JWTProtected(cfg), whoAmI)
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID, "a@b.nl", time.Hour))
		status, body := do(t, app, req)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, userID.String(), body["user"])
		assert.Equal(t, "a@b.nl", body["email"])
	})

	t.Run("missing token", func(t *testing.T) {
		status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, true, body["error"])
		assert.Equal(t, "Not authenticated", body["message"])
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "another-secret-another-secret-12345", userID, "", time.Hour))
		status, _ := do(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("expired", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID, "", -time.Minute))
		status, _ := do(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestOptionalJWT(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	app.Get("/me", OptionalJWT(cfg), whoAmI)
	userID := uuid.New()

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", body["user"])

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID, "", time.Hour))
	status, body = do(t, app, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID.String(), body["user"])

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	status, body = do(t, app, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", body["user"])
}

func TestAdminRequired(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	listed := uuid.New()
	flagged := uuid.New()
	regular := uuid.New()

	repo := repository.NewMemory()
	ctx := context.Background()
	require.NoError(t, repo.CreateProfile(ctx, &models.Profile{ID: flagged, Email: "flag@x.nl", IsAdmin: true, SubscriptionTier: models.TierFree}))
	require.NoError(t, repo.CreateProfile(ctx, &models.Profile{ID: regular, Email: "user@x.nl", SubscriptionTier: models.TierFree}))

	cfg := &config.Config{
		JWTSecret:      testSecret,
		AdminUserIDs:   listed.String(),
		AdminEmails:    " Boss@WoningSpotters.nl ",
		AdminTokenHash: string(hash),
	}
	app := fiber.New()
	app.Get("/admin", OptionalJWT(cfg), AdminRequired(repo, cfg), func(c *fiber.Ctx) error {
		return c.JSON(dto.SuccessResponse{Success: true})
	})

	bearer := func(id uuid.UUID, email string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, id, email, time.Hour))
		return req
	}

	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"no credentials", httptest.NewRequest(http.MethodGet, "/admin", nil), http.StatusUnauthorized},
		{"listed id", bearer(listed, ""), http.StatusOK},
		{"listed email", bearer(uuid.New(), "boss@woningspotters.nl"), http.StatusOK},
		{"profile flag", bearer(flagged, "flag@x.nl"), http.StatusOK},
		{"regular user", bearer(regular, "user@x.nl"), http.StatusForbidden},
		{"unknown user", bearer(uuid.New(), "nobody@x.nl"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, app, tt.req)
			assert.Equal(t, tt.status, status)
		})
	}

	t.Run("admin token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Token", "letmein")
		status, _ := do(t, app, req)
		assert.Equal(t, http.StatusOK, status)

		req = httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Token", "guess")
		status, _ = do(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestStatusOf(t *testing.T) {
	app := fiber.New()
	var seen []int
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		seen = append(seen, statusOf(c, err))
		return err
	})
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "nope") })
	app.Get("/boom", func(c *fiber.Ctx) error { return assert.AnError })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
	}
	assert.Equal(t, []int{201, 400, 500}, seen)
}
