package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Session verification (Supabase auth)
	JWTSecret string
	JWKSURL   string

	// Admin
	AdminEmails    string
	AdminUserIDs   string
	AdminTokenHash string

	// Mollie
	MollieAPIKey string
	MollieAPIURL string
	AppURL       string

	// Apify scraper
	ApifyToken   string
	ApifyActorID string
	ApifyURL     string
	ApifyTimeout time.Duration

	// Mail
	ResendAPIKey      string
	ResendURL         string
	MailFromNews      string
	MailFromContact   string
	ContactEmail      string
	SiteURL           string
	NewsletterAPIKey  string
	UnsubscribeSecret string

	// News
	NewsSourcesPath     string
	NewsRefreshSchedule string

	// Geocoding
	NominatimURL string

	// Logs and error tracking
	LogRetentionDays int
	SentryDSN        string

	// Server
	Port        string
	CORSOrigins string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := getEnv("SUPABASE_JWT_SECRET", "")

	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "woningspotters"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		JWTSecret: jwtSecret,
		JWKSURL:   getEnv("SUPABASE_JWKS_URL", ""),

		AdminEmails:    getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs:   getEnv("ADMIN_USER_IDS", ""),
		AdminTokenHash: getEnv("ADMIN_TOKEN_HASH", ""),

		MollieAPIKey: getEnv("MOLLIE_API_KEY", ""),
		MollieAPIURL: getEnv("MOLLIE_API_URL", "https://api.mollie.com/v2"),
		AppURL:       strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),

		ApifyToken:   getEnv("APIFY_API_TOKEN", ""),
		ApifyActorID: getEnv("APIFY_ACTOR_ID", "dtrungtin/funda-scraper"),
		ApifyURL:     getEnv("APIFY_API_URL", "https://api.apify.com/v2"),
		ApifyTimeout: parseDuration(getEnv("APIFY_TIMEOUT", "120s"), 120*time.Second),

		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		ResendURL:         getEnv("RESEND_API_URL", "https://api.resend.com/emails"),
		MailFromNews:      getEnv("MAIL_FROM_NEWS", "WoningSpotters <nieuws@woningspotters.nl>"),
		MailFromContact:   getEnv("MAIL_FROM_CONTACT", "WoningSpotters <noreply@woningspotters.nl>"),
		ContactEmail:      getEnv("CONTACT_EMAIL", "info@woningspotters.nl"),
		SiteURL:           strings.TrimRight(getEnv("SITE_URL", "https://woningspotters.nl"), "/"),
		NewsletterAPIKey:  getEnv("NEWSLETTER_API_KEY", ""),
		UnsubscribeSecret: getEnv("UNSUBSCRIBE_SECRET", jwtSecret),

		NewsSourcesPath:     getEnv("NEWS_SOURCES_PATH", ""),
		NewsRefreshSchedule: getEnv("NEWS_REFRESH_SCHEDULE", ""),

		NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
		SentryDSN:        getEnv("SENTRY_DSN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// HasDatabaseCredentials reports whether a connection string or password is set.
func (c *Config) HasDatabaseCredentials() bool {
	return c.DatabaseURL != "" || c.DBPassword != ""
}

// HasSessionVerifier reports whether session tokens can be verified.
func (c *Config) HasSessionVerifier() bool {
	return c.JWTSecret != "" || c.JWKSURL != ""
}

// IsTestMollieKey reports whether the Mollie key is a test mode key.
func (c *Config) IsTestMollieKey() bool {
	return strings.HasPrefix(c.MollieAPIKey, "test_")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
