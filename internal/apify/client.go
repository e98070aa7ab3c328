// Package apify runs the property scraper actor and maps its dataset items
// onto listings.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

const maxItems = 50

var houseTypes = map[string]string{
	"appartement":        "apartment",
	"rijtjeshuis":        "terraced_house",
	"vrijstaand":         "detached",
	"twee-onder-een-kap": "semi_detached",
	"penthouse":          "penthouse",
	"studio":             "studio",
}

// RunInput is the actor input document.
type RunInput struct {
	Location         string `json:"location"`
	PropertyType     string `json:"propertyType,omitempty"`
	MinPrice         int    `json:"minPrice,omitempty"`
	MaxPrice         int    `json:"maxPrice,omitempty"`
	MinRooms         int    `json:"minRooms,omitempty"`
	PropertyCategory string `json:"propertyCategory,omitempty"`
	MaxItems         int    `json:"maxItems"`
}

// InputFromCriteria converts user search filters into actor input.
// Unparseable numbers are left out.
func InputFromCriteria(c models.SearchCriteria) RunInput {
	return RunInput{
		Location:         c.Locatie,
		PropertyType:     c.Type,
		MinPrice:         atoi(c.MinPrijs),
		MaxPrice:         atoi(c.MaxPrijs),
		MinRooms:         atoi(strings.ReplaceAll(c.Kamers, "+", "")),
		PropertyCategory: houseTypes[c.WoningType],
		MaxItems:         maxItems,
	}
}

type Client struct {
	baseURL string
	token   string
	actorID string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, token, actorID string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		actorID: actorID,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout + 15*time.Second},
		logger:  logger,
	}
}

// Configured reports whether an API token is available.
func (c *Client) Configured() bool {
	return c.token != ""
}

// Search runs the actor synchronously and returns the mapped dataset items.
func (c *Client) Search(ctx context.Context, in RunInput) ([]models.Listing, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal input: %w", err)
	}

	q := url.Values{}
	q.Set("token", c.token)
	q.Set("timeout", strconv.Itoa(int(c.timeout.Seconds())))
	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?%s",
		c.baseURL, strings.ReplaceAll(c.actorID, "/", "~"), q.Encode())

	var raw []byte
	err = retry.Do(
		func() error {
			start := time.Now()
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("apify HTTP %d", resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return retry.Unrecoverable(fmt.Errorf("apify HTTP %d: %s", resp.StatusCode, truncate(data, 200)))
			}

			c.logger.Info("apify run completed",
				"actor", c.actorID,
				"location", in.Location,
				"duration_ms", time.Since(start).Milliseconds())
			raw = data
			return nil
		},
		retry.Attempts(2),
		retry.Delay(2*time.Second),
		retry.MaxJitter(time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying apify run", "attempt", n, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("run actor %s: %w", c.actorID, err)
	}

	return ParseItems(raw)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
