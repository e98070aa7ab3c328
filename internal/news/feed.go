// Package news fetches RSS feeds and decides which items are housing news.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/codeGROOVE-dev/retry"
)

const userAgent = "WoningSpotters/1.0 News Aggregator"

// Item is one parsed feed entry. Published is zero when the feed date is
// missing or unparseable.
type Item struct {
	Title       string
	Description string
	Link        string
	Published   time.Time
}

type rssDocument struct {
	Channel struct {
		Items []struct {
			Title       string `xml:"title"`
			Description string `xml:"description"`
			Link        string `xml:"link"`
			PubDate     string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339,
}

// Parse reads an RSS 2.0 document. Items without a title or link are dropped.
func Parse(r io.Reader) ([]Item, error) {
	var doc rssDocument
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode rss: %w", err)
	}

	items := make([]Item, 0, len(doc.Channel.Items))
	for _, raw := range doc.Channel.Items {
		title := strings.TrimSpace(html.UnescapeString(raw.Title))
		link := strings.TrimSpace(raw.Link)
		if title == "" || link == "" {
			continue
		}
		items = append(items, Item{
			Title:       title,
			Description: StripHTML(raw.Description),
			Link:        link,
			Published:   parsePubDate(raw.PubDate),
		})
	}
	return items, nil
}

// StripHTML returns the visible text of an HTML fragment with whitespace collapsed.
func StripHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	text := strings.ReplaceAll(doc.Text(), "\u00a0", " ")
	return strings.Join(strings.Fields(text), " ")
}

func parsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	return &Fetcher{client: client, logger: logger}
}

// Fetch returns the items of one source.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]Item, error) {
	var items []Item
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}
			req.Header.Set("User-Agent", userAgent)

			resp, err := f.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("HTTP %d", resp.StatusCode))
			}

			parsed, err := Parse(resp.Body)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			items = parsed
			return nil
		},
		retry.Attempts(2),
		retry.Delay(time.Second),
		retry.MaxJitter(500*time.Millisecond),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Info("retrying feed fetch", "source", src.Name, "attempt", n, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	return items, nil
}
