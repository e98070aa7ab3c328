package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/metrics"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/news"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	summaryLength  = 500
	adminListLimit = 1000
)

// FeedFetcher returns the items of one feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, src news.Source) ([]news.Item, error)
}

type RefreshResult struct {
	Added   int
	Skipped int
	Total   int
}

type NewsService struct {
	repo    repository.NewsRepository
	fetcher FeedFetcher
	sources []news.Source
	logger  *slog.Logger
	now     func() time.Time

	refreshMu sync.Mutex
}

func NewNewsService(repo repository.NewsRepository, fetcher FeedFetcher, sources []news.Source, logger *slog.Logger) *NewsService {
	return &NewsService{repo: repo, fetcher: fetcher, sources: sources, logger: logger, now: time.Now}
}

// Refresh pulls every source, stores the articles not seen before and marks
// the newest stored article as featured. Refreshes never overlap.
func (s *NewsService) Refresh(ctx context.Context) (*RefreshResult, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	articles := s.collect(ctx)
	result := &RefreshResult{Total: len(articles)}
	if len(articles) == 0 {
		s.logger.Warn("news refresh found no articles")
		return result, nil
	}

	urls := make([]string, 0, len(articles))
	for _, a := range articles {
		urls = append(urls, *a.SourceURL)
	}
	existing, err := s.repo.ExistingSourceURLs(ctx, urls)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		a := &articles[i]
		if existing[*a.SourceURL] {
			result.Skipped++
			continue
		}
		if err := s.repo.CreateArticle(ctx, a); err != nil {
			if !errors.Is(err, repository.ErrDuplicate) {
				s.logger.Error("failed to store article", "url", *a.SourceURL, "error", err)
			}
			result.Skipped++
			continue
		}
		result.Added++
	}

	if err := s.repo.FeatureNewest(ctx); err != nil {
		return nil, err
	}

	metrics.RecordNewsRefresh(result.Added, result.Skipped)
	s.logger.Info("news refreshed", "added", result.Added, "skipped", result.Skipped, "total", result.Total)
	return result, nil
}

// collect fetches all sources concurrently. A failing source contributes
// nothing. The result is newest first with duplicate links removed.
func (s *NewsService) collect(ctx context.Context) []models.NewsArticle {
	perSource := make([][]news.Item, len(s.sources))
	var g errgroup.Group
	g.SetLimit(4)
	for i, src := range s.sources {
		g.Go(func() error {
			items, err := s.fetcher.Fetch(ctx, src)
			if err != nil {
				s.logger.Error("failed to fetch news source", "source", src.Name, "error", err)
				return nil
			}
			if src.FilterForHousing {
				kept := items[:0]
				for _, it := range items {
					if news.IsHousingRelated(it.Title, it.Description) {
						kept = append(kept, it)
					}
				}
				items = kept
			}
			perSource[i] = items
			return nil
		})
	}
	_ = g.Wait()

	now := s.now().UTC()
	seen := make(map[string]bool)
	var articles []models.NewsArticle
	for _, items := range perSource {
		for _, it := range items {
			if seen[it.Link] {
				continue
			}
			seen[it.Link] = true
			articles = append(articles, toArticle(it, now))
		}
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return articles
}

func toArticle(it news.Item, now time.Time) models.NewsArticle {
	summary := truncateRunes(it.Description, summaryLength)
	if summary == "" {
		summary = it.Title
	}
	published := it.Published
	if published.IsZero() {
		published = now
	}
	link := it.Link
	return models.NewsArticle{
		ID:          uuid.New(),
		Title:       it.Title,
		Summary:     summary,
		Category:    news.Categorize(it.Title, it.Description),
		SourceURL:   &link,
		PublishedAt: published,
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// List returns published articles newest first. Category "Alle" or empty means all.
func (s *NewsService) List(ctx context.Context, category string, limit, offset int) ([]models.NewsArticle, int64, error) {
	if category == "Alle" {
		category = ""
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	articles, total, err := s.repo.ListArticles(ctx, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if articles == nil {
		articles = []models.NewsArticle{}
	}
	return articles, total, nil
}

// ListAll returns the newest articles of every category for the admin overview.
func (s *NewsService) ListAll(ctx context.Context) ([]models.NewsArticle, error) {
	articles, _, err := s.repo.ListArticles(ctx, "", adminListLimit, 0)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []models.NewsArticle{}
	}
	return articles, nil
}

// Create stores manually entered articles. Every article needs a title,
// summary and a known category.
func (s *NewsService) Create(ctx context.Context, inputs []dto.ArticleInput) ([]models.NewsArticle, error) {
	now := s.now().UTC()
	articles := make([]models.NewsArticle, 0, len(inputs))
	for _, in := range inputs {
		category, ok := parseCategory(in.Category)
		if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Summary) == "" || !ok {
			return nil, invalid("Title, summary, and category are required for each article")
		}
		published := now
		if in.PublishedAt != nil {
			published = in.PublishedAt.UTC()
		}
		articles = append(articles, models.NewsArticle{
			ID:          uuid.New(),
			Title:       strings.TrimSpace(in.Title),
			Summary:     strings.TrimSpace(in.Summary),
			Content:     in.Content,
			Category:    category,
			SourceURL:   in.SourceURL,
			ImageURL:    in.ImageURL,
			IsFeatured:  in.IsFeatured,
			PublishedAt: published,
		})
	}
	for i := range articles {
		if err := s.repo.CreateArticle(ctx, &articles[i]); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, invalid("An article with this source URL already exists")
			}
			return nil, err
		}
	}
	return articles, nil
}

func (s *NewsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteArticle(ctx, id)
}

func parseCategory(c string) (models.NewsCategory, bool) {
	switch cat := models.NewsCategory(c); cat {
	case models.CategoryMarktanalyse, models.CategoryNieuwbouw, models.CategoryHypotheek,
		models.CategoryRegelgeving, models.CategoryTips:
		return cat, true
	}
	return "", false
}
