package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

// Memory is an in-process store with the same semantics as Store. It backs
// the service and handler tests.
type Memory struct {
	mu            sync.Mutex
	profiles      map[uuid.UUID]*models.Profile
	favorites     []*models.Favorite
	alerts        []*models.SearchAlert
	subscriptions []*models.Subscription
	payments      []*models.Payment
	articles      []*models.NewsArticle
	subscribers   []*models.NewsletterSubscriber
	searches      []*models.SearchHistory
}

func NewMemory() *Memory {
	return &Memory{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (m *Memory) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) CreateProfile(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.ID]; ok {
		return ErrDuplicate
	}
	if p.SubscriptionTier == "" {
		p.SubscriptionTier = models.TierFree
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *Memory) ConsumeSearch(_ context.Context, id uuid.UUID, day time.Time, limit int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return false, nil
	}
	d := day.Format(time.DateOnly)
	sameDay := p.LastSearchDate != nil && p.LastSearchDate.Format(time.DateOnly) == d
	if sameDay && p.SearchesToday >= limit {
		return false, nil
	}
	if sameDay {
		p.SearchesToday++
	} else {
		p.SearchesToday = 1
	}
	today, _ := time.Parse(time.DateOnly, d)
	p.LastSearchDate = &today
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *Memory) SetMollieCustomerID(_ context.Context, id uuid.UUID, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return ErrNotFound
	}
	p.MollieCustomerID = &customerID
	return nil
}

func (m *Memory) SetTier(_ context.Context, id uuid.UUID, tier models.Tier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return ErrNotFound
	}
	p.SubscriptionTier = tier
	return nil
}

func (m *Memory) ListProfiles(_ context.Context, search string, limit, offset int) ([]models.Profile, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Profile
	for _, p := range m.profiles {
		if search == "" || strings.Contains(strings.ToLower(p.Email), strings.ToLower(search)) {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return page(matched, limit, offset), int64(len(matched)), nil
}

func (m *Memory) ListFavorites(_ context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) CreateFavorite(_ context.Context, f *models.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.favorites {
		if existing.UserID == f.UserID && existing.PropertyURL == f.PropertyURL {
			return ErrDuplicate
		}
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	cp := *f
	m.favorites = append(m.favorites, &cp)
	return nil
}

func (m *Memory) DeleteFavorite(_ context.Context, userID uuid.UUID, propertyURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.favorites[:0]
	for _, f := range m.favorites {
		if f.UserID == userID && f.PropertyURL == propertyURL {
			continue
		}
		kept = append(kept, f)
	}
	m.favorites = kept
	return nil
}

func (m *Memory) ListAlerts(_ context.Context, userID uuid.UUID) ([]models.SearchAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SearchAlert
	for _, a := range m.alerts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) CreateAlert(_ context.Context, a *models.SearchAlert, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[a.UserID]; !ok {
		return ErrNotFound
	}
	count := 0
	for _, existing := range m.alerts {
		if existing.UserID == a.UserID {
			count++
		}
	}
	if count >= limit {
		return ErrLimitReached
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	cp := *a
	m.alerts = append(m.alerts, &cp)
	return nil
}

func (m *Memory) SetAlertActive(_ context.Context, userID, alertID uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.alerts {
		if a.ID == alertID && a.UserID == userID {
			a.IsActive = active
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteAlert(_ context.Context, userID, alertID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.alerts[:0]
	for _, a := range m.alerts {
		if a.ID == alertID && a.UserID == userID {
			continue
		}
		kept = append(kept, a)
	}
	m.alerts = kept
	return nil
}

func (m *Memory) CreatePendingSubscription(_ context.Context, sub *models.Subscription, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.MolliePaymentID == payment.MolliePaymentID {
			return ErrDuplicate
		}
	}
	now := time.Now().UTC()
	sub.CreatedAt, sub.UpdatedAt = now, now
	payment.CreatedAt = now
	s, p := *sub, *payment
	m.subscriptions = append(m.subscriptions, &s)
	m.payments = append(m.payments, &p)
	return nil
}

func (m *Memory) RecordPaymentStatus(_ context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.MolliePaymentID == payment.MolliePaymentID {
			p.Status = payment.Status
			p.PaidAt = payment.PaidAt
			return nil
		}
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	cp := *payment
	m.payments = append(m.payments, &cp)
	return nil
}

func (m *Memory) ActivateSubscription(_ context.Context, sub *models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[sub.UserID]
	if !ok {
		return ErrNotFound
	}
	var promoted *models.Subscription
	for _, s := range m.subscriptions {
		if s.UserID != sub.UserID || s.Status != models.SubscriptionPending || s.Plan != sub.Plan {
			continue
		}
		if promoted == nil || s.CreatedAt.After(promoted.CreatedAt) {
			promoted = s
		}
	}
	now := time.Now().UTC()
	if promoted != nil {
		promoted.Status = models.SubscriptionActive
		promoted.MollieSubscriptionID = sub.MollieSubscriptionID
		promoted.CurrentPeriodStart = sub.CurrentPeriodStart
		promoted.CurrentPeriodEnd = sub.CurrentPeriodEnd
		promoted.UpdatedAt = now
	} else {
		sub.Status = models.SubscriptionActive
		sub.CreatedAt, sub.UpdatedAt = now, now
		cp := *sub
		m.subscriptions = append(m.subscriptions, &cp)
	}

	kept := m.subscriptions[:0]
	for _, s := range m.subscriptions {
		if s.UserID == sub.UserID && s.Status == models.SubscriptionPending {
			continue
		}
		kept = append(kept, s)
	}
	m.subscriptions = kept
	p.SubscriptionTier = sub.Plan
	return nil
}

func (m *Memory) RefreshSubscriptionPeriod(_ context.Context, userID uuid.UUID, plan models.Tier, start time.Time, end *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subscriptions {
		if s.UserID == userID && s.Status == models.SubscriptionActive && s.Plan == plan {
			st := start
			s.CurrentPeriodStart = &st
			if end != nil {
				e := *end
				s.CurrentPeriodEnd = &e
			}
		}
	}
	return nil
}

func (m *Memory) DeletePendingSubscriptions(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.subscriptions[:0]
	for _, s := range m.subscriptions {
		if s.UserID == userID && s.Status == models.SubscriptionPending {
			continue
		}
		kept = append(kept, s)
	}
	m.subscriptions = kept
	return nil
}

func (m *Memory) CancelSubscription(_ context.Context, userID uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subscriptions {
		if s.UserID == userID && s.Status == models.SubscriptionActive {
			canceled := at
			s.Status = models.SubscriptionCanceled
			s.CanceledAt = &canceled
		}
	}
	if p, ok := m.profiles[userID]; ok {
		p.SubscriptionTier = models.TierFree
	}
	return nil
}

func (m *Memory) GetActiveSubscription(_ context.Context, userID uuid.UUID) (*models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.Subscription
	for _, s := range m.subscriptions {
		if s.UserID == userID && s.Status == models.SubscriptionActive {
			if found == nil || !s.CreatedAt.Before(found.CreatedAt) {
				found = s
			}
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (m *Memory) LatestOpenPayment(_ context.Context, userID uuid.UUID) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.Payment
	for _, p := range m.payments {
		if p.UserID == userID && p.Status == "open" {
			if found == nil || !p.CreatedAt.Before(found.CreatedAt) {
				found = p
			}
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (m *Memory) GetPaymentByMollieID(_ context.Context, molliePaymentID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.MolliePaymentID == molliePaymentID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ExistingSourceURLs(_ context.Context, urls []string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := make(map[string]bool, len(urls))
	for _, u := range urls {
		for _, a := range m.articles {
			if a.SourceURL != nil && *a.SourceURL == u {
				existing[u] = true
				break
			}
		}
	}
	return existing, nil
}

func (m *Memory) CreateArticle(_ context.Context, a *models.NewsArticle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.SourceURL != nil {
		for _, existing := range m.articles {
			if existing.SourceURL != nil && *existing.SourceURL == *a.SourceURL {
				return ErrDuplicate
			}
		}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	cp := *a
	m.articles = append(m.articles, &cp)
	return nil
}

func (m *Memory) FeatureNewest(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var newest *models.NewsArticle
	for _, a := range m.articles {
		a.IsFeatured = false
		if newest == nil || a.PublishedAt.After(newest.PublishedAt) {
			newest = a
		}
	}
	if newest != nil {
		newest.IsFeatured = true
	}
	return nil
}

func (m *Memory) ListArticles(_ context.Context, category string, limit, offset int) ([]models.NewsArticle, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.NewsArticle
	for _, a := range m.articles {
		if category == "" || string(a.Category) == category {
			matched = append(matched, *a)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].PublishedAt.After(matched[j].PublishedAt) })
	return page(matched, limit, offset), int64(len(matched)), nil
}

func (m *Memory) DeleteArticle(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.articles {
		if a.ID == id {
			m.articles = append(m.articles[:i], m.articles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) GetSubscriber(_ context.Context, email string) (*models.NewsletterSubscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subscribers {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateSubscriber(_ context.Context, sub *models.NewsletterSubscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subscribers {
		if s.Email == sub.Email {
			return ErrDuplicate
		}
	}
	cp := *sub
	m.subscribers = append(m.subscribers, &cp)
	return nil
}

func (m *Memory) SetSubscriberActive(_ context.Context, email string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subscribers {
		if s.Email == email {
			s.IsActive = active
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ActiveSubscriberEmails(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var emails []string
	for _, s := range m.subscribers {
		if s.IsActive {
			emails = append(emails, s.Email)
		}
	}
	return emails, nil
}

func (m *Memory) ListSubscribers(_ context.Context, limit, offset int) ([]models.NewsletterSubscriber, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]models.NewsletterSubscriber, 0, len(m.subscribers))
	for _, s := range m.subscribers {
		all = append(all, *s)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].SubscribedAt.After(all[j].SubscribedAt) })
	return page(all, limit, offset), int64(len(all)), nil
}

func (m *Memory) RecordSearch(_ context.Context, h *models.SearchHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	cp := *h
	m.searches = append(m.searches, &cp)
	return nil
}

func (m *Memory) AdminCounts(_ context.Context, signupsSince time.Time) (*AdminCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := &AdminCounts{UsersByTier: map[models.Tier]int64{
		models.TierFree:  0,
		models.TierPro:   0,
		models.TierUltra: 0,
	}}
	for _, p := range m.profiles {
		counts.TotalUsers++
		counts.UsersByTier[p.SubscriptionTier]++
		if !p.CreatedAt.Before(signupsSince) {
			counts.RecentSignups++
		}
	}
	for _, s := range m.subscribers {
		if s.IsActive {
			counts.NewsletterSubscribers++
		}
	}
	for _, s := range m.subscriptions {
		if s.Status == models.SubscriptionActive {
			counts.ActiveSubscriptions++
		}
	}
	for _, p := range m.payments {
		if p.Status == "paid" {
			if v, err := strconv.ParseFloat(p.Amount, 64); err == nil {
				counts.TotalRevenue += v
			}
		}
	}
	return counts, nil
}

func (m *Memory) PublicCounts(_ context.Context) (*PublicCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &PublicCounts{
		Users:    int64(len(m.profiles)),
		Searches: int64(len(m.searches)),
		News:     int64(len(m.articles)),
	}, nil
}

// Subscriptions returns a snapshot of every stored subscription.
func (m *Memory) Subscriptions() []models.Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Subscription, 0, len(m.subscriptions))
	for _, s := range m.subscriptions {
		out = append(out, *s)
	}
	return out
}

// Payments returns a snapshot of every stored payment.
func (m *Memory) Payments() []models.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, *p)
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
