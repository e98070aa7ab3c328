package mollie

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(url+"/", "test_key", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreatePaymentRetriesWithSameIdempotencyKey(t *testing.T) {
	var (
		mu   sync.Mutex
		keys []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "Bearer test_key", r.Header.Get("Authorization"))
		mu.Lock()
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		first := len(keys) == 1
		mu.Unlock()
		if first {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var req CreatePaymentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "9.95", req.Amount.Value)
		assert.Equal(t, SequenceFirst, req.SequenceType)
		_, _ = w.Write([]byte(`{
			"id": "tr_WDqYK6vllg", "status": "open", "sequenceType": "first",
			"amount": {"currency": "EUR", "value": "9.95"},
			"metadata": {"userId": "u1", "plan": "pro"},
			"_links": {"checkout": {"href": "https://www.mollie.com/checkout/tr_WDqYK6vllg"}}
		}`))
	}))
	defer srv.Close()

	p, err := newTestClient(srv.URL).CreatePayment(t.Context(), CreatePaymentRequest{
		Amount:       Amount{Currency: "EUR", Value: "9.95"},
		Description:  "WoningSpotters Pro",
		SequenceType: SequenceFirst,
		Metadata:     Metadata{UserID: "u1", Plan: "pro"},
	})
	require.NoError(t, err)
	assert.Equal(t, "tr_WDqYK6vllg", p.ID)
	assert.Equal(t, "https://www.mollie.com/checkout/tr_WDqYK6vllg", p.CheckoutURL())

	meta, ok := p.Metadata()
	require.True(t, ok)
	assert.Equal(t, Metadata{UserID: "u1", Plan: "pro"}, meta)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.Equal(t, keys[0], keys[1])
}

func TestGetPaymentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetPayment(t.Context(), "tr_missing00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAPIErrorIsNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":422,"title":"Unprocessable Entity","detail":"The amount is higher than the maximum"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateCustomer(t.Context(), CreateCustomerRequest{Email: "a@example.nl"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "The amount is higher than the maximum", apiErr.Detail)
	assert.Equal(t, 1, calls)
}

func TestSubscriptionCalls(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/customers/cst_1/subscriptions", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":"sub_1","status":"active","nextPaymentDate":"2026-05-01"}`))
		case http.MethodDelete:
			deleted = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()
	c := newTestClient(srv.URL)

	sub, err := c.CreateSubscription(t.Context(), "cst_1", CreateSubscriptionRequest{
		Amount:   Amount{Currency: "EUR", Value: "9.95"},
		Interval: "1 month",
	})
	require.NoError(t, err)
	next, ok := sub.NextPayment()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), next)

	require.NoError(t, c.CancelSubscription(t.Context(), "cst_1", "sub_1"))
	assert.Equal(t, "/customers/cst_1/subscriptions/sub_1", deleted)
}

func TestPaymentMetadataIncomplete(t *testing.T) {
	_, ok := (&Payment{}).Metadata()
	assert.False(t, ok)
	_, ok = (&Payment{RawMetadata: json.RawMessage(`{"userId":"u1"}`)}).Metadata()
	assert.False(t, ok)
	_, ok = (&Subscription{}).NextPayment()
	assert.False(t, ok)
	assert.Empty(t, (&Payment{}).CheckoutURL())
}
