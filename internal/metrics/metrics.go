package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "woningspotters",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "woningspotters",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "woningspotters",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route"},
	)

	searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "woningspotters",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Searches by outcome (ok, sample, quota_exceeded, failed).",
		},
		[]string{"outcome"},
	)

	scraperDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "woningspotters",
			Subsystem: "search",
			Name:      "scraper_duration_seconds",
			Help:      "Duration of scraper runs.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		},
	)

	webhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "woningspotters",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Processed payment webhooks by payment status.",
		},
		[]string{"status"},
	)

	newsArticles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "woningspotters",
			Subsystem: "news",
			Name:      "articles_total",
			Help:      "Articles seen during news refreshes by result (added, skipped).",
		},
		[]string{"result"},
	)

	emails = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "woningspotters",
			Subsystem: "mail",
			Name:      "sent_total",
			Help:      "Outgoing emails by kind and result.",
		},
		[]string{"kind", "result"},
	)

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "woningspotters",
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Scheduled job runs.",
		},
		[]string{"job", "success"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		searches,
		scraperDuration,
		webhookEvents,
		newsArticles,
		emails,
		jobRuns,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RequestStarted()  { httpInFlight.Inc() }
func RequestFinished() { httpInFlight.Dec() }

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordSearch(outcome string) {
	searches.WithLabelValues(outcome).Inc()
}

func ObserveScraper(duration time.Duration) {
	scraperDuration.Observe(duration.Seconds())
}

func RecordWebhook(status string) {
	webhookEvents.WithLabelValues(status).Inc()
}

func RecordNewsRefresh(added, skipped int) {
	newsArticles.WithLabelValues("added").Add(float64(added))
	newsArticles.WithLabelValues("skipped").Add(float64(skipped))
}

func RecordEmail(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	emails.WithLabelValues(kind, result).Inc()
}

func RecordJobRun(job string, err error) {
	success := "true"
	if err != nil {
		success = "false"
	}
	jobRuns.WithLabelValues(job, success).Inc()
}
