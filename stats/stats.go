package stats

import (
	"sync/atomic"
	"time"
)

// Stats holds all server statistics with atomic counters
type Stats struct {
	// Server info
	StartTime time.Time

	// Request counters
	TotalRequests   atomic.Int64
	CatalogRequests atomic.Int64
	DetailRequests  atomic.Int64
	APIRequests     atomic.Int64
	StatsRequests   atomic.Int64
	HealthRequests  atomic.Int64
	OtherRequests   atomic.Int64

	// Catalog cache performance
	CatalogHits     atomic.Int64 // city already merged, served from memory
	Reconciliations atomic.Int64 // listing-page fetch + merge runs
	EnrichFailures  atomic.Int64 // detail pages that failed fetch or parse

	// Rate limiting
	RateLimitExceeded atomic.Int64

	// Response status codes
	Status2xx atomic.Int64
	Status3xx atomic.Int64
	Status4xx atomic.Int64
	Status5xx atomic.Int64

	// Response time tracking (in microseconds for precision)
	totalResponseTime atomic.Int64
	responseCount     atomic.Int64
	maxResponseTime   atomic.Int64
}

// Global stats instance
var global = &Stats{
	StartTime: time.Now(),
}

// Get returns the global stats instance
func Get() *Stats {
	return global
}

// RecordRequest records a request to a specific endpoint
func (s *Stats) RecordRequest(endpoint string) {
	s.TotalRequests.Add(1)
	switch endpoint {
	case "/":
		s.CatalogRequests.Add(1)
	case "/api/get_films_list":
		s.APIRequests.Add(1)
	case "/stats":
		s.StatsRequests.Add(1)
	case "/health":
		s.HealthRequests.Add(1)
	default:
		s.OtherRequests.Add(1)
	}
}

// RecordCatalogHit records a catalog request served without network access
func (s *Stats) RecordCatalogHit() {
	s.CatalogHits.Add(1)
}

// RecordReconciliation records a city reconciliation (scrape + merge)
func (s *Stats) RecordReconciliation() {
	s.Reconciliations.Add(1)
}

// RecordEnrichFailure records a detail page that failed to fetch or parse
func (s *Stats) RecordEnrichFailure() {
	s.EnrichFailures.Add(1)
}

// RecordRateLimited records a request rejected by the rate limiter
func (s *Stats) RecordRateLimited() {
	s.RateLimitExceeded.Add(1)
}

// RecordStatus records a response status code
func (s *Stats) RecordStatus(code int) {
	switch {
	case code >= 200 && code < 300:
		s.Status2xx.Add(1)
	case code >= 300 && code < 400:
		s.Status3xx.Add(1)
	case code >= 400 && code < 500:
		s.Status4xx.Add(1)
	case code >= 500:
		s.Status5xx.Add(1)
	}
}

// RecordResponseTime records a response duration
func (s *Stats) RecordResponseTime(d time.Duration) {
	us := d.Microseconds()
	s.totalResponseTime.Add(us)
	s.responseCount.Add(1)
	for {
		max := s.maxResponseTime.Load()
		if us <= max || s.maxResponseTime.CompareAndSwap(max, us) {
			break
		}
	}
}

// Snapshot is the JSON view served by /stats
type Snapshot struct {
	UptimeSeconds     int64   `json:"uptime_seconds"`
	TotalRequests     int64   `json:"total_requests"`
	CatalogRequests   int64   `json:"catalog_requests"`
	DetailRequests    int64   `json:"detail_requests"`
	APIRequests       int64   `json:"api_requests"`
	StatsRequests     int64   `json:"stats_requests"`
	HealthRequests    int64   `json:"health_requests"`
	OtherRequests     int64   `json:"other_requests"`
	CatalogHits       int64   `json:"catalog_hits"`
	Reconciliations   int64   `json:"reconciliations"`
	EnrichFailures    int64   `json:"enrich_failures"`
	HitRatePercent    float64 `json:"hit_rate_percent"`
	RateLimitExceeded int64   `json:"rate_limit_exceeded"`
	Status2xx         int64   `json:"status_2xx"`
	Status3xx         int64   `json:"status_3xx"`
	Status4xx         int64   `json:"status_4xx"`
	Status5xx         int64   `json:"status_5xx"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	MaxResponseTimeMs float64 `json:"max_response_time_ms"`
}

// GetSnapshot returns a consistent point-in-time view of the counters
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		UptimeSeconds:     int64(time.Since(s.StartTime).Seconds()),
		TotalRequests:     s.TotalRequests.Load(),
		CatalogRequests:   s.CatalogRequests.Load(),
		DetailRequests:    s.DetailRequests.Load(),
		APIRequests:       s.APIRequests.Load(),
		StatsRequests:     s.StatsRequests.Load(),
		HealthRequests:    s.HealthRequests.Load(),
		OtherRequests:     s.OtherRequests.Load(),
		CatalogHits:       s.CatalogHits.Load(),
		Reconciliations:   s.Reconciliations.Load(),
		EnrichFailures:    s.EnrichFailures.Load(),
		RateLimitExceeded: s.RateLimitExceeded.Load(),
		Status2xx:         s.Status2xx.Load(),
		Status3xx:         s.Status3xx.Load(),
		Status4xx:         s.Status4xx.Load(),
		Status5xx:         s.Status5xx.Load(),
	}

	if total := snap.CatalogHits + snap.Reconciliations; total > 0 {
		snap.HitRatePercent = float64(snap.CatalogHits) / float64(total) * 100
	}
	if count := s.responseCount.Load(); count > 0 {
		snap.AvgResponseTimeMs = float64(s.totalResponseTime.Load()) / float64(count) / 1000
	}
	snap.MaxResponseTimeMs = float64(s.maxResponseTime.Load()) / 1000

	return snap
}
