package cities

import (
	"context"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"showtimes-api-go/logcolors"
	"showtimes-api-go/services/afisha"
)

// Registry resolves and caches the city directory (id -> display name).
// It runs on its own TTL clock, independent of the catalog cache.
type Registry struct {
	fetcher     afisha.Fetcher
	baseURL     string
	defaultCity string
	ttl         time.Duration
	now         func() time.Time

	mu        sync.Mutex
	cities    map[string]string
	fetchedAt time.Time
}

// NewRegistry creates a Registry. defaultCity names the schedule page used
// as the city directory source.
func NewRegistry(fetcher afisha.Fetcher, baseURL, defaultCity string, ttl time.Duration) *Registry {
	return &Registry{
		fetcher:     fetcher,
		baseURL:     baseURL,
		defaultCity: defaultCity,
		ttl:         ttl,
		now:         time.Now,
	}
}

// List returns the known cities, fetching the directory page once per TTL
// window. Concurrent callers share one fetch via the registry mutex.
func (r *Registry) List(ctx context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cities != nil && r.now().Sub(r.fetchedAt) < r.ttl {
		return r.cities, nil
	}

	page, err := r.fetcher.Fetch(ctx, afisha.ScheduleURL(r.baseURL, r.defaultCity))
	if err != nil {
		// Serve the stale directory if we have one; city names drift slowly
		if r.cities != nil {
			log.Warnf("%s Refresh failed, serving stale city list: %v", logcolors.LogCities, err)
			return r.cities, nil
		}
		return nil, err
	}

	cities, err := afisha.ParseCities(page)
	if err != nil {
		if r.cities != nil {
			log.Warnf("%s Parse failed, serving stale city list: %v", logcolors.LogCities, err)
			return r.cities, nil
		}
		return nil, err
	}

	log.Infof("%s Loaded %d cities", logcolors.LogCities, len(cities))
	r.cities = cities
	r.fetchedAt = r.now()
	return r.cities, nil
}

// City is one entry of the presentation column layout
type City struct {
	ID   string
	Name string
}

// DivideIntoColumns sorts cities by display name and splits them into
// columnCount contiguous groups of ceil(len/columnCount) entries each.
// The last group may be shorter.
func DivideIntoColumns(cities map[string]string, columnCount int) [][]City {
	if len(cities) == 0 || columnCount <= 0 {
		return nil
	}

	sorted := make([]City, 0, len(cities))
	for id, name := range cities {
		sorted = append(sorted, City{ID: id, Name: name})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	perColumn := (len(sorted) + columnCount - 1) / columnCount
	var columns [][]City
	for start := 0; start < len(sorted); start += perColumn {
		end := start + perColumn
		if end > len(sorted) {
			end = len(sorted)
		}
		columns = append(columns, sorted[start:end])
	}
	return columns
}
