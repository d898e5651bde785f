package catalog

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"showtimes-api-go/logcolors"
	"showtimes-api-go/services/afisha"
	"showtimes-api-go/stats"
)

// Cache holds the merged, enriched catalog and the set of cities already
// reconciled into it. The whole pair expires together: after the TTL the
// next access clears entries and merged cities atomically and rebuilds from
// scratch. Nothing is persisted across restarts.
//
// Writers: only the goroutine running a reconciliation mutates entries, and
// only inside the cache mutex. Enrichment workers return data; they never
// touch the catalog. A per-city in-flight record makes sure at most one
// reconciliation per city runs at a time; concurrent callers for the same
// city wait for the first instead of duplicating fetch and enrichment work.
type Cache struct {
	fetcher     afisha.Fetcher
	enricher    *Enricher
	baseURL     string
	ttl         time.Duration
	enrichLimit int
	now         func() time.Time

	mu           sync.Mutex
	entries      []Listing
	index        map[string]int // title -> position in entries
	mergedCities map[string]struct{}
	createdAt    time.Time
	generation   uint64 // bumped on expiry so stale reconciliations discard their results
	inflight     map[string]*reconciliation
}

type reconciliation struct {
	done chan struct{}
	err  error
}

// Config holds catalog cache construction parameters
type Config struct {
	Fetcher     afisha.Fetcher
	Enricher    *Enricher
	BaseURL     string
	TTL         time.Duration
	EnrichLimit int // max new listings enriched per reconciliation
}

// NewCache creates an empty catalog cache
func NewCache(cfg Config) *Cache {
	c := &Cache{
		fetcher:      cfg.Fetcher,
		enricher:     cfg.Enricher,
		baseURL:      cfg.BaseURL,
		ttl:          cfg.TTL,
		enrichLimit:  cfg.EnrichLimit,
		now:          time.Now,
		index:        make(map[string]int),
		mergedCities: make(map[string]struct{}),
		inflight:     make(map[string]*reconciliation),
	}
	c.createdAt = c.now()
	return c
}

// CatalogForCity returns the full catalog with the given city reconciled
// into it. A city already merged is served from memory with no network
// access. A top-level fetch or parse failure leaves the city unmerged so a
// later call retries from scratch.
func (c *Cache) CatalogForCity(ctx context.Context, city string) ([]Listing, error) {
	for {
		c.mu.Lock()
		c.expireLocked()

		if _, merged := c.mergedCities[city]; merged {
			snapshot := c.snapshotLocked()
			c.mu.Unlock()
			stats.Get().RecordCatalogHit()
			return snapshot, nil
		}

		if r, ok := c.inflight[city]; ok {
			c.mu.Unlock()
			select {
			case <-r.done:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if r.err != nil {
				return nil, r.err
			}
			continue
		}

		r := &reconciliation{done: make(chan struct{})}
		c.inflight[city] = r
		gen := c.generation
		c.mu.Unlock()

		stats.Get().RecordReconciliation()
		r.err = c.reconcile(ctx, city, gen)

		c.mu.Lock()
		delete(c.inflight, city)
		c.mu.Unlock()
		close(r.done)

		if r.err != nil {
			return nil, r.err
		}
		// Loop back: the merged-city path returns the snapshot. If the
		// cache expired while we were reconciling, the loop reconciles
		// again against the fresh generation.
	}
}

// ListingByID resolves one listing by its numeric film id, reconciling the
// city first if needed. Listings that were never enriched have no id and
// cannot match.
func (c *Cache) ListingByID(ctx context.Context, city string, id int64) (Listing, error) {
	if id == 0 {
		return Listing{}, ErrNotFound
	}

	listings, err := c.CatalogForCity(ctx, city)
	if err != nil {
		return Listing{}, err
	}

	for _, l := range listings {
		if l.ID == id {
			return l, nil
		}
	}
	return Listing{}, ErrNotFound
}

// Size returns the number of cached listings
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// MergedCities returns the ids of cities already reconciled
func (c *Cache) MergedCities() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	cities := make([]string, 0, len(c.mergedCities))
	for city := range c.mergedCities {
		cities = append(cities, city)
	}
	return cities
}

// reconcile merges a freshly scraped city into the catalog: counts for
// known titles, enrichment and append for unknown ones, capped at
// enrichLimit new listings per call. Titles beyond the cap are dropped
// until the next full expiry; the city is still marked merged.
func (c *Cache) reconcile(ctx context.Context, city string, gen uint64) error {
	url := afisha.ScheduleURL(c.baseURL, city)
	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	scraped, err := afisha.ParseListings(page)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		return nil
	}
	unknown := c.mergeKnownLocked(scraped, city)
	c.mu.Unlock()

	if len(unknown) > c.enrichLimit {
		log.Infof("%s City %s: %d new listings over the limit of %d, dropping the rest until expiry",
			logcolors.LogReconcile, city, len(unknown), c.enrichLimit)
		unknown = unknown[:c.enrichLimit]
	}

	enriched := c.enricher.Enrich(ctx, unknown)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		log.Warnf("%s City %s: cache expired mid-reconciliation, discarding results", logcolors.LogReconcile, city)
		return nil
	}

	for _, l := range enriched {
		if i, ok := c.index[l.Title]; ok {
			// A concurrent reconciliation for another city appended the
			// same title while we were enriching. Fold our counts in and
			// keep whichever detail landed first.
			for cityID, count := range l.VenueCounts {
				c.entries[i].VenueCounts[cityID] = count
			}
			if c.entries[i].Detail == nil && l.Detail != nil {
				c.entries[i].Detail = l.Detail
				c.entries[i].ID = l.ID
			}
			continue
		}
		c.index[l.Title] = len(c.entries)
		c.entries = append(c.entries, l)
	}
	c.mergedCities[city] = struct{}{}

	log.Infof("%s City %s merged: %d scraped, %d new, %d total cached",
		logcolors.LogReconcile, city, len(scraped), len(enriched), len(c.entries))
	return nil
}

// mergeKnownLocked merges counts for titles already in the catalog and
// returns the genuinely new ones in scrape order. A title repeated within
// one batch keeps the last count seen (last write wins).
func (c *Cache) mergeKnownLocked(scraped []afisha.ScrapedListing, city string) []Listing {
	var unknown []Listing
	seen := make(map[string]int)

	for _, s := range scraped {
		if i, ok := c.index[s.Title]; ok {
			c.entries[i].VenueCounts[city] = s.Count
			continue
		}
		if i, ok := seen[s.Title]; ok {
			unknown[i].VenueCounts[city] = s.Count
			continue
		}
		seen[s.Title] = len(unknown)
		unknown = append(unknown, Listing{
			Title:       s.Title,
			URL:         s.URL,
			VenueCounts: map[string]int{city: s.Count},
		})
	}

	return unknown
}

// expireLocked rebuilds the cache once its age passes the TTL. Entries and
// merged cities always go together; partial expiry is not a thing.
func (c *Cache) expireLocked() {
	if c.now().Sub(c.createdAt) < c.ttl {
		return
	}

	if len(c.entries) > 0 || len(c.mergedCities) > 0 {
		log.Infof("%s Catalog expired after %v: dropping %d listings, %d cities",
			logcolors.LogExpire, c.ttl, len(c.entries), len(c.mergedCities))
	}

	c.entries = nil
	c.index = make(map[string]int)
	c.mergedCities = make(map[string]struct{})
	c.createdAt = c.now()
	c.generation++
}

func (c *Cache) snapshotLocked() []Listing {
	snapshot := make([]Listing, len(c.entries))
	for i, l := range c.entries {
		snapshot[i] = l.clone()
	}
	return snapshot
}
