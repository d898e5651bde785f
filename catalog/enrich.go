package catalog

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"showtimes-api-go/logcolors"
	"showtimes-api-go/services/afisha"
	"showtimes-api-go/stats"
)

// Enricher fetches and parses detail pages for a batch of listings with a
// fixed concurrency bound. A fetch or parse failure for one listing leaves
// that listing without detail and never aborts its siblings.
type Enricher struct {
	fetcher   afisha.Fetcher
	poolCount int
}

// NewEnricher creates an Enricher running up to poolCount fetches at once
func NewEnricher(fetcher afisha.Fetcher, poolCount int) *Enricher {
	if poolCount <= 0 {
		poolCount = 1
	}
	return &Enricher{fetcher: fetcher, poolCount: poolCount}
}

// Enrich runs detail fetch+parse for every listing in the batch and returns
// the results. Output order is unspecified; listings whose detail page could
// not be fetched or parsed come back unchanged (no Detail, zero ID).
func (e *Enricher) Enrich(ctx context.Context, listings []Listing) []Listing {
	if len(listings) == 0 {
		return nil
	}

	results := make([]Listing, 0, len(listings))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(e.poolCount)

	for _, listing := range listings {
		listing := listing
		g.Go(func() error {
			enriched := e.enrichOne(ctx, listing)
			mu.Lock()
			results = append(results, enriched)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; failures are per-listing
	_ = g.Wait()

	return results
}

func (e *Enricher) enrichOne(ctx context.Context, listing Listing) Listing {
	page, err := e.fetcher.Fetch(ctx, listing.URL)
	if err != nil {
		log.Warnf("%s Detail fetch failed for %q: %v", logcolors.LogEnrich, listing.Title, err)
		stats.Get().RecordEnrichFailure()
		return listing
	}

	detail, err := afisha.ParseDetail(page)
	if err != nil {
		log.Warnf("%s Detail parse failed for %q: %v", logcolors.LogEnrich, listing.Title, err)
		stats.Get().RecordEnrichFailure()
		return listing
	}

	listing.Detail = detail
	listing.ID = afisha.MovieIDFromURL(listing.URL)
	return listing
}
