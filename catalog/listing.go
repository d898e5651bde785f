package catalog

import (
	"errors"

	"showtimes-api-go/services/afisha"
)

// ErrNotFound is returned when an id-based lookup matches no listing
var ErrNotFound = errors.New("listing not found")

// Listing is one catalog entry: a film title, its per-city venue counts and,
// once enriched, the detail-page metadata. The title is the dedup key and is
// matched exactly as scraped; trailing punctuation or year suffixes on the
// source side produce distinct entries (known limitation).
type Listing struct {
	Title       string         `json:"film"`
	URL         string         `json:"url"`
	VenueCounts map[string]int `json:"cinemas_count"`

	// Detail is nil until enrichment succeeds; once set it never changes
	// for the life of the cache entry.
	Detail *afisha.Detail `json:"detail,omitempty"`

	// ID is the numeric film id from the detail-page URL. Zero means the
	// listing was not enriched (or its URL carried no id) and it cannot be
	// resolved by id lookup.
	ID int64 `json:"film_id,omitempty"`
}

// Rating returns the aggregate rating value, 0 when detail is absent
func (l Listing) Rating() float64 {
	if l.Detail == nil {
		return 0
	}
	return l.Detail.AggregateRating.RatingValue.Float()
}

// VenueCount returns the venue count for a city, 0 when the city was never
// observed for this listing
func (l Listing) VenueCount(city string) int {
	return l.VenueCounts[city]
}

// DurationMinutes returns the film duration in minutes, 0 when detail is
// absent or the source carried no duration
func (l Listing) DurationMinutes() int {
	if l.Detail == nil {
		return 0
	}
	return afisha.ParseDurationMinutes(l.Detail.Duration.Name)
}

// clone returns a copy safe to hand to callers while the cache keeps
// mutating venue counts during later reconciliations
func (l Listing) clone() Listing {
	counts := make(map[string]int, len(l.VenueCounts))
	for city, count := range l.VenueCounts {
		counts[city] = count
	}
	l.VenueCounts = counts
	return l
}
