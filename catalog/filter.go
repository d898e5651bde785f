package catalog

import "sort"

// Filter ranks and thresholds a catalog view for one city: sort by rating
// descending (stable, missing detail counts as 0), keep listings with at
// least cinemasOver venues in the city and a rating of at least ratingOver,
// then cap the result at topSize. A negative topSize means unlimited.
func Filter(listings []Listing, city string, topSize, cinemasOver int, ratingOver float64) []Listing {
	ranked := make([]Listing, len(listings))
	copy(ranked, listings)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating() > ranked[j].Rating()
	})

	filtered := ranked[:0]
	for _, l := range ranked {
		if l.VenueCount(city) < cinemasOver {
			continue
		}
		if l.Rating() < ratingOver {
			continue
		}
		filtered = append(filtered, l)
	}

	if topSize >= 0 && len(filtered) > topSize {
		filtered = filtered[:topSize]
	}

	return filtered
}
