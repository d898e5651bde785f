package catalog

import (
	"testing"

	"showtimes-api-go/services/afisha"
)

func ratedListing(title string, rating float64, counts map[string]int) Listing {
	detail := afisha.DefaultDetail()
	detail.AggregateRating.RatingValue = afisha.Number(rating)
	return Listing{Title: title, VenueCounts: counts, Detail: detail}
}

func TestFilter_SortsByRatingDescending(t *testing.T) {
	catalog := []Listing{
		ratedListing("Средний", 5.0, map[string]int{"msk": 1}),
		ratedListing("Лучший", 9.0, map[string]int{"msk": 1}),
		ratedListing("Худший", 2.0, map[string]int{"msk": 1}),
	}

	out := Filter(catalog, "msk", -1, 1, 0)
	if len(out) != 3 {
		t.Fatalf("Expected 3 listings, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Rating() > out[i-1].Rating() {
			t.Errorf("Output not sorted descending at %d: %v > %v", i, out[i].Rating(), out[i-1].Rating())
		}
	}
	if out[0].Title != "Лучший" || out[2].Title != "Худший" {
		t.Errorf("Unexpected order: %v %v %v", out[0].Title, out[1].Title, out[2].Title)
	}
}

func TestFilter_StableOnTies(t *testing.T) {
	catalog := []Listing{
		ratedListing("Первый", 7.0, map[string]int{"msk": 1}),
		ratedListing("Второй", 7.0, map[string]int{"msk": 1}),
		ratedListing("Третий", 7.0, map[string]int{"msk": 1}),
	}

	out := Filter(catalog, "msk", -1, 1, 0)
	if out[0].Title != "Первый" || out[1].Title != "Второй" || out[2].Title != "Третий" {
		t.Errorf("Tied ratings must keep original order, got %v %v %v", out[0].Title, out[1].Title, out[2].Title)
	}
}

func TestFilter_Thresholds(t *testing.T) {
	catalog := []Listing{
		ratedListing("Широкий прокат", 6.0, map[string]int{"msk": 10}),
		ratedListing("Узкий прокат", 9.0, map[string]int{"msk": 1}),
		ratedListing("Низкий рейтинг", 3.0, map[string]int{"msk": 10}),
		ratedListing("Другой город", 8.0, map[string]int{"spb": 10}),
	}

	out := Filter(catalog, "msk", -1, 2, 5.0)
	if len(out) != 1 {
		t.Fatalf("Expected 1 listing passing both thresholds, got %d", len(out))
	}
	if out[0].Title != "Широкий прокат" {
		t.Errorf("Expected Широкий прокат, got %q", out[0].Title)
	}
}

func TestFilter_TopSize(t *testing.T) {
	catalog := []Listing{
		ratedListing("A", 9.0, map[string]int{"msk": 1}),
		ratedListing("B", 8.0, map[string]int{"msk": 1}),
		ratedListing("C", 7.0, map[string]int{"msk": 1}),
	}

	tests := []struct {
		name     string
		topSize  int
		expected int
	}{
		{name: "Capped", topSize: 2, expected: 2},
		{name: "Zero", topSize: 0, expected: 0},
		{name: "Unlimited", topSize: -1, expected: 3},
		{name: "Larger than catalog", topSize: 10, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Filter(catalog, "msk", tt.topSize, 1, 0)
			if len(out) != tt.expected {
				t.Errorf("Expected %d listings, got %d", tt.expected, len(out))
			}
		})
	}
}

func TestFilter_MissingDetailTreatedAsZeroRating(t *testing.T) {
	catalog := []Listing{
		{Title: "Без деталей", VenueCounts: map[string]int{"msk": 3}},
		ratedListing("С рейтингом", 6.0, map[string]int{"msk": 3}),
	}

	out := Filter(catalog, "msk", -1, 1, 0)
	if len(out) != 2 {
		t.Fatalf("Expected unenriched listing to pass with rating 0, got %d listings", len(out))
	}
	if out[0].Title != "С рейтингом" {
		t.Errorf("Expected rated listing first, got %q", out[0].Title)
	}

	// A positive rating threshold excludes the unenriched listing
	out = Filter(catalog, "msk", -1, 1, 0.1)
	if len(out) != 1 || out[0].Title != "С рейтингом" {
		t.Errorf("Expected only the rated listing above threshold, got %v", out)
	}
}

func TestFilter_CinemasOverBeatsRating(t *testing.T) {
	// B has the higher rating but plays in a single venue; cinemas_over=2
	// keeps only A.
	catalog := []Listing{
		ratedListing("A", 8.0, map[string]int{"msk": 4}),
		ratedListing("B", 9.0, map[string]int{"msk": 1}),
	}

	out := Filter(catalog, "msk", 1, 2, 0)
	if len(out) != 1 {
		t.Fatalf("Expected exactly 1 listing, got %d", len(out))
	}
	if out[0].Title != "A" {
		t.Errorf("Expected A, got %q", out[0].Title)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	catalog := []Listing{
		ratedListing("Низкий", 2.0, map[string]int{"msk": 1}),
		ratedListing("Высокий", 9.0, map[string]int{"msk": 1}),
	}

	Filter(catalog, "msk", -1, 1, 0)

	if catalog[0].Title != "Низкий" {
		t.Errorf("Filter must not reorder the input catalog, got %q first", catalog[0].Title)
	}
}
