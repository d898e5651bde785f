package afisha

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ScrapedListing is one row of a city's schedule page: a film title, its
// detail-page URL and the number of venues showing it in that city.
type ScrapedListing struct {
	Title string `json:"film"`
	URL   string `json:"url"`
	Count int    `json:"cinemas_count"`
}

// Person represents an actor or director entry from the detail page
type Person struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Rating is the aggregate rating block from the detail page
type Rating struct {
	BestRating  Number `json:"bestRating"`
	RatingCount Number `json:"ratingCount"`
	RatingValue Number `json:"ratingValue"`
}

// Duration holds the raw ISO-8601 duration string (e.g. "PT2H10M")
type Duration struct {
	Name string `json:"name"`
}

// Detail is the enrichment payload parsed from a film's detail page
type Detail struct {
	Image               string   `json:"image"`
	DatePublished       string   `json:"datePublished"`
	Duration            Duration `json:"duration"`
	Actor               []Person `json:"actor"`
	AggregateRating     Rating   `json:"aggregateRating"`
	Description         string   `json:"description"`
	Director            Person   `json:"director"`
	Genre               string   `json:"genre"`
	Text                string   `json:"text"`
	AlternativeHeadline string   `json:"alternativeHeadline"`
}

// DefaultDetail returns the documented defaults for a detail page with
// missing fields. Every consumer of a missing detail reads these values,
// nothing re-derives defaults per field.
func DefaultDetail() *Detail {
	return &Detail{
		Actor:    []Person{{Name: "", URL: ""}},
		Director: Person{Name: "", URL: ""},
	}
}

// Number unmarshals a JSON value that the source emits inconsistently as
// either a number or a quoted string ("8.1" vs 8.1).
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float returns the value as a plain float64
func (n Number) Float() float64 {
	return float64(n)
}
