package afisha

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var cityIDPattern = regexp.MustCompile(`(?:^|/)(\w+)/$`)

// ParseListings extracts the film rows from a city's schedule page.
// Each row carries the film title, its detail-page URL and the number of
// venue cells, which is the venue count for the requested city. Keying the
// count under the city id is the catalog's job, not the parser's.
func ParseListings(page string) ([]ScrapedListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &ParseError{What: "schedule page", Err: err}
	}

	var listings []ScrapedListing
	doc.Find("div.object.s-votes-hover-area.collapsed").Each(func(_ int, s *goquery.Selection) {
		heading := s.Find("h3.usetags").First()
		title := strings.TrimSpace(heading.Text())
		if title == "" {
			return
		}
		url, _ := heading.Find("a").First().Attr("href")
		count := s.Find("td.b-td-item").Length()
		listings = append(listings, ScrapedListing{
			Title: title,
			URL:   url,
			Count: count,
		})
	})

	return listings, nil
}

// ParseCities extracts the city directory (id -> display name) from the
// geography dropdown of a schedule page. Entries missing either the name
// or a parseable id in data-href are skipped.
func ParseCities(page string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &ParseError{What: "cities page", Err: err}
	}

	cities := make(map[string]string)
	doc.Find("span.js-geographyplaceid.dd-link").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		href, _ := s.Attr("data-href")
		m := cityIDPattern.FindStringSubmatch(href)
		if name == "" || m == nil {
			return
		}
		cities[m[1]] = name
	})

	return cities, nil
}
