package afisha

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// ParseDetail extracts the structured-data block (ld+json) from a film's
// detail page. Fields missing from the block keep the DefaultDetail values.
func ParseDetail(page string) (*Detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &ParseError{What: "detail page", Err: err}
	}

	raw := doc.Find(`script[type="application/ld+json"]`).First().Text()
	if raw == "" {
		return nil, &ParseError{What: "detail page", Err: errors.New("no ld+json block")}
	}

	detail := DefaultDetail()
	if err := json.Unmarshal([]byte(raw), detail); err != nil {
		return nil, &ParseError{What: "detail ld+json", Err: err}
	}

	return detail, nil
}

// ParseDurationMinutes normalizes an ISO-8601 duration ("PT2H10M") to total
// minutes. Missing or unparseable input yields 0.
func ParseDurationMinutes(iso string) int {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}
