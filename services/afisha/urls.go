package afisha

import (
	"regexp"
	"strconv"
	"strings"
)

var movieIDPattern = regexp.MustCompile(`/(\d+)/?$`)

// ScheduleURL returns the cinema schedule page URL for a city
func ScheduleURL(baseURL, city string) string {
	return strings.TrimRight(baseURL, "/") + "/" + city + "/schedule_cinema/"
}

// MovieIDFromURL extracts the numeric film id from a detail-page URL
// (e.g. ".../movie/212258/" -> 212258). Returns 0 when the URL carries
// no trailing numeric segment; such listings cannot be looked up by id.
func MovieIDFromURL(url string) int64 {
	m := movieIDPattern.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
