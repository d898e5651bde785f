package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"showtimes-api-go/catalog"
	"showtimes-api-go/cities"
	"showtimes-api-go/logcolors"
	"showtimes-api-go/stats"
)

const (
	cityCookieName  = "city"
	cityColumnCount = 6
)

// queryInt reads an integer query parameter with a default
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// queryFloat reads a float query parameter with a default
func queryFloat(r *http.Request, key string, def float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// cityFromRequest resolves the visitor's city from the cookie, falling back
// to the default when the cookie is missing or names an unknown city
func cityFromRequest(r *http.Request, known map[string]string) string {
	if c, err := r.Cookie(cityCookieName); err == nil {
		if _, ok := known[c.Value]; ok {
			return c.Value
		}
	}
	return conf.Configuration.DefaultCityID
}

func setCityCookie(w http.ResponseWriter, city string) {
	http.SetCookie(w, &http.Cookie{
		Name:   cityCookieName,
		Value:  city,
		Path:   "/",
		MaxAge: conf.Configuration.CookieMaxAgeInSeconds,
	})
}

// commonContextFor builds the shared presentation state. A city directory
// failure degrades to the default city rather than failing the page.
func commonContextFor(r *http.Request) commonContext {
	known, err := cityRegistry.List(r.Context())
	if err != nil {
		log.Warnf("%s City directory unavailable, using default city: %v", logcolors.LogCities, err)
		known = map[string]string{conf.Configuration.DefaultCityID: conf.Configuration.DefaultCityName}
	}

	city := cityFromRequest(r, known)
	name := known[city]
	if name == "" {
		name = conf.Configuration.DefaultCityName
	}

	return commonContext{
		CityColumns:      cities.DivideIntoColumns(known, cityColumnCount),
		CityID:           city,
		SelectedCityName: name,
	}
}

// filmsListHandler renders the main films list page with filters
func filmsListHandler(w http.ResponseWriter, r *http.Request) {
	common := commonContextFor(r)
	topSize := queryInt(r, "top_size", 10)
	cinemasOver := queryInt(r, "cinemas_over", 1)
	ratingOver := queryFloat(r, "rating_over", 0)

	listings, err := catalogCache.CatalogForCity(r.Context(), common.CityID)
	if err != nil {
		log.Errorf("%s Catalog unavailable for %s: %v", logcolors.LogCatalog, common.CityID, err)
		http.Error(w, "Source site unavailable", http.StatusBadGateway)
		return
	}

	films := catalog.Filter(listings, common.CityID, topSize, cinemasOver, ratingOver)

	setCityCookie(w, common.CityID)
	render(w, "films_list", filmsListView{
		Common:      common,
		Header:      "Главная",
		Films:       films,
		TopSize:     topSize,
		CinemasOver: cinemasOver,
		RatingOver:  ratingOver,
	})
}

// citySelectHandler stores the chosen city in the cookie and sends the
// visitor back where they came from
func citySelectHandler(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	setCityCookie(w, city)

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// filmDetailHandler renders one film's detail page
func filmDetailHandler(w http.ResponseWriter, r *http.Request) {
	stats.Get().DetailRequests.Add(1)
	common := commonContextFor(r)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	film, err := catalogCache.ListingByID(r.Context(), common.CityID, id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Errorf("%s Catalog unavailable for %s: %v", logcolors.LogCatalog, common.CityID, err)
		http.Error(w, "Source site unavailable", http.StatusBadGateway)
		return
	}

	render(w, "film_detail", filmDetailView{
		Common: common,
		Header: film.Title,
		Film:   film,
	})
}

// apiAboutHandler renders the API description page
func apiAboutHandler(w http.ResponseWriter, r *http.Request) {
	render(w, "about_api", aboutView{
		Common: commonContextFor(r),
		Header: "API",
	})
}

// apiFilmsListHandler serves the machine-readable films list
func apiFilmsListHandler(w http.ResponseWriter, r *http.Request) {
	topSize := queryInt(r, "top_size", -1)
	cinemasOver := queryInt(r, "cinemas_over", 1)
	ratingOver := queryFloat(r, "rating_over", 0)
	city := r.URL.Query().Get("city")
	if city == "" {
		city = conf.Configuration.DefaultCityID
	}

	listings, err := catalogCache.CatalogForCity(r.Context(), city)
	if err != nil {
		log.Errorf("%s Catalog unavailable for %s: %v", logcolors.LogCatalog, city, err)
		Respond(w, r).Error(http.StatusBadGateway, apiErrorResponse{Error: err.Error()})
		return
	}

	films := catalog.Filter(listings, city, topSize, cinemasOver, ratingOver)
	if films == nil {
		films = []catalog.Listing{}
	}
	Respond(w, r).JSON(apiListResponse{Results: films})
}

// apiFilmDetailHandler serves one film by numeric id
func apiFilmDetailHandler(w http.ResponseWriter, r *http.Request) {
	stats.Get().DetailRequests.Add(1)
	city := r.URL.Query().Get("city")
	if city == "" {
		city = conf.Configuration.DefaultCityID
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		Respond(w, r).Error(http.StatusNotFound, apiErrorResponse{Error: "film not found"})
		return
	}

	film, err := catalogCache.ListingByID(r.Context(), city, id)
	if errors.Is(err, catalog.ErrNotFound) {
		Respond(w, r).Error(http.StatusNotFound, apiErrorResponse{Error: "film not found"})
		return
	}
	if err != nil {
		log.Errorf("%s Catalog unavailable for %s: %v", logcolors.LogCatalog, city, err)
		Respond(w, r).Error(http.StatusBadGateway, apiErrorResponse{Error: err.Error()})
		return
	}

	Respond(w, r).JSON(apiDetailResponse{Results: film})
}

// healthHandler reports process health and cache occupancy
func healthHandler(w http.ResponseWriter, r *http.Request) {
	Respond(w, r).JSON(map[string]interface{}{
		"status":         "ok",
		"listings":       catalogCache.Size(),
		"merged_cities":  catalogCache.MergedCities(),
		"breaker_state":  sourceBreaker.GetState().String(),
		"uptime_seconds": stats.Get().GetSnapshot().UptimeSeconds,
	})
}

// statsHandler serves the counter snapshot
func statsHandler(w http.ResponseWriter, r *http.Request) {
	Respond(w, r).JSON(stats.Get().GetSnapshot())
}

// circuitBreakerStatusHandler reports the source-site breaker state
func circuitBreakerStatusHandler(w http.ResponseWriter, r *http.Request) {
	Respond(w, r).JSON(map[string]interface{}{
		"state":    sourceBreaker.GetState().String(),
		"failures": sourceBreaker.GetFailures(),
	})
}

// resetCircuitBreakerHandler forces the breaker closed
func resetCircuitBreakerHandler(w http.ResponseWriter, r *http.Request) {
	sourceBreaker.Reset()
	Respond(w, r).JSON(map[string]interface{}{
		"state": sourceBreaker.GetState().String(),
	})
}
