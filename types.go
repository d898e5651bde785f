package main

import (
	"showtimes-api-go/catalog"
	"showtimes-api-go/cities"
)

// commonContext carries the shared presentation state: the city column
// layout for the header and the visitor's selected city
type commonContext struct {
	CityColumns      [][]cities.City
	CityID           string
	SelectedCityName string
}

// filmsListView is the template data for the films list page
type filmsListView struct {
	Common      commonContext
	Header      string
	Films       []catalog.Listing
	TopSize     int
	CinemasOver int
	RatingOver  float64
}

// filmDetailView is the template data for the film detail page
type filmDetailView struct {
	Common commonContext
	Header string
	Film   catalog.Listing
}

// aboutView is the template data for the API description page
type aboutView struct {
	Common commonContext
	Header string
}

// apiListResponse is the body of /api/get_films_list
type apiListResponse struct {
	Results []catalog.Listing `json:"results"`
}

// apiDetailResponse is the body of /api/movie/{id}
type apiDetailResponse struct {
	Results catalog.Listing `json:"results"`
}

// apiErrorResponse is the error body for the JSON endpoints
type apiErrorResponse struct {
	Error string `json:"error"`
}
