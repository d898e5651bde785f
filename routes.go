package main

import (
	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *mux.Router) {
	// HTML pages
	router.HandleFunc("/", filmsListHandler)
	router.HandleFunc("/movie/{id:[0-9]+}/", filmDetailHandler)
	router.HandleFunc("/api", apiAboutHandler)

	// Machine-readable API
	router.HandleFunc("/api/get_films_list", apiFilmsListHandler)
	router.HandleFunc("/api/movie/{id:[0-9]+}", apiFilmDetailHandler)

	// Health and stats endpoints
	router.HandleFunc("/health", healthHandler)
	router.HandleFunc("/stats", statsHandler)

	// Circuit breaker endpoints
	router.HandleFunc("/circuit-breaker", circuitBreakerStatusHandler)
	router.HandleFunc("/circuit-breaker/reset", resetCircuitBreakerHandler)

	// City selection, last: it catches every other single-segment path
	router.HandleFunc("/{city:[a-z0-9_]+}/", citySelectHandler)
}
