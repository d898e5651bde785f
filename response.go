package main

import (
	"encoding/json"
	"net/http"
)

// APIResponse centralizes header setting and JSON encoding for the
// machine-readable endpoints
type APIResponse struct {
	w http.ResponseWriter
	r *http.Request
}

// Respond creates a response helper for a request
func Respond(w http.ResponseWriter, r *http.Request) *APIResponse {
	return &APIResponse{w: w, r: r}
}

// JSON writes data as JSON with a 200 OK
func (a *APIResponse) JSON(data interface{}) error {
	a.w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(a.w).Encode(data)
}

// Error writes data as JSON with the given status code
func (a *APIResponse) Error(statusCode int, data interface{}) error {
	a.w.Header().Set("Content-Type", "application/json")
	a.w.WriteHeader(statusCode)
	return json.NewEncoder(a.w).Encode(data)
}
