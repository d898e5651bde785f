package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"showtimes-api-go/stats"
)

// ResponseRecorder wraps http.ResponseWriter to capture the status code and
// body size for logging and stats
type ResponseRecorder struct {
	http.ResponseWriter
	StatusCode int
	BodySize   int
}

// NewResponseRecorder creates a recorder defaulting to 200 OK
func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (r *ResponseRecorder) WriteHeader(statusCode int) {
	r.StatusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *ResponseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.BodySize += n
	return n, err
}

// getStatusColor returns the ANSI color for a status code class
func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "\033[32m" // green
	case statusCode >= 300 && statusCode < 400:
		return "\033[36m" // cyan
	case statusCode >= 400 && statusCode < 500:
		return "\033[33m" // yellow
	case statusCode >= 500:
		return "\033[31m" // red
	default:
		return "\033[0m"
	}
}

// LoggingMiddleware logs every request with method, path, status, duration
// and body size, and feeds the stats counters
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := NewResponseRecorder(w)

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		stats.Get().RecordRequest(r.URL.Path)
		stats.Get().RecordStatus(rec.StatusCode)
		stats.Get().RecordResponseTime(duration)

		log.Infof("%s %s %s%d\033[0m %v %dB",
			r.Method, r.URL.RequestURI(), getStatusColor(rec.StatusCode), rec.StatusCode, duration, rec.BodySize)
	})
}
