package afisha

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"showtimes-api-go/circuitbreaker"
	"showtimes-api-go/logcolors"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Fetcher retrieves a raw page by URL. The catalog core talks to the source
// site only through this interface so tests can inject fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Client fetches pages over HTTP with a bounded timeout and an optional
// circuit breaker guarding the source site.
type Client struct {
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

// NewClient creates a Client with the given per-request timeout.
// breaker may be nil to disable circuit breaking.
func NewClient(timeout time.Duration, breaker *circuitbreaker.CircuitBreaker) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

// Fetch retrieves the page at url. All failures come back as *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return "", &FetchError{URL: url, Err: circuitbreaker.ErrCircuitOpen}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	log.Debugf("%s GET %s", logcolors.LogFetch, url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordFailure()
		return "", &FetchError{URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return "", &FetchError{URL: url, Err: err}
	}

	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
	return string(body), nil
}

func (c *Client) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}
