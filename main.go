package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"showtimes-api-go/catalog"
	"showtimes-api-go/circuitbreaker"
	"showtimes-api-go/cities"
	"showtimes-api-go/config"
	"showtimes-api-go/logcolors"
	"showtimes-api-go/middleware"
	"showtimes-api-go/services/afisha"
	"showtimes-api-go/stats"
)

var conf = config.Get()

var (
	catalogCache  *catalog.Cache
	cityRegistry  *cities.Registry
	sourceBreaker *circuitbreaker.CircuitBreaker
	statsStore    *stats.Store
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	err := godotenv.Load()
	if err != nil {
		log.Warn("Error loading .env file, using environment variables")
	}
}

// initDependencies wires the fetch client, catalog cache, city registry and
// stats store from configuration
func initDependencies() {
	cfg := conf.Configuration

	sourceBreaker = circuitbreaker.New(circuitbreaker.Config{
		Name:      "afisha",
		Threshold: cfg.CircuitBreakerThreshold,
		Cooldown:  time.Duration(cfg.CircuitBreakerCooldownSecs) * time.Second,
	})

	client := afisha.NewClient(time.Duration(cfg.FetchTimeoutInSeconds)*time.Second, sourceBreaker)

	catalogCache = catalog.NewCache(catalog.Config{
		Fetcher:     client,
		Enricher:    catalog.NewEnricher(client, cfg.PoolCount),
		BaseURL:     cfg.AfishaBaseURL,
		TTL:         time.Duration(cfg.CatalogTTLInSeconds) * time.Second,
		EnrichLimit: cfg.EnrichLimit,
	})

	cityRegistry = cities.NewRegistry(client, cfg.AfishaBaseURL, cfg.DefaultCityID,
		time.Duration(cfg.CitiesTTLInSeconds)*time.Second)

	var err error
	statsStore, err = stats.NewStore(cfg.StatsDBPath)
	if err != nil {
		log.Warnf("%s Stats persistence disabled: %v", logcolors.LogStats, err)
	}

	log.Infof("%s Catalog cache ready (TTL %ds, enrich limit %d, pool %d)",
		logcolors.LogServer, cfg.CatalogTTLInSeconds, cfg.EnrichLimit, cfg.PoolCount)
}

func main() {
	initDependencies()

	router := mux.NewRouter()
	setupRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})

	limiter := middleware.NewIPRateLimiter(
		rate.Limit(conf.Configuration.RateLimitPerSecond),
		conf.Configuration.RateLimitBurstLimit,
	)

	loggedRouter := middleware.LoggingMiddleware(router)
	corsHandler := c.Handler(loggedRouter)
	handler := limitMiddleware(corsHandler, limiter)

	log.Infof("%s Server listening on port %s", logcolors.LogServer, port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func limitMiddleware(next http.Handler, limiter *middleware.IPRateLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.GetLimiter(r.RemoteAddr).Allow() {
			stats.Get().RecordRateLimited()
			log.Warnf("%s IP %s exceeded rate limit", logcolors.LogRateLimit, r.RemoteAddr)
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
