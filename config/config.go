package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Configuration struct {
		// Catalog cache
		CatalogTTLInSeconds int `envconfig:"CATALOG_TTL_IN_SECONDS" default:"43200"`
		CitiesTTLInSeconds  int `envconfig:"CITIES_TTL_IN_SECONDS" default:"43200"`
		EnrichLimit         int `envconfig:"ENRICH_LIMIT" default:"30"` // max new listings enriched per reconciliation
		PoolCount           int `envconfig:"POOL_COUNT" default:"4"`    // concurrent detail fetches

		// Source site
		AfishaBaseURL         string `envconfig:"AFISHA_BASE_URL" default:"https://www.afisha.ru"`
		FetchTimeoutInSeconds int    `envconfig:"FETCH_TIMEOUT_IN_SECONDS" default:"10"`

		// Presentation defaults
		DefaultCityID         string `envconfig:"DEFAULT_CITY_ID" default:"msk"`
		DefaultCityName       string `envconfig:"DEFAULT_CITY_NAME" default:"Москва"`
		CookieMaxAgeInSeconds int    `envconfig:"COOKIE_MAX_AGE_IN_SECONDS" default:"604800"`

		// Rate limiting
		RateLimitPerSecond  int `envconfig:"RATE_LIMIT_PER_SECOND" default:"2"`
		RateLimitBurstLimit int `envconfig:"RATE_LIMIT_BURST_LIMIT" default:"5"`

		// Circuit breaker for the source site
		CircuitBreakerThreshold    int `envconfig:"CIRCUIT_BREAKER_THRESHOLD" default:"5"`    // Consecutive failures before circuit opens
		CircuitBreakerCooldownSecs int `envconfig:"CIRCUIT_BREAKER_COOLDOWN_SECS" default:"300"` // Seconds to wait before retrying

		// Stats persistence
		StatsDBPath string `envconfig:"STATS_DB_PATH" default:"./data/stats.db"`
	}
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("Error loading env config: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

func Get() Config {
	return conf
}
