package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Red    = "\033[31m"
)

// Catalog log prefixes
const (
	LogCatalog   = Blue + "[Catalog]" + Reset
	LogReconcile = Green + "[Catalog:Reconcile]" + Reset
	LogExpire    = Blue + "[Catalog:Expire]" + Reset
	LogEnrich    = Cyan + "[Enrich]" + Reset
	LogCities    = Cyan + "[Cities]" + Reset
)

// Scraper log prefixes
const (
	LogFetch = Cyan + "[HTTP]" + Reset
	LogParse = Blue + "[Parse]" + Reset
)

// Server/Init log prefixes
const (
	LogServer    = Green + "[Server]" + Reset
	LogConfig    = Cyan + "[Config]" + Reset
	LogStats     = Blue + "[Stats]" + Reset
	LogRateLimit = Purple + "[RateLimit]" + Reset
)

// CircuitBreakerPrefix returns a colored circuit breaker prefix with the given name
func CircuitBreakerPrefix(name string) string {
	return Purple + "[CircuitBreaker:" + name + "]" + Reset
}
