package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"showtimes-api-go/logcolors"
)

const (
	statsBucketName = "stats"
	statsKey        = "server_stats"
	saveInterval    = 5 * time.Minute
)

// Store persists the cumulative counters to BoltDB so they survive
// restarts. Only the counters are persisted; the catalog cache itself is
// memory-resident and rebuilt after every restart.
type Store struct {
	db       *bolt.DB
	dbPath   string
	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// PersistedStats is the on-disk counter snapshot
type PersistedStats struct {
	TotalRequests     int64 `json:"total_requests"`
	CatalogRequests   int64 `json:"catalog_requests"`
	DetailRequests    int64 `json:"detail_requests"`
	APIRequests       int64 `json:"api_requests"`
	StatsRequests     int64 `json:"stats_requests"`
	HealthRequests    int64 `json:"health_requests"`
	OtherRequests     int64 `json:"other_requests"`
	CatalogHits       int64 `json:"catalog_hits"`
	Reconciliations   int64 `json:"reconciliations"`
	EnrichFailures    int64 `json:"enrich_failures"`
	RateLimitExceeded int64 `json:"rate_limit_exceeded"`
	Status2xx         int64 `json:"status_2xx"`
	Status3xx         int64 `json:"status_3xx"`
	Status4xx         int64 `json:"status_4xx"`
	Status5xx         int64 `json:"status_5xx"`
	LastSaved         int64 `json:"last_saved"`
}

// NewStore opens (or creates) the stats database and restores persisted
// counters into the global stats instance
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(statsBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create stats bucket: %w", err)
	}

	s := &Store{
		db:       db,
		dbPath:   dbPath,
		stopChan: make(chan struct{}),
	}

	if err := s.restore(); err != nil {
		log.Warnf("%s Failed to restore persisted stats: %v", logcolors.LogStats, err)
	}

	s.wg.Add(1)
	go s.saveLoop()

	log.Infof("%s Stats store initialized at %s", logcolors.LogStats, dbPath)
	return s, nil
}

// restore loads persisted counters back into the global stats
func (s *Store) restore() error {
	var persisted PersistedStats
	found := false

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(statsBucketName))
		if b == nil {
			return nil
		}
		data := b.Get([]byte(statsKey))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &persisted)
	})
	if err != nil || !found {
		return err
	}

	g := Get()
	g.TotalRequests.Store(persisted.TotalRequests)
	g.CatalogRequests.Store(persisted.CatalogRequests)
	g.DetailRequests.Store(persisted.DetailRequests)
	g.APIRequests.Store(persisted.APIRequests)
	g.StatsRequests.Store(persisted.StatsRequests)
	g.HealthRequests.Store(persisted.HealthRequests)
	g.OtherRequests.Store(persisted.OtherRequests)
	g.CatalogHits.Store(persisted.CatalogHits)
	g.Reconciliations.Store(persisted.Reconciliations)
	g.EnrichFailures.Store(persisted.EnrichFailures)
	g.RateLimitExceeded.Store(persisted.RateLimitExceeded)
	g.Status2xx.Store(persisted.Status2xx)
	g.Status3xx.Store(persisted.Status3xx)
	g.Status4xx.Store(persisted.Status4xx)
	g.Status5xx.Store(persisted.Status5xx)

	log.Infof("%s Restored persisted stats (%d total requests, saved %s)",
		logcolors.LogStats, persisted.TotalRequests,
		time.Unix(persisted.LastSaved, 0).Format(time.RFC3339))
	return nil
}

// Save writes the current counters to disk
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := Get()
	persisted := PersistedStats{
		TotalRequests:     g.TotalRequests.Load(),
		CatalogRequests:   g.CatalogRequests.Load(),
		DetailRequests:    g.DetailRequests.Load(),
		APIRequests:       g.APIRequests.Load(),
		StatsRequests:     g.StatsRequests.Load(),
		HealthRequests:    g.HealthRequests.Load(),
		OtherRequests:     g.OtherRequests.Load(),
		CatalogHits:       g.CatalogHits.Load(),
		Reconciliations:   g.Reconciliations.Load(),
		EnrichFailures:    g.EnrichFailures.Load(),
		RateLimitExceeded: g.RateLimitExceeded.Load(),
		Status2xx:         g.Status2xx.Load(),
		Status3xx:         g.Status3xx.Load(),
		Status4xx:         g.Status4xx.Load(),
		Status5xx:         g.Status5xx.Load(),
		LastSaved:         time.Now().Unix(),
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(statsBucketName))
		if b == nil {
			return fmt.Errorf("stats bucket not found")
		}
		return b.Put([]byte(statsKey), data)
	})
}

func (s *Store) saveLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(saveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Save(); err != nil {
				log.Errorf("%s Failed to persist stats: %v", logcolors.LogStats, err)
			}
		case <-s.stopChan:
			return
		}
	}
}

// Close saves one final time and shuts the store down
func (s *Store) Close() error {
	close(s.stopChan)
	s.wg.Wait()

	if err := s.Save(); err != nil {
		log.Errorf("%s Failed to persist stats on shutdown: %v", logcolors.LogStats, err)
	}
	return s.db.Close()
}
