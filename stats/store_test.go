package stats

import (
	"path/filepath"
	"testing"
)

func TestStoreSaveAndRestore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stats.db")

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	before := Get().Reconciliations.Load()
	Get().RecordReconciliation()
	Get().RecordCatalogHit()

	if err := store.Save(); err != nil {
		t.Fatalf("Failed to save stats: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	// Reset the counter, then reopen: restore should bring it back
	Get().Reconciliations.Store(0)

	store2, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer store2.Close()

	if got := Get().Reconciliations.Load(); got != before+1 {
		t.Errorf("Expected %d reconciliations after restore, got %d", before+1, got)
	}
}

func TestSnapshotHitRate(t *testing.T) {
	s := &Stats{}
	s.CatalogHits.Store(3)
	s.Reconciliations.Store(1)

	snap := s.GetSnapshot()
	if snap.HitRatePercent != 75 {
		t.Errorf("Expected hit rate 75%%, got %v", snap.HitRatePercent)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	s := &Stats{}
	snap := s.GetSnapshot()

	if snap.HitRatePercent != 0 {
		t.Errorf("Expected 0 hit rate with no traffic, got %v", snap.HitRatePercent)
	}
	if snap.AvgResponseTimeMs != 0 {
		t.Errorf("Expected 0 avg response time with no traffic, got %v", snap.AvgResponseTimeMs)
	}
}
