package circuitbreaker

import (
	"testing"
	"time"
)

func TestCircuitBreaker_ClosedAllowsRequests(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 3, Cooldown: time.Minute})

	for i := 0; i < 10; i++ {
		if !cb.Allow() {
			t.Fatalf("Expected request %d to be allowed while closed", i)
		}
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 3, Cooldown: time.Minute})

	cb.RecordFailure()
	cb.RecordFailure()
	if cb.GetState() != StateClosed {
		t.Fatalf("Expected CLOSED below threshold, got %v", cb.GetState())
	}

	cb.RecordFailure()
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected OPEN after threshold, got %v", cb.GetState())
	}
	if cb.Allow() {
		t.Error("Expected requests to be blocked while open")
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 3, Cooldown: time.Minute})

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()

	if cb.GetState() != StateClosed {
		t.Errorf("Expected CLOSED after interleaved success, got %v", cb.GetState())
	}
	if cb.GetFailures() != 2 {
		t.Errorf("Expected 2 failures, got %d", cb.GetFailures())
	}
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 1, Cooldown: 10 * time.Millisecond})

	cb.RecordFailure()
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected OPEN, got %v", cb.GetState())
	}

	time.Sleep(20 * time.Millisecond)

	// First request after cooldown is the probe
	if !cb.Allow() {
		t.Fatal("Expected probe to be allowed after cooldown")
	}
	if cb.GetState() != StateHalfOpen {
		t.Fatalf("Expected HALF-OPEN, got %v", cb.GetState())
	}

	// Only one probe at a time
	if cb.Allow() {
		t.Error("Expected second request to be blocked in half-open state")
	}

	cb.RecordSuccess()
	if cb.GetState() != StateClosed {
		t.Errorf("Expected CLOSED after successful probe, got %v", cb.GetState())
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 1, Cooldown: 10 * time.Millisecond})

	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)

	if !cb.Allow() {
		t.Fatal("Expected probe to be allowed after cooldown")
	}
	cb.RecordFailure()

	if cb.GetState() != StateOpen {
		t.Errorf("Expected OPEN after failed probe, got %v", cb.GetState())
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 1, Cooldown: time.Hour})

	cb.RecordFailure()
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected OPEN, got %v", cb.GetState())
	}

	cb.Reset()
	if cb.GetState() != StateClosed {
		t.Errorf("Expected CLOSED after reset, got %v", cb.GetState())
	}
	if !cb.Allow() {
		t.Error("Expected requests allowed after reset")
	}
}

func TestCircuitBreaker_Defaults(t *testing.T) {
	cb := New(Config{})

	if cb.threshold != 5 {
		t.Errorf("Expected default threshold 5, got %d", cb.threshold)
	}
	if cb.cooldown != 5*time.Minute {
		t.Errorf("Expected default cooldown 5m, got %v", cb.cooldown)
	}
	if cb.name != "default" {
		t.Errorf("Expected default name, got %q", cb.name)
	}
}
