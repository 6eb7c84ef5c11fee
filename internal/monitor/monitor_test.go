package monitor

import (
	"errors"
	"sync"
	"testing"
)

func TestMonitor_FailAndSuccess(t *testing.T) {
	m := New("search", nil, nil)

	if m.ConsecutiveFailures() != 0 {
		t.Fatalf("new monitor should have 0 failures")
	}
	if !m.LastFailure().IsZero() {
		t.Fatalf("new monitor should have zero last failure time")
	}

	m.Fail("unable to execute search", errors.New("connection refused"))
	m.Fail("unable to execute search", errors.New("connection refused"))
	if got := m.ConsecutiveFailures(); got != 2 {
		t.Errorf("consecutive failures = %d, want 2", got)
	}
	if m.LastFailure().IsZero() {
		t.Errorf("last failure time should be set")
	}

	m.Success()
	if got := m.ConsecutiveFailures(); got != 0 {
		t.Errorf("consecutive failures after success = %d, want 0", got)
	}
}

func TestMonitor_ConcurrentUpdates(t *testing.T) {
	m := New("search", nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Fail("ctx", errors.New("boom"))
		}()
		go func() {
			defer wg.Done()
			m.Success()
		}()
	}
	wg.Wait()

	// Interleavings vary; the counter must stay within the bounds of the
	// operations performed.
	if got := m.ConsecutiveFailures(); got < 0 || got > 50 {
		t.Errorf("consecutive failures = %d, want within [0,50]", got)
	}
}
