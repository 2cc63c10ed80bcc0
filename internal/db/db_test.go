package db

import (
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestOpenIsolated verifies that two in-memory databases do not share rows.
func TestOpenIsolated(t *testing.T) {
	a := openTestDB(t)
	b := openTestDB(t)

	now := time.Now()
	if _, err := a.CreateTimer("only in a", now.Add(time.Hour), now); err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}

	n, err := b.CountTimers()
	if err != nil {
		t.Fatalf("CountTimers failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second database sees %d timers, want 0", n)
	}
}

// TestNestedQueriesNoDeadlock guards against holding the only connection
// open while issuing another query. With SetMaxOpenConns(1) that blocks forever.
func TestNestedQueriesNoDeadlock(t *testing.T) {
	db := openTestDB(t)

	now := time.Now()
	for i := 0; i < 5; i++ {
		if _, err := db.CreateTimer("timer", now.Add(time.Duration(i+1)*time.Minute), now); err != nil {
			t.Fatalf("CreateTimer failed: %v", err)
		}
	}

	done := make(chan bool, 1)
	go func() {
		timers, err := db.ListTimers()
		if err != nil {
			t.Errorf("ListTimers failed: %v", err)
			done <- false
			return
		}
		// ListTimers has closed its rows, so per-timer calls must not block
		for _, timer := range timers {
			if _, err := db.MarkCompleted(timer.ID, now); err != nil {
				t.Errorf("MarkCompleted failed: %v", err)
				done <- false
				return
			}
			if _, err := db.GetTimer(timer.ID); err != nil {
				t.Errorf("GetTimer failed: %v", err)
				done <- false
				return
			}
		}
		done <- true
	}()

	select {
	case success := <-done:
		if !success {
			t.Fatal("Test failed during execution")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out - possible deadlock detected")
	}
}
