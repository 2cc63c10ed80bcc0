package db

import (
	"testing"
	"time"
)

func TestCreateTimerNewestFirst(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	for _, name := range []string{"A", "B", "C"} {
		if _, err := db.CreateTimer(name, now.Add(time.Hour), now); err != nil {
			t.Fatalf("CreateTimer(%s) failed: %v", name, err)
		}
	}

	timers, err := db.ListTimers()
	if err != nil {
		t.Fatalf("ListTimers failed: %v", err)
	}
	var got []string
	for _, timer := range timers {
		got = append(got, timer.Name)
	}
	if len(got) != 3 || got[0] != "C" || got[1] != "B" || got[2] != "A" {
		t.Errorf("order = %v, want [C B A]", got)
	}
}

func TestCreateTimerFields(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	target := now.Add(2 * time.Second)

	created, err := db.CreateTimer("Launch", target, now)
	if err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}

	stored, err := db.GetTimer(created.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetTimer = %v, %v", stored, err)
	}
	if stored.Name != "Launch" || stored.Important || stored.Completed || stored.CompletedAt != nil {
		t.Errorf("unexpected stored timer: %+v", stored)
	}
	if stored.Target.UnixMilli() != target.UnixMilli() {
		t.Errorf("target = %d, want %d", stored.Target.UnixMilli(), target.UnixMilli())
	}
	if stored.CreatedAt.UnixMilli() != now.UnixMilli() {
		t.Errorf("created = %d, want %d", stored.CreatedAt.UnixMilli(), now.UnixMilli())
	}
}

func TestCreateTimerRejectsBlankName(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	if _, err := db.CreateTimer("   ", now.Add(time.Hour), now); err == nil {
		t.Fatal("expected CHECK constraint failure for blank name")
	}
	if n, _ := db.CountTimers(); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestMarkCompletedIdempotent(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	timer, err := db.CreateTimer("once", now.Add(time.Second), now)
	if err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}

	first, err := db.MarkCompleted(timer.ID, now.Add(time.Second))
	if err != nil || !first {
		t.Fatalf("first MarkCompleted = %v, %v; want true", first, err)
	}
	second, err := db.MarkCompleted(timer.ID, now.Add(2*time.Second))
	if err != nil || second {
		t.Fatalf("second MarkCompleted = %v, %v; want false", second, err)
	}

	stored, _ := db.GetTimer(timer.ID)
	if !stored.Completed {
		t.Error("timer not completed")
	}
	// The first transition's timestamp sticks
	if stored.CompletedAt == nil || stored.CompletedAt.UnixMilli() != now.Add(time.Second).UnixMilli() {
		t.Errorf("CompletedAt = %v", stored.CompletedAt)
	}

	missing, err := db.MarkCompleted("nope", now)
	if err != nil || missing {
		t.Errorf("MarkCompleted(unknown) = %v, %v", missing, err)
	}
}

func TestToggleImportant(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	timer, _ := db.CreateTimer("flag", now.Add(time.Hour), now)

	for i, want := range []bool{true, false, true} {
		if ok, err := db.ToggleImportant(timer.ID); err != nil || !ok {
			t.Fatalf("toggle %d: %v, %v", i, ok, err)
		}
		stored, _ := db.GetTimer(timer.ID)
		if stored.Important != want {
			t.Errorf("toggle %d: important = %v, want %v", i, stored.Important, want)
		}
	}

	// Completion keeps the flag
	db.MarkCompleted(timer.ID, now)
	stored, _ := db.GetTimer(timer.ID)
	if !stored.Important {
		t.Error("completion cleared importance")
	}

	if ok, err := db.ToggleImportant("missing"); err != nil || ok {
		t.Errorf("ToggleImportant(missing) = %v, %v", ok, err)
	}
}

func TestDeleteTimer(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	a, _ := db.CreateTimer("A", now.Add(time.Hour), now)
	db.CreateTimer("B", now.Add(time.Hour), now)

	if ok, err := db.DeleteTimer("missing"); err != nil || ok {
		t.Fatalf("DeleteTimer(missing) = %v, %v", ok, err)
	}
	if n, _ := db.CountTimers(); n != 2 {
		t.Fatalf("count after no-op delete = %d", n)
	}

	if ok, err := db.DeleteTimer(a.ID); err != nil || !ok {
		t.Fatalf("DeleteTimer = %v, %v", ok, err)
	}
	if got, _ := db.GetTimer(a.ID); got != nil {
		t.Error("deleted timer still present")
	}
	if n, _ := db.CountTimers(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
