package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dori/tminus/internal/model"
	"github.com/google/uuid"
)

const timerColumns = `id, name, target_ms, important, completed, completed_ms, created_ms`

// CreateTimer inserts a timer at the head of the collection.
// Input must already have passed model.ValidateInput.
func (db *DB) CreateTimer(name string, target, now time.Time) (*model.Timer, error) {
	t := model.Timer{
		ID:        uuid.New().String(),
		Name:      name,
		Target:    time.UnixMilli(target.UnixMilli()),
		CreatedAt: time.UnixMilli(now.UnixMilli()),
	}

	_, err := db.Exec(`
		INSERT INTO timers (id, name, target_ms, created_ms)
		VALUES (?, ?, ?, ?)
	`, t.ID, t.Name, t.Target.UnixMilli(), t.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to insert timer: %w", err)
	}

	return &t, nil
}

// ListTimers returns every timer, newest first
func (db *DB) ListTimers() ([]model.Timer, error) {
	rows, err := db.Query(`SELECT ` + timerColumns + ` FROM timers ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list timers: %w", err)
	}
	defer rows.Close()

	var timers []model.Timer
	for rows.Next() {
		t, err := scanTimer(rows)
		if err != nil {
			return nil, err
		}
		timers = append(timers, *t)
	}
	return timers, rows.Err()
}

// GetTimer returns a single timer by ID, or nil if it does not exist
func (db *DB) GetTimer(id string) (*model.Timer, error) {
	row := db.QueryRow(`SELECT `+timerColumns+` FROM timers WHERE id = ?`, id)

	t, err := scanTimer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CountTimers returns the collection size
func (db *DB) CountTimers() (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM timers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count timers: %w", err)
	}
	return n, nil
}

// DeleteTimer removes a timer. Unknown IDs are ignored.
func (db *DB) DeleteTimer(id string) (bool, error) {
	result, err := db.Exec(`DELETE FROM timers WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete timer: %w", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ToggleImportant flips the importance flag. Unknown IDs are ignored.
func (db *DB) ToggleImportant(id string) (bool, error) {
	result, err := db.Exec(`UPDATE timers SET important = 1 - important WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to toggle importance: %w", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// MarkCompleted sets the completed flag if it is not set yet.
// It reports true only when this call performed the transition.
func (db *DB) MarkCompleted(id string, at time.Time) (bool, error) {
	result, err := db.Exec(`
		UPDATE timers SET completed = 1, completed_ms = ?
		WHERE id = ? AND completed = 0
	`, at.UnixMilli(), id)
	if err != nil {
		return false, fmt.Errorf("failed to complete timer: %w", err)
	}
	n, _ := result.RowsAffected()
	return n == 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTimer(s scanner) (*model.Timer, error) {
	var (
		t                    model.Timer
		targetMs, createdMs  int64
		important, completed int
		completedMs          sql.NullInt64
	)

	if err := s.Scan(&t.ID, &t.Name, &targetMs, &important, &completed, &completedMs, &createdMs); err != nil {
		return nil, err
	}

	t.Target = time.UnixMilli(targetMs)
	t.CreatedAt = time.UnixMilli(createdMs)
	t.Important = important == 1
	t.Completed = completed == 1
	if completedMs.Valid {
		at := time.UnixMilli(completedMs.Int64)
		t.CompletedAt = &at
	}
	return &t, nil
}
