// ABOUTME: SQLite-backed journal of per-category sync state and pass history
// ABOUTME: Tracks idle/syncing/error status, last sync time, and per-pass counts
package sync

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
)

// Sync status values.
const (
	StatusIdle    = "idle"
	StatusSyncing = "syncing"
	StatusError   = "error"
)

// State is one category's journal row.
type State struct {
	Category     models.RecordType
	Status       string
	LastSyncTime *time.Time
	ErrorMessage *string
	UpdatedAt    time.Time
}

// PassLog is one committed category upload within a reconciliation pass.
type PassLog struct {
	ID          string
	PassID      string
	Category    models.RecordType
	SyncedCount int
	CompletedAt time.Time
}

// Journal records reconciliation activity in a local SQLite database.
type Journal struct {
	db *sql.DB
}

// DefaultJournalPath returns the XDG-compliant journal location.
func DefaultJournalPath() string {
	return filepath.Join(xdg.DataHome, store.AppName, "sync.db")
}

// OpenJournal opens (or creates) the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open sync journal: %w", err)
	}

	// Single connection avoids database-locked errors with SQLite.
	db.SetMaxOpenConns(1)

	if err := initJournalSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

func initJournalSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sync_state (
		category TEXT PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'idle',
		last_sync_time TIMESTAMP,
		error_message TEXT,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS sync_log (
		id TEXT PRIMARY KEY,
		pass_id TEXT NOT NULL,
		category TEXT NOT NULL,
		synced_count INTEGER NOT NULL,
		completed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_sync_log_pass ON sync_log(pass_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// SetStatus updates a category's sync status. errMsg is stored for
// StatusError and cleared otherwise.
func (j *Journal) SetStatus(category models.RecordType, status string, errMsg *string) error {
	var errVal sql.NullString
	if errMsg != nil {
		errVal = sql.NullString{String: *errMsg, Valid: true}
	}

	_, err := j.db.Exec(`
		INSERT INTO sync_state (category, status, error_message, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(category) DO UPDATE SET
			status = excluded.status,
			error_message = excluded.error_message,
			updated_at = CURRENT_TIMESTAMP
	`, string(category), status, errVal)
	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}
	return nil
}

// MarkCompleted records a committed category upload: the category goes
// idle with a fresh last_sync_time and a sync_log row for the pass.
func (j *Journal) MarkCompleted(passID string, category models.RecordType, syncedCount int) error {
	_, err := j.db.Exec(`
		INSERT INTO sync_state (category, status, last_sync_time, error_message, updated_at)
		VALUES (?, 'idle', CURRENT_TIMESTAMP, NULL, CURRENT_TIMESTAMP)
		ON CONFLICT(category) DO UPDATE SET
			status = 'idle',
			last_sync_time = CURRENT_TIMESTAMP,
			error_message = NULL,
			updated_at = CURRENT_TIMESTAMP
	`, string(category))
	if err != nil {
		return fmt.Errorf("failed to mark category completed: %w", err)
	}

	_, err = j.db.Exec(`
		INSERT INTO sync_log (id, pass_id, category, synced_count, completed_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, uuid.New().String(), passID, string(category), syncedCount)
	if err != nil {
		return fmt.Errorf("failed to record sync log: %w", err)
	}
	return nil
}

// GetState returns one category's journal row, or nil when it has never
// been touched by a pass.
func (j *Journal) GetState(category models.RecordType) (*State, error) {
	var state State
	var cat string
	var lastSync sql.NullTime
	var errMsg sql.NullString

	err := j.db.QueryRow(`
		SELECT category, status, last_sync_time, error_message, updated_at
		FROM sync_state WHERE category = ?
	`, string(category)).Scan(&cat, &state.Status, &lastSync, &errMsg, &state.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}

	state.Category = models.RecordType(cat)
	if lastSync.Valid {
		state.LastSyncTime = &lastSync.Time
	}
	if errMsg.Valid {
		state.ErrorMessage = &errMsg.String
	}
	return &state, nil
}

// GetAllStates returns every category's journal row, ordered by category.
func (j *Journal) GetAllStates() ([]State, error) {
	rows, err := j.db.Query(`
		SELECT category, status, last_sync_time, error_message, updated_at
		FROM sync_state ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync states: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var states []State
	for rows.Next() {
		var state State
		var cat string
		var lastSync sql.NullTime
		var errMsg sql.NullString

		if err := rows.Scan(&cat, &state.Status, &lastSync, &errMsg, &state.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync state: %w", err)
		}

		state.Category = models.RecordType(cat)
		if lastSync.Valid {
			state.LastSyncTime = &lastSync.Time
		}
		if errMsg.Valid {
			state.ErrorMessage = &errMsg.String
		}
		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync states: %w", err)
	}
	return states, nil
}

// PassHistory returns the logged category uploads, newest first.
func (j *Journal) PassHistory(limit int) ([]PassLog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(`
		SELECT id, pass_id, category, synced_count, completed_at
		FROM sync_log ORDER BY completed_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []PassLog
	for rows.Next() {
		var entry PassLog
		var cat string
		if err := rows.Scan(&entry.ID, &entry.PassID, &cat, &entry.SyncedCount, &entry.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync log: %w", err)
		}
		entry.Category = models.RecordType(cat)
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync log: %w", err)
	}
	return logs, nil
}
