package datastore

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/anfieldrd/kopwatch/internal/common"
	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/models"
)

// RunLog records one row per invocation in a local SQLite database so past
// runs can be inspected without trawling logs.
type RunLog struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewRunLog opens the run log database, creating it and its schema when
// missing.
func NewRunLog(logger zerolog.Logger, cfg config.StorageConfig) (*RunLog, error) {
	componentLogger := logger.With().Str("component", "RunLog").Logger()

	dbDir := filepath.Dir(cfg.RunLogPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, common.WrapError(err, "failed to create run log directory "+dbDir)
	}

	dbInstance, err := sql.Open("sqlite", cfg.RunLogPath)
	if err != nil {
		return nil, common.WrapError(err, "failed to open run log database "+cfg.RunLogPath)
	}

	rl := &RunLog{
		db:     dbInstance,
		logger: componentLogger,
	}

	if err := rl.initSchema(); err != nil {
		_ = rl.Close()
		return nil, common.WrapError(err, "failed to initialize run log schema")
	}

	componentLogger.Debug().Str("path", cfg.RunLogPath).Msg("Run log database ready")
	return rl, nil
}

// Close closes the database connection.
func (rl *RunLog) Close() error {
	if rl.db != nil {
		return rl.db.Close()
	}
	return nil
}

func (rl *RunLog) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		targets INTEGER NOT NULL,
		checked INTEGER NOT NULL,
		not_modified INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		changes INTEGER NOT NULL,
		notified INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := rl.db.Exec(query)
	return err
}

// RecordRun inserts a summary row for a completed run.
func (rl *RunLog) RecordRun(summary models.RunSummary) error {
	query := `INSERT INTO run_history (started_at, duration_ms, targets, checked, not_modified, skipped, changes, notified) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := rl.db.Exec(query,
		summary.StartedAt,
		summary.Duration.Milliseconds(),
		summary.Targets,
		summary.Checked,
		summary.NotModified,
		summary.Skipped,
		summary.Changes,
		boolToInt(summary.Notified),
	)
	if err != nil {
		return common.WrapError(err, "failed to insert run record")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return common.WrapError(err, "failed to get run record ID")
	}

	rl.logger.Info().Int64("run_id", id).Int("changes", summary.Changes).Msg("Recorded run in history database")
	return nil
}

// CountRuns returns the number of recorded runs.
func (rl *RunLog) CountRuns() (int, error) {
	var count int
	if err := rl.db.QueryRow(`SELECT COUNT(*) FROM run_history`).Scan(&count); err != nil {
		return 0, common.WrapError(err, "failed to count run records")
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
