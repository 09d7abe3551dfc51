package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/common"
	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/models"
)

// StateStore persists the monitoring state between runs as a JSON file
// keyed by page URL.
type StateStore struct {
	filePath string
	logger   zerolog.Logger
}

// NewStateStore creates a new StateStore instance.
func NewStateStore(logger zerolog.Logger, cfg config.StorageConfig) *StateStore {
	return &StateStore{
		filePath: cfg.StateFilePath,
		logger:   logger.With().Str("component", "StateStore").Logger(),
	}
}

// FilePath returns the path of the backing state file.
func (ss *StateStore) FilePath() string {
	return ss.filePath
}

// Load reads the state file. A missing file yields an empty state so the
// first run treats every page as new; a corrupt file is logged and also
// yields an empty state rather than aborting the run.
func (ss *StateStore) Load() models.MonitoringState {
	data, err := os.ReadFile(ss.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			ss.logger.Info().Str("path", ss.filePath).Msg("No existing state file, starting fresh")
		} else {
			ss.logger.Warn().Err(err).Str("path", ss.filePath).Msg("Failed to read state file, starting fresh")
		}
		return make(models.MonitoringState)
	}

	var state models.MonitoringState
	if err := json.Unmarshal(data, &state); err != nil {
		ss.logger.Warn().Err(err).Str("path", ss.filePath).Msg("State file is corrupt, starting fresh")
		return make(models.MonitoringState)
	}
	if state == nil {
		state = make(models.MonitoringState)
	}

	ss.logger.Debug().Int("entries", len(state)).Str("path", ss.filePath).Msg("Loaded monitoring state")
	return state
}

// Persist writes the state to a temp file next to the target and renames
// it into place, so a crash mid-write never truncates the previous state.
func (ss *StateStore) Persist(state models.MonitoringState) error {
	dir := filepath.Dir(ss.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return common.WrapError(err, "failed to create state directory "+dir)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return common.WrapError(err, "failed to marshal monitoring state")
	}

	tmpPath := ss.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return common.WrapError(err, "failed to write temp state file "+tmpPath)
	}
	if err := os.Rename(tmpPath, ss.filePath); err != nil {
		return common.WrapError(err, "failed to replace state file "+ss.filePath)
	}

	ss.logger.Debug().Int("entries", len(state)).Str("path", ss.filePath).Msg("Persisted monitoring state")
	return nil
}
