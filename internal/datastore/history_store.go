package datastore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/common"
	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/models"
)

// HistoryStore appends per-check records to a Parquet file per run, one
// file per invocation named after the run start time.
type HistoryStore struct {
	cfg    config.StorageConfig
	logger zerolog.Logger
}

// NewHistoryStore creates a new HistoryStore instance.
func NewHistoryStore(logger zerolog.Logger, cfg config.StorageConfig) *HistoryStore {
	return &HistoryStore{
		cfg:    cfg,
		logger: logger.With().Str("component", "HistoryStore").Logger(),
	}
}

// Enabled reports whether check history recording is turned on.
func (hs *HistoryStore) Enabled() bool {
	return hs.cfg.HistoryEnabled
}

// WriteRun writes all check records of a single run into a new Parquet
// file under the history directory. Returns the file path written.
func (hs *HistoryStore) WriteRun(startedAt time.Time, records []models.CheckRecord) (string, error) {
	if err := os.MkdirAll(hs.cfg.HistoryDir, 0755); err != nil {
		return "", common.WrapError(err, "failed to create history directory "+hs.cfg.HistoryDir)
	}

	fileName := fmt.Sprintf("checks-%s.parquet", startedAt.Format("20060102-150405"))
	filePath := filepath.Join(hs.cfg.HistoryDir, fileName)

	file, err := os.Create(filePath)
	if err != nil {
		return "", common.WrapError(err, "failed to create parquet file: "+filePath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[models.CheckRecord](file, hs.getCompressionOption())
	written, err := writer.Write(records)
	if err != nil {
		return "", common.WrapError(err, "failed to write check records to parquet file")
	}
	if err := writer.Close(); err != nil {
		return "", common.WrapError(err, "failed to finalize parquet file")
	}

	hs.logger.Info().
		Str("path", filePath).
		Int("records", written).
		Msg("Check history written")
	return filePath, nil
}

// getCompressionOption returns the compression option based on configuration
func (hs *HistoryStore) getCompressionOption() parquet.WriterOption {
	switch hs.cfg.CompressionCodec {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}

// StringPtrOrNil converts string to pointer, or nil if string is empty
func StringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Int64PtrOrNilZero converts int64 to pointer, or nil if value is 0
func Int64PtrOrNilZero(i int64) *int64 {
	if i == 0 {
		return nil
	}
	return &i
}
