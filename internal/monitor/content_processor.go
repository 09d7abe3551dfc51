package monitor

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/config"
)

// ContentProcessor caps normalized page text and fingerprints it for
// change comparison.
type ContentProcessor struct {
	cfg    config.MonitorConfig
	logger zerolog.Logger
}

// NewContentProcessor creates a new ContentProcessor.
func NewContentProcessor(logger zerolog.Logger, cfg config.MonitorConfig) *ContentProcessor {
	return &ContentProcessor{
		cfg:    cfg,
		logger: logger.With().Str("component", "ContentProcessor").Logger(),
	}
}

// CapSnapshot bounds text to the configured character limit. The hash and
// the stored snapshot must both be derived from the capped string so they
// never diverge.
func (cp *ContentProcessor) CapSnapshot(text string) string {
	maxChars := cp.cfg.MaxSnapshotChars
	if maxChars <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	cp.logger.Debug().
		Int("chars", len(runes)).
		Int("max_chars", maxChars).
		Msg("Capping snapshot text")
	return string(runes[:maxChars])
}

// HashContent calculates the SHA-256 fingerprint of a capped snapshot.
func (cp *ContentProcessor) HashContent(snapshot string) string {
	hash := sha256.Sum256([]byte(snapshot))
	return fmt.Sprintf("%x", hash)
}
