package monitor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/common"
	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/datastore"
	"github.com/anfieldrd/kopwatch/internal/differ"
	"github.com/anfieldrd/kopwatch/internal/httpclient"
	"github.com/anfieldrd/kopwatch/internal/models"
	"github.com/anfieldrd/kopwatch/internal/normalizer"
	"github.com/anfieldrd/kopwatch/internal/notifier"
	"github.com/anfieldrd/kopwatch/internal/slugtitle"
	"github.com/anfieldrd/kopwatch/internal/urlhandler"
)

// Service drives one monitoring pass over all configured targets.
type Service struct {
	cfg           *config.GlobalConfig
	targetManager *TargetManager
	fetcher       *httpclient.PageFetcher
	normalizer    *normalizer.TextNormalizer
	processor     *ContentProcessor
	differ        *differ.ContentDiffer
	stateStore    *datastore.StateStore
	historyStore  *datastore.HistoryStore
	runLog        *datastore.RunLog
	notification  *notifier.NotificationHelper
	logger        zerolog.Logger
}

// ServiceDeps bundles the collaborators a Service drives. HistoryStore and
// RunLog may be nil when their features are disabled.
type ServiceDeps struct {
	TargetManager *TargetManager
	Fetcher       *httpclient.PageFetcher
	Normalizer    *normalizer.TextNormalizer
	Processor     *ContentProcessor
	Differ        *differ.ContentDiffer
	StateStore    *datastore.StateStore
	HistoryStore  *datastore.HistoryStore
	RunLog        *datastore.RunLog
	Notifier      *notifier.NotificationHelper
}

// NewService creates a new monitoring Service.
func NewService(logger zerolog.Logger, cfg *config.GlobalConfig, deps ServiceDeps) *Service {
	return &Service{
		cfg:           cfg,
		targetManager: deps.TargetManager,
		fetcher:       deps.Fetcher,
		normalizer:    deps.Normalizer,
		processor:     deps.Processor,
		differ:        deps.Differ,
		stateStore:    deps.StateStore,
		historyStore:  deps.HistoryStore,
		runLog:        deps.RunLog,
		notification:  deps.Notifier,
		logger:        logger.With().Str("component", "MonitorService").Logger(),
	}
}

// checkOutcome captures the result of a single target check.
type checkOutcome struct {
	record        *models.PageRecord // nil when the target was skipped
	event         *models.ChangeEvent
	notModified   bool
	contentLength int64
	checkErr      error
}

// RunOnce executes one full monitoring pass: load prior state, expand
// targets, check each sequentially, send one notification if anything
// changed, persist the new state. The returned error is non-nil only when
// the run was cancelled or state persistence failed; per-target failures
// are logged and counted as skips.
func (s *Service) RunOnce(ctx context.Context) (*models.RunSummary, error) {
	startedAt := time.Now()
	summary := &models.RunSummary{StartedAt: startedAt}

	previousState := s.stateStore.Load()
	targets := s.targetManager.BuildTargets(s.cfg.Sites)
	summary.Targets = len(targets)

	s.logger.Info().
		Int("sites", len(s.cfg.Sites)).
		Int("targets", len(targets)).
		Int("known_pages", len(previousState)).
		Msg("Starting monitoring pass")

	currentState := make(models.MonitoringState, len(targets))
	events := make([]models.ChangeEvent, 0)
	checkRecords := make([]models.CheckRecord, 0, len(targets))

	for _, target := range targets {
		// A cancelled run keeps the previous state so baselines for
		// unreached targets survive to the next invocation.
		if err := ctx.Err(); err != nil {
			s.logger.Warn().Err(err).Msg("Run cancelled before completing all targets, previous state kept")
			summary.Duration = time.Since(startedAt)
			return summary, err
		}

		outcome := s.checkTarget(ctx, target, previousState)
		checkRecords = append(checkRecords, buildCheckRecord(target, outcome))

		if outcome.checkErr != nil {
			summary.Skipped++
			continue
		}

		currentState[target.URL] = *outcome.record
		summary.Checked++
		if outcome.notModified {
			summary.NotModified++
		}
		if outcome.event != nil {
			events = append(events, *outcome.event)
		}
	}
	summary.Changes = len(events)

	if len(events) > 0 {
		summary.Notified = s.notification.SendChangeNotification(ctx, events)
	} else {
		s.logger.Info().Msg("No changes detected on any monitored pages")
	}

	s.recordHistory(startedAt, checkRecords)

	// The new state replaces the old wholesale; pages that dropped out of
	// the target list drop out of the state with it.
	if err := s.stateStore.Persist(currentState); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist monitoring state, change detection continuity is broken")
		s.notification.SendCriticalErrorNotification(ctx, "StateStore", err)
		summary.Duration = time.Since(startedAt)
		return summary, err
	}

	summary.Duration = time.Since(startedAt)
	s.recordRunLedger(summary)
	s.logRunSummary(summary)
	return summary, nil
}

// checkTarget fetches, normalizes and fingerprints one target, comparing
// the result against the prior state.
func (s *Service) checkTarget(ctx context.Context, target models.PageTarget, previousState models.MonitoringState) checkOutcome {
	prior, hadPrior := previousState[target.URL]

	input := httpclient.FetchInput{URL: target.URL}
	if hadPrior {
		input.PreviousETag = prior.ETag
		input.PreviousLastModified = prior.LastModified
	}

	result, err := s.fetcher.FetchPage(ctx, input)
	if errors.Is(err, common.ErrNotModified) {
		// Carry the prior record forward under a fresh timestamp; the
		// server vouched the content is unchanged.
		record := prior
		record.Name = target.Name
		record.Selector = target.Selector
		record.LastChecked = time.Now()
		if result.ETag != "" {
			record.ETag = result.ETag
		}
		if result.LastModified != "" {
			record.LastModified = result.LastModified
		}
		s.logger.Debug().Str("url", target.URL).Str("name", target.Name).Msg("Content not modified")
		return checkOutcome{record: &record, notModified: true}
	}
	if err != nil {
		s.logger.Error().Err(err).Str("url", target.URL).Str("name", target.Name).Msg("Fetch failed, skipping target")
		return checkOutcome{checkErr: err}
	}

	text, err := s.normalizer.Normalize(result.Body, target.Selector)
	if err != nil {
		s.logger.Error().Err(err).Str("url", target.URL).Str("name", target.Name).Msg("Normalization failed, skipping target")
		return checkOutcome{checkErr: err}
	}

	snapshot := s.processor.CapSnapshot(text)
	hash := s.processor.HashContent(snapshot)

	record := models.PageRecord{
		Name:         target.Name,
		Hash:         hash,
		LastChecked:  time.Now(),
		Selector:     target.Selector,
		Snapshot:     snapshot,
		ETag:         result.ETag,
		LastModified: result.LastModified,
	}
	outcome := checkOutcome{record: &record, contentLength: result.ContentLength}

	switch {
	case hadPrior && prior.Hash != hash:
		var diffText string
		if prior.Snapshot != "" {
			diffText = s.differ.UnifiedDiff(prior.Snapshot, snapshot)
		}
		event := models.ChangeEvent{
			Name:          target.Name,
			Title:         displayTitle(target),
			URL:           target.URL,
			PreviousCheck: previousCheckDisplay(prior),
			Diff:          diffText,
		}
		outcome.event = &event
		s.logger.Info().Str("name", target.Name).Str("url", target.URL).Msg("Change detected")
	case !hadPrior:
		s.logger.Info().Str("name", target.Name).Str("url", target.URL).Msg("First observation, establishing baseline")
	default:
		s.logger.Debug().Str("name", target.Name).Msg("No changes")
	}

	return outcome
}

// displayTitle picks the notification title: the slug-derived event title
// for pages matched by a discovery pattern, otherwise the target name.
func displayTitle(target models.PageTarget) string {
	if target.LinkPattern != "" && strings.Contains(target.URL, target.LinkPattern) {
		return slugtitle.TitleFromSlug(urlhandler.LastPathSegment(target.URL))
	}
	return target.Name
}

// previousCheckDisplay renders the prior observation time for the
// notification, "Unknown" when the prior record carried none.
func previousCheckDisplay(prior models.PageRecord) string {
	if prior.LastChecked.IsZero() {
		return "Unknown"
	}
	return prior.LastChecked.Format(time.RFC3339)
}

// buildCheckRecord converts a check outcome into its history archive row.
func buildCheckRecord(target models.PageTarget, outcome checkOutcome) models.CheckRecord {
	record := models.CheckRecord{
		URL:         target.URL,
		Name:        target.Name,
		Changed:     outcome.event != nil,
		NotModified: outcome.notModified,
		CheckedAt:   time.Now().UnixMilli(),
	}

	if outcome.checkErr != nil {
		record.CheckError = datastore.StringPtrOrNil(outcome.checkErr.Error())
		return record
	}

	record.ContentHash = datastore.StringPtrOrNil(outcome.record.Hash)
	record.ContentLength = datastore.Int64PtrOrNilZero(outcome.contentLength)
	return record
}

func (s *Service) recordHistory(startedAt time.Time, records []models.CheckRecord) {
	if s.historyStore == nil || !s.historyStore.Enabled() {
		return
	}
	if _, err := s.historyStore.WriteRun(startedAt, records); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write check history")
	}
}

func (s *Service) recordRunLedger(summary *models.RunSummary) {
	if s.runLog == nil {
		return
	}
	if err := s.runLog.RecordRun(*summary); err != nil {
		s.logger.Error().Err(err).Msg("Failed to record run in history database")
	}
}

func (s *Service) logRunSummary(summary *models.RunSummary) {
	usage := GetResourceUsage()
	s.logger.Info().
		Dur("duration", summary.Duration).
		Int("targets", summary.Targets).
		Int("checked", summary.Checked).
		Int("not_modified", summary.NotModified).
		Int("skipped", summary.Skipped).
		Int("changes", summary.Changes).
		Bool("notified", summary.Notified).
		Int64("alloc_mb", usage.AllocMB).
		Int64("sys_mem_used_mb", usage.SystemMemUsedMB).
		Float64("cpu_percent", usage.CPUUsagePercent).
		Msg("Monitoring pass complete")
}
