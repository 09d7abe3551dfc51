package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/models"
)

// NotificationHelper decides whether and what to notify, keeping webhook
// wiring out of the monitor service.
type NotificationHelper struct {
	notifier *DiscordNotifier
	cfg      config.NotificationConfig
	logger   zerolog.Logger
}

// NewNotificationHelper creates a new NotificationHelper instance.
func NewNotificationHelper(logger zerolog.Logger, cfg config.NotificationConfig, notifier *DiscordNotifier) *NotificationHelper {
	return &NotificationHelper{
		notifier: notifier,
		cfg:      cfg,
		logger:   logger.With().Str("component", "NotificationHelper").Logger(),
	}
}

// SendChangeNotification delivers the per-run change summary as one
// message. A missing webhook URL disables delivery with a warning, and a
// delivery failure is logged but never fails the run. Returns true when a
// notification was actually sent.
func (nh *NotificationHelper) SendChangeNotification(ctx context.Context, events []models.ChangeEvent) bool {
	if len(events) == 0 {
		return false
	}

	if nh.cfg.DiscordWebhookURL == "" {
		nh.logger.Warn().Int("changes", len(events)).Msg("Discord webhook URL not set, skipping change notification")
		return false
	}

	payload := FormatChangesMessage(events, nh.cfg)
	if err := nh.notifier.SendNotification(ctx, nh.cfg.DiscordWebhookURL, payload); err != nil {
		nh.logger.Error().Err(err).Int("changes", len(events)).Msg("Failed to send change notification")
		return false
	}

	return true
}

// SendCriticalErrorNotification reports a continuity-breaking failure such
// as a state persist error. Best effort only.
func (nh *NotificationHelper) SendCriticalErrorNotification(ctx context.Context, component string, failure error) {
	if !nh.cfg.NotifyOnPersistError {
		return
	}
	if nh.cfg.DiscordWebhookURL == "" {
		nh.logger.Warn().Str("source_component", component).Msg("Discord webhook URL not set, skipping critical error notification")
		return
	}

	payload := FormatCriticalErrorMessage(component, failure.Error(), nh.cfg)
	if err := nh.notifier.SendNotification(ctx, nh.cfg.DiscordWebhookURL, payload); err != nil {
		nh.logger.Error().Err(err).Str("source_component", component).Msg("Failed to send critical error notification")
	}
}
