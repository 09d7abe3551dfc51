package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/common"
	"github.com/anfieldrd/kopwatch/internal/models"
)

// DiscordNotifier handles sending notifications to a Discord webhook.
type DiscordNotifier struct {
	logger     zerolog.Logger
	httpClient *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier. The webhook URL is
// provided per send call so one notifier can serve multiple destinations.
func NewDiscordNotifier(logger zerolog.Logger, httpClient *http.Client) *DiscordNotifier {
	componentLogger := logger.With().Str("component", "DiscordNotifier").Logger()

	if httpClient == nil {
		componentLogger.Warn().Msg("HTTP client is nil, using default client with 20s timeout")
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}

	return &DiscordNotifier{
		logger:     componentLogger,
		httpClient: httpClient,
	}
}

// SendNotification posts a message payload to the given webhook URL as
// JSON. An empty URL skips delivery without error.
func (dn *DiscordNotifier) SendNotification(ctx context.Context, webhookURL string, payload models.DiscordMessagePayload) error {
	if webhookURL == "" {
		dn.logger.Info().Msg("Webhook URL is empty. Skipping Discord notification.")
		return nil
	}

	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return common.WrapError(err, "invalid Discord webhook URL")
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return common.WrapError(err, "failed to marshal Discord payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payloadJSON))
	if err != nil {
		return common.WrapError(err, "failed to create Discord request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := dn.httpClient.Do(req)
	if err != nil {
		return common.NewNetworkError(webhookURL, "failed to send Discord notification", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		dn.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("response_body", string(respBody)).
			Msg("Discord notification failed")
		return common.NewHTTPErrorWithURL(resp.StatusCode, "discord notification failed: "+string(respBody), webhookURL)
	}

	dn.logger.Info().Int("status_code", resp.StatusCode).Msg("Discord notification sent")
	return nil
}
