package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/models"
)

type webhookCapture struct {
	server   *httptest.Server
	requests atomic.Int32
	lastBody []byte
}

func newWebhookCapture(status int) *webhookCapture {
	capture := &webhookCapture{}
	capture.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capture.requests.Add(1)
		capture.lastBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
	}))
	return capture
}

func newTestHelper(t *testing.T, capture *webhookCapture, mutate func(*config.NotificationConfig)) *NotificationHelper {
	t.Helper()

	cfg := config.NewDefaultNotificationConfig()
	if capture != nil {
		cfg.DiscordWebhookURL = capture.server.URL
	}
	if mutate != nil {
		mutate(&cfg)
	}

	var client *http.Client
	if capture != nil {
		client = capture.server.Client()
	}
	return NewNotificationHelper(zerolog.Nop(), cfg, NewDiscordNotifier(zerolog.Nop(), client))
}

func TestSendChangeNotification_NoEvents(t *testing.T) {
	capture := newWebhookCapture(http.StatusNoContent)
	defer capture.server.Close()
	helper := newTestHelper(t, capture, nil)

	sent := helper.SendChangeNotification(context.Background(), nil)

	assert.False(t, sent)
	assert.Equal(t, int32(0), capture.requests.Load())
}

func TestSendChangeNotification_MissingWebhookDisablesDelivery(t *testing.T) {
	helper := newTestHelper(t, nil, nil)

	sent := helper.SendChangeNotification(context.Background(), []models.ChangeEvent{sampleEvent()})

	assert.False(t, sent)
}

func TestSendChangeNotification_Success(t *testing.T) {
	capture := newWebhookCapture(http.StatusNoContent)
	defer capture.server.Close()
	helper := newTestHelper(t, capture, nil)

	sent := helper.SendChangeNotification(context.Background(), []models.ChangeEvent{sampleEvent()})

	assert.True(t, sent)
	require.Equal(t, int32(1), capture.requests.Load())

	var payload models.DiscordMessagePayload
	require.NoError(t, json.Unmarshal(capture.lastBody, &payload))
	require.Len(t, payload.Embeds, 1)
	assert.Equal(t, ChangesEmbedTitle, payload.Embeds[0].Title)
}

func TestSendChangeNotification_DeliveryFailure(t *testing.T) {
	capture := newWebhookCapture(http.StatusInternalServerError)
	defer capture.server.Close()
	helper := newTestHelper(t, capture, nil)

	sent := helper.SendChangeNotification(context.Background(), []models.ChangeEvent{sampleEvent()})

	assert.False(t, sent)
	assert.Equal(t, int32(1), capture.requests.Load())
}

func TestSendCriticalErrorNotification_Sends(t *testing.T) {
	capture := newWebhookCapture(http.StatusNoContent)
	defer capture.server.Close()
	helper := newTestHelper(t, capture, nil)

	helper.SendCriticalErrorNotification(context.Background(), "StateStore", errors.New("disk full"))

	require.Equal(t, int32(1), capture.requests.Load())

	var payload models.DiscordMessagePayload
	require.NoError(t, json.Unmarshal(capture.lastBody, &payload))
	require.Len(t, payload.Embeds, 1)
	assert.Equal(t, CriticalErrorEmbedTitle, payload.Embeds[0].Title)
}

func TestSendCriticalErrorNotification_DisabledByConfig(t *testing.T) {
	capture := newWebhookCapture(http.StatusNoContent)
	defer capture.server.Close()
	helper := newTestHelper(t, capture, func(cfg *config.NotificationConfig) {
		cfg.NotifyOnPersistError = false
	})

	helper.SendCriticalErrorNotification(context.Background(), "StateStore", errors.New("disk full"))

	assert.Equal(t, int32(0), capture.requests.Load())
}
