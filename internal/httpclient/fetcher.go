package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/common"
	"github.com/anfieldrd/kopwatch/internal/config"
)

// PageFetcher retrieves raw page markup over HTTP with support for
// conditional GETs.
type PageFetcher struct {
	transport *common.HTTPClientTransport
	cfg       config.MonitorConfig
	logger    zerolog.Logger
}

// NewPageFetcher creates a PageFetcher backed by a pooled HTTP client with
// the configured timeout. The browser-like User-Agent is applied to every
// request as a default header.
func NewPageFetcher(logger zerolog.Logger, cfg config.MonitorConfig) (*PageFetcher, error) {
	componentLogger := logger.With().Str("component", "PageFetcher").Logger()

	factory := common.NewHTTPClientFactory(logger)
	client, err := factory.CreateMonitorClient(time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, cfg.InsecureSkipVerify)
	if err != nil {
		return nil, common.WrapError(err, "failed to create monitor HTTP client")
	}

	transport := common.NewHTTPClientTransport(client, map[string]string{
		"User-Agent": cfg.UserAgent,
	}, logger)

	return &PageFetcher{
		transport: transport,
		cfg:       cfg,
		logger:    componentLogger,
	}, nil
}

// FetchInput holds parameters for FetchPage.
type FetchInput struct {
	URL                  string
	PreviousETag         string
	PreviousLastModified string
}

// FetchResult holds the outcome of a successful page fetch. For a 304
// response only the header fields are populated.
type FetchResult struct {
	Body          string
	StatusCode    int
	ETag          string
	LastModified  string
	ContentLength int64
}

// FetchPage fetches the page at input.URL. When conditional requests are
// enabled and prior validators are supplied, a 304 response is reported as
// common.ErrNotModified alongside the header-only result. Non-2xx statuses
// and bodies beyond the configured size limit are errors.
func (pf *PageFetcher) FetchPage(ctx context.Context, input FetchInput) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		pf.logger.Error().Err(err).Str("url", input.URL).Msg("Failed to create HTTP request")
		return nil, common.WrapError(err, fmt.Sprintf("creating request for %s", input.URL))
	}

	if pf.cfg.ConditionalRequests {
		if input.PreviousETag != "" {
			req.Header.Set("If-None-Match", input.PreviousETag)
		}
		if input.PreviousLastModified != "" {
			req.Header.Set("If-Modified-Since", input.PreviousLastModified)
		}
	}

	resp, err := pf.transport.Do(req)
	if err != nil {
		pf.logger.Error().Err(err).Str("url", input.URL).Msg("Failed to execute HTTP request")
		return nil, common.NewNetworkError(input.URL, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	result := &FetchResult{
		StatusCode:   resp.StatusCode,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}

	if resp.StatusCode == http.StatusNotModified {
		pf.logger.Debug().Str("url", input.URL).Msg("Content not modified (304)")
		return result, common.ErrNotModified
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		pf.logger.Warn().Str("url", input.URL).Int("status_code", resp.StatusCode).Msg("Received non-success HTTP status")
		// Read a little of the body so the error carries server context.
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, common.NewHTTPErrorWithURL(resp.StatusCode, string(bodyBytes), input.URL)
	}

	maxSize := int64(pf.cfg.MaxContentSize)
	if maxSize > 0 && resp.ContentLength > maxSize {
		return nil, fmt.Errorf("content too large: %d bytes (max: %d bytes)", resp.ContentLength, maxSize)
	}

	bodyReader := resp.Body
	if maxSize > 0 {
		bodyReader = io.NopCloser(io.LimitReader(resp.Body, maxSize+1))
	}
	bodyBytes, err := io.ReadAll(bodyReader)
	if err != nil {
		pf.logger.Error().Err(err).Str("url", input.URL).Msg("Failed to read response body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if maxSize > 0 && int64(len(bodyBytes)) > maxSize {
		return nil, fmt.Errorf("content too large: %d bytes (max: %d bytes)", len(bodyBytes), maxSize)
	}

	result.Body = string(bodyBytes)
	result.ContentLength = int64(len(bodyBytes))

	pf.logger.Debug().
		Str("url", input.URL).
		Int("status_code", resp.StatusCode).
		Int64("size", result.ContentLength).
		Msg("Page fetched successfully")
	return result, nil
}
