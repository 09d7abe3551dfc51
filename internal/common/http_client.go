package common

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout               time.Duration // Request timeout
	InsecureSkipVerify    bool          // Skip TLS verification
	FollowRedirects       bool          // Whether to follow redirects
	MaxRedirects          int           // Maximum number of redirects to follow
	MaxIdleConns          int           // Maximum idle connections
	MaxIdleConnsPerHost   int           // Maximum idle connections per host
	IdleConnTimeout       time.Duration // Idle connection timeout
	TLSHandshakeTimeout   time.Duration // TLS handshake timeout
	ExpectContinueTimeout time.Duration // Expect 100-continue timeout
	DialTimeout           time.Duration // Connection dial timeout
	KeepAlive             time.Duration // Keep-alive duration
}

// DefaultHTTPClientConfig returns a default HTTP client configuration
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               30 * time.Second,
		InsecureSkipVerify:    false,
		FollowRedirects:       true,
		MaxRedirects:          10,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   5,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DialTimeout:           30 * time.Second,
		KeepAlive:             30 * time.Second,
	}
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*http.Client, error) {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	if !config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if config.MaxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= config.MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		}
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("insecure_skip_verify", config.InsecureSkipVerify).
		Bool("follow_redirects", config.FollowRedirects).
		Int("max_redirects", config.MaxRedirects).
		Msg("HTTP client created")

	return client, nil
}

// HTTPClientBuilder provides a fluent interface for building HTTP clients
type HTTPClientBuilder struct {
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewHTTPClientBuilder creates a new HTTP client builder
func NewHTTPClientBuilder(logger zerolog.Logger) *HTTPClientBuilder {
	return &HTTPClientBuilder{
		config: DefaultHTTPClientConfig(),
		logger: logger,
	}
}

// WithTimeout sets the request timeout
func (b *HTTPClientBuilder) WithTimeout(timeout time.Duration) *HTTPClientBuilder {
	b.config.Timeout = timeout
	return b
}

// WithInsecureSkipVerify sets whether to skip TLS verification
func (b *HTTPClientBuilder) WithInsecureSkipVerify(skip bool) *HTTPClientBuilder {
	b.config.InsecureSkipVerify = skip
	return b
}

// WithFollowRedirects sets whether to follow redirects
func (b *HTTPClientBuilder) WithFollowRedirects(follow bool) *HTTPClientBuilder {
	b.config.FollowRedirects = follow
	return b
}

// WithMaxRedirects sets the maximum number of redirects
func (b *HTTPClientBuilder) WithMaxRedirects(max int) *HTTPClientBuilder {
	b.config.MaxRedirects = max
	return b
}

// WithConnectionPooling configures connection pooling settings
func (b *HTTPClientBuilder) WithConnectionPooling(maxIdle, maxIdlePerHost int) *HTTPClientBuilder {
	b.config.MaxIdleConns = maxIdle
	b.config.MaxIdleConnsPerHost = maxIdlePerHost
	return b
}

// Build creates the HTTP client with the configured settings
func (b *HTTPClientBuilder) Build() (*http.Client, error) {
	return NewHTTPClient(b.config, b.logger)
}

// HTTPClientTransport wraps an HTTP client to add common request modifications
type HTTPClientTransport struct {
	client         *http.Client
	defaultHeaders map[string]string
	logger         zerolog.Logger
}

// NewHTTPClientTransport creates a transport wrapper around an HTTP client
func NewHTTPClientTransport(client *http.Client, defaultHeaders map[string]string, logger zerolog.Logger) *HTTPClientTransport {
	return &HTTPClientTransport{
		client:         client,
		defaultHeaders: defaultHeaders,
		logger:         logger,
	}
}

// Do executes an HTTP request with default headers applied
func (t *HTTPClientTransport) Do(req *http.Request) (*http.Response, error) {
	for key, value := range t.defaultHeaders {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	t.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("Executing HTTP request")

	start := time.Now()
	resp, err := t.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Debug().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("duration", duration).
			Msg("HTTP request failed")
		return nil, WrapError(err, "HTTP request failed")
	}

	t.logger.Debug().
		Int("status_code", resp.StatusCode).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Dur("duration", duration).
		Msg("HTTP request completed")

	return resp, nil
}

// GetClient returns the underlying HTTP client
func (t *HTTPClientTransport) GetClient() *http.Client {
	return t.client
}

// HTTPClientFactory provides methods to create common HTTP client configurations
type HTTPClientFactory struct {
	logger zerolog.Logger
}

// NewHTTPClientFactory creates a new HTTP client factory
func NewHTTPClientFactory(logger zerolog.Logger) *HTTPClientFactory {
	return &HTTPClientFactory{logger: logger}
}

// CreateMonitorClient creates an HTTP client tuned for page monitoring fetches
func (f *HTTPClientFactory) CreateMonitorClient(timeout time.Duration, insecureSkipVerify bool) (*http.Client, error) {
	return NewHTTPClientBuilder(f.logger).
		WithTimeout(timeout).
		WithInsecureSkipVerify(insecureSkipVerify).
		WithFollowRedirects(true).
		WithMaxRedirects(5).
		WithConnectionPooling(20, 5).
		Build()
}

// CreateWebhookClient creates an HTTP client for outbound webhook deliveries
func (f *HTTPClientFactory) CreateWebhookClient(timeout time.Duration) (*http.Client, error) {
	return NewHTTPClientBuilder(f.logger).
		WithTimeout(timeout).
		WithFollowRedirects(true).
		WithMaxRedirects(3).
		Build()
}
