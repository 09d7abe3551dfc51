package config

// MonitorConfig defines configuration for the monitoring pass
type MonitorConfig struct {
	ConditionalRequests bool   `json:"conditional_requests" yaml:"conditional_requests"`
	HTTPTimeoutSeconds  int    `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	InsecureSkipVerify  bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	MaxContentSize      int    `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"` // Max response body size in bytes
	MaxSnapshotChars    int    `json:"max_snapshot_chars,omitempty" yaml:"max_snapshot_chars,omitempty" validate:"omitempty,min=1"`
	UserAgent           string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		ConditionalRequests: true,
		HTTPTimeoutSeconds:  DefaultHTTPTimeoutSecs,
		InsecureSkipVerify:  false,
		MaxContentSize:      DefaultMaxContentSize,
		MaxSnapshotChars:    DefaultMaxSnapshotChars,
		UserAgent:           DefaultUserAgent,
	}
}
