package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.NotNil(t, cfg)
	assert.Len(t, cfg.Sites, 4)
	assert.Equal(t, DefaultMaxSnapshotChars, cfg.MonitorConfig.MaxSnapshotChars)
	assert.Equal(t, DefaultHTTPTimeoutSecs, cfg.MonitorConfig.HTTPTimeoutSeconds)
	assert.Equal(t, DefaultMaxDiffLines, cfg.DiffConfig.MaxDiffLines)
	assert.Equal(t, DefaultStateFilePath, cfg.StorageConfig.StateFilePath)
	assert.True(t, cfg.MonitorConfig.ConditionalRequests)
}

func TestNewDefaultGlobalConfig_Valid(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NoError(t, ValidateConfig(cfg))
}

func TestDefaultSites_DiscoveryEntry(t *testing.T) {
	sites := NewDefaultSites()

	require.NotEmpty(t, sites)
	assert.True(t, sites[0].DiscoverLinks)
	assert.Equal(t, "/tickets/tickets-availability/", sites[0].LinkPattern)
	for _, site := range sites[1:] {
		assert.False(t, site.DiscoverLinks)
	}
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Setenv(EnvDiscordWebhookURL, "")

	cfg, err := LoadGlobalConfig("")

	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Len(t, cfg.Sites, 4)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	t.Setenv(EnvDiscordWebhookURL, "")
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configData := `
log_config:
  log_level: debug
monitor_config:
  http_timeout_seconds: 10
  max_snapshot_chars: 500
sites:
  - url: https://example.com/status
    name: Example Status
  - url: https://example.com/index
    name: Example Index
    discover_links: true
    link_pattern: /news/
    selector: "#content"
`

	err := os.WriteFile(configFile, []byte(configData), 0644)
	require.NoError(t, err)

	cfg, err := LoadGlobalConfig(configFile)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, 10, cfg.MonitorConfig.HTTPTimeoutSeconds)
	assert.Equal(t, 500, cfg.MonitorConfig.MaxSnapshotChars)
	require.Len(t, cfg.Sites, 2)
	assert.Equal(t, "Example Status", cfg.Sites[0].Name)
	assert.True(t, cfg.Sites[1].DiscoverLinks)
	assert.Equal(t, "/news/", cfg.Sites[1].LinkPattern)
	assert.Equal(t, "#content", cfg.Sites[1].Selector)
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	t.Setenv(EnvDiscordWebhookURL, "")
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.json")

	configData := `{
		"monitor_config": {
			"user_agent": "test-agent"
		},
		"notification_config": {
			"discord_webhook_url": "https://discord.example/webhook"
		}
	}`

	err := os.WriteFile(configFile, []byte(configData), 0644)
	require.NoError(t, err)

	cfg, err := LoadGlobalConfig(configFile)

	require.NoError(t, err)
	assert.Equal(t, "test-agent", cfg.MonitorConfig.UserAgent)
	assert.Equal(t, "https://discord.example/webhook", cfg.NotificationConfig.DiscordWebhookURL)
}

func TestLoadGlobalConfig_EnvWebhookOverride(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configData := `
notification_config:
  discord_webhook_url: https://discord.example/from-file
`
	err := os.WriteFile(configFile, []byte(configData), 0644)
	require.NoError(t, err)

	t.Setenv(EnvDiscordWebhookURL, "https://discord.example/from-env")

	cfg, err := LoadGlobalConfig(configFile)

	require.NoError(t, err)
	assert.Equal(t, "https://discord.example/from-env", cfg.NotificationConfig.DiscordWebhookURL)
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "invalid.yaml")

	invalidYAML := `
sites: test
  invalid_indent: value
`

	err := os.WriteFile(configFile, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	cfg, err := LoadGlobalConfig(configFile)

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestValidateConfig_BadSite(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.Sites = []SiteConfig{{URL: "not a url", Name: ""}}

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestValidateConfig_NoSites(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.Sites = nil

	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_BadLogLevel(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.LogConfig.LogLevel = "shouting"

	assert.Error(t, ValidateConfig(cfg))
}

func TestIsYAMLFile(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".yaml", true},
		{".yml", true},
		{".json", false},
		{".txt", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			result := isYAMLFile(tt.ext)
			assert.Equal(t, tt.expected, result)
		})
	}
}
