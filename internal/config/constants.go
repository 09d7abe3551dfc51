package config

const (
	// HTTP Defaults
	DefaultUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultHTTPTimeoutSecs    = 30
	DefaultMaxContentSize     = 5242880 // 5MB response body cap
	DefaultWebhookTimeoutSecs = 15

	// Monitor Defaults
	DefaultMaxSnapshotChars = 12000

	// Diff Defaults
	DefaultMaxDiffLines     = 120
	DefaultDiffContextLines = 3

	// Storage Defaults
	DefaultStateFilePath           = "data/monitoring_data.json"
	DefaultStorageHistoryDir       = "data/history"
	DefaultStorageCompressionCodec = "zstd"
	DefaultRunLogDBPath            = "data/run_history.db"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Environment variables
	EnvConfigPath        = "KOPWATCH_CONFIG_PATH"
	EnvDiscordWebhookURL = "DISCORD_WEBHOOK_URL"
)
