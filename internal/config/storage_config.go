package config

// StorageConfig defines configuration for data storage
type StorageConfig struct {
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty"`
	HistoryDir       string `json:"history_dir,omitempty" yaml:"history_dir,omitempty"`
	HistoryEnabled   bool   `json:"history_enabled" yaml:"history_enabled"`
	RunLogEnabled    bool   `json:"run_log_enabled" yaml:"run_log_enabled"`
	RunLogPath       string `json:"run_log_path,omitempty" yaml:"run_log_path,omitempty"`
	StateFilePath    string `json:"state_file_path,omitempty" yaml:"state_file_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		CompressionCodec: DefaultStorageCompressionCodec,
		HistoryDir:       DefaultStorageHistoryDir,
		HistoryEnabled:   false,
		RunLogEnabled:    false,
		RunLogPath:       DefaultRunLogDBPath,
		StateFilePath:    DefaultStateFilePath,
	}
}
