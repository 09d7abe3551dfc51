package config

// DiffConfig defines configuration for diffing
type DiffConfig struct {
	ContextLines int `json:"context_lines,omitempty" yaml:"context_lines,omitempty" validate:"omitempty,min=0"`
	MaxDiffLines int `json:"max_diff_lines,omitempty" yaml:"max_diff_lines,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		ContextLines: DefaultDiffContextLines,
		MaxDiffLines: DefaultMaxDiffLines,
	}
}
