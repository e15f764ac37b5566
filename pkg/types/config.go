package types

import "time"

// HTTPConfig holds settings for requests to the conversion service.
type HTTPConfig struct {
	// Endpoint is the conversion URL (default "http://msword2image.com/convert").
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "msword2image/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MinInterval is the minimum delay between two requests issued by the
	// same converter. Zero disables throttling.
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval" mapstructure:"min_interval"`
}

// AccountConfig holds the msword2image account credentials. They are kept
// on the converter but the service does not currently receive them.
type AccountConfig struct {
	APIUser string `json:"api_user" yaml:"api_user" mapstructure:"api_user"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// File, when set, receives JSON log records rotated by size.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`

	// MaxSizeMB is the size in megabytes at which the log file rotates (default 10).
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files kept (default 3).
	MaxBackups int `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
}

// HistoryConfig controls the local conversion journal kept by the CLI.
type HistoryConfig struct {
	// Disabled turns off recording.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`

	// Dir is the directory holding history.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups every CLI setting.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account" mapstructure:"account"`
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Format  ImageFormat   `json:"format" yaml:"format" mapstructure:"format"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
