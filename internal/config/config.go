// Package config defines service configuration and how it is loaded.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath is a local CSV file or an s3://bucket/key URL.
	DatasetPath string `koanf:"dataset_path"`

	// S3 settings used when DatasetPath is an s3:// URL.
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`
	S3Region    string `koanf:"s3_region"`
	S3UseSSL    bool   `koanf:"s3_use_ssl"`

	// FilterAllViews applies the user's filters to every view. When false the
	// cumulative, gender-by-sport and top athletes views read the whole store.
	FilterAllViews bool `koanf:"filter_all_views"`

	// Title is the dashboard heading.
	Title string `koanf:"title"`

	// VideoURL is the video embedded below the charts.
	VideoURL string `koanf:"video_url"`

	// FunFacts overrides the fun facts lines.
	FunFacts []string `koanf:"fun_facts"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":8080",
		DatasetPath:    "modified_dataset.csv",
		S3Region:       "us-east-1",
		FilterAllViews: true,
		Title:          "Summer Olympics (1896-2024) Dashboard",
		VideoURL:       "https://www.youtube.com/watch?v=YtyXgRFa5Qo&t=51s",
	}
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.DatasetPath) == "" {
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
