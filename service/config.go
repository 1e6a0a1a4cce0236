// Package service exposes the extraction pipeline over HTTP: a readiness
// endpoint and an /extract endpoint accepting OCR text items, markup
// blocks, or an image upload. The service owns the per-request wall-clock
// timeout; the pipeline itself is synchronous and safe to abandon.
package service

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/davissekai/irys/mapper"
)

// Config configures the extraction service.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`

	// ExtractTimeoutSeconds bounds one extraction request end to end.
	ExtractTimeoutSeconds float64 `yaml:"extract_timeout_seconds"`

	// YTolerance is the geometric row-clustering tolerance in pixels.
	YTolerance float64 `yaml:"y_tolerance"`

	// MaxUploadBytes caps multipart image uploads.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Mapper configures the optional semantic column mapper. Without an
	// API key the local heuristic runs alone.
	Mapper mapper.SemanticConfig `yaml:"mapper"`
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		Addr:                  ":8000",
		ExtractTimeoutSeconds: 90,
		YTolerance:            25,
		MaxUploadBytes:        20 << 20,
		AllowedOrigins:        []string{"*"},
	}
}

// LoadConfig reads a YAML config file over the defaults, then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides config fields from the environment so deployments
// can keep credentials out of files.
func (c *Config) applyEnv() {
	if v := os.Getenv("IRYS_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("EXTRACT_TIMEOUT_SECONDS"); v != "" {
		var secs float64
		if _, err := fmt.Sscanf(v, "%f", &secs); err == nil && secs > 0 {
			c.ExtractTimeoutSeconds = secs
		}
	}
	if v := os.Getenv("IRYS_MAPPER_BASE_URL"); v != "" {
		c.Mapper.BaseURL = v
	}
	if v := os.Getenv("IRYS_MAPPER_MODEL"); v != "" {
		c.Mapper.Model = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" && c.Mapper.APIKey == "" {
		c.Mapper.APIKey = v
	}
	if v := os.Getenv("IRYS_MAPPER_API_KEY"); v != "" {
		c.Mapper.APIKey = v
	}
}

// ExtractTimeout returns the per-request deadline as a duration.
func (c Config) ExtractTimeout() time.Duration {
	return time.Duration(c.ExtractTimeoutSeconds * float64(time.Second))
}
