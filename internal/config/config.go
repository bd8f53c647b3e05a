package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for resumehub.
type Config struct {
	API    APIConfig
	Upload UploadConfig
	UI     UIConfig
	Output OutputConfig
}

// APIConfig points at the analysis backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration // per-request timeout
}

// UploadConfig controls which files are accepted before anything is sent.
type UploadConfig struct {
	MaxSizeMB    int64
	AllowedTypes []string // MIME types
}

// MaxSizeBytes returns the size limit in bytes.
func (u UploadConfig) MaxSizeBytes() int64 {
	return u.MaxSizeMB * 1024 * 1024
}

// UIConfig holds terminal UI timings.
type UIConfig struct {
	Pacing          time.Duration // minimum time the upload progress bar is shown
	NotificationTTL time.Duration
}

// OutputConfig controls where generated files are written.
type OutputConfig struct {
	ImprovedPath string
}

const (
	defaultBaseURL         = "http://localhost:5001"
	defaultTimeout         = 30 * time.Second
	defaultMaxSizeMB       = 10
	defaultPacing          = 1500 * time.Millisecond
	defaultNotificationTTL = 5 * time.Second
	defaultImprovedPath    = "improved_resume.txt"
)

var defaultAllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	API    rawAPIConfig    `yaml:"api"`
	Upload rawUploadConfig `yaml:"upload"`
	UI     rawUIConfig     `yaml:"ui"`
	Output rawOutputConfig `yaml:"output"`
}

type rawAPIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type rawUploadConfig struct {
	MaxSizeMB    *int64   `yaml:"max_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

type rawUIConfig struct {
	Pacing          string `yaml:"pacing"`
	NotificationTTL string `yaml:"notification_ttl"`
}

type rawOutputConfig struct {
	ImprovedPath string `yaml:"improved_path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		API:    APIConfig{BaseURL: defaultBaseURL, Timeout: defaultTimeout},
		Upload: UploadConfig{MaxSizeMB: defaultMaxSizeMB, AllowedTypes: append([]string(nil), defaultAllowedTypes...)},
		UI:     UIConfig{Pacing: defaultPacing, NotificationTTL: defaultNotificationTTL},
		Output: OutputConfig{ImprovedPath: defaultImprovedPath},
	}
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML config data, applying env expansion and defaults.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	var err error

	if raw.API.BaseURL != "" {
		cfg.API.BaseURL = raw.API.BaseURL
	}
	if cfg.API.Timeout, err = parseDuration("api.timeout", raw.API.Timeout, defaultTimeout); err != nil {
		return nil, err
	}

	if raw.Upload.MaxSizeMB != nil {
		cfg.Upload.MaxSizeMB = *raw.Upload.MaxSizeMB
	}
	if len(raw.Upload.AllowedTypes) > 0 {
		cfg.Upload.AllowedTypes = raw.Upload.AllowedTypes
	}

	if cfg.UI.Pacing, err = parseDuration("ui.pacing", raw.UI.Pacing, defaultPacing); err != nil {
		return nil, err
	}
	if cfg.UI.NotificationTTL, err = parseDuration("ui.notification_ttl", raw.UI.NotificationTTL, defaultNotificationTTL); err != nil {
		return nil, err
	}

	if raw.Output.ImprovedPath != "" {
		cfg.Output.ImprovedPath = raw.Output.ImprovedPath
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(key, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, value, err)
	}
	return d, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %v", cfg.API.Timeout)
	}
	if cfg.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("upload.max_size_mb must be positive, got %d", cfg.Upload.MaxSizeMB)
	}
	if cfg.UI.Pacing < 0 {
		return fmt.Errorf("ui.pacing must not be negative, got %v", cfg.UI.Pacing)
	}
	if cfg.UI.NotificationTTL <= 0 {
		return fmt.Errorf("ui.notification_ttl must be positive, got %v", cfg.UI.NotificationTTL)
	}
	return nil
}
