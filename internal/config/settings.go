package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/exercices-downloader/internal/classify"
	"github.com/handiism/exercices-downloader/internal/http"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputRoot string `yaml:"output_root"`
	DryRun     bool   `yaml:"dry_run"`

	// Retry settings
	MaxRetries    int           `yaml:"max_retries"`
	BackoffFactor time.Duration `yaml:"backoff_factor"`
	BackoffMax    time.Duration `yaml:"backoff_max"`
	RetryStatuses []int         `yaml:"retry_statuses"`

	// Timeouts
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`

	UserAgent string `yaml:"user_agent"`

	// Seed makes difficulty labels reproducible. Nil seeds from the clock.
	Seed *uint64 `yaml:"seed,omitempty"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	client := http.DefaultClientConfig()

	return &Settings{
		OutputRoot: filepath.Join(homeDir, "Exercices"),

		MaxRetries:    client.MaxRetries,
		BackoffFactor: client.BackoffFactor,
		BackoffMax:    client.BackoffMax,
		RetryStatuses: client.RetryStatuses,

		ConnectTimeout: client.ConnectTimeout,
		ReadTimeout:    client.ReadTimeout,

		UserAgent: client.UserAgent,
	}
}

// Load reads settings from a YAML file. Keys missing from the file keep
// their default value; a missing file gives the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToClientConfig converts settings to an http.ClientConfig.
func (s *Settings) ToClientConfig(logger *zap.Logger) http.ClientConfig {
	return http.ClientConfig{
		MaxRetries:     s.MaxRetries,
		BackoffFactor:  s.BackoffFactor,
		BackoffMax:     s.BackoffMax,
		RetryStatuses:  s.RetryStatuses,
		ConnectTimeout: s.ConnectTimeout,
		ReadTimeout:    s.ReadTimeout,
		UserAgent:      s.UserAgent,
		Logger:         logger,
	}
}

// NewClassifier returns a seeded classifier when Seed is set and a
// clock-seeded one otherwise.
func (s *Settings) NewClassifier() classify.Classifier {
	if s.Seed != nil {
		return classify.NewRandom(*s.Seed)
	}
	return classify.NewRandomFromTime()
}
