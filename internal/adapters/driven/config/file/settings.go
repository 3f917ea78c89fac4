// Package file provides the TOML-backed application settings store.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when a setting is absent from the file.
const (
	DefaultWorkers      = 4
	DefaultSyncInterval = time.Hour
)

// Settings holds the application configuration loaded from
// ~/.campsync/config.toml.
type Settings struct {
	// DataDir overrides the default ~/.campsync/data directory.
	DataDir string `toml:"data_dir,omitempty"`

	// Workers caps how many project units run concurrently.
	Workers int `toml:"workers,omitempty"`

	// UnitTimeout bounds one project unit, e.g. "5m". Empty disables it.
	UnitTimeout string `toml:"unit_timeout,omitempty"`

	// SchedulerEnabled controls the daemon's periodic ingestion.
	SchedulerEnabled bool `toml:"scheduler_enabled,omitempty"`

	// SyncInterval is how often the daemon ingests, e.g. "1h".
	SyncInterval string `toml:"sync_interval,omitempty"`
}

// SettingsStore loads and saves Settings as a TOML file.
type SettingsStore struct {
	filePath string
}

// NewSettingsStore creates a settings store rooted at configDir.
// If configDir is empty, defaults to ~/.campsync.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".campsync")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the settings file. A missing file yields defaults.
func (s *SettingsStore) Load() (*Settings, error) {
	settings := &Settings{
		Workers:          DefaultWorkers,
		SchedulerEnabled: true,
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if settings.Workers <= 0 {
		settings.Workers = DefaultWorkers
	}
	return settings, nil
}

// Save writes the settings file with owner-only permissions.
func (s *SettingsStore) Save(settings *Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// ParsedUnitTimeout returns the unit timeout, or zero when unset.
func (s *Settings) ParsedUnitTimeout() (time.Duration, error) {
	if s.UnitTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.UnitTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid unit_timeout: %w", err)
	}
	return d, nil
}

// ParsedSyncInterval returns the scheduler interval, defaulting to one hour.
func (s *Settings) ParsedSyncInterval() (time.Duration, error) {
	if s.SyncInterval == "" {
		return DefaultSyncInterval, nil
	}
	d, err := time.ParseDuration(s.SyncInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid sync_interval: %w", err)
	}
	return d, nil
}
