// Package config loads and persists the repository-level jjsubmit
// configuration as a JSON file alongside the jj workspace, the same
// encoding/json persistence pattern the project uses everywhere it needs
// small, human-editable on-disk state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
)

// RepositoryConfig is the persisted, per-repository configuration: default
// remote/draft behavior plus bookkeeping for when the tool was last set up.
type RepositoryConfig struct {
	DefaultRemote string    `json:"default_remote"`
	DefaultDraft  bool      `json:"default_draft"`
	AutoPublish   bool      `json:"auto_publish"`
	InstalledAt   time.Time `json:"installed_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// DefaultConfig is merged under any partially-specified config loaded from
// disk, so a config file that only sets default_draft still gets a sane
// default_remote.
func DefaultConfig() RepositoryConfig {
	return RepositoryConfig{
		DefaultRemote: "origin",
		DefaultDraft:  false,
		AutoPublish:   false,
	}
}

// Store reads and writes RepositoryConfig for one jj workspace root.
type Store struct {
	root string
}

// NewStore returns a config store rooted at the given jj workspace root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path() string {
	return filepath.Join(s.root, ".jj", "jjsubmit", "config.json")
}

// Load reads the config file, merging it over DefaultConfig so unset fields
// always carry a usable value. A missing file is not an error: it returns
// the defaults unchanged.
func (s *Store) Load() (RepositoryConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var loaded RepositoryConfig
	if err := json.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := mergo.Merge(&cfg, loaded, mergo.WithOverride); err != nil {
		return cfg, fmt.Errorf("failed to merge config: %w", err)
	}
	return cfg, nil
}

// Save persists cfg, stamping LastUpdatedAt and, on first save, InstalledAt.
func (s *Store) Save(cfg RepositoryConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.path()), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if cfg.InstalledAt.IsZero() {
		cfg.InstalledAt = time.Now()
	}
	cfg.LastUpdatedAt = time.Now()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
