package store

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/amterp/squares/internal/config"
)

// FileConfigStore implements ConfigStore using a TOML file.
type FileConfigStore struct {
	path string
}

// NewConfigStore creates a config store for the file at path.
func NewConfigStore(path string) *FileConfigStore {
	return &FileConfigStore{path: path}
}

// Path returns the config file path.
func (s *FileConfigStore) Path() string {
	return s.path
}

// Load reads the config from disk.
// Returns the default config if the file doesn't exist.
func (s *FileConfigStore) Load() (*config.Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", s.path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", s.path, err)
	}
	return &cfg, nil
}

// Save writes the config to disk.
func (s *FileConfigStore) Save(cfg *config.Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// EnsureExists writes the default config if the file doesn't exist.
func (s *FileConfigStore) EnsureExists() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return s.Save(config.Default())
	}
	return nil
}
