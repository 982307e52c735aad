package config

import (
	"path/filepath"
)

const (
	DefaultDataDir  = "Data"
	SquaresFileName = "squares.json"
	ConfigFileName  = "config.toml"
)

// Paths provides path resolution for squares data files.
type Paths struct {
	dataDir string
}

// NewPaths creates a new Paths resolver rooted at dataDir.
// An empty dataDir means DefaultDataDir relative to the working directory.
func NewPaths(dataDir string) *Paths {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	return &Paths{dataDir: dataDir}
}

// DataDir returns the directory holding the store.
func (p *Paths) DataDir() string {
	return p.dataDir
}

// SquaresPath returns the path of the squares store file.
func (p *Paths) SquaresPath() string {
	return filepath.Join(p.dataDir, SquaresFileName)
}

// ConfigPath returns the default config file path inside the data directory.
func (p *Paths) ConfigPath() string {
	return filepath.Join(p.dataDir, ConfigFileName)
}
