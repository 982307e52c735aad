package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amterp/squares/internal/config"
	"github.com/amterp/squares/internal/model"
	"github.com/amterp/squares/internal/palette"
)

// FixedTime is a stable timestamp for fixtures.
var FixedTime = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

// TestSquare returns a valid square with sensible test defaults.
func TestSquare(id string, row, column int) *model.Square {
	return model.NewSquare(id, row, column, palette.Colors[(row+column)%len(palette.Colors)], FixedTime)
}

// TempDataDir creates a temporary data directory that is removed when the test ends.
func TempDataDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), config.DefaultDataDir)
}

// NewTestPaths creates Paths rooted in a fresh temp data directory.
func NewTestPaths(t *testing.T) *config.Paths {
	t.Helper()
	return config.NewPaths(TempDataDir(t))
}

// WriteFile writes raw content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
