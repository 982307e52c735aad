package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/amterp/squares/internal/config"
	"github.com/amterp/squares/internal/model"
	"github.com/charmbracelet/log"
)

// FileSquareStore implements SquareStore as a single JSON array file.
// Every mutation rewrites the whole file atomically.
type FileSquareStore struct {
	mu       sync.RWMutex
	paths    *config.Paths
	logger   *log.Logger
	onRepair RepairObserver
}

// NewSquareStore creates a new square store.
func NewSquareStore(paths *config.Paths, logger *log.Logger) *FileSquareStore {
	return &FileSquareStore{
		paths:  paths,
		logger: logger.With("store", config.SquaresFileName),
	}
}

// SetRepairObserver registers fn to be called whenever a load degrades content.
func (s *FileSquareStore) SetRepairObserver(fn RepairObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRepair = fn
}

// Path returns the backing file path.
func (s *FileSquareStore) Path() string {
	return s.paths.SquaresPath()
}

// EnsureExists creates the data directory and an empty store if missing.
func (s *FileSquareStore) EnsureExists() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.Path()); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat squares file: %w", err)
	}

	s.logger.Info("Creating empty squares file", "path", s.Path())
	return s.writeAll([]*model.Square{})
}

// LoadAll returns all persisted squares in insertion order.
// Malformed records are logged and skipped.
func (s *FileSquareStore) LoadAll() ([]*model.Square, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadAll()
}

// Append validates square and rewrites the store with it added at the end.
func (s *FileSquareStore) Append(square *model.Square) (*model.Square, error) {
	if err := square.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	squares, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	squares = append(squares, square)

	if err := s.writeAll(squares); err != nil {
		return nil, err
	}

	s.logger.Debug("Appended square", "id", square.ID, "count", len(squares))
	return square, nil
}

// ClearAll rewrites the store as an empty collection.
func (s *FileSquareStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeAll([]*model.Square{}); err != nil {
		return err
	}
	s.logger.Info("All squares cleared")
	return nil
}

func (s *FileSquareStore) loadAll() ([]*model.Square, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Squares file is missing, returning empty list")
			s.repaired(RepairMissing, 0)
			return []*model.Square{}, nil
		}
		return nil, fmt.Errorf("failed to read squares file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Warn("Squares file is empty, returning empty list")
		s.repaired(RepairEmpty, 0)
		return []*model.Square{}, nil
	}

	// Decode record by record so one bad entry doesn't take down the rest
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Error("Squares file is corrupted, returning empty list", "err", err)
		s.repaired(RepairCorrupt, 0)
		return []*model.Square{}, nil
	}

	squares := make([]*model.Square, 0, len(records))
	dropped := 0
	for i, raw := range records {
		var sq model.Square
		if err := json.Unmarshal(raw, &sq); err != nil {
			s.logger.Debug("Skipping undecodable square", "index", i, "err", err)
			dropped++
			continue
		}
		if err := sq.Validate(); err != nil {
			s.logger.Debug("Skipping invalid square", "index", i, "err", err)
			dropped++
			continue
		}
		squares = append(squares, &sq)
	}

	if dropped > 0 {
		s.logger.Warn("Filtered out invalid squares", "count", dropped)
		s.repaired(RepairInvalid, dropped)
	}

	return squares, nil
}

func (s *FileSquareStore) writeAll(squares []*model.Square) error {
	data, err := json.MarshalIndent(squares, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal squares: %w", err)
	}
	if err := writeFileAtomic(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write squares file: %w", err)
	}
	return nil
}

func (s *FileSquareStore) repaired(reason string, dropped int) {
	if s.onRepair != nil {
		s.onRepair(reason, dropped)
	}
}
