package store

import (
	"github.com/amterp/squares/internal/config"
	"github.com/amterp/squares/internal/model"
)

// SquareStore handles square persistence as one ordered collection.
type SquareStore interface {
	// LoadAll returns squares in insertion order. Missing or malformed
	// content degrades to an empty or filtered result, never an error.
	LoadAll() ([]*model.Square, error)
	// Append validates and persists square after all existing ones.
	Append(square *model.Square) (*model.Square, error)
	// ClearAll replaces the collection with an empty one.
	ClearAll() error
}

// ConfigStore handles server config persistence.
type ConfigStore interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	EnsureExists() error
}

// RepairObserver is notified when LoadAll degrades persisted content.
// reason is one of the Repair* constants; dropped is the number of records lost.
type RepairObserver func(reason string, dropped int)

const (
	RepairMissing = "missing"
	RepairEmpty   = "empty"
	RepairCorrupt = "corrupt"
	RepairInvalid = "invalid_record"
)
