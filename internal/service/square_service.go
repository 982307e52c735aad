package service

import (
	"context"
	"sync"
	"time"

	apperr "github.com/amterp/squares/internal/errors"
	"github.com/amterp/squares/internal/id"
	"github.com/amterp/squares/internal/logging"
	"github.com/amterp/squares/internal/model"
	"github.com/amterp/squares/internal/palette"
	"github.com/amterp/squares/internal/spiral"
	"github.com/amterp/squares/internal/store"
	"github.com/charmbracelet/log"
)

// SquareService places new squares on the spiral and owns the placement state.
//
// The spiral cache and the last color are process-wide state held here rather
// than in globals. mu serializes Create, List and Clear: the stored count that
// picks the next coordinate must not change between the read and the append,
// otherwise two concurrent creates would land on the same cell.
type SquareService struct {
	mu        sync.Mutex
	store     store.SquareStore
	sequencer *spiral.Sequencer
	colors    *palette.Selector
	logger    *log.Logger
	metrics   *Metrics

	newID func() string
	now   func() time.Time
}

// NewSquareService creates a square service with an empty spiral and no last color.
func NewSquareService(squareStore store.SquareStore, colors *palette.Selector, logger *log.Logger) *SquareService {
	return &SquareService{
		store:     squareStore,
		sequencer: spiral.NewSequencer(),
		colors:    colors,
		logger:    logger,
		newID:     id.Generate,
		now:       time.Now,
	}
}

// SetMetrics attaches Prometheus collectors. Optional.
func (s *SquareService) SetMetrics(m *Metrics) {
	s.metrics = m
}

// Create places, colors and persists a new square.
// Validation errors are returned unchanged; anything else is wrapped as an internal error.
func (s *SquareService) Create(ctx context.Context) (*model.Square, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(ctx, "create square", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.LoadAll()
	if err != nil {
		return nil, s.fail(ctx, "create square", err)
	}
	pos, err := s.nextFree(existing)
	if err != nil {
		return nil, s.fail(ctx, "create square", err)
	}
	color := s.colors.Next()

	square := model.NewSquare(s.newID(), pos.Row, pos.Column, color, s.now())
	saved, err := s.store.Append(square)
	if err != nil {
		return nil, s.fail(ctx, "create square", err)
	}

	logging.FromContext(ctx, s.logger).Debug("Created square",
		"id", saved.ID, "row", saved.Row, "column", saved.Column, "color", saved.Color)

	if s.metrics != nil {
		s.metrics.CreatedTotal.Inc()
		s.metrics.Stored.Set(float64(len(existing) + 1))
	}
	return saved, nil
}

// nextFree returns the first spiral coordinate, from index len(existing) on,
// that no stored square holds. Read-repair can drop records from the
// middle of the file, so the stored count alone may point at an occupied cell.
// On an undamaged store this is always the coordinate at len(existing).
func (s *SquareService) nextFree(existing []*model.Square) (spiral.Coordinate, error) {
	occupied := make(map[spiral.Coordinate]struct{}, len(existing))
	for _, sq := range existing {
		occupied[spiral.Coordinate{Row: sq.Row, Column: sq.Column}] = struct{}{}
	}

	for index := len(existing); ; index++ {
		pos, err := s.sequencer.PositionAt(index)
		if err != nil {
			return spiral.Coordinate{}, err
		}
		if _, taken := occupied[pos]; !taken {
			return pos, nil
		}
	}
}

// List returns all squares in creation order. An empty store yields an empty slice.
func (s *SquareService) List(ctx context.Context) ([]*model.Square, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(ctx, "list squares", err)
	}

	// Held so a list never interleaves with a create or clear
	s.mu.Lock()
	defer s.mu.Unlock()

	squares, err := s.store.LoadAll()
	if err != nil {
		return nil, s.fail(ctx, "list squares", err)
	}
	if s.metrics != nil {
		s.metrics.Stored.Set(float64(len(squares)))
	}
	return squares, nil
}

// Clear removes every square and resets the spiral and color rotation,
// so the next squares replay the same coordinates as a fresh system.
func (s *SquareService) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return s.fail(ctx, "clear squares", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearAll(); err != nil {
		return s.fail(ctx, "clear squares", err)
	}
	s.colors.Reset()
	s.sequencer.Reset()

	logging.FromContext(ctx, s.logger).Info("Cleared all squares")

	if s.metrics != nil {
		s.metrics.ClearedTotal.Inc()
		s.metrics.Stored.Set(0)
	}
	return nil
}

// fail logs err in full and converts it to the error kind callers see.
func (s *SquareService) fail(ctx context.Context, op string, err error) error {
	wrapped := apperr.Internal(op, err)
	kind := apperr.KindOf(wrapped)

	logger := logging.FromContext(ctx, s.logger)
	if kind == apperr.KindValidation {
		logger.Warn("Rejected "+op, "err", err)
	} else {
		logger.Error("Unexpected error during "+op, "err", err)
	}

	if s.metrics != nil {
		s.metrics.FailuresTotal.WithLabelValues(op, string(kind)).Inc()
	}
	return wrapped
}
