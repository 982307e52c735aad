// Package spiral maps square creation order to grid coordinates.
//
// Coordinates are produced by an expanding square spiral built one ring at a
// time. Growing from an (s-1)x(s-1) grid to an s x s grid appends the new
// right column top to bottom, then the new bottom row right to left, so the
// first n coordinates always fit inside a ceil(sqrt(n)) square and existing
// coordinates never move:
//
//	0 1 4
//	3 2 5
//	8 7 6
package spiral

import (
	apperr "github.com/amterp/squares/internal/errors"
)

// Coordinate is a zero-based grid position.
type Coordinate struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Sequencer lazily builds and caches the spiral.
// Not safe for concurrent use; the owning service serializes access.
type Sequencer struct {
	coords []Coordinate
	seen   map[Coordinate]struct{}
	size   int // largest ring built so far, 0 when empty
}

// NewSequencer creates an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{
		seen: make(map[Coordinate]struct{}),
	}
}

// PositionAt returns the coordinate for the square created at the given
// 0-based index, expanding the cached spiral as needed.
func (s *Sequencer) PositionAt(index int) (Coordinate, error) {
	if index < 0 {
		return Coordinate{}, apperr.NegativeIndex(index)
	}

	s.expandTo(GridSize(index + 1))
	return s.coords[index], nil
}

// positions returns the first n coordinates in creation order.
func (s *Sequencer) positions(n int) ([]Coordinate, error) {
	if n < 0 {
		return nil, apperr.NegativeIndex(n)
	}

	s.expandTo(GridSize(n))
	out := make([]Coordinate, n)
	copy(out, s.coords[:n])
	return out, nil
}

// cached returns the number of cached coordinates.
func (s *Sequencer) cached() int {
	return len(s.coords)
}

// ringSize returns the largest ring size built so far.
func (s *Sequencer) ringSize() int {
	return s.size
}

// Reset drops all cached coordinates.
func (s *Sequencer) Reset() {
	s.coords = nil
	s.seen = make(map[Coordinate]struct{})
	s.size = 0
}

func (s *Sequencer) expandTo(target int) {
	if target > 0 && s.size == 0 {
		s.add(0, 0)
		s.size = 1
	}
	for s.size < target {
		s.size++
		s.addRing(s.size)
	}
}

// addRing appends the border of a size x size frame that is not already present.
func (s *Sequencer) addRing(size int) {
	last := size - 1

	s.add(0, last)
	for row := 1; row <= last; row++ {
		s.add(row, last)
	}
	for col := last - 1; col >= 0; col-- {
		s.add(last, col)
	}
	// Already covered by smaller rings; kept so the frame is walked in full.
	for row := last - 1; row >= 1; row-- {
		s.add(row, 0)
	}
}

func (s *Sequencer) add(row, col int) {
	c := Coordinate{Row: row, Column: col}
	if _, ok := s.seen[c]; ok {
		return
	}
	s.seen[c] = struct{}{}
	s.coords = append(s.coords, c)
}

// GridSize returns ceil(sqrt(n)), the side of the smallest square grid
// holding n squares. Returns 0 for n <= 0.
func GridSize(n int) int {
	if n <= 0 {
		return 0
	}
	side := 1
	for side*side < n {
		side++
	}
	return side
}
