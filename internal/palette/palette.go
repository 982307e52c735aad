// Package palette holds the fixed square colors and a selector that never
// hands out the same color twice in a row.
package palette

import (
	"math/rand/v2"
	"strings"
)

// Colors is the fixed palette squares are colored from.
var Colors = []string{
	"#FF5733", "#33FF57", "#3357FF", "#FF33F5", "#F5FF33", "#33FFF5",
	"#FF6B33", "#6B33FF", "#33FF6B", "#FF336B", "#6BFF33", "#336BFF",
}

// IsPaletteColor reports whether c is one of Colors. Comparison ignores hex case.
func IsPaletteColor(c string) bool {
	for _, p := range Colors {
		if strings.EqualFold(p, c) {
			return true
		}
	}
	return false
}

// Selector picks random palette colors, avoiding immediate repetition.
// Not safe for concurrent use; callers serialize access.
type Selector struct {
	colors []string
	last   string // "" means none
	intn   func(n int) int
}

// NewSelector creates a selector over Colors using a non-cryptographic source.
func NewSelector() *Selector {
	return NewSelectorWith(Colors, rand.IntN)
}

// NewSelectorWith creates a selector over the given colors and random source.
// intn must return a value in [0, n).
func NewSelectorWith(colors []string, intn func(n int) int) *Selector {
	return &Selector{
		colors: colors,
		intn:   intn,
	}
}

// Next returns a random color that differs from the previous one
// whenever the palette has more than one entry.
func (s *Selector) Next() string {
	color := s.colors[s.intn(len(s.colors))]
	for len(s.colors) > 1 && color == s.last {
		color = s.colors[s.intn(len(s.colors))]
	}
	s.last = color
	return color
}

// Last returns the previously returned color, or "" if none.
func (s *Selector) Last() string {
	return s.last
}

// Reset forgets the previously returned color.
func (s *Selector) Reset() {
	s.last = ""
}
