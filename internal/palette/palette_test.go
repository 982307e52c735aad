package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence returns a random source that replays the given indices in order.
func sequence(indices ...int) func(n int) int {
	i := 0
	return func(n int) int {
		v := indices[i%len(indices)] % n
		i++
		return v
	}
}

func TestColors_FixedPalette(t *testing.T) {
	require.Len(t, Colors, 12)

	seen := make(map[string]bool)
	for _, c := range Colors {
		assert.Regexp(t, `^#[0-9A-F]{6}$`, c)
		assert.False(t, seen[c], "duplicate palette color %s", c)
		seen[c] = true
	}
}

func TestIsPaletteColor(t *testing.T) {
	assert.True(t, IsPaletteColor("#FF5733"))
	assert.True(t, IsPaletteColor("#ff5733"))
	assert.False(t, IsPaletteColor("#000000"))
	assert.False(t, IsPaletteColor(""))
}

func TestSelector_NeverRepeatsConsecutively(t *testing.T) {
	s := NewSelector()

	prev := s.Next()
	for i := 0; i < 500; i++ {
		got := s.Next()
		require.NotEqual(t, prev, got, "draw %d repeated %s", i, got)
		require.True(t, IsPaletteColor(got))
		prev = got
	}
}

func TestSelector_RedrawsOnRepeat(t *testing.T) {
	// Draws 0, 0, 0, 2: the second and third draws repeat and must be rejected
	s := NewSelectorWith([]string{"a", "b", "c"}, sequence(0, 0, 0, 2))

	assert.Equal(t, "a", s.Next())
	assert.Equal(t, "c", s.Next())
	assert.Equal(t, "c", s.Last())
}

func TestSelector_SingleColorPaletteRepeats(t *testing.T) {
	s := NewSelectorWith([]string{"only"}, sequence(0))

	assert.Equal(t, "only", s.Next())
	assert.Equal(t, "only", s.Next())
}

func TestSelector_Reset(t *testing.T) {
	s := NewSelectorWith([]string{"a", "b"}, sequence(0))

	assert.Equal(t, "a", s.Next())
	s.Reset()
	assert.Equal(t, "", s.Last())

	// After reset the same color is allowed again
	assert.Equal(t, "a", s.Next())
}
