package model

import (
	"testing"
	"time"

	apperr "github.com/amterp/squares/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSquare() *Square {
	return NewSquare("sq1", 1, 2, "#FF5733", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestSquare_Validate_Valid(t *testing.T) {
	assert.NoError(t, validSquare().Validate())
}

func TestSquare_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *Square)
		wantField string
	}{
		{"empty id", func(s *Square) { s.ID = "" }, "invalid id"},
		{"blank id", func(s *Square) { s.ID = "   " }, "invalid id"},
		{"negative row", func(s *Square) { s.Row = -1 }, "invalid row"},
		{"negative column", func(s *Square) { s.Column = -3 }, "invalid column"},
		{"missing color", func(s *Square) { s.Color = "" }, "invalid color"},
		{"off-palette color", func(s *Square) { s.Color = "#000000" }, "invalid color"},
		{"zero timestamp", func(s *Square) { s.CreatedAt = time.Time{} }, "invalid createdAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq := validSquare()
			tt.mutate(sq)

			err := sq.Validate()
			require.Error(t, err)
			assert.True(t, apperr.IsValidationError(err), "expected validation error, got %v", err)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestSquare_Validate_Nil(t *testing.T) {
	var sq *Square
	assert.True(t, apperr.IsValidationError(sq.Validate()))
}

func TestNewSquare_StampsUTC(t *testing.T) {
	local := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	sq := NewSquare("id", 0, 0, "#33FF57", local)

	assert.Equal(t, time.UTC, sq.CreatedAt.Location())
	assert.True(t, sq.CreatedAt.Equal(local))
}

func TestSquare_Equal(t *testing.T) {
	a := validSquare()
	b := validSquare()
	assert.True(t, a.Equal(b))

	b.Color = "#33FF57"
	assert.False(t, a.Equal(b))

	var nilSquare *Square
	assert.False(t, a.Equal(nilSquare))
	assert.True(t, nilSquare.Equal(nil))
}
