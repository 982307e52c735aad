package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	apperr "github.com/amterp/squares/internal/errors"
	"github.com/amterp/squares/internal/palette"
	"github.com/go-playground/validator/v10"
)

// Square is a single placed grid cell. Squares are immutable once created
// and are only ever destroyed together.
type Square struct {
	ID        string    `json:"id" validate:"required"`
	Row       int       `json:"row" validate:"gte=0"`
	Column    int       `json:"column" validate:"gte=0"`
	Color     string    `json:"color" validate:"required,palette"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

// squareValidate is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var squareValidate *validator.Validate

func init() {
	squareValidate = validator.New()

	// Report JSON names so messages match the persisted format
	squareValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = squareValidate.RegisterValidation("palette", func(fl validator.FieldLevel) bool {
		return palette.IsPaletteColor(fl.Field().String())
	})
}

// NewSquare builds a square at the given position, stamping CreatedAt in UTC.
func NewSquare(id string, row, column int, color string, now time.Time) *Square {
	return &Square{
		ID:        id,
		Row:       row,
		Column:    column,
		Color:     color,
		CreatedAt: now.UTC(),
	}
}

// Validate checks every field of the square and returns a
// *errors.ValidationError describing the first violation.
func (s *Square) Validate() error {
	if s == nil {
		return apperr.InvalidField("square", "must not be nil")
	}
	if strings.TrimSpace(s.ID) == "" {
		return apperr.MissingID("square")
	}
	if s.CreatedAt.IsZero() {
		return apperr.InvalidField("createdAt", "is required")
	}

	err := squareValidate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperr.InvalidField(fe.Field(), describeTag(fe))
	}
	return apperr.InvalidField("square", err.Error())
}

// Equal reports whether two squares carry the same identity, position, color
// and timestamp. Timestamps compare by instant, so a square decoded from disk
// equals the one that was written even if its location differs. Store tests
// rely on it to check round-tripped records.
func (s *Square) Equal(other *Square) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID &&
		s.Row == other.Row &&
		s.Column == other.Column &&
		s.Color == other.Color &&
		s.CreatedAt.Equal(other.CreatedAt)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value())
	case "palette":
		return fmt.Sprintf("%v is not a palette color", fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
