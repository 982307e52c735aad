package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/amterp/squares/internal/model"
	"github.com/amterp/squares/internal/spiral"
)

// squareJson is the CLI's JSON form of a square.
// Kept in sync with model.Square by TestSquareJsonFieldSync.
type squareJson struct {
	ID        string    `json:"id"`
	Row       int       `json:"row"`
	Column    int       `json:"column"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func squareToJson(sq *model.Square) squareJson {
	return squareJson{
		ID:        sq.ID,
		Row:       sq.Row,
		Column:    sq.Column,
		Color:     sq.Color,
		CreatedAt: sq.CreatedAt,
	}
}

func squaresToJson(squares []*model.Square) []squareJson {
	result := make([]squareJson, 0, len(squares))
	for _, sq := range squares {
		result = append(result, squareToJson(sq))
	}
	return result
}

// AddOutput wraps squares created by one `add` invocation.
type AddOutput struct {
	Squares []squareJson `json:"squares"`
}

// NewAddOutput creates an AddOutput. Always an array, never null.
func NewAddOutput(squares []*model.Square) AddOutput {
	return AddOutput{Squares: squaresToJson(squares)}
}

// ListOutput wraps the stored squares with grid metadata.
type ListOutput struct {
	Count    int          `json:"count"`
	GridSize int          `json:"grid_size"`
	Squares  []squareJson `json:"squares"`
}

// NewListOutput creates a ListOutput. Always an array, never null.
func NewListOutput(squares []*model.Square) ListOutput {
	return ListOutput{
		Count:    len(squares),
		GridSize: spiral.GridSize(len(squares)),
		Squares:  squaresToJson(squares),
	}
}

// printJson marshals the value as indented JSON and prints it.
func printJson(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
