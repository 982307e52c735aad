package cli

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/amterp/squares/internal/model"
	"github.com/amterp/squares/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSquareJsonFieldSync ensures squareJson stays in sync with model.Square.
// If this fails, a field was added to model.Square without updating json_output.go.
func TestSquareJsonFieldSync(t *testing.T) {
	modelType := reflect.TypeOf(model.Square{})
	jsonType := reflect.TypeOf(squareJson{})

	require.Equal(t, modelType.NumField(), jsonType.NumField(), "field count differs")

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		jsonField, found := jsonType.FieldByName(field.Name)
		if !assert.True(t, found, "model.Square has field %q but squareJson does not", field.Name) {
			continue
		}
		assert.Equal(t, field.Type, jsonField.Type, "type of %q", field.Name)
		assert.Equal(t, field.Tag.Get("json"), jsonField.Tag.Get("json"), "json tag of %q", field.Name)
	}
}

func TestNewListOutput_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJson(&buf, NewListOutput(nil)))

	assert.JSONEq(t, `{"count":0,"grid_size":0,"squares":[]}`, buf.String())
}

func TestNewListOutput(t *testing.T) {
	squares := []*model.Square{
		testutil.TestSquare("a", 0, 0),
		testutil.TestSquare("b", 0, 1),
	}

	out := NewListOutput(squares)

	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 2, out.GridSize)
	require.Len(t, out.Squares, 2)
	assert.Equal(t, "b", out.Squares[1].ID)

	data, err := json.Marshal(out.Squares[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"createdAt":"2026-01-15T09:30:00Z"`)
}
