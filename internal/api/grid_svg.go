package api

import (
	"fmt"
	"html"
	"strings"

	"github.com/amterp/squares/internal/model"
	"github.com/amterp/squares/internal/spiral"
)

// Layout mirrors the browser client's grid so the preview matches what users see.
const (
	gridCellSize    = 60
	gridGap         = 4
	gridPadding     = 24
	gridCellRadius  = 7
	gridBorderColor = "#1a1a1a"
	gridBorderWidth = 2
	gridBackground  = "#6b21a8"
)

// RenderGridSVG draws squares at their stored coordinates.
// The canvas is sized to the smallest square grid that holds every cell.
func RenderGridSVG(squares []*model.Square) string {
	side := spiral.GridSize(len(squares))
	for _, sq := range squares {
		side = max(side, sq.Row+1, sq.Column+1)
	}

	extent := 2 * gridPadding
	if side > 0 {
		extent += side*gridCellSize + (side-1)*gridGap
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		extent, extent, extent, extent)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, extent, extent, gridBackground)

	for _, sq := range squares {
		x := gridPadding + sq.Column*(gridCellSize+gridGap)
		y := gridPadding + sq.Row*(gridCellSize+gridGap)
		fmt.Fprintf(&b,
			`<rect data-id="%s" x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" stroke="%s" stroke-width="%d"/>`,
			html.EscapeString(sq.ID), x, y, gridCellSize, gridCellSize, gridCellRadius,
			html.EscapeString(sq.Color), gridBorderColor, gridBorderWidth)
	}

	b.WriteString(`</svg>`)
	return b.String()
}
