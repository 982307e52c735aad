package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/amterp/squares/internal/model"
	"github.com/amterp/squares/internal/spiral"
	"github.com/amterp/squares/internal/util"
	"github.com/amterp/ra"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("Show the grid")

	ctx.ListJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(app *App, jsonOutput bool) error {
	squares, err := app.Service.List(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(app.Out, NewListOutput(squares))
	}

	if len(squares) == 0 {
		PrintInfo(app.Out, "No squares yet. Run 'squares add' to place one.")
		return nil
	}

	side := gridSide(squares)
	cells := make(map[spiral.Coordinate]string, len(squares))
	for _, sq := range squares {
		cells[spiral.Coordinate{Row: sq.Row, Column: sq.Column}] = sq.Color
	}

	fmt.Fprintln(app.Out, RenderGrid(side, func(row, column int) (string, bool) {
		color, ok := cells[spiral.Coordinate{Row: row, Column: column}]
		return color, ok
	}))

	p := util.NewPrinter(os.Getenv)
	last := squares[len(squares)-1]
	fmt.Fprintln(app.Out, p.Sprintf("%d squares on a %d×%d grid", len(squares), side, side))
	fmt.Fprintln(app.Out, RenderMuted(fmt.Sprintf("last placed %s at %s", last.ID, util.FormatTime(last.CreatedAt))))
	return nil
}

// gridSide is the smallest square grid holding every stored coordinate.
func gridSide(squares []*model.Square) int {
	side := spiral.GridSize(len(squares))
	for _, sq := range squares {
		side = max(side, sq.Row+1, sq.Column+1)
	}
	return side
}
