package cli

import (
	"context"

	apperr "github.com/amterp/squares/internal/errors"
	"github.com/amterp/squares/internal/model"
	"github.com/amterp/ra"
)

func registerAdd(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("add")
	cmd.SetDescription("Place new squares")

	ctx.AddCount, _ = ra.NewInt("count").
		SetShort("n").
		SetOptional(true).
		SetDefault(1).
		SetFlagOnly(true).
		SetUsage("Number of squares to place").
		Register(cmd)

	ctx.AddJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.AddUsed, _ = parent.RegisterCmd(cmd)
}

func runAdd(app *App, count int, jsonOutput bool) error {
	if count < 1 {
		return apperr.InvalidField("count", "must be at least 1")
	}

	ctx := context.Background()
	created := make([]*model.Square, 0, count)
	for i := 0; i < count; i++ {
		sq, err := app.Service.Create(ctx)
		if err != nil {
			return err
		}
		created = append(created, sq)
	}

	if jsonOutput {
		return printJson(app.Out, NewAddOutput(created))
	}

	for _, sq := range created {
		PrintSuccess(app.Out, "Placed %s at (%d, %d) %s", RenderID(sq.ID), sq.Row, sq.Column, ColorSwatch(sq.Color))
	}
	return nil
}
