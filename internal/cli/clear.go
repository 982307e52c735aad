package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/amterp/squares/internal/prompt"
	"github.com/amterp/ra"
)

func registerClear(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("clear")
	cmd.SetDescription("Remove every square")

	ctx.ClearYes, _ = ra.NewBool("yes").
		SetShort("y").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip the confirmation prompt").
		Register(cmd)

	ctx.ClearUsed, _ = parent.RegisterCmd(cmd)
}

func runClear(app *App, yes bool) error {
	ctx := context.Background()

	squares, err := app.Service.List(ctx)
	if err != nil {
		return err
	}

	if !yes {
		confirmed, err := app.Prompter.Confirm(fmt.Sprintf("Remove all %d squares?", len(squares)), false)
		if errors.Is(err, prompt.ErrNonInteractive) {
			return fmt.Errorf("refusing to clear without --yes in non-interactive mode")
		}
		if err != nil {
			return err
		}
		if !confirmed {
			PrintInfo(app.Out, "Cancelled")
			return nil
		}
	}

	if err := app.Service.Clear(ctx); err != nil {
		return err
	}
	PrintSuccess(app.Out, "Cleared %d squares", len(squares))
	return nil
}
