package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amterp/squares/internal/api"
	"github.com/amterp/ra"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start the HTTP API")

	ctx.ServePort, _ = ra.NewInt("port").
		SetShort("p").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Port to listen on (default: config port)").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(app *App, port int) error {
	cfg := app.Config
	if port != 0 {
		cfg.Port = port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if err := prepareData(app); err != nil {
		return err
	}

	handler := api.NewHandler(app.Service, cfg.IsDevelopment(), app.Logger)
	server := api.NewServer(handler, cfg, app.Paths.DataDir(), app.Registry, app.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	PrintInfo(app.Out, "Squares API running at %s (%s)",
		RenderURL(fmt.Sprintf("http://localhost:%d", cfg.Port)), cfg.Environment)
	PrintInfo(app.Out, "Press Ctrl+C to stop")
	if cfg.IsDevelopment() {
		PrintWarning(app.Out, "Development mode: error details are returned to clients")
	}

	return server.Run(ctx)
}

// prepareData creates a missing data directory with an empty store and a
// default config file. Existing files are left untouched.
func prepareData(app *App) error {
	if err := app.SquareStore.EnsureExists(); err != nil {
		return fmt.Errorf("failed to prepare store: %w", err)
	}
	if err := app.ConfigStore.EnsureExists(); err != nil {
		return fmt.Errorf("failed to prepare config: %w", err)
	}
	return nil
}
