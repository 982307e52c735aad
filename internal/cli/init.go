package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/amterp/squares/internal/config"
	"github.com/amterp/squares/internal/prompt"
	"github.com/amterp/ra"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Create the data directory, empty store and config file")

	ctx.InitEnvironment, _ = ra.NewString("environment").
		SetShort("e").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("development or production (prompted when omitted)").
		Register(cmd)

	ctx.InitPort, _ = ra.NewInt("port").
		SetShort("p").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Port for serve (prompted when omitted)").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

// runInit writes the store and config. Settings come from flags, then prompts,
// then the existing config; prompts are skipped in non-interactive mode.
func runInit(app *App, environment string, port int) error {
	cfg := app.Config

	if environment == "" {
		chosen, err := app.Prompter.Select("Environment",
			[]string{config.EnvironmentProduction, config.EnvironmentDevelopment}, cfg.Environment)
		if err := skipNonInteractive(err); err != nil {
			return err
		}
		if chosen != "" {
			environment = chosen
		}
	}
	if environment != "" {
		cfg.Environment = environment
	}

	if port == 0 {
		answer, err := app.Prompter.Input("Port", strconv.Itoa(cfg.Port), validatePort)
		if err := skipNonInteractive(err); err != nil {
			return err
		}
		if answer != "" {
			port, _ = strconv.Atoi(answer)
		}
	}
	if port != 0 {
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := app.SquareStore.EnsureExists(); err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	if err := app.ConfigStore.Save(cfg); err != nil {
		return err
	}

	if app.ConfigExisted {
		PrintSuccess(app.Out, "Updated config in %s", app.Paths.DataDir())
	} else {
		PrintSuccess(app.Out, "Initialized %s", app.Paths.DataDir())
	}
	PrintInfo(app.Out, "Store:  %s", app.SquareStore.Path())
	PrintInfo(app.Out, "Run 'squares serve' to start the API on port %d", cfg.Port)
	return nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

// skipNonInteractive treats a refused prompt as "keep the default".
func skipNonInteractive(err error) error {
	if errors.Is(err, prompt.ErrNonInteractive) {
		return nil
	}
	return err
}
