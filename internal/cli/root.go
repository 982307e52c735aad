package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	DataDir        *string
	ConfigPath     *string
	Verbose        *bool
	NonInteractive *bool

	// init command
	InitUsed        *bool
	InitEnvironment *string
	InitPort        *int

	// serve command
	ServeUsed *bool
	ServePort *int

	// add command
	AddUsed  *bool
	AddCount *int
	AddJson  *bool

	// list command
	ListUsed *bool
	ListJson *bool

	// clear command
	ClearUsed *bool
	ClearYes  *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// options returns the global flags as app options.
func (c *CommandContext) options() Options {
	return Options{
		DataDir:     *c.DataDir,
		ConfigPath:  *c.ConfigPath,
		Verbose:     *c.Verbose,
		Interactive: !*c.NonInteractive,
	}
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}
	cmd := newRootCmd(ctx)

	cmd.ParseOrExit(os.Args[1:])

	if *ctx.CompletionUsed {
		runCompletion(*ctx.CompletionShell, cmd)
		return
	}

	if err := executeCommand(ctx); err != nil {
		Fatal(err)
	}
}

func newRootCmd(ctx *CommandContext) *ra.Cmd {
	cmd := ra.NewCmd("squares")
	cmd.SetDescription("Place colored squares on a spiral grid")

	ctx.DataDir, _ = ra.NewString("data").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Data directory holding squares.json (default: Data)").
		Register(cmd, ra.WithGlobal(true))

	ctx.ConfigPath, _ = ra.NewString("config").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Config file (default: <data>/config.toml)").
		Register(cmd, ra.WithGlobal(true))

	ctx.Verbose, _ = ra.NewBool("verbose").
		SetShort("v").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Enable debug logging").
		Register(cmd, ra.WithGlobal(true))

	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	registerInit(cmd, ctx)
	registerServe(cmd, ctx)
	registerAdd(cmd, ctx)
	registerList(cmd, ctx)
	registerClear(cmd, ctx)
	registerCompletion(cmd, ctx)

	return cmd
}

func executeCommand(ctx *CommandContext) error {
	opts := ctx.options()

	switch {
	case *ctx.InitUsed:
		app, err := NewApp(opts)
		if err != nil {
			return err
		}
		return runInit(app, *ctx.InitEnvironment, *ctx.InitPort)

	case *ctx.ServeUsed:
		app, err := NewApp(opts)
		if err != nil {
			return err
		}
		return runServe(app, *ctx.ServePort)

	case *ctx.AddUsed:
		app, err := NewApp(opts)
		if err != nil {
			return err
		}
		return runAdd(app, *ctx.AddCount, *ctx.AddJson)

	case *ctx.ListUsed:
		app, err := NewApp(opts)
		if err != nil {
			return err
		}
		return runList(app, *ctx.ListJson)

	case *ctx.ClearUsed:
		app, err := NewApp(opts)
		if err != nil {
			return err
		}
		return runClear(app, *ctx.ClearYes)
	}
	return nil
}
