package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/amterp/squares/internal/config"
	"github.com/amterp/squares/internal/logging"
	"github.com/amterp/squares/internal/palette"
	"github.com/amterp/squares/internal/prompt"
	"github.com/amterp/squares/internal/service"
	"github.com/amterp/squares/internal/store"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Options are the global flags shared by every command.
type Options struct {
	DataDir     string
	ConfigPath  string
	Verbose     bool
	Interactive bool
}

// App holds all the dependencies for the CLI.
type App struct {
	Config        *config.Config
	ConfigStore   store.ConfigStore
	ConfigExisted bool
	Paths         *config.Paths
	SquareStore   *store.FileSquareStore
	Service       *service.SquareService
	Registry      *prometheus.Registry
	Prompter      prompt.Prompter
	Logger        *log.Logger
	Out           io.Writer
	Interactive   bool
}

// NewApp loads configuration and wires dependencies.
// The config file defaults to <data>/config.toml; --data overrides data_path.
func NewApp(opts Options) (*App, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir
	}
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.NewPaths(dataDir).ConfigPath()
	}

	cfgStore := store.NewConfigStore(cfgPath)
	cfg, err := cfgStore.Load()
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(cfgPath)
	if opts.DataDir != "" {
		cfg.DataPath = opts.DataDir
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}
	if opts.Verbose {
		level = log.DebugLevel
	}
	logger := logging.New(os.Stderr, level)

	var prompter prompt.Prompter = prompt.NoopPrompter{}
	if opts.Interactive {
		prompter = prompt.NewHuhPrompter()
	}

	app := newApp(cfg, cfgStore, prompter, logger, os.Stdout)
	app.ConfigExisted = statErr == nil
	app.Interactive = opts.Interactive
	return app, nil
}

// newApp wires the store, service and metrics for an already-loaded config.
func newApp(cfg *config.Config, cfgStore store.ConfigStore, prompter prompt.Prompter, logger *log.Logger, out io.Writer) *App {
	paths := config.NewPaths(cfg.DataPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := service.NewMetrics(registry)

	squareStore := store.NewSquareStore(paths, logger)
	squareStore.SetRepairObserver(metrics.ObserveRepair)

	svc := service.NewSquareService(squareStore, palette.NewSelector(), logger)
	svc.SetMetrics(metrics)

	return &App{
		Config:      cfg,
		ConfigStore: cfgStore,
		Paths:       paths,
		SquareStore: squareStore,
		Service:     svc,
		Registry:    registry,
		Prompter:    prompter,
		Logger:      logger,
		Out:         out,
	}
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError(os.Stderr, "Error: %v", err)
	os.Exit(1)
}
