// Package main is the entry point for the outliner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/outliner/internal/app"
	"github.com/dshills/outliner/internal/config"
	"github.com/dshills/outliner/internal/plugin/lua"
	"github.com/dshills/outliner/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	configPath string
	dotEnvPath string
	logLevel   string
	script     string
	dump       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var loadOpts []config.Option
	if opts.configPath != "" {
		loadOpts = append(loadOpts, config.WithFile(opts.configPath))
	}
	if opts.dotEnvPath != "" {
		loadOpts = append(loadOpts, config.WithDotEnv(opts.dotEnvPath))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	interactive := opts.script == ""
	logCfg := app.LoggerConfigFrom(cfg.Logging)
	if opts.logLevel != "" {
		logCfg.Level = app.ParseLogLevel(opts.logLevel)
	}
	if interactive {
		// The screen owns the terminal; log to the file only.
		logCfg.Output = io.Discard
	}
	log := app.NewLogger(logCfg)

	application, err := app.New(app.Options{
		ConfigPath: opts.configPath,
		DotEnvPath: opts.dotEnvPath,
		LogLevel:   opts.logLevel,
		Config:     cfg,
		Logger:     log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		_ = log.Close()
		return 1
	}
	defer application.Close()

	if interactive {
		err = runInteractive(ctx, application)
	} else {
		err = runScript(ctx, application, opts.script)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.dump {
		out, err := application.Dump()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		os.Stdout.Write(out)
	}
	return 0
}

func runInteractive(ctx context.Context, a *app.Application) error {
	if err := a.WatchConfig(); err != nil {
		a.Logger().Warn("config watch disabled", "error", err)
	}
	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	cfg := a.Config()
	ui := backend.NewUI(term, a, backend.Options{
		ShowBlocks: cfg.Terminal.ShowBlocks,
		Mouse:      cfg.Terminal.Mouse,
		Bus:        a.Bus(),
		Logger:     a.Logger().WithComponent("terminal"),
	})
	return ui.Run(ctx)
}

func runScript(ctx context.Context, a *app.Application, path string) error {
	host := lua.NewHost(a, lua.WithLogger(a.Logger().WithComponent("plugin")))
	defer host.Close()
	return host.RunFile(ctx, path)
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to TOML configuration file (shorthand)")
	flag.StringVar(&opts.dotEnvPath, "env", "", "Path to a .env file")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.script, "script", "", "Run a Lua script headlessly instead of opening the terminal")
	flag.BoolVar(&opts.dump, "dump", false, "Print the outline as YAML on exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Outliner - a block-structured outline editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: outliner [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  outliner                          Open the terminal editor\n")
		fmt.Fprintf(os.Stderr, "  outliner -c outliner.toml         Use a config file\n")
		fmt.Fprintf(os.Stderr, "  outliner -script demo.lua -dump   Run a script and print the tree\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Outliner %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}
	return opts
}
