package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phsym/console-slog"
	"golang.org/x/term"

	"github.com/1broseidon/noborders/internal/config"
	"github.com/1broseidon/noborders/internal/daemon"
	"github.com/1broseidon/noborders/internal/engine"
	"github.com/1broseidon/noborders/internal/ipc"
	"github.com/1broseidon/noborders/internal/platform"
	"github.com/1broseidon/noborders/pkg/sutureext"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: noborders daemon [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the daemon in the foreground: refresh windows on a timer,")
		fmt.Fprintln(os.Stderr, "reapply fullscreen preferences, and serve IPC clients.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Config file path (default: ~/.config/noborders/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := initLogger(cfg.SlogLevel())
	slog.SetDefault(logger)

	backend, err := platform.NewBackend()
	if err != nil {
		logger.Error("Platform backend unavailable", slog.Any("error", err))
		return 1
	}

	eng := engine.New(backend,
		engine.WithLogger(logger),
		engine.WithMatcher(cfg.Matcher()),
	)
	coord := daemon.NewCoordinator(eng, daemon.Config{
		Interval:     cfg.RefreshInterval(),
		IdleInterval: cfg.IdleRefreshInterval(),
		Logger:       logger,
	})

	if platform.IsElevated() {
		logger.Info("Running elevated, can manage windows of elevated processes")
	}
	logger.Info("Daemon starting",
		slog.String("listen", cfg.Listen),
		slog.Duration("interval", cfg.RefreshInterval()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	super := sutureext.NewSupervisor("noborders")
	sutureext.Add(super, daemon.NewService(coord))
	sutureext.Add(super, ipc.NewServer(cfg.Listen, eng, coord, logger))

	if err := super.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Daemon exited", slog.Any("error", err))
		return 1
	}
	logger.Info("Daemon stopped")
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func initLogger(level slog.Level) *slog.Logger {
	return slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level:   level,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	}))
}
