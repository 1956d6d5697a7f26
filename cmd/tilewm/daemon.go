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

	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/tilewm/internal/daemon"
	"github.com/1broseidon/tilewm/internal/display"
	"github.com/1broseidon/tilewm/internal/events"
	"github.com/1broseidon/tilewm/internal/runtimepath"
	"github.com/1broseidon/tilewm/internal/workspace"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm daemon [--config PATH] [--log-level LEVEL]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Take over window management on the display and log every event.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("config", "", "Config file path (default: ~/.config/tilewm/config.yaml)")
	logLevel := fs.String("log-level", "", "Override log_level (debug, info, warn, error)")
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

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	logger, err := newLogger(cfg, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "workspaces", len(cfg.Workspaces), "log_level", cfg.LogLevel)

	pidPath, err := runtimepath.PIDPath(cfg.Display)
	if err != nil {
		logger.Error("failed to locate runtime dir", "error", err)
		return 1
	}
	lock, err := runtimepath.Acquire(pidPath)
	if err != nil {
		logger.Error("failed to acquire daemon lock", "error", err)
		return 1
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to remove pid file", "path", lock.Path(), "error", err)
		}
	}()

	backend, err := connect(cfg)
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer backend.Disconnect()

	// Config validation already rejected workspaces that can never resolve;
	// what is left here is a named output that is not connected right now.
	screens, err := workspace.ResolveAll(cfg.Workspaces, backend)
	for _, s := range screens {
		logger.Info("workspace screen", "workspace", s.WorkspaceID, "bbox", s.BBox)
	}
	if err != nil {
		logger.Warn("some workspaces could not be resolved", "error", err)
	}

	adapter, err := display.New(backend, logger)
	if err != nil {
		logger.Error("failed to start display adapter", "error", err)
		return 1
	}

	registry := daemon.NewRegistry(logger)
	pump := daemon.NewPump(adapter, func(item events.Item) {
		logger.Info("event", "item", events.Describe(item))
		registry.Apply(item)
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pump.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		// The pump is parked in a blocking read; closing the connection
		// wakes it up.
		backend.Disconnect()
		return nil
	})

	logger.Info("tilewm daemon started")
	err = g.Wait()
	logger.Info("tilewm daemon stopped",
		"screens", len(registry.Screens()),
		"windows", len(registry.Windows()))
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, daemon.ErrDisplayClosed) {
		logger.Error("daemon exited with error", "error", err)
		return 1
	}
	return 0
}
