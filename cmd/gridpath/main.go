package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/cli"
	"github.com/pdrpinto/gridpath/internal/config"
	"github.com/pdrpinto/gridpath/internal/gridfile"
	"github.com/pdrpinto/gridpath/internal/metrics"
	"github.com/pdrpinto/gridpath/internal/pathutil"
	"github.com/pdrpinto/gridpath/internal/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run parses args and dispatches to the selected command.
func run(out io.Writer, args []string) error {
	cmd, shouldExit, err := cli.Parse(args, out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.Log)
	slog.SetDefault(logger)

	switch cmd.Name {
	case "search":
		return runSearch(out, cmd, cfg, logger)
	default:
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg, logger)
	}
}

// loadConfig reads the config file when one is given and applies flag
// overrides on top.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if cmd.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(cmd.ConfigPath); err != nil {
			return nil, err
		}
	}
	if cmd.GridPath != "" {
		cfg.Grid.File = cmd.GridPath
	}
	if cmd.Width > 0 {
		cfg.Grid.Width = cmd.Width
	}
	if cmd.Height > 0 {
		cfg.Grid.Height = cmd.Height
	}
	if cmd.Selection != "" {
		cfg.Search.Selection = cmd.Selection
	}
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}
	if cmd.LogLevel != "" {
		cfg.Log.Level = cmd.LogLevel
	}
	if cmd.LogFormat != "" {
		cfg.Log.Format = cmd.LogFormat
	}
	if err := config.Validate(cfg); err != nil {
		return nil, &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	}
	return cfg, nil
}

func newLogger(w io.Writer, conf config.LogConf) *slog.Logger {
	var level slog.Level
	switch conf.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if conf.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func runSearch(out io.Writer, cmd *cli.Command, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Grid.File == "" {
		return &cli.ExitError{Code: cli.ExitUsage, Message: "search requires -grid or grid.file in the config"}
	}
	grid, err := gridfile.LoadFile(cfg.Grid.File, cfg.Grid.Width, cfg.Grid.Height)
	if err != nil {
		return err
	}

	res, err := gridpath.Search(context.Background(), grid, cmd.Start, cmd.Goal,
		gridpath.WithSelection(cfg.Selection()),
		gridpath.WithLogger(logger),
	)
	if err != nil {
		if errors.Is(err, gridpath.ErrOutOfBounds) {
			return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
		}
		return err
	}

	if cmd.ShowSteps {
		for _, s := range res.Steps {
			fmt.Fprintln(out, s)
		}
	}
	fmt.Fprintf(out, "found: %t\n", res.Found)
	fmt.Fprintf(out, "expanded: %d\n", res.Expanded)
	if !res.Found {
		return &cli.ExitError{Code: cli.ExitNotFound, Message: fmt.Sprintf("no path from %s to %s", res.Start, res.Goal)}
	}
	fmt.Fprintf(out, "cost: %d\n", res.Cost)
	fmt.Fprintf(out, "path: %s\n", joinCoords(res.Path))
	route := append(pathutil.Reverse(slices.Clone(res.Path)), res.Goal)
	fmt.Fprintf(out, "route: %s\n", joinCoords(route))
	return nil
}

func joinCoords(cs []gridpath.Coord) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// runServe serves the HTTP API until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	grid := gridpath.NewGrid(cfg.Grid.Width, cfg.Grid.Height)
	var watcher *gridfile.Watcher
	if cfg.Grid.File != "" {
		var err error
		if watcher, err = gridfile.NewWatcher(cfg.Grid.File, cfg.Grid.Width, cfg.Grid.Height, logger); err != nil {
			return err
		}
		grid = watcher.Grid()
	}

	srv := server.New(grid, server.Settings{
		Selection:   cfg.Selection(),
		Workers:     cfg.Search.Workers,
		MaxBatch:    cfg.Search.MaxBatch,
		MaxSessions: cfg.Server.MaxSessions,
		Logger:      logger,
	})

	if watcher != nil && cfg.Grid.Watch {
		watcher.OnChange(func(g *gridpath.Grid) {
			srv.SwapGrid(g)
			metrics.ObserveReload(nil)
		})
		watcher.OnError(metrics.ObserveReload)
		stopWatch, err := watcher.Watch()
		if err != nil {
			logger.Warn("grid watcher unavailable (hot-reload disabled)", "err", err)
		} else {
			defer stopWatch()
		}
	}

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr,
			"grid", fmt.Sprintf("%dx%d", grid.Width(), grid.Height()), "selection", cfg.Selection())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("goodbye")
	return nil
}
