package config

import (
	"fmt"
	"strings"

	"github.com/pdrpinto/gridpath"
)

// Validate checks ranges and enumerations and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Grid.Width <= 0 || cfg.Grid.Height <= 0 {
		errs = append(errs, fmt.Sprintf("grid: size %dx%d must be positive", cfg.Grid.Width, cfg.Grid.Height))
	}
	if cfg.Grid.Watch && cfg.Grid.File == "" {
		errs = append(errs, "grid: watch requires file")
	}
	if _, err := gridpath.ParseSelection(cfg.Search.Selection); err != nil {
		errs = append(errs, "search: "+err.Error())
	}
	if cfg.Search.Workers < 1 {
		errs = append(errs, fmt.Sprintf("search: workers %d must be at least 1", cfg.Search.Workers))
	}
	if cfg.Search.MaxBatch < 1 {
		errs = append(errs, fmt.Sprintf("search: max_batch %d must be at least 1", cfg.Search.MaxBatch))
	}
	if cfg.Server.ReadTimeoutMs < 0 || cfg.Server.WriteTimeoutMs < 0 {
		errs = append(errs, "server: timeouts must not be negative")
	}
	if cfg.Server.MaxSessions < 1 {
		errs = append(errs, fmt.Sprintf("server: max_sessions %d must be at least 1", cfg.Server.MaxSessions))
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log: invalid level %q", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log: invalid format %q", cfg.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Selection returns the parsed frontier policy. Call Validate first.
func (c *Config) Selection() gridpath.Selection {
	sel, _ := gridpath.ParseSelection(c.Search.Selection)
	return sel
}
