// Package cli parses command-line arguments into a Command and defines the
// process exit codes.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pdrpinto/gridpath"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

// ExitError is an error that carries a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Command is a parsed invocation.
type Command struct {
	Name       string // "search" or "serve"
	ConfigPath string
	GridPath   string
	Width      int
	Height     int
	Start      gridpath.Coord
	Goal       gridpath.Coord
	Selection  string
	ShowSteps  bool
	Addr       string
	LogLevel   string
	LogFormat  string
}

const usage = `
gridpath - A* pathfinding over plain-text grids.

Usage:
  gridpath search [options] -start x,y -goal x,y
  gridpath serve  [options]

Options:
`

// Parse processes command-line arguments. It returns the Command, whether the
// program should exit cleanly (help was requested), or an *ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}
	name := args[0]
	switch name {
	case "search", "serve":
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, usage)
		return nil, true, nil
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unknown command %q (want search or serve)", name)}
	}

	flagSet := flag.NewFlagSet("gridpath "+name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	cmd := &Command{Name: name}
	flagSet.StringVar(&cmd.ConfigPath, "config", "", "Path to the YAML config file.")
	flagSet.StringVar(&cmd.GridPath, "grid", "", "Path to the grid file (overrides config).")
	flagSet.IntVar(&cmd.Width, "width", 0, "Grid width in cells (overrides config).")
	flagSet.IntVar(&cmd.Height, "height", 0, "Grid height in cells (overrides config).")
	flagSet.StringVar(&cmd.Selection, "selection", "", "Frontier policy: 'first' or 'lowest' (overrides config).")
	flagSet.StringVar(&cmd.LogLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cmd.LogFormat, "log-format", "", "Log output format: 'text' or 'json'.")
	var start, goal string
	if name == "search" {
		flagSet.StringVar(&start, "start", "", "Start cell as x,y.")
		flagSet.StringVar(&goal, "goal", "", "Goal cell as x,y.")
		flagSet.BoolVar(&cmd.ShowSteps, "steps", false, "Print the step log.")
	} else {
		flagSet.StringVar(&cmd.Addr, "addr", "", "HTTP listen address (overrides config).")
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}

	if name == "search" {
		if start == "" || goal == "" {
			return nil, false, &ExitError{Code: ExitUsage, Message: "search requires -start and -goal"}
		}
		var err error
		if cmd.Start, err = gridpath.ParseCoord(start); err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: "invalid -start: " + err.Error()}
		}
		if cmd.Goal, err = gridpath.ParseCoord(goal); err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: "invalid -goal: " + err.Error()}
		}
	}
	if cmd.Selection != "" {
		if _, err := gridpath.ParseSelection(cmd.Selection); err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
	}
	return cmd, false, nil
}
