package gridpath

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Result contains the outcome of a search.
//
// Found distinguishes the two outcomes. A failed search (start and goal not
// connected) is a normal result, not an error. Path is ordered from the cell
// next to the goal back to the start; it excludes the goal and includes the
// start. When start equals goal Path is empty and Found is true.
type Result struct {
	RunID     string        `json:"run_id"`
	Start     Coord         `json:"start"`
	Goal      Coord         `json:"goal"`
	Selection Selection     `json:"selection"`
	State     RunState      `json:"-"`
	Found     bool          `json:"found"`
	Path      []Coord       `json:"path"`
	Cost      int           `json:"cost"`
	Steps     []Step        `json:"steps"`
	Expanded  int           `json:"expanded"`
	Duration  time.Duration `json:"duration_ns"`
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	Selection       Selection
	Heuristic       Heuristic
	Logger          *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many searches SearchAll runs at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithSelection chooses the frontier policy. The default is SelectFirst.
func WithSelection(selection Selection) Option {
	return func(options *Options) { options.Selection = selection }
}

// WithHeuristic replaces the default Manhattan heuristic.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func newOptions(options []Option) Options {
	opts := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Selection:       SelectFirst,
		Heuristic:       Manhattan,
	}
	for _, option := range options {
		option(&opts)
	}
	if opts.NumberOfWorkers < 1 {
		opts.NumberOfWorkers = 1
	}
	if opts.Heuristic == nil {
		opts.Heuristic = Manhattan
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

// Search runs A* from start to goal to completion.
//
// The only errors are an out-of-bounds start or goal and cancellation of ctx,
// which is checked between iterations.
func Search(
	ctx context.Context,
	grid *Grid,
	start Coord,
	goal Coord,
	options ...Option,
) (Result, error) {
	stepper, err := NewStepper(grid, start, goal, options...)
	if err != nil {
		return Result{}, err
	}
	for !stepper.Done() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		stepper.Step()
	}
	return stepper.Result(), nil
}
