// Package app wires configuration, the classifier, the candidate producer
// and the printer into one run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/sfind-dev/sfind/internal/config"
	"github.com/sfind-dev/sfind/internal/filter"
	"github.com/sfind-dev/sfind/internal/logger"
	"github.com/sfind-dev/sfind/internal/printer"
	"github.com/sfind-dev/sfind/internal/producer"
	"github.com/sfind-dev/sfind/internal/query"
)

// App encapsulates the main application functionality.
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer
}

// New creates a new App instance.
func New(cfg *config.Config) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		Output: os.Stdout,
	}
}

// Run executes one search and returns the process exit code.
func (a *App) Run() int {
	if a.cfg.ShowVersion {
		fmt.Fprintf(a.Output, "sfind version %s\n", a.cfg.Version)
		return 0
	}

	startTime := time.Now()

	cwd, err := os.Getwd()
	if err != nil {
		a.log.Error("Failed to read current directory: %v", err)
		return 1
	}

	base, err := resolveBase(cwd, a.cfg.Path)
	if err != nil {
		a.log.Error("%v", err)
		return 1
	}

	if a.log.Verbose() {
		a.log.Debug("Search base: %s", base)
		a.log.Debug("Pattern: %q", a.cfg.Pattern)
		a.log.Debug("Filtering: hidden=%v, no-ignore=%v, exclude=%q",
			a.cfg.IncludeHidden, a.cfg.NoIgnore, a.cfg.Exclude)
	}

	classifier := filter.New(filter.Config{
		SearchBase:       base,
		IncludeHidden:    a.cfg.IncludeHidden,
		DisableFiltering: a.cfg.NoIgnore,
		ExcludePatterns:  a.cfg.ExcludePatterns(),
	}, filter.WithLogger(a.log))

	style := printer.NewStyle(cwd, base, a.cfg.Path)
	p := printer.New().
		WithOutput(a.Output).
		WithColors(a.cfg.UseColors)
	if a.cfg.Print0 {
		p.WithDelimiter(printer.Nul)
	}

	var post *query.NameMatch
	emit := func(path string) error {
		if !classifier.ClassifyPath(path) {
			return nil
		}
		if post != nil && !post.Matches(path) {
			return nil
		}
		return p.PrintPath(style.Render(path))
	}

	switch {
	case a.cfg.FilesFrom != "":
		err = a.runFromFile(emit)
	default:
		plan := query.BuildPlan(base, a.cfg.Pattern)
		post = plan.Post
		err = producer.Mdfind(context.Background(), plan.Args, emit, producer.WithLogger(a.log))
	}

	if err != nil {
		// Match common Unix CLI behavior: no scary errors when the consumer
		// went away (e.g. `sfind '*.go' | head`).
		if errors.Is(err, syscall.EPIPE) {
			return 0
		}
		if errors.Is(err, producer.ErrMdfindNotFound) {
			a.log.Error("sfind requires macOS Spotlight (mdfind not found); use -files-from to classify an existing path list")
			return 1
		}
		a.log.Error("%v", err)
		return 1
	}

	a.log.Debug("Printed %d results in %v", p.Count(), time.Since(startTime).Round(time.Millisecond))
	return 0
}

func (a *App) runFromFile(emit producer.Func) error {
	if a.cfg.FilesFrom == "-" {
		return producer.Read(os.Stdin, emit)
	}
	f, err := os.Open(a.cfg.FilesFrom)
	if err != nil {
		return fmt.Errorf("app: opening candidate list: %w", err)
	}
	defer f.Close()
	return producer.Read(f, emit)
}

// resolveBase makes the search path absolute and verifies it is an existing
// directory.
func resolveBase(cwd, path string) (string, error) {
	base := cwd
	if path != "" {
		if filepath.IsAbs(path) {
			base = filepath.Clean(path)
		} else {
			base = filepath.Join(cwd, path)
		}
	}

	info, err := os.Stat(base)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("path does not exist: %s", base)
		}
		return "", fmt.Errorf("could not access path '%s': %w", base, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", base)
	}
	return base, nil
}
