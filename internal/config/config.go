// Package config handles command-line configuration.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Config holds all application configuration settings.
type Config struct {
	// Positional arguments
	Pattern string // glob or substring; empty lists everything
	Path    string // search directory as typed; empty means the working directory

	// Filtering settings
	IncludeHidden bool
	NoIgnore      bool
	Exclude       string // comma-separated gitignore-syntax patterns

	// Input/output settings
	Print0    bool
	FilesFrom string // read candidates from a file instead of Spotlight, "-" for stdin

	// Logging settings
	Verbose   bool
	Quiet     bool
	LogLevel  string
	NoColor   bool
	UseColors bool

	// Version info
	ShowVersion bool
	Version     string
}

// New creates a Config from command-line flags and positional arguments.
func New() *Config {
	c := &Config{
		Version: "0.3.0",
	}

	flag.Usage = usage

	flag.BoolVar(&c.IncludeHidden, "hidden", false, "Include hidden files and directories (names starting with '.')")
	flag.BoolVar(&c.IncludeHidden, "H", false, "Shorthand for -hidden")
	flag.BoolVar(&c.NoIgnore, "no-ignore", false, "Don't respect ignore files or the built-in exclusion list")
	flag.BoolVar(&c.NoIgnore, "I", false, "Shorthand for -no-ignore")
	flag.BoolVar(&c.Print0, "print0", false, "Print NUL after each result instead of newline")
	flag.BoolVar(&c.Print0, "0", false, "Shorthand for -print0")
	flag.StringVar(&c.Exclude, "exclude", "", "Extra exclude patterns (comma-separated, gitignore syntax)")
	flag.StringVar(&c.FilesFrom, "files-from", "", "Classify paths from this file instead of querying Spotlight ('-' for stdin)")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&c.Quiet, "quiet", false, "Suppress INFO messages")
	flag.StringVar(&c.LogLevel, "log-level", "", "Set the logging level (DEBUG, INFO, WARN, ERROR)")
	flag.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
	flag.BoolVar(&c.ShowVersion, "version", false, "Show version information")

	flag.Parse()

	args := flag.Args()
	if len(args) > 0 {
		c.Pattern = args[0]
	}
	if len(args) > 1 {
		c.Path = args[1]
	}

	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stdout.Fd())

	return c
}

// ExcludePatterns returns the parsed -exclude patterns, trimmed and with
// empty entries dropped.
func (c *Config) ExcludePatterns() []string {
	if c.Exclude == "" {
		return nil
	}
	var patterns []string
	for _, p := range strings.Split(c.Exclude, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: sfind [flags] [pattern] [path]\n\n"+
			"Spotlight-powered file finding with git-style ignore semantics.\n\n"+
			"Flags:\n")
	flag.PrintDefaults()
}
