// Package printer handles output formatting and display of result paths.
package printer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
)

// Delimiter terminates each printed path.
type Delimiter byte

const (
	Newline Delimiter = '\n'
	Nul     Delimiter = 0
)

// Style controls how absolute candidate paths are rendered, reproducing the
// shell conventions users expect from find-like tools.
type Style struct {
	cwd     string
	base    string
	pathArg string
}

// NewStyle creates a Style. pathArg is the positional path argument exactly
// as the user typed it, empty when omitted.
func NewStyle(cwd, searchBase, pathArg string) Style {
	return Style{cwd: cwd, base: searchBase, pathArg: pathArg}
}

// Render converts an absolute path into its display form:
//   - no path argument: relative to the working directory, no leading "./";
//   - relative path argument: the typed prefix is preserved, including "./";
//   - absolute path argument: absolute output.
func (s Style) Render(absPath string) string {
	switch {
	case s.pathArg == "":
		return relativeOrAbs(absPath, s.cwd)
	case filepath.IsAbs(s.pathArg):
		return absPath
	default:
		rel := relativeOrAbs(absPath, s.base)
		if rel == "." || rel == "" {
			return s.pathArg
		}
		prefix := strings.TrimSuffix(s.pathArg, string(filepath.Separator))
		return prefix + string(filepath.Separator) + rel
	}
}

// relativeOrAbs relativizes path against base, or returns it unchanged when
// it does not live under base.
func relativeOrAbs(path, base string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// Printer writes rendered paths to the configured destination.
type Printer struct {
	output    io.Writer
	delim     Delimiter
	useColors bool
	count     atomic.Int64
}

// New creates a Printer writing newline-delimited paths to stdout.
func New() *Printer {
	return &Printer{output: os.Stdout, delim: Newline}
}

// WithOutput sets the output destination.
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithDelimiter sets the record delimiter.
func (p *Printer) WithDelimiter(d Delimiter) *Printer {
	p.delim = d
	return p
}

// WithColors enables or disables colored output.
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// PrintPath writes one rendered path followed by the delimiter. Write errors
// are returned so the caller can recognize a closed pipe and stop cleanly.
func (p *Printer) PrintPath(path string) error {
	p.count.Add(1)

	// Never colorize NUL-delimited output; it is meant for machines.
	if p.useColors && p.delim == Newline {
		if dir, file := filepath.Split(path); dir != "" {
			path = color.CyanString(dir) + file
		}
	}

	if _, err := fmt.Fprintf(p.output, "%s%c", path, p.delim); err != nil {
		return fmt.Errorf("printer: writing result: %w", err)
	}
	return nil
}

// Count returns the number of paths printed.
func (p *Printer) Count() int64 {
	return p.count.Load()
}
