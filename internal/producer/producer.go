// Package producer streams candidate paths from an external line producer:
// the mdfind subprocess or an arbitrary delimited reader. The producer does
// not interpret paths; classification happens downstream.
package producer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/sfind-dev/sfind/internal/utils"
)

// Func receives one candidate path. Returning an error stops the stream and
// is propagated to the caller.
type Func func(path string) error

// ErrMdfindNotFound reports that the Spotlight CLI is unavailable on this
// system.
var ErrMdfindNotFound = errors.New("producer: mdfind not found")

// Options configures a producer run.
type Options struct {
	Logger utils.Logger
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// WithLogger sets a custom logger for the producer.
func WithLogger(log utils.Logger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

func defaultOptions() Options {
	return Options{Logger: utils.NoopLogger{}}
}

// Mdfind spawns mdfind with args and feeds each NUL-delimited result path to
// fn. The child's stderr is discarded; mdfind is chatty about permissions.
// A missing binary maps to ErrMdfindNotFound, and a non-zero exit is an
// error after the stream has been fully consumed.
func Mdfind(ctx context.Context, args []string, fn Func, opts ...Option) error {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Logger.Debug("producer: running mdfind %v", args)

	cmd := exec.CommandContext(ctx, "mdfind", args...)
	cmd.Stderr = io.Discard
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("producer: failed to capture mdfind stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrMdfindNotFound
		}
		return fmt.Errorf("producer: failed to start mdfind: %w", err)
	}

	streamErr := Read(stdout, fn)
	if streamErr != nil {
		// Don't leave a zombie behind when the consumer bails out early.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return streamErr
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("producer: mdfind failed: %w", err)
	}
	return nil
}

// Read feeds each delimited path from r to fn. Records are split on NUL or
// newline, whichever appears, so both mdfind -0 output and plain path lists
// work. Trailing carriage returns are stripped and empty records skipped.
func Read(r io.Reader, fn Func) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(scanPaths)
	for scanner.Scan() {
		path := scanner.Text()
		if path == "" {
			continue
		}
		if err := fn(path); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("producer: reading candidate stream: %w", err)
	}
	return nil
}

// scanPaths is a bufio.SplitFunc breaking records on NUL or newline.
func scanPaths(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\x00\n"); i >= 0 {
		return i + 1, trimRecord(data[:i]), nil
	}
	if atEOF {
		return len(data), trimRecord(data), nil
	}
	return 0, nil, nil
}

func trimRecord(b []byte) []byte {
	return bytes.TrimRight(b, "\r")
}
