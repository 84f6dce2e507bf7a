package logging

import (
	"io"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// Options is the logger configuration resolved from settings and flags.
type Options struct {
	Level  string
	Format string
	Color  bool
	Output io.Writer
}

// New builds a console logger from options.
func New(opts Options) (*ConsoleLogger, error) {
	level, err := ports.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	consoleOpts := []ConsoleLoggerOption{
		WithLevel(level),
		WithFormat(format),
		WithColor(opts.Color && format == FormatText),
	}
	if opts.Output != nil {
		consoleOpts = append(consoleOpts, WithOutput(opts.Output))
	}
	return NewConsoleLogger(consoleOpts...), nil
}
