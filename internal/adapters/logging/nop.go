// Package logging implements ports.Logger. ConsoleLogger writes text or JSON
// lines for the CLI; NopLogger stands in wherever a provider runs without a
// logger in its context.
package logging

import (
	"context"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// NopLogger drops every record. It still remembers a level so callers that
// branch on Level behave the same with or without real logging.
type NopLogger struct {
	level ports.Level
}

// NewNopLogger returns a NopLogger at info level.
func NewNopLogger() *NopLogger {
	return &NopLogger{level: ports.LevelInfo}
}

func (l *NopLogger) Debug(context.Context, string, ...ports.Field) {}
func (l *NopLogger) Info(context.Context, string, ...ports.Field)  {}
func (l *NopLogger) Warn(context.Context, string, ...ports.Field)  {}
func (l *NopLogger) Error(context.Context, string, ...ports.Field) {}

// With ignores the fields; there is nothing to attach them to.
func (l *NopLogger) With(...ports.Field) ports.Logger { return l }

func (l *NopLogger) Level() ports.Level         { return l.level }
func (l *NopLogger) SetLevel(level ports.Level) { l.level = level }

var _ ports.Logger = (*NopLogger)(nil)
