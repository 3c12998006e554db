// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields represents structured logging fields.
type Fields = logrus.Fields

// Setup configures the standard logrus logger to write to w at the given
// level ("debug", "info", "warn", "error") in the given format ("text" or
// "json").
func Setup(w io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(format) {
	case "", "text", "console":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", format)
	}

	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(formatter)
	return nil
}

// LogError logs err with additional context.
func LogError(err error, msg string, fields Fields) {
	logrus.WithFields(fields).WithError(err).Error(msg)
}

// LogInfo logs an info message with fields.
func LogInfo(msg string, fields Fields) {
	logrus.WithFields(fields).Info(msg)
}

// LogDebug logs a debug message with fields.
func LogDebug(msg string, fields Fields) {
	logrus.WithFields(fields).Debug(msg)
}
