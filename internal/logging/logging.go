// Package logging provides the configured logrus logger used across the
// featured pipeline.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/bigtalents/featured/internal/config"
)

// Fields aliases logrus.Fields for call sites.
type Fields = logrus.Fields

// NewLogger creates a JSON logger at the level configured via
// FEATURED_LOG_LEVEL (default info).
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logLevel())
	return logger
}

// NewNopLogger creates a logger that discards everything, for tests and for
// callers that opt out of logging.
func NewNopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(nopWriter{})
	return logger
}

func logLevel() logrus.Level {
	level, err := logrus.ParseLevel(config.GetEnv("FEATURED_LOG_LEVEL", "info"))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
