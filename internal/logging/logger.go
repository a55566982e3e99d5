package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds the application logger: JSON in prod, text elsewhere.
func New(w io.Writer, env string, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	switch env {
	case "prod":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
			PadLevelText:    true,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithField("value", level).Warn("Invalid log level. Using default level: info")
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
