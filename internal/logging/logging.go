package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/config"
)

// New builds a logger writing to out in the configured level and format.
func New(cfg config.LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log := logrus.New()
	log.Out = out
	log.Level = level
	switch cfg.Format {
	case "", "text":
		log.Formatter = &prefixed.TextFormatter{FullTimestamp: true}
	case "json":
		log.Formatter = &logrus.JSONFormatter{}
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}
	return log, nil
}

// NewLogger returns an entry tagged with prefix.
func NewLogger(log *logrus.Logger, prefix string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"prefix": prefix,
	})
}
