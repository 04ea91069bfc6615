// Package logger builds the process logger from configuration.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/Domenick1991/hoteldesk/config"
	"github.com/sirupsen/logrus"
)

func New(cfg config.LogConfig) *logrus.Logger {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// Discard returns a logger that drops everything, for tests and optional wiring.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
