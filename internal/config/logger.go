package config

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
	"nft-market/internal/types"
)

// NewLogger builds the command logger. LOG_LEVEL wins over verbose, which wins over log.level.
func NewLogger(cfg *types.Config, stderr io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(stderr)

	switch cfg.Log.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Log.Format)
	}

	level := logrus.InfoLevel
	if parsed, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		level = parsed
	}
	if cfg.Verbose {
		level = logrus.DebugLevel
	}
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if parsed, err := logrus.ParseLevel(levelStr); err == nil {
			level = parsed
		}
	}
	logger.SetLevel(level)

	if cfg.Log.File != "" {
		logger.SetOutput(io.MultiWriter(stderr, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			Compress:   true,
		}))
	}

	return logger, nil
}
