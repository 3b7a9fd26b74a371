package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level  logrus.Level
	Format string
}

// LoadLogConfig loads logging configuration from environment variables
func LoadLogConfig(getenv func(string) string) (*LogConfig, error) {
	level, err := logrus.ParseLevel(valueOr(getenv("LOG_LEVEL"), "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	format := valueOr(getenv("LOG_FORMAT"), "text")
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json: got %q", format)
	}

	return &LogConfig{Level: level, Format: format}, nil
}

// Apply configures logger according to the config
func (c *LogConfig) Apply(logger *logrus.Logger) {
	logger.SetLevel(c.Level)
	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
