package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LoggingConfig defines settings for console logging.
type LoggingConfig struct {
	// Level is the minimum level emitted: trace, debug, info, warn or
	// error.
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks that the level is a known zerolog level.
func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown log level %s", c.Level)
	}
	return nil
}
