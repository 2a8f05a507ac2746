package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog. Every logger carries a
// component field; the emitted level is set process-wide via SetLevel.
type ZerologLogger struct {
	log zerolog.Logger
}

// SetLevel applies the minimum emitted level to all loggers, existing and
// future. The app calls it once the configuration is loaded; before that
// zerolog's default (trace) applies.
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// NewZerologLogger creates a logger for the given component. With
// APP_ENV=dev output goes through the human-readable console writer,
// otherwise raw JSON is written to stdout.
func NewZerologLogger(component string) Logger {
	return &ZerologLogger{
		log: zerolog.New(newWriter()).With().
			Timestamp().
			Str("component", component).
			Logger(),
	}
}

func newWriter() zerolog.LevelWriter {
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		return zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return zerolog.MultiLevelWriter(os.Stdout)
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
