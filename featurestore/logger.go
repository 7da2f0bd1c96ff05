package featurestore

import "github.com/rs/zerolog"

// Logger is the logging interface used by the client.
type Logger interface {
	Printf(format string, v ...interface{})
}

type zerologLogger struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewZerologLogger adapts a zerolog logger, writing every message at level.
func NewZerologLogger(logger zerolog.Logger, level zerolog.Level) Logger {
	return &zerologLogger{logger: logger, level: level}
}

func (l *zerologLogger) Printf(format string, v ...interface{}) {
	l.logger.WithLevel(l.level).Msgf(format, v...)
}
