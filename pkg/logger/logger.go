package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LevelEnv overrides the default level, e.g. SHIFTBOARD_LOG_LEVEL=debug
const LevelEnv = "SHIFTBOARD_LOG_LEVEL"

// Logger is the structured logger passed through every service
type Logger struct {
	zerolog.Logger
}

// New logs JSON to stdout, or human-readable lines in development
func New(serviceName string, environment string) *Logger {
	var out io.Writer = os.Stdout
	if environment == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	log := NewWithWriter(serviceName, out)
	log.Logger = log.Level(levelFromEnv(environment))
	return log
}

// NewWithWriter creates a JSON logger writing to w at debug level
func NewWithWriter(serviceName string, w io.Writer) *Logger {
	return &Logger{
		Logger: zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger(),
	}
}

// Nop discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// levelFromEnv reads LevelEnv. Unset or unparseable values give debug in
// development and info elsewhere.
func levelFromEnv(environment string) zerolog.Level {
	if raw := strings.TrimSpace(os.Getenv(LevelEnv)); raw != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			return lvl
		}
	}
	if environment == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func (l *Logger) with(key, value string) *Logger {
	return &Logger{Logger: l.Logger.With().Str(key, value).Logger()}
}

// WithRequestID tags entries with the HTTP request ID
func (l *Logger) WithRequestID(requestID string) *Logger { return l.with("request_id", requestID) }

// WithComponent tags entries with the emitting component, e.g. "sync" or "scheduler"
func (l *Logger) WithComponent(component string) *Logger { return l.with("component", component) }

// WithEntity tags entries with the synced entity type
func (l *Logger) WithEntity(entity string) *Logger { return l.with("entity", entity) }
