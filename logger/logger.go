// Package logger is the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where log lines go.
type Config struct {
	Level      string
	Console    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	log     = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	initOne sync.Once
)

// Init configures the global logger. Only the first call has any effect.
func Init(cfg Config) {
	initOne.Do(func() {
		log = New(cfg)
	})
}

// New builds a standalone zerolog.Logger from cfg.
func New(cfg Config) zerolog.Logger {
	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	if cfg.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	return zerolog.New(io.MultiWriter(writers...)).
		With().Timestamp().Logger().
		Level(ParseLevel(cfg.Level))
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetOutput redirects the global logger, mainly for tests.
func SetOutput(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

// Get returns the underlying zerolog.Logger.
func Get() zerolog.Logger {
	return log
}

func Info(msg string, fields ...interface{}) {
	logWithFields(log.Info(), msg, fields...)
}

func Warn(msg string, fields ...interface{}) {
	logWithFields(log.Warn(), msg, fields...)
}

func Error(msg string, fields ...interface{}) {
	logWithFields(log.Error(), msg, fields...)
}

func Debug(msg string, fields ...interface{}) {
	logWithFields(log.Debug(), msg, fields...)
}

// Fatal logs and exits the process.
func Fatal(msg string, fields ...interface{}) {
	logWithFields(log.Fatal(), msg, fields...)
}

// fields is either a single map or alternating key/value pairs. An "error"
// key holding an error is logged with Err.
func logWithFields(event *zerolog.Event, msg string, fields ...interface{}) {
	if len(fields) == 1 {
		if m, ok := fields[0].(map[string]interface{}); ok {
			event.Fields(m).Msg(msg)
			return
		}
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, isErr := fields[i+1].(error); isErr && key == "error" {
			event = event.Err(err)
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	event.Msg(msg)
}
