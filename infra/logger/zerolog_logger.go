package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

var (
	defaultsMu     sync.RWMutex
	defaultLevel   = zerolog.InfoLevel
	defaultConsole bool
	defaultFile    io.Writer
)

// Configure sets the level and format used by loggers created afterwards.
// LOG_LEVEL and APP_ENV still take precedence.
func Configure(level string, console bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if err == nil && lvl != zerolog.NoLevel {
		defaultLevel = lvl
	}
	defaultConsole = console
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// RotateTo mirrors the JSON output of loggers created afterwards into a size
// rotated file at path. Closing the returned value stops the mirroring.
func RotateTo(path string, maxSizeMB, maxBackups, maxAgeDays int) (io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	defaultsMu.Lock()
	defaultFile = lj
	defaultsMu.Unlock()
	return closerFunc(func() error {
		defaultsMu.Lock()
		if defaultFile == lj {
			defaultFile = nil
		}
		defaultsMu.Unlock()
		return lj.Close()
	}), nil
}

// NewZerologLogger creates a ZerologLogger writing to stdout. APP_ENV=dev
// switches to a human readable console format. All logs include the
// provided component field.
func NewZerologLogger(component string) *ZerologLogger {
	var out io.Writer = os.Stdout
	defaultsMu.RLock()
	console, file := defaultConsole, defaultFile
	defaultsMu.RUnlock()
	if console || strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if file != nil {
		out = zerolog.MultiLevelWriter(out, file)
	}
	return NewZerologLoggerWithWriter(out, component)
}

// NewZerologLoggerWithWriter creates a ZerologLogger on w.
func NewZerologLoggerWithWriter(w io.Writer, component string) *ZerologLogger {
	z := zerolog.New(w).Level(levelFromEnv()).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func levelFromEnv() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || lvl == zerolog.NoLevel {
		defaultsMu.RLock()
		defer defaultsMu.RUnlock()
		return defaultLevel
	}
	return lvl
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// Infow logs msg at info level with structured fields.
func (l *ZerologLogger) Infow(msg string, fields map[string]any) {
	ev := l.log.Info()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
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
