// Package app wires the outliner together: configuration, logging, the
// event bus, the block tree, the renderer and the editing controller.
package app

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dshills/outliner/internal/config"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a level name. Unknown names yield LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) zap() zapcore.Level {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output receives console output. Defaults to os.Stderr; use io.Discard
	// to log only to File.
	Output io.Writer
	// File, when set, receives JSON logs rotated at MaxSizeMB.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// JSON switches the console encoder to JSON.
	JSON bool
	// Prefix names the logger.
	Prefix string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "outliner",
	}
}

// LoggerConfigFrom converts the logging section of a Config.
func LoggerConfigFrom(c config.LoggingConfig) LoggerConfig {
	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(c.Level)
	cfg.File = c.File
	cfg.MaxSizeMB = c.MaxSizeMB
	cfg.MaxBackups = c.MaxBackups
	cfg.JSON = c.JSON
	return cfg
}

// Logger provides structured logging for the application. Arguments after
// the message are alternating keys and values.
type Logger struct {
	sugar    *zap.SugaredLogger
	level    zap.AtomicLevel
	disabled *atomic.Bool
	closer   io.Closer
}

// NewLogger creates a logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := zap.NewAtomicLevelAt(cfg.Level.zap())

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var console zapcore.Encoder
	if cfg.JSON {
		console = zapcore.NewJSONEncoder(encCfg)
	} else {
		console = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(console, zapcore.AddSync(cfg.Output), level)}
	var closer io.Closer
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		fileEnc := zap.NewProductionEncoderConfig()
		fileEnc.TimeKey = "timestamp"
		fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), zapcore.AddSync(rotator), level))
		closer = rotator
	}

	z := zap.New(zapcore.NewTee(cores...))
	if cfg.Prefix != "" {
		z = z.Named(cfg.Prefix)
	}
	return &Logger{
		sugar:    z.Sugar(),
		level:    level,
		disabled: new(atomic.Bool),
		closer:   closer,
	}
}

// NullLogger is a logger that discards all output.
var NullLogger = &Logger{
	sugar:    zap.NewNop().Sugar(),
	level:    zap.NewAtomicLevel(),
	disabled: new(atomic.Bool),
}

// WithField returns a logger that adds key to every entry.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.with(key, value)
}

// WithFields returns a logger that adds fields to every entry.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		args = append(args, k, v)
	}
	return l.with(args...)
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{
		sugar:    l.sugar.With(args...),
		level:    l.level,
		disabled: l.disabled,
		closer:   l.closer,
	}
}

// SetLevel sets the minimum log level for this logger and all loggers
// derived from it.
func (l *Logger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.zap())
}

// Level returns the current minimum level.
func (l *Logger) Level() LogLevel {
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return LogLevelDebug
	case zapcore.WarnLevel:
		return LogLevelWarn
	case zapcore.ErrorLevel:
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Disable disables all logging.
func (l *Logger) Disable() { l.disabled.Store(true) }

// Enable enables logging.
func (l *Logger) Enable() { l.disabled.Store(false) }

// Debug logs a debug message.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	if !l.disabled.Load() {
		l.sugar.Debugw(msg, keysAndValues...)
	}
}

// Info logs an info message.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	if !l.disabled.Load() {
		l.sugar.Infow(msg, keysAndValues...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	if !l.disabled.Load() {
		l.sugar.Warnw(msg, keysAndValues...)
	}
}

// Error logs an error message.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	if !l.disabled.Load() {
		l.sugar.Errorw(msg, keysAndValues...)
	}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.sugar.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
