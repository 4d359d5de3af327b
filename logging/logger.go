package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default and is enabled by the command layer once the desired
// log level is known. Each module/package should create its own sub-logger from it, so that log output is
// "grep-able" by originating module.
var GlobalLogger *Logger

// Logger describes a logging object that can emit events both to an arbitrary set of structured output channels and,
// optionally, as human-readable console output.
type Logger struct {
	// level describes the log level of the Logger.
	level zerolog.Level

	// structuredLogger describes a logger used to output structured logs to any arbitrary channel(s).
	structuredLogger zerolog.Logger

	// consoleLogger describes a logger used to output human-readable output to console.
	consoleLogger zerolog.Logger

	// writers describes the list of io.Writer objects where structured log output is sent.
	writers []io.Writer
}

// StructuredLogInfo describes a key-value mapping that can be used to log structured data.
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level. The Logger can output to console, if enabled,
// and output structured logs to any number of arbitrary io.Writer channels.
func NewLogger(level zerolog.Level, consoleEnabled bool, writers ...io.Writer) *Logger {
	// The base loggers are disabled instances, so that we never dereference a nil logger down the line.
	structuredLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	consoleLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	// If we are provided a list of writers, enable the structured logger.
	if len(writers) > 0 {
		structuredLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	}

	// If console logging is enabled, enable the console logger with human-readable formatting.
	if consoleEnabled {
		consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, FormatTimestamp: func(any) string { return "" }}
		consoleLogger = zerolog.New(consoleWriter).Level(level)
	}

	return &Logger{
		level:            level,
		structuredLogger: structuredLogger,
		consoleLogger:    consoleLogger,
		writers:          writers,
	}
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The expected use of
// this function is for each package to have its own unique logger.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	return &Logger{
		level:            l.level,
		structuredLogger: l.structuredLogger.With().Str(key, value).Logger(),
		consoleLogger:    l.consoleLogger.With().Str(key, value).Logger(),
		writers:          l.writers,
	}
}

// AddWriter will add a writer to the list of channels where structured log output is sent.
func (l *Logger) AddWriter(writer io.Writer) {
	// Adding an already-registered writer is a no-op.
	for _, w := range l.writers {
		if writer == w {
			return
		}
	}
	l.writers = append(l.writers, writer)
	l.structuredLogger = zerolog.New(zerolog.MultiLevelWriter(l.writers...)).Level(l.level).With().Timestamp().Logger()
}

// Level will get the log level of the Logger.
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.structuredLogger = l.structuredLogger.Level(level)
	l.consoleLogger = l.consoleLogger.Level(level)
}

// EnableConsole switches console output on for this Logger at its current level.
func (l *Logger) EnableConsole() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, FormatTimestamp: func(any) string { return "" }}
	l.consoleLogger = zerolog.New(consoleWriter).Level(l.level)
}

// Trace is a wrapper function that will log a trace event.
func (l *Logger) Trace(args ...any) {
	l.emit(l.consoleLogger.Trace(), l.structuredLogger.Trace(), args...)
}

// Debug is a wrapper function that will log a debug event.
func (l *Logger) Debug(args ...any) {
	l.emit(l.consoleLogger.Debug(), l.structuredLogger.Debug(), args...)
}

// Info is a wrapper function that will log an info event.
func (l *Logger) Info(args ...any) {
	l.emit(l.consoleLogger.Info(), l.structuredLogger.Info(), args...)
}

// Warn is a wrapper function that will log a warning event.
func (l *Logger) Warn(args ...any) {
	l.emit(l.consoleLogger.Warn(), l.structuredLogger.Warn(), args...)
}

// Error is a wrapper function that will log an error event.
func (l *Logger) Error(args ...any) {
	l.emit(l.consoleLogger.Error(), l.structuredLogger.Error(), args...)
}

// Panic is a wrapper function that will log a panic event.
func (l *Logger) Panic(args ...any) {
	// The console event is sent first so the message reaches every channel before the structured logger panics.
	consoleEvent := l.consoleLogger.WithLevel(zerolog.PanicLevel)
	structuredEvent := l.structuredLogger.Panic()
	l.emit(consoleEvent, structuredEvent, args...)
}

// emit builds one log message out of the provided arguments and sends it to both the console and structured events.
// String-convertible arguments are concatenated into the message; an error argument is chained to the events, with a
// stack trace attached when the Logger is at debug level or below; a StructuredLogInfo argument is attached as a
// key-value payload.
func (l *Logger) emit(consoleEvent *zerolog.Event, structuredEvent *zerolog.Event, args ...any) {
	message, err, info := buildMessage(args...)

	// Chain the error, with stack traces while debugging.
	consoleEvent.Err(err)
	structuredEvent.Err(err)
	if l.level <= zerolog.DebugLevel {
		consoleEvent.Stack()
		structuredEvent.Stack()
	}

	// Chain any structured payload.
	if info != nil {
		consoleEvent.Any("info", info)
		structuredEvent.Any("info", info)
	}

	// Sending the message also dispatches the events to their channels. The structured event is deferred so that
	// it is still dispatched if the console event panics.
	defer structuredEvent.Msg(message)
	consoleEvent.Msg(message)
}

// buildMessage takes in a variadic list of arguments of any type and returns the concatenated message string along
// with, optionally, an error and a StructuredLogInfo object found among the arguments. Only one error and one info
// payload can be provided for each log message.
func buildMessage(args ...any) (string, error, StructuredLogInfo) {
	var (
		builder strings.Builder
		err     error
		info    StructuredLogInfo
	)
	for _, arg := range args {
		switch t := arg.(type) {
		case StructuredLogInfo:
			info = t
		case error:
			err = t
		case string:
			builder.WriteString(t)
		default:
			builder.WriteString(fmt.Sprintf("%v", t))
		}
	}
	return builder.String(), err, info
}
