// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	defaultLogger = log.NewNopLogger()

	callerKey    interface{} = "caller"
	messageKey   interface{} = "msg"
	errorKey     interface{} = "error"
	timestampKey interface{} = "ts"
)

// CallerKey returns the logging key for the source location of a log call
func CallerKey() interface{} {
	return callerKey
}

// MessageKey returns the logging key for the textual message of a log entry
func MessageKey() interface{} {
	return messageKey
}

// ErrorKey returns the logging key for error values
func ErrorKey() interface{} {
	return errorKey
}

// TimestampKey returns the logging key for the timestamp
func TimestampKey() interface{} {
	return timestampKey
}

// DefaultLogger returns the global NOP logger.  It is safe for concurrent use.
func DefaultLogger() log.Logger {
	return defaultLogger
}

// New creates a go-kit Logger from Options.  A nil Options produces a logger that writes
// logfmt to os.Stdout at the ERROR level.  Every entry carries a UTC timestamp.
//
// The caller is not inserted, so that the returned logger can be decorated freely.  Use
// Error, Info, Warn or Debug for leveled loggers that include the caller.
func New(o *Options) log.Logger {
	return NewFilter(
		log.WithPrefix(
			o.loggerFactory()(o.output()),
			TimestampKey(), log.DefaultTimestampUTC,
		),
		o,
	)
}

// NewFilter applies the level in Options to an arbitrary go-kit Logger.  Unrecognized levels,
// including the empty string, only allow errors through.
func NewFilter(next log.Logger, o *Options) log.Logger {
	switch strings.ToUpper(o.level()) {
	case "DEBUG":
		return level.NewFilter(next, level.AllowDebug())

	case "INFO":
		return level.NewFilter(next, level.AllowInfo())

	case "WARN":
		return level.NewFilter(next, level.AllowWarn())

	default:
		return level.NewFilter(next, level.AllowError())
	}
}

func leveled(next log.Logger, value level.Value, keyvals []interface{}) log.Logger {
	return log.WithPrefix(
		next,
		append([]interface{}{CallerKey(), log.DefaultCaller, level.Key(), value}, keyvals...)...,
	)
}

// Error returns a logger that emits at the error level, with the caller and any extra key/value pairs.
func Error(next log.Logger, keyvals ...interface{}) log.Logger {
	return leveled(next, level.ErrorValue(), keyvals)
}

// Warn returns a logger that emits at the warn level, with the caller and any extra key/value pairs.
func Warn(next log.Logger, keyvals ...interface{}) log.Logger {
	return leveled(next, level.WarnValue(), keyvals)
}

// Info returns a logger that emits at the info level, with the caller and any extra key/value pairs.
func Info(next log.Logger, keyvals ...interface{}) log.Logger {
	return leveled(next, level.InfoValue(), keyvals)
}

// Debug returns a logger that emits at the debug level, with the caller and any extra key/value pairs.
func Debug(next log.Logger, keyvals ...interface{}) log.Logger {
	return leveled(next, level.DebugValue(), keyvals)
}
