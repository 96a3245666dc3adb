// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"

	"github.com/go-kit/log"
)

type loggerKey struct{}

// WithLogger returns a context carrying the given Logger.  A nil Logger leaves the context unchanged.
func WithLogger(parent context.Context, logger log.Logger) context.Context {
	if logger == nil {
		return parent
	}

	return context.WithValue(parent, loggerKey{}, logger)
}

// GetLogger retrieves the go-kit logger associated with the context.  If no logger is
// present in the context, DefaultLogger is returned instead.
func GetLogger(ctx context.Context) log.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(log.Logger); ok {
		return logger
	}

	return DefaultLogger()
}
