// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logginghttp

import (
	"context"
	"net/http"

	"github.com/beeherd/dispatcher/logging"
	"github.com/go-kit/log"
)

// LoggerFunc appends key/value pairs, possibly derived from a request, to kv and returns the result.
type LoggerFunc func(kv []interface{}, request *http.Request) []interface{}

// StandardKeyValues adds the method, URI, remote address and content type of the request.
func StandardKeyValues(kv []interface{}, request *http.Request) []interface{} {
	return append(kv,
		requestMethodKey, request.Method,
		requestURIKey, request.RequestURI,
		remoteAddrKey, request.RemoteAddr,
		contentTypeKey, request.Header.Get("Content-Type"),
	)
}

// SetLogger produces a go-kit style RequestFunc that puts a request-scoped Logger into the context.
// With no LoggerFuncs, the base logger is used as is.  The base logger cannot be nil.
func SetLogger(base log.Logger, lf ...LoggerFunc) func(context.Context, *http.Request) context.Context {
	if base == nil {
		panic("The base Logger cannot be nil")
	}

	return func(ctx context.Context, request *http.Request) context.Context {
		var kv []interface{}
		for _, f := range lf {
			kv = f(kv, request)
		}

		if len(kv) == 0 {
			return logging.WithLogger(ctx, base)
		}

		return logging.WithLogger(ctx, log.With(base, kv...))
	}
}

// PopulateLogger is an Alice-style constructor that places a request-scoped Logger, decorated with
// StandardKeyValues, into each request's context.  Downstream code retrieves it with logging.GetLogger.
// A nil base means logging.DefaultLogger().
func PopulateLogger(base log.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = logging.DefaultLogger()
	}

	setLogger := SetLogger(base, StandardKeyValues)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(rw, request.WithContext(setLogger(request.Context(), request)))
		})
	}
}
