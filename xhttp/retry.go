// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"context"
	"net/http"
	"time"

	"github.com/beeherd/dispatcher/logging"
	"github.com/go-kit/log"
)

// temporaryError is the expected interface for a (possibly) temporary error
type temporaryError interface {
	Temporary() bool
}

// ShouldRetryFunc decides whether the error from an HTTP transaction should be retried.
type ShouldRetryFunc func(error) bool

// ShouldRetryStatusFunc decides whether a response with the given status code should be retried.
type ShouldRetryStatusFunc func(int) bool

// DefaultShouldRetry returns true if and only if err has a Temporary() bool method that returns true.
func DefaultShouldRetry(err error) bool {
	if temp, ok := err.(temporaryError); ok {
		return temp.Temporary()
	}

	return false
}

// DefaultShouldRetryStatus retries 503 Service Unavailable and 429 Too Many Requests.
func DefaultShouldRetryStatus(statusCode int) bool {
	return statusCode == http.StatusServiceUnavailable || statusCode == http.StatusTooManyRequests
}

// RetryOptions configures RetryTransactor
type RetryOptions struct {
	// Logger receives a message for each retry.  If unset, logging.DefaultLogger() is used.
	Logger log.Logger

	// Retries is the number of attempts after the first.  If nonpositive, no retries happen.
	Retries int

	// Interval is the pause between attempts
	Interval time.Duration

	// ShouldRetry defaults to DefaultShouldRetry
	ShouldRetry ShouldRetryFunc

	// ShouldRetryStatus defaults to DefaultShouldRetryStatus
	ShouldRetryStatus ShouldRetryStatusFunc

	// Sleep, if set, replaces the pause between attempts.  The default pause ends early when
	// the request's context is done.
	Sleep func(time.Duration)
}

// RetryTransactor decorates an HTTP transaction, with the signature of http.Client.Do, so that
// it is retried.  Request bodies are buffered so each attempt sends the same content.  The last
// response or error is returned.
//
// Retries stop once the request's context is done, and the last error is returned.
//
// If o.Retries is nonpositive, next is returned undecorated.
func RetryTransactor(o RetryOptions, next func(*http.Request) (*http.Response, error)) func(*http.Request) (*http.Response, error) {
	if o.Retries < 1 {
		return next
	}

	if o.Logger == nil {
		o.Logger = logging.DefaultLogger()
	}

	if o.ShouldRetry == nil {
		o.ShouldRetry = DefaultShouldRetry
	}

	if o.ShouldRetryStatus == nil {
		o.ShouldRetryStatus = DefaultShouldRetryStatus
	}

	return func(request *http.Request) (*http.Response, error) {
		if err := EnsureRewindable(request); err != nil {
			return nil, err
		}

		response, err := next(request)
		ctx := request.Context()
		for attempt := 1; attempt <= o.Retries && ctx.Err() == nil && shouldRetry(o, response, err); attempt++ {
			if response != nil && response.Body != nil {
				response.Body.Close()
			}

			logging.Debug(o.Logger).Log(
				logging.MessageKey(), "retrying HTTP transaction",
				"url", request.URL.String(),
				logging.ErrorKey(), err,
				"attempt", attempt,
			)

			if err := Rewind(request); err != nil {
				return nil, err
			}

			if waitErr := pause(ctx, o, o.Interval); waitErr != nil {
				response, err = nil, waitErr
				break
			}

			response, err = next(request)
		}

		if err != nil {
			logging.Error(o.Logger).Log(
				logging.MessageKey(), "HTTP transaction failed",
				"url", request.URL.String(),
				logging.ErrorKey(), err,
			)
		}

		return response, err
	}
}

func shouldRetry(o RetryOptions, response *http.Response, err error) bool {
	if err != nil {
		return o.ShouldRetry(err)
	}

	return response != nil && o.ShouldRetryStatus(response.StatusCode)
}

// pause waits out the interval between attempts, returning early with the context's error if it is done first.
func pause(ctx context.Context, o RetryOptions, d time.Duration) error {
	if o.Sleep != nil {
		o.Sleep(d)
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
