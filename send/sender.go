// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package send drives fixture requests at a live HTTP endpoint.
package send

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beeherd/dispatcher/logging"
	"github.com/beeherd/dispatcher/xhttp"
	"github.com/beeherd/dispatcher/xhttp/xhttptest"
	"github.com/go-kit/log"
	"go.uber.org/multierr"
	"go.uber.org/ratelimit"
)

// Options configures a Sender
type Options struct {
	// Rate is the maximum number of requests per second.  Nonpositive means unlimited.
	Rate int `json:"rate"`

	// Retries is the number of extra attempts for a request that fails with a temporary error
	// or a retryable status code.
	Retries int `json:"retries"`

	// RetryInterval is the pause between attempts
	RetryInterval time.Duration `json:"retryInterval"`

	// Timeout bounds each request, including its retries.  Nonpositive means no timeout.
	Timeout time.Duration `json:"timeout"`
}

// Result summarizes a call to Send
type Result struct {
	// Sent is the number of requests that produced a response
	Sent int

	// Failed is the number of requests that produced an error
	Failed int

	// Status counts responses by status code
	Status map[int]int

	// Last is the body of the last response received
	Last []byte

	// LastContentType is the Content-Type of the last response received
	LastContentType string
}

// Sender sends fixtures.  A Sender is safe for concurrent use.
type Sender struct {
	client  xhttp.Client
	logger  log.Logger
	limiter ratelimit.Limiter
	timeout time.Duration
}

// New creates a Sender.  A nil client means http.DefaultClient, and a nil logger means logging.DefaultLogger().
func New(o Options, client xhttp.Client, logger log.Logger) *Sender {
	if client == nil {
		client = http.DefaultClient
	}

	if logger == nil {
		logger = logging.DefaultLogger()
	}

	limiter := ratelimit.NewUnlimited()
	if o.Rate > 0 {
		limiter = ratelimit.New(o.Rate)
	}

	return &Sender{
		client: xhttp.ClientFunc(xhttp.RetryTransactor(
			xhttp.RetryOptions{
				Logger:   logger,
				Retries:  o.Retries,
				Interval: o.RetryInterval,
			},
			client.Do,
		)),
		logger:  logger,
		limiter: limiter,
		timeout: o.Timeout,
	}
}

// Send sends the fixture to target count times, each with the given body.  A count below 1 sends once.
// Sending stops early if ctx is cancelled.  Non-2xx responses are counted in the Result rather than
// treated as errors; transport errors are combined into the returned error.
func (s *Sender) Send(ctx context.Context, target string, f xhttptest.Fixture, body []byte, count int) (Result, error) {
	if count < 1 {
		count = 1
	}

	var (
		result = Result{Status: make(map[int]int)}
		errs   error
	)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}

		s.limiter.Take()
		statusCode, contentType, data, err := s.sendOne(ctx, target, f, body)
		if err != nil {
			result.Failed++
			errs = multierr.Append(errs, fmt.Errorf("request %d: %w", i+1, err))
			logging.Error(s.logger).Log(logging.MessageKey(), "request failed", "target", target, "attempt", i+1, logging.ErrorKey(), err)
			continue
		}

		result.Sent++
		result.Status[statusCode]++
		result.Last, result.LastContentType = data, contentType
		logging.Debug(s.logger).Log(logging.MessageKey(), "request sent", "target", target, "method", f.Method, "status", statusCode)
	}

	return result, errs
}

func (s *Sender) sendOne(ctx context.Context, target string, f xhttptest.Fixture, body []byte) (int, string, []byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	request, err := f.NewClientRequest(ctx, target, reader)
	if err != nil {
		return 0, "", nil, err
	}

	response, err := s.client.Do(request)
	if err != nil {
		return 0, "", nil, err
	}

	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, "", nil, err
	}

	return response.StatusCode, response.Header.Get("Content-Type"), data, nil
}
