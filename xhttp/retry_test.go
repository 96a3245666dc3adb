// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beeherd/dispatcher/logging"
	"github.com/beeherd/dispatcher/xhttp/xhttptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShouldRetry(t *testing.T) {
	assert := assert.New(t)

	assert.False(DefaultShouldRetry(nil))
	assert.False(DefaultShouldRetry(errors.New("permanent")))
	assert.True(DefaultShouldRetry(mockTempError{}))
	assert.False(DefaultShouldRetry(&net.DNSError{IsTemporary: false}))
	assert.True(DefaultShouldRetry(&net.DNSError{IsTemporary: true}))
}

func TestDefaultShouldRetryStatus(t *testing.T) {
	assert := assert.New(t)

	assert.True(DefaultShouldRetryStatus(http.StatusServiceUnavailable))
	assert.True(DefaultShouldRetryStatus(http.StatusTooManyRequests))
	assert.False(DefaultShouldRetryStatus(http.StatusOK))
	assert.False(DefaultShouldRetryStatus(http.StatusBadRequest))
}

func TestRetryTransactorNoRetries(t *testing.T) {
	var (
		assert = assert.New(t)
		calls  = 0

		transactor = func(*http.Request) (*http.Response, error) {
			calls++
			return nil, mockTempError{}
		}

		retry = RetryTransactor(RetryOptions{}, transactor)
	)

	_, err := retry(httptest.NewRequest("GET", "/", nil))
	assert.Equal(mockTempError{}, err)
	assert.Equal(1, calls)
}

func testRetryTransactor(t *testing.T, retries int, results []error, expectedCalls int) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		calls  = 0
		bodies []string
		slept  []time.Duration

		transactor = func(request *http.Request) (*http.Response, error) {
			body, err := io.ReadAll(request.Body)
			require.NoError(err)
			bodies = append(bodies, string(body))

			err = results[calls]
			calls++
			if err != nil {
				return nil, err
			}

			return xhttptest.NewResponse(http.StatusOK, "", nil), nil
		}

		retry = RetryTransactor(
			RetryOptions{
				Logger:   logging.NewTestLogger(nil, t),
				Retries:  retries,
				Interval: time.Second,
				Sleep:    func(d time.Duration) { slept = append(slept, d) },
			},
			transactor,
		)
	)

	response, err := retry(xhttptest.XMLPostRequest().NewRequest("/", strings.NewReader("<ping/>")))
	assert.Equal(expectedCalls, calls)
	assert.Len(slept, expectedCalls-1)
	for _, b := range bodies {
		assert.Equal("<ping/>", b)
	}

	if last := results[expectedCalls-1]; last != nil {
		assert.Nil(response)
		assert.Equal(last, err)
	} else {
		require.NotNil(response)
		assert.Equal(http.StatusOK, response.StatusCode)
		assert.NoError(err)
	}
}

func TestRetryTransactor(t *testing.T) {
	var (
		temporary = mockTempError{}
		permanent = errors.New("permanent")
	)

	t.Run("FirstSucceeds", func(t *testing.T) {
		testRetryTransactor(t, 2, []error{nil}, 1)
	})

	t.Run("SecondSucceeds", func(t *testing.T) {
		testRetryTransactor(t, 2, []error{temporary, nil}, 2)
	})

	t.Run("AllFail", func(t *testing.T) {
		testRetryTransactor(t, 2, []error{temporary, temporary, temporary}, 3)
	})

	t.Run("Permanent", func(t *testing.T) {
		testRetryTransactor(t, 2, []error{permanent}, 1)
	})
}

func TestRetryTransactorStatus(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		statuses = []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusAccepted}
		calls    = 0

		transactor = func(*http.Request) (*http.Response, error) {
			response := xhttptest.NewResponse(statuses[calls], "", nil)
			calls++
			return response, nil
		}

		retry = RetryTransactor(
			RetryOptions{Retries: 5, Sleep: func(time.Duration) {}},
			transactor,
		)
	)

	response, err := retry(xhttptest.GetRequest().NewRequest("/", nil))
	require.NoError(err)
	require.NotNil(response)
	assert.Equal(http.StatusAccepted, response.StatusCode)
	assert.Equal(3, calls)
}

func TestRetryTransactorContext(t *testing.T) {
	t.Run("DoneBeforeRetry", func(t *testing.T) {
		var (
			assert      = assert.New(t)
			calls       = 0
			ctx, cancel = context.WithCancel(context.Background())

			transactor = func(*http.Request) (*http.Response, error) {
				calls++
				cancel()
				return nil, mockTempError{}
			}

			retry = RetryTransactor(RetryOptions{Retries: 3, Interval: time.Minute}, transactor)
		)

		defer cancel()
		_, err := retry(xhttptest.GetRequest().NewRequest("/", nil).WithContext(ctx))
		assert.Equal(mockTempError{}, err)
		assert.Equal(1, calls)
	})

	t.Run("DoneDuringPause", func(t *testing.T) {
		var (
			assert      = assert.New(t)
			calls       = 0
			ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)

			transactor = func(*http.Request) (*http.Response, error) {
				calls++
				return nil, mockTempError{}
			}

			retry = RetryTransactor(RetryOptions{Retries: 3, Interval: time.Minute}, transactor)
		)

		defer cancel()
		start := time.Now()
		response, err := retry(xhttptest.GetRequest().NewRequest("/", nil).WithContext(ctx))
		assert.Less(time.Since(start), 10*time.Second)
		assert.Nil(response)
		assert.ErrorIs(err, context.DeadlineExceeded)
		assert.Equal(1, calls)
	})
}
