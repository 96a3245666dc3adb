// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/beeherd/dispatcher/logging"
	"github.com/beeherd/dispatcher/xhttp/xhttptest"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T, o Options) *Recorder {
	m, err := NewMeasures(nil)
	require.NoError(t, err)

	r := NewRecorder(o, m)
	r.now = func() time.Time {
		return time.Date(2026, time.October, 18, 8, 0, 0, 0, time.FixedZone("test", 3600))
	}

	return r
}

func TestOptions(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(DefaultMaxSnapshots, Options{}.maxSnapshots())
	assert.Equal(DefaultMaxSnapshots, Options{MaxSnapshots: -1}.maxSnapshots())
	assert.Equal(5, Options{MaxSnapshots: 5}.maxSnapshots())
}

func TestRecorderRecord(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		r       = newTestRecorder(t, Options{})
		request = xhttptest.XMLPostRequest().NewRequest("/capture?x=1", strings.NewReader("<ping/>"))
	)

	_, ok := r.Last()
	assert.False(ok)

	s := r.Record(request)
	assert.NotEmpty(s.ID)
	assert.Equal("POST", s.Method)
	assert.Equal("/capture?x=1", s.URI)
	assert.Equal([]string{"Content-Type"}, s.HeaderNames)
	assert.Equal([]string{"text/xml"}, s.Header.Values("Content-Type"))
	assert.Equal(int64(7), s.BodyLength)
	assert.Equal(time.UTC, s.Received.Location())
	assert.NoError(Verify(s, xhttptest.XMLPostRequest()))

	last, ok := r.Last()
	require.True(ok)
	assert.Equal(s, last)
	assert.Equal(float64(1), testutil.ToFloat64(r.measures.Requests.WithLabelValues("POST")))
	assert.Equal(float64(1), testutil.ToFloat64(r.measures.Snapshots))

	request.Header.Set("Content-Type", "application/json")
	assert.Equal("text/xml", last.Header.Get("Content-Type"), "snapshots must not share the request header")
}

func TestRecorderRecordNoRequestURI(t *testing.T) {
	r := newTestRecorder(t, Options{})

	request, err := http.NewRequest("GET", "http://localhost/capture?a=b", nil)
	require.NoError(t, err)

	s := r.Record(request)
	assert.Equal(t, "/capture?a=b", s.URI)
	assert.Zero(t, s.BodyLength)
}

func TestRecorderMaxSnapshots(t *testing.T) {
	var (
		assert = assert.New(t)
		r      = newTestRecorder(t, Options{MaxSnapshots: 3})
		ids    []string
	)

	for i := 0; i < 5; i++ {
		ids = append(ids, r.Record(httptest.NewRequest("GET", fmt.Sprintf("/capture?i=%d", i), nil)).ID)
	}

	snapshots := r.Snapshots()
	assert.Len(snapshots, 3)
	for i, s := range snapshots {
		assert.Equal(ids[i+2], s.ID)
		assert.Equal(fmt.Sprintf("/capture?i=%d", i+2), s.URI)
	}

	assert.Equal(float64(3), testutil.ToFloat64(r.measures.Snapshots))
	assert.Equal(float64(5), testutil.ToFloat64(r.measures.Requests.WithLabelValues("GET")))

	assert.Equal(3, r.Reset())
	assert.Empty(r.Snapshots())
	assert.Equal(float64(0), testutil.ToFloat64(r.measures.Snapshots))
	assert.Equal(0, r.Reset())
}

func TestRecorderConcurrency(t *testing.T) {
	var (
		r  = newTestRecorder(t, Options{MaxSnapshots: 50})
		wg sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				r.Record(xhttptest.GetRequest().NewRequest("/capture", nil))
				r.Snapshots()
				r.Last()
			}
		}()
	}

	wg.Wait()
	assert.Len(t, r.Snapshots(), 50)
	assert.Equal(t, float64(200), testutil.ToFloat64(r.measures.Requests.WithLabelValues("GET")))
}

func testRecorderServeHTTP(t *testing.T, f xhttptest.Fixture, expected Format) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		r        = newTestRecorder(t, Options{})
		response = httptest.NewRecorder()
		request  = f.NewRequest("/capture", nil)
	)

	request = request.WithContext(logging.WithLogger(request.Context(), logging.NewTestLogger(nil, t)))
	r.ServeHTTP(response, request)

	assert.Equal(http.StatusAccepted, response.Code)
	assert.Equal(expected.ContentType(), response.Header().Get("Content-Type"))

	s, err := DecodeSnapshot(bytes.NewReader(response.Body.Bytes()), expected)
	require.NoError(err)
	assert.NoError(Verify(s, f))

	last, ok := r.Last()
	require.True(ok)
	assert.Equal(last.ID, s.ID)
}

func TestRecorderServeHTTP(t *testing.T) {
	t.Run("GetNegotiatesXML", func(t *testing.T) {
		testRecorderServeHTTP(t, xhttptest.GetRequest(), XML)
	})

	t.Run("XMLPostDefaultsToJSON", func(t *testing.T) {
		testRecorderServeHTTP(t, xhttptest.XMLPostRequest(), JSON)
	})

	t.Run("Msgpack", func(t *testing.T) {
		f := xhttptest.Fixture{
			Method: "PUT",
			Names:  []string{"Accept"},
			Values: map[string][]string{"Accept": {"application/msgpack"}},
		}

		testRecorderServeHTTP(t, f, Msgpack)
	})

	t.Run("NotAcceptable", func(t *testing.T) {
		var (
			assert   = assert.New(t)
			r        = newTestRecorder(t, Options{})
			response = httptest.NewRecorder()
			request  = httptest.NewRequest("GET", "/capture", nil)
		)

		request.Header.Set("Accept", "image/png")
		r.ServeHTTP(response, request)

		assert.Equal(http.StatusNotAcceptable, response.Code)
		assert.Equal("application/json", response.Header().Get("Content-Type"))
		assert.Len(r.Snapshots(), 1)
	})
}

func TestRecorderReturnsCopies(t *testing.T) {
	var (
		assert = assert.New(t)
		r      = newTestRecorder(t, Options{})
	)

	recorded := r.Record(xhttptest.GetRequest().NewRequest("/capture", nil))
	recorded.Header.Set("Accept", "changed")

	last, ok := r.Last()
	assert.True(ok)
	assert.Equal([]string{"text/xml", "text/plain"}, last.Header.Values("Accept"))

	last.Header.Set("Accept", "changed")
	last.HeaderNames[0] = "Changed"

	snapshots := r.Snapshots()
	assert.Len(snapshots, 1)
	assert.Equal([]string{"text/xml", "text/plain"}, snapshots[0].Header.Values("Accept"))
	assert.Equal([]string{"Accept", "Content-Type"}, snapshots[0].HeaderNames)

	snapshots[0].Header.Del("Accept")
	last, _ = r.Last()
	assert.Equal([]string{"text/xml", "text/plain"}, last.Header.Values("Accept"))
}

func TestRecorderBodyError(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		expectedError = errors.New("connection reset")
		body          = new(xhttptest.MockBody)
		logger        = logging.NewCaptureLogger(5)
		r             = newTestRecorder(t, Options{})

		request = xhttptest.XMLPostRequest().NewRequest("/capture", body)
	)

	body.OnReadError(expectedError)
	request = request.WithContext(logging.WithLogger(request.Context(), logger))

	s := r.Record(request)
	assert.Zero(s.BodyLength)
	assert.Equal(expectedError.Error(), s.BodyError)

	last, ok := r.Last()
	require.True(ok)
	assert.Equal(expectedError.Error(), last.BodyError)

	select {
	case entry := <-logger.Output():
		assert.Equal(expectedError, entry[logging.ErrorKey()])
	default:
		assert.Fail("the body error was not logged")
	}

	body.AssertExpectations(t)
}
