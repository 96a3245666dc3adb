// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/beeherd/dispatcher/logging"
	"github.com/beeherd/dispatcher/xhttp"
	"github.com/segmentio/ksuid"
)

// DefaultMaxSnapshots is the number of snapshots retained when Options does not say otherwise
const DefaultMaxSnapshots = 100

// Options configures a Recorder
type Options struct {
	// MaxSnapshots is the number of snapshots retained.  Once full, the oldest snapshot is dropped
	// for each new one.  Nonpositive values mean DefaultMaxSnapshots.
	MaxSnapshots int `json:"maxSnapshots"`
}

func (o Options) maxSnapshots() int {
	if o.MaxSnapshots > 0 {
		return o.MaxSnapshots
	}

	return DefaultMaxSnapshots
}

// Recorder is an http.Handler that records a Snapshot of every request it serves.
// It is safe for concurrent use.
type Recorder struct {
	lock      sync.RWMutex
	max       int
	snapshots []Snapshot

	measures Measures
	now      func() time.Time
}

// NewRecorder creates a Recorder.  The Measures are typically produced by NewMeasures.
func NewRecorder(o Options, m Measures) *Recorder {
	return &Recorder{
		max:      o.maxSnapshots(),
		measures: m,
		now:      time.Now,
	}
}

// Record takes a snapshot of the request, draining its body to measure it.  A body that fails
// partway is still recorded, with the error in BodyError and logged to the request's logger.
func (r *Recorder) Record(request *http.Request) Snapshot {
	var (
		bodyLength int64
		bodyError  string
	)

	if request.Body != nil {
		var err error
		if bodyLength, err = io.Copy(io.Discard, request.Body); err != nil {
			bodyError = err.Error()
			logging.Error(logging.GetLogger(request.Context())).Log(
				logging.MessageKey(), "unable to read request body",
				"bytesRead", bodyLength,
				logging.ErrorKey(), err,
			)
		}
	}

	s := Snapshot{
		ID:          ksuid.New().String(),
		Method:      request.Method,
		URI:         request.RequestURI,
		Header:      request.Header.Clone(),
		HeaderNames: sortedHeaderNames(request.Header),
		BodyLength:  bodyLength,
		BodyError:   bodyError,
		Received:    r.now().UTC(),
	}

	if len(s.URI) == 0 && request.URL != nil {
		s.URI = request.URL.RequestURI()
	}

	r.lock.Lock()
	if len(r.snapshots) >= r.max {
		r.snapshots = append(r.snapshots[:0], r.snapshots[len(r.snapshots)-r.max+1:]...)
	}

	r.snapshots = append(r.snapshots, s.clone())
	retained := len(r.snapshots)
	r.lock.Unlock()

	if r.measures.Requests != nil {
		r.measures.Requests.WithLabelValues(s.Method).Inc()
	}

	if r.measures.Snapshots != nil {
		r.measures.Snapshots.Set(float64(retained))
	}

	return s
}

// ServeHTTP records the request, then answers 202 Accepted with the snapshot in the format
// negotiated from the Accept header.  An unsupported Accept is still recorded, but answered with 406.
func (r *Recorder) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	s := r.Record(request)
	logger := logging.GetLogger(request.Context())

	f, err := Negotiate(strings.Join(request.Header.Values("Accept"), ","))
	if err != nil {
		logging.Debug(logger).Log(logging.MessageKey(), "unable to negotiate response format", "id", s.ID, logging.ErrorKey(), err)
		xhttp.WriteError(response, http.StatusNotAcceptable, err)
		return
	}

	logging.Debug(logger).Log(logging.MessageKey(), "recorded request", "id", s.ID, "format", f)
	response.Header().Set("Content-Type", f.ContentType())
	response.WriteHeader(http.StatusAccepted)
	if err := EncodeSnapshot(response, f, s); err != nil {
		logging.Error(logger).Log(logging.MessageKey(), "unable to write snapshot", "id", s.ID, logging.ErrorKey(), err)
	}
}

// Snapshots returns copies of the retained snapshots, oldest first.
func (r *Recorder) Snapshots() []Snapshot {
	r.lock.RLock()
	defer r.lock.RUnlock()

	snapshots := make([]Snapshot, len(r.snapshots))
	for i, s := range r.snapshots {
		snapshots[i] = s.clone()
	}

	return snapshots
}

// Last returns the most recent snapshot, if there is one.
func (r *Recorder) Last() (Snapshot, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if len(r.snapshots) == 0 {
		return Snapshot{}, false
	}

	return r.snapshots[len(r.snapshots)-1].clone(), true
}

// Reset discards all retained snapshots and returns how many there were.
func (r *Recorder) Reset() int {
	r.lock.Lock()
	count := len(r.snapshots)
	r.snapshots = nil
	r.lock.Unlock()

	if r.measures.Snapshots != nil {
		r.measures.Snapshots.Set(0)
	}

	return count
}
