// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"context"
	"net/http"
	"strings"

	"github.com/beeherd/dispatcher/logging"
	"github.com/beeherd/dispatcher/logging/logginghttp"
	"github.com/beeherd/dispatcher/xhttp"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/transport"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	CapturePath   = "/capture"
	SnapshotsPath = "/snapshots"
	MetricsPath   = "/metrics"
)

// HandlerOptions holds what NewHandler needs
type HandlerOptions struct {
	Recorder *Recorder

	// Logger is the base logger for requests.  If nil, logging.DefaultLogger() is used.
	Logger log.Logger

	// Gatherer, if set, is exposed at MetricsPath
	Gatherer prometheus.Gatherer

	// Headers are written into every response
	Headers http.Header
}

type snapshotsResponse struct {
	format    Format
	snapshots []Snapshot
}

func decodeSnapshotsRequest(_ context.Context, request *http.Request) (interface{}, error) {
	return Negotiate(strings.Join(request.Header.Values("Accept"), ","))
}

func newSnapshotsEndpoint(r *Recorder) endpoint.Endpoint {
	return func(_ context.Context, v interface{}) (interface{}, error) {
		return snapshotsResponse{
			format:    v.(Format),
			snapshots: r.Snapshots(),
		}, nil
	}
}

func encodeSnapshotsResponse(_ context.Context, response http.ResponseWriter, v interface{}) error {
	sr := v.(snapshotsResponse)
	response.Header().Set("Content-Type", sr.format.ContentType())
	return EncodeSnapshots(response, sr.format, sr.snapshots)
}

func newResetHandler(r *Recorder) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		count := r.Reset()
		logging.Info(logging.GetLogger(request.Context())).Log(logging.MessageKey(), "snapshots reset", "count", count)
		response.WriteHeader(http.StatusNoContent)
	})
}

// NewHandler builds the capture API:
//
//	ANY    /capture    records the request
//	GET    /snapshots  lists retained snapshots
//	DELETE /snapshots  discards retained snapshots
//	GET    /metrics    prometheus metrics, if a Gatherer was supplied
func NewHandler(o HandlerOptions) http.Handler {
	logger := o.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	router := mux.NewRouter()
	router.Handle(CapturePath, o.Recorder)
	router.Handle(
		SnapshotsPath,
		kithttp.NewServer(
			newSnapshotsEndpoint(o.Recorder),
			decodeSnapshotsRequest,
			encodeSnapshotsResponse,
			kithttp.ServerBefore(logginghttp.SetLogger(logger, logginghttp.StandardKeyValues)),
			kithttp.ServerErrorHandler(transport.NewLogErrorHandler(logging.Error(logger))),
		),
	).Methods(http.MethodGet)

	router.Handle(SnapshotsPath, newResetHandler(o.Recorder)).Methods(http.MethodDelete)

	if o.Gatherer != nil {
		router.Handle(MetricsPath, promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		xhttp.WriteErrorf(response, http.StatusNotFound, "No such resource: %s", request.URL.Path)
	})

	return alice.New(
		logginghttp.PopulateLogger(logger),
		xhttp.StaticHeaders(o.Headers),
	).Then(router)
}
