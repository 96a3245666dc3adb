// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	RequestsCounter = "capture_requests_total"
	SnapshotsGauge  = "capture_snapshots"

	MethodLabel = "method"
)

// Measures holds the metrics a Recorder updates
type Measures struct {
	Requests  *prometheus.CounterVec
	Snapshots prometheus.Gauge
}

// NewMeasures creates the capture metrics and registers them with r.  A nil Registerer
// leaves the metrics unregistered, which is convenient for tests.
func NewMeasures(r prometheus.Registerer) (Measures, error) {
	m := Measures{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: RequestsCounter,
				Help: "The total number of requests recorded, by HTTP method",
			},
			[]string{MethodLabel},
		),
		Snapshots: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: SnapshotsGauge,
				Help: "The number of snapshots currently retained",
			},
		),
	}

	if r != nil {
		for _, c := range []prometheus.Collector{m.Requests, m.Snapshots} {
			if err := r.Register(c); err != nil {
				return Measures{}, err
			}
		}
	}

	return m, nil
}
