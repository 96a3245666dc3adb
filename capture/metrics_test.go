// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeasures(t *testing.T) {
	t.Run("Unregistered", func(t *testing.T) {
		m, err := NewMeasures(nil)
		require.NoError(t, err)
		assert.NotNil(t, m.Requests)
		assert.NotNil(t, m.Snapshots)
	})

	t.Run("Registered", func(t *testing.T) {
		var (
			assert   = assert.New(t)
			require  = require.New(t)
			registry = prometheus.NewPedanticRegistry()
		)

		m, err := NewMeasures(registry)
		require.NoError(err)

		m.Requests.WithLabelValues("GET").Inc()
		m.Snapshots.Set(1)

		count, err := testutil.GatherAndCount(registry, RequestsCounter, SnapshotsGauge)
		require.NoError(err)
		assert.Equal(2, count)
	})

	t.Run("Duplicate", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		_, err := NewMeasures(registry)
		require.NoError(t, err)

		_, err = NewMeasures(registry)
		assert.Error(t, err)
	})
}
