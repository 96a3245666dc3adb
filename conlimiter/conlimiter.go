// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package conlimiter caps the number of open connections to an HTTP server.
package conlimiter

import (
	"net"
	"net/http"
	"sync/atomic"

	"github.com/beeherd/dispatcher/logging"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
)

// RejectedCounter is the name of the counter of connections closed for being over the limit
const RejectedCounter = "rejected_connections_total"

// Limiter closes new connections once Max connections are open.  Connections are counted when
// accepted, before any request is read.
type Limiter struct {
	max      int32
	current  int32
	rejected prometheus.Counter
	logger   log.Logger
}

// New creates a Limiter.  The rejected counter and the logger are both optional.
func New(max int, rejected prometheus.Counter, logger log.Logger) *Limiter {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return &Limiter{
		max:      int32(max),
		rejected: rejected,
		logger:   logger,
	}
}

// NewRejectedCounter creates the rejected connections counter and, if r is not nil, registers it.
func NewRejectedCounter(r prometheus.Registerer) (prometheus.Counter, error) {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: RejectedCounter,
		Help: "The number of connections closed because too many were open",
	})

	if r != nil {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Current returns the number of connections being tracked
func (l *Limiter) Current() int {
	return int(atomic.LoadInt32(&l.current))
}

// Limit installs this limiter as the server's ConnState hook.  Any hook already present is still called.
// If the limiter's maximum is nonpositive, the server is left alone.
func (l *Limiter) Limit(s *http.Server) {
	if l.max < 1 {
		return
	}

	next := s.ConnState
	s.ConnState = func(c net.Conn, state http.ConnState) {
		l.track(c, state)
		if next != nil {
			next(c, state)
		}
	}
}

func (l *Limiter) track(c net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		if atomic.AddInt32(&l.current, 1) > l.max {
			c.Close()
			if l.rejected != nil {
				l.rejected.Inc()
			}

			logging.Warn(l.logger).Log(logging.MessageKey(), "connection limit reached", "max", l.max, "remoteAddr", remoteAddr(c))
		}

	case http.StateHijacked, http.StateClosed:
		atomic.AddInt32(&l.current, -1)
	}
}

func remoteAddr(c net.Conn) string {
	if addr := c.RemoteAddr(); addr != nil {
		return addr.String()
	}

	return ""
}
