// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/beeherd/dispatcher/capture"
	"github.com/beeherd/dispatcher/conlimiter"
	"github.com/beeherd/dispatcher/logging"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const (
	AddressFlag        = "address"
	MaxFlag            = "max"
	MaxConnectionsFlag = "max-connections"

	DefaultAddress = ":8080"

	// ServerKey is the configuration key for the capture server
	ServerKey = "capture"
)

// ServerConfig describes the capture server
type ServerConfig struct {
	Address           string        `json:"address"`
	MaxSnapshots      int           `json:"maxSnapshots"`
	MaxConnections    int           `json:"maxConnections"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	Headers           http.Header   `json:"headers"`
}

func newPrometheusRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

func newMeasures(r *prometheus.Registry) (capture.Measures, error) {
	return capture.NewMeasures(r)
}

func newRecorder(sc ServerConfig, m capture.Measures) *capture.Recorder {
	return capture.NewRecorder(capture.Options{MaxSnapshots: sc.MaxSnapshots}, m)
}

func newCaptureHandler(sc ServerConfig, r *capture.Recorder, g *prometheus.Registry, logger log.Logger) http.Handler {
	return capture.NewHandler(capture.HandlerOptions{
		Recorder: r,
		Logger:   logger,
		Gatherer: g,
		Headers:  sc.Headers,
	})
}

func newConnectionLimiter(sc ServerConfig, r *prometheus.Registry, logger log.Logger) (*conlimiter.Limiter, error) {
	rejected, err := conlimiter.NewRejectedCounter(r)
	if err != nil {
		return nil, err
	}

	return conlimiter.New(sc.MaxConnections, rejected, logger), nil
}

// newListener binds the server address when the application is constructed, so that a bad address
// is reported before anything starts.
func newListener(sc ServerConfig) (net.Listener, error) {
	return net.Listen("tcp", sc.Address)
}

func startServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, sc ServerConfig, l net.Listener, h http.Handler, cl *conlimiter.Limiter, logger log.Logger) {
	server := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: sc.ReadHeaderTimeout,
	}

	cl.Limit(server)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logging.Info(logger).Log(logging.MessageKey(), "capture server starting", "address", l.Addr().String())
			go func() {
				err := server.Serve(l)
				if !errors.Is(err, http.ErrServerClosed) {
					logging.Error(logger).Log(logging.MessageKey(), "capture server exited", logging.ErrorKey(), err)
					shutdowner.Shutdown()
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logging.Info(logger).Log(logging.MessageKey(), "capture server stopping")
			return server.Shutdown(ctx)
		},
	})
}

// captureApp assembles the capture server.  Extra options are appended, which is how tests get at the components.
func captureApp(e *environment, sc ServerConfig, extra ...fx.Option) []fx.Option {
	return append(
		[]fx.Option{
			fx.NopLogger,
			fx.Supply(sc),
			fx.Provide(
				func() log.Logger { return e.logger },
				newPrometheusRegistry,
				newMeasures,
				newRecorder,
				newCaptureHandler,
				newConnectionLimiter,
				newListener,
			),
			fx.Invoke(startServer),
		},
		extra...,
	)
}

// serverConfig reads the capture section of the configuration, then applies any flags that were set.
func serverConfig(cmd *cobra.Command, e *environment) (ServerConfig, error) {
	sc := ServerConfig{
		Address:           DefaultAddress,
		MaxSnapshots:      capture.DefaultMaxSnapshots,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if sub := e.v.Sub(ServerKey); sub != nil {
		if err := sub.Unmarshal(&sc); err != nil {
			return ServerConfig{}, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed(AddressFlag) {
		sc.Address, _ = fs.GetString(AddressFlag)
	}

	if fs.Changed(MaxFlag) {
		sc.MaxSnapshots, _ = fs.GetInt(MaxFlag)
	}

	if fs.Changed(MaxConnectionsFlag) {
		sc.MaxConnections, _ = fs.GetInt(MaxConnectionsFlag)
	}

	return sc, nil
}

// runCapture starts the application and runs it until ctx is done or the application is shut down.
func runCapture(ctx context.Context, app *fx.App) error {
	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	return app.Stop(stopCtx)
}

func newCaptureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Runs a server that records the requests it receives",
		Long: `Runs a server that records the requests it receives at /capture.  Recorded snapshots
are listed at GET /snapshots, discarded with DELETE /snapshots, and metrics are at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnvironment(cmd)
			if err != nil {
				return err
			}

			sc, err := serverConfig(cmd, e)
			if err != nil {
				return err
			}

			app := fx.New(captureApp(e, sc)...)
			if err := app.Err(); err != nil {
				return err
			}

			return runCapture(cmd.Context(), app)
		},
	}

	fs := cmd.Flags()
	fs.StringP(AddressFlag, "a", DefaultAddress, "the address to listen on")
	fs.IntP(MaxFlag, "m", capture.DefaultMaxSnapshots, "the maximum number of snapshots retained")
	fs.Int(MaxConnectionsFlag, 0, "the maximum number of open connections.  0 means unlimited.")

	return cmd
}
