package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"github.com/vertexml/inferbridge/internal/config"
	"github.com/vertexml/inferbridge/internal/metrics"
	"github.com/vertexml/inferbridge/pkg/bridge"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func serveCommand(cfg **config.Config, log **zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve allocator metrics and health endpoints",
		Action: func(c *cli.Context) error {
			app := fx.New(
				fx.Supply(*cfg),
				fx.Supply(*log),
				fx.Provide(newAllocator),
				fx.Provide(bridge.NewResponseAllocator),
				fx.Invoke(registerServer),
				fx.NopLogger,
			)
			app.Run()
			return nil
		},
	}
}

func newAllocator(cfg *config.Config, log *zap.Logger) (bridge.Allocator, error) {
	return bridge.NewAllocator(cfg.Allocator.Backend, log)
}

func registerServer(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, ra *bridge.ResponseAllocator) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	// Readiness runs one allocate/release round trip through the
	// configured backend.
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		buf, tag, actualType, actualID, nerr := ra.Alloc("readyz", 64, bridge.MemoryCPU, 0)
		if nerr != nil {
			http.Error(w, nerr.Error(), http.StatusServiceUnavailable)
			return
		}
		ra.Release(buf, tag, buf.ByteSize, actualType, actualID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: cfg.Metrics.ListenAddress, Handler: r}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting metrics server", zap.String("address", cfg.Metrics.ListenAddress))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("metrics server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
