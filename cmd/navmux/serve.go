package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/vitalvas/navmux/history/wshistory"
	"github.com/vitalvas/navmux/mux"
	"github.com/vitalvas/navmux/muxhandlers"
	"github.com/vitalvas/navmux/routefile"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route table to browsers over WebSocket",
		Long: `Start an HTTP server exposing:

  /ws       WebSocket history bridge; every connection gets its own navigator
  /routes   the route file as JSON
  /metrics  Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			f, err := routefile.LoadFile(a.routes)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			s := &server{
				logger:  a.logger,
				file:    f,
				metrics: muxhandlers.NewMetrics(muxhandlers.WithRegistry(reg), muxhandlers.WithNamespace(a.cfg.MetricsNamespace)),
				upgrader: websocket.Upgrader{
					ReadBufferSize:  1024,
					WriteBufferSize: 1024,
				},
			}

			return s.run(cmd.Context(), addr, s.router(cmd.Context(), reg))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $NAVMUX_LISTEN_ADDR or :8080)")

	return cmd
}

type server struct {
	logger   *slog.Logger
	file     *routefile.File
	metrics  *muxhandlers.Metrics
	upgrader websocket.Upgrader
}

func (s *server) router(ctx context.Context, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		s.handleWS(ctx, w, req)
	})
	r.Get("/routes", s.handleRoutes)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return r
}

func (s *server) handleRoutes(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.file); err != nil {
		s.logger.Warn("write routes failed", "error", err)
	}
}

// handleWS bridges one browser tab. The connection lives until the browser
// leaves or ctx is cancelled.
func (s *server) handleWS(ctx context.Context, w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	logger := s.logger.With("request_id", middleware.GetReqID(req.Context()))
	h := wshistory.New(conn, wshistory.WithLogger(logger))

	nav := mux.NewNavigator(h,
		mux.WithLogger(logger),
		mux.WithContext(ctx),
		mux.WithMissHandler(s.metrics.ObserveMiss),
		mux.WithMiddleware(
			muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{
				LogFunc: func(m *mux.Match, err any) {
					logger.Error("handler panic", "template", m.Template(), "error", err)
				},
			}),
			muxhandlers.NavigationIDMiddleware(muxhandlers.NavigationIDConfig{
				GenerateFunc: muxhandlers.GenerateUUIDv7,
			}),
			muxhandlers.TracingMiddleware(),
			s.metrics.Middleware(),
			muxhandlers.LoggingMiddleware(muxhandlers.LoggingConfig{
				Logger: logger,
				Level:  slog.LevelDebug,
			}),
		),
	)

	sw := nav.Switch(s.file.MuxRoutes(func(routefile.Definition) mux.Handler {
		return mux.HandlerFunc(func(_ context.Context, m *mux.Match) {
			if err := h.SendMatch(m); err != nil {
				logger.Warn("send match failed", "error", err)
			}
		})
	})...)
	defer sw.Close()

	logger.Info("browser connected")

	if err := h.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("browser session ended", "error", err)
		return
	}

	logger.Info("browser disconnected")
}

func (s *server) run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.InfoContext(ctx, "starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	return srv.Shutdown(shutdownCtx)
}
