// Package api serves the record codec and the capture store over HTTP.
//
// Every route under /api/v1 requires the X-API-Key header when a key is
// configured. /metrics is left open for scraping.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Routes builds the router. gatherer serves /metrics and should be the
// registry the server's metrics were registered with.
func (s *Server) Routes(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	m := s.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/kinds", m.InstrumentHandler("GET", "/api/v1/kinds", s.handleKinds))

		// Codec
		r.Post("/decode/{kind}", m.InstrumentHandler("POST", "/api/v1/decode/{kind}", s.handleDecode))
		r.Post("/encode/{kind}", m.InstrumentHandler("POST", "/api/v1/encode/{kind}", s.handleEncode))

		// Captures
		r.Get("/captures", m.InstrumentHandler("GET", "/api/v1/captures", s.handleListCaptures))
		r.Post("/captures/{kind}", m.InstrumentHandler("POST", "/api/v1/captures/{kind}", s.handlePutCapture))
		r.Get("/captures/{id}", m.InstrumentHandler("GET", "/api/v1/captures/{id}", s.handleGetCapture))
		r.Delete("/captures/{id}", m.InstrumentHandler("DELETE", "/api/v1/captures/{id}", s.handleDeleteCapture))
	})

	return r
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, store CaptureStore, config ServerConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(registry)

	server := NewServer(store, config, metrics, logger)

	addr := net.JoinHostPort(config.Bind, fmt.Sprint(config.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting uwbwire API server", "addr", addr)
		logger.Info("metrics available", "url", fmt.Sprintf("http://%s/metrics", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	return nil
}
