// Package server serves HTTP requests by resolving them against a route table.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snx/snx/internal/config"
	"github.com/snx/snx/internal/metrics"
	"github.com/snx/snx/internal/router"
)

const (
	// RequestIDHeader carries the request ID in and out.
	RequestIDHeader = "X-Request-ID"

	// HealthPath answers liveness probes before routing.
	HealthPath = "/healthz"

	// unmatchedRoute is the route label recorded for requests that match nothing.
	unmatchedRoute = "unmatched"

	// otherMethod replaces non-standard client methods in metric labels.
	otherMethod = "OTHER"
)

// Handler serves a request that matched a route.
type Handler interface {
	ServeRoute(w http.ResponseWriter, r *http.Request, m *router.MatchedRoute)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, m *router.MatchedRoute)

// ServeRoute calls f(w, r, m).
func (f HandlerFunc) ServeRoute(w http.ResponseWriter, r *http.Request, m *router.MatchedRoute) {
	f(w, r, m)
}

// Server dispatches requests to a Handler through an immutable route table.
type Server struct {
	cfg     *config.Config
	table   *router.Table
	handler Handler
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a server for table. A nil logger or metrics gets a default.
func New(cfg *config.Config, table *router.Table, h Handler, logger *zap.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(cfg.Metrics.Namespace)
	}
	m.SetTableSize(table.Len())

	return &Server{
		cfg:     cfg,
		table:   table,
		handler: h,
		logger:  logger,
		metrics: m,
	}
}

// ServeHTTP matches r against the route table and calls the handler, or
// answers 404 when no route matches.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	if r.URL.Path == HealthPath {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
		return
	}

	done := s.metrics.InFlight()
	defer done()

	method := methodLabel(r.Method)

	match := s.table.MatchRequest(r)
	if match == nil {
		s.metrics.RecordMiss(method)
		http.Error(w, "Not Found", http.StatusNotFound)
		s.metrics.RecordRequest(method, unmatchedRoute, http.StatusNotFound, time.Since(start))
		s.logger.Debug("no route matched",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		return
	}

	routePath := match.Route.Path
	s.metrics.RecordMatch(method, routePath)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.handler.ServeRoute(rec, r.WithContext(router.WithMatch(r.Context(), match)), match)

	duration := time.Since(start)
	s.metrics.RecordRequest(method, routePath, rec.status, duration)
	s.logger.Debug("request served",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("route", routePath),
		zap.Int("status", rec.status),
		zap.Duration("duration", duration),
	)
}

// methodLabel keeps metric label cardinality bounded: clients may send any
// method token, so only the standard verbs are recorded as-is.
func methodLabel(method string) string {
	if router.ParseMethod(method).IsStandard() {
		return method
	}
	return otherMethod
}

// Run listens on the configured app address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.App.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.App.Address(), err)
	}

	var metricsServer *http.Server
	if s.cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(s.cfg.Metrics.Path, s.metrics.Handler())
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", s.cfg.Metrics.Port),
			Handler:           metricsMux,
			ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		}
		go func() {
			s.logger.Info("metrics server starting",
				zap.Int("port", s.cfg.Metrics.Port),
				zap.String("path", s.cfg.Metrics.Path),
			)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	err = s.Serve(ctx, ln)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	return err
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:      s,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("address", ln.Addr().String()),
			zap.Int("routes", s.table.Len()),
		)
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("server gracefully stopped")
	return nil
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}
