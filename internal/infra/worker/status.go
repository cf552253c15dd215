package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/usecase/fetch"
)

// StatusServer is the worker's HTTP sidecar:
//   - GET /health: liveness probe, always 200;
//   - GET /health/ready: readiness probe, 200 once the worker is initialized;
//   - POST /tick: run one pipeline cycle on demand;
//   - GET /integration.json: the platform descriptor;
//   - GET /metrics: Prometheus exposition.
type StatusServer struct {
	addr       string
	runner     CycleRunner
	descriptor Descriptor
	logger     *slog.Logger
	isReady    atomic.Bool
	server     *http.Server
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewStatusServer creates a status server. Start must be called to serve.
func NewStatusServer(port int, runner CycleRunner, descriptor Descriptor, logger *slog.Logger) *StatusServer {
	return &StatusServer{
		addr:       fmt.Sprintf(":%d", port),
		runner:     runner,
		descriptor: descriptor,
		logger:     logger,
	}
}

// Handler returns the route table, exposed separately so tests can drive it
// without binding a port.
func (s *StatusServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleLiveness)
	mux.HandleFunc("GET /health/ready", s.handleReadiness)
	mux.HandleFunc("POST /tick", s.handleTick)
	mux.HandleFunc("GET /integration.json", s.handleDescriptor)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully with a
// 5-second deadline. It returns http.ErrServerClosed on clean shutdown.
func (s *StatusServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("status server starting", slog.String("addr", s.addr))
		if err := s.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("status server shutting down")
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("status server shutdown failed", slog.Any("error", err))
			return err
		}
		return http.ErrServerClosed

	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady flips the readiness probe.
func (s *StatusServer) SetReady(ready bool) {
	s.isReady.Store(ready)
	s.logger.Info("status server readiness changed", slog.Bool("ready", ready))
}

func (s *StatusServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *StatusServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if s.isReady.Load() {
		s.writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
		return
	}
	s.writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "not ready"})
}

// handleTick runs one cycle synchronously. An overlapping cycle maps to 409
// so platform-driven ticks and the interval schedule cannot trample each
// other.
func (s *StatusServer) handleTick(w http.ResponseWriter, r *http.Request) {
	stats, err := s.runner.RunCycle(r.Context())
	switch {
	case errors.Is(err, fetch.ErrCycleInProgress):
		s.writeJSON(w, http.StatusConflict, statusResponse{Status: "busy", Error: err.Error()})
	case err != nil:
		s.writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Error: err.Error()})
	default:
		s.logger.Info("tick cycle finished",
			slog.Int("new_items", stats.NewItems),
			slog.Int("delivered", stats.Delivered))
		s.writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
	}
}

func (s *StatusServer) handleDescriptor(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.descriptor)
}

func (s *StatusServer) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", slog.Any("error", err))
	}
}
