package receipt

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options controls optional server behavior
type Options struct {
	// ExposeViolations adds field-level validation details to 400 responses
	ExposeViolations bool

	// Gatherer serves /metrics when set
	Gatherer prometheus.Gatherer
}

// Server handles HTTP requests for receipts
type Server struct {
	service *Service
	options Options
	mux     *http.ServeMux

	mu         sync.Mutex
	httpServer *http.Server
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, options Options) *Server {
	return NewServerWithMux(service, options, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, options Options, mux *http.ServeMux) *Server {
	s := &Server{
		service: service,
		options: options,
		mux:     mux,
	}
	s.registerRoutes()
	return s
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// registerRoutes registers all API routes on the server's mux
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /receipts/process", s.handleProcessReceipt)
	s.mux.HandleFunc("GET /receipts/{id}/points", s.handleGetPoints)
	s.mux.HandleFunc("GET /receipts/{id}", s.handleGetReceipt)

	if s.options.Gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.options.Gatherer, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server and blocks until it stops.
// It returns nil after Shutdown.
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.corsMiddleware(s.mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	slog.Info("Starting server", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a server started with Start
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.corsMiddleware(s.mux).ServeHTTP(w, r)
}
