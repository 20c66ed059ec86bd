package adminconfig

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SecretHeader carries the shared write secret on POST requests.
const SecretHeader = "X-Admin-Secret"

// ServerConfig holds configuration for the admin-config service.
type ServerConfig struct {
	Addr      string
	StorePath string
	Secret    string // required for writes; empty disables POST entirely
}

// Server serves the shared configuration document over HTTP. GET is
// public; POST requires the shared secret.
type Server struct {
	cfg     ServerConfig
	store   *Store
	httpSrv *http.Server

	requests  *prometheus.CounterVec
	published prometheus.Counter
}

// NewServer creates the admin-config server.
func NewServer(cfg ServerConfig) *Server {
	reg := prometheus.NewRegistry()

	s := &Server{
		cfg:   cfg,
		store: NewStore(cfg.StorePath),
		requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "gamecrate_adminconfig_requests_total",
			Help: "Admin-config requests by method and status.",
		}, []string{"method", "status"}),
		published: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "gamecrate_adminconfig_published_total",
			Help: "Accepted configuration updates.",
		}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/admin-config", s.handleGet)
	r.Post("/admin-config", s.handlePost)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Load()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		s.requests.WithLabelValues(r.Method, "500").Inc()
		return
	}
	s.requests.WithLabelValues(r.Method, "200").Inc()
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.requests.WithLabelValues(r.Method, "403").Inc()
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var update Document
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&update); err != nil {
		s.requests.WithLabelValues(r.Method, "400").Inc()
		http.Error(w, "invalid document", http.StatusBadRequest)
		return
	}

	doc, err := s.store.Apply(&update)
	if err != nil {
		s.requests.WithLabelValues(r.Method, "500").Inc()
		http.Error(w, "store failure", http.StatusInternalServerError)
		return
	}

	s.published.Inc()
	s.requests.WithLabelValues(r.Method, "200").Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (s *Server) authorized(r *http.Request) bool {
	if s.cfg.Secret == "" {
		return false
	}
	supplied := r.Header.Get(SecretHeader)
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(s.cfg.Secret)) == 1
}
