// Package server exposes detail pages over HTTP as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/filter"
	"github.com/s0up4200/cineparadis/images"
	"github.com/s0up4200/cineparadis/tmdb"
)

const shutdownTimeout = 10 * time.Second

// Server serves detail pages backed by a TMDB fetcher
type Server struct {
	fetcher      tmdb.Fetcher
	filters      *filter.Manager
	images       *images.Builder
	site         detail.SiteInfo
	recorder     detail.Recorder
	fetchTimeout time.Duration
	rateLimit    RateLimitConfig
	logger       zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithImages sets the artwork URL builder
func WithImages(b *images.Builder) Option {
	return func(s *Server) {
		s.images = b
	}
}

// WithSite sets the site identity used in page metadata
func WithSite(site detail.SiteInfo) Option {
	return func(s *Server) {
		s.site = site
	}
}

// WithRecorder sets the coordinator activity recorder
func WithRecorder(r detail.Recorder) Option {
	return func(s *Server) {
		s.recorder = r
	}
}

// WithFetchTimeout bounds each composite fetch
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.fetchTimeout = d
	}
}

// WithRateLimit enables per-client rate limiting on the API routes
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(s *Server) {
		s.rateLimit = cfg
	}
}

// New creates a server. filters may be nil, in which case filtering is
// unavailable and every recommendation is returned.
func New(fetcher tmdb.Fetcher, filters *filter.Manager, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		fetcher: fetcher,
		filters: filters,
		images:  images.Default(),
		logger:  logger.With().Str("component", "server").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.filters == nil {
		s.filters = filter.NewManager()
	}
	return s
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request served")
	}))
	r.Use(Metrics())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimit(s.rateLimit))
		r.Get("/presets", s.handlePresets)
		r.Get("/{kind}/{id}", s.handleDetail)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Detail: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
