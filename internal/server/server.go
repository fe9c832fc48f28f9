// Package server exposes the scraper over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/forbxy/tvmeta/internal/apperrors"
	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/ids"
	"github.com/forbxy/tvmeta/internal/scraper"
)

// Server serves the scrape API.
type Server struct {
	cfg     *config.Config
	scraper *scraper.Scraper
	router  chi.Router
}

// New creates the Server and mounts its routes.
func New(cfg *config.Config, s *scraper.Scraper) *Server {
	srv := &Server{cfg: cfg, scraper: s}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/resolve", srv.handleResolve)
		r.Get("/media-id", srv.handleMediaID)
		r.Get("/search", srv.handleSearch)
		r.Get("/shows/{id}", srv.handleShow)
		r.Get("/shows/{id}/seasons/{season}/episodes/{episode}", srv.handleEpisode)
	})

	srv.router = r
	return srv
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the API server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logger := config.GetLogger()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Address, s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", httpServer.Addr).Msg("API server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// handleResolve scans an NFO body for a show identifier and named-season
// overrides. The body may be in any character encoding.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	text, err := ids.NormalizeText(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	writeJSON(w, http.StatusOK, s.scraper.Resolve(r.Context(), text))
}

// handleMediaID parses a free-form ID token like "tt0944947" or
// "tmdb/1399" without any remote lookup.
func (s *Server) handleMediaID(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing token parameter")
		return
	}

	mediaID := ids.ParseMediaID(token)
	if mediaID == nil {
		writeError(w, http.StatusNotFound, "unrecognized media ID")
		return
	}
	writeJSON(w, http.StatusOK, mediaID)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	item, err := s.scraper.GetShow(r.Context(),
		chi.URLParam(r, "id"),
		r.URL.Query().Get("grouping"),
		r.URL.Query().Get("full") != "false")
	if err != nil {
		writeScrapeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleEpisode(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid season number")
		return
	}
	episode, err := strconv.Atoi(chi.URLParam(r, "episode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid episode number")
		return
	}

	item, err := s.scraper.GetEpisode(r.Context(),
		chi.URLParam(r, "id"), season, episode,
		r.URL.Query().Get("grouping"),
		r.URL.Query().Get("full") != "false")
	if err != nil {
		writeScrapeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter")
		return
	}
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}

	items, err := s.scraper.Search(r.Context(), query, year)
	if err != nil {
		writeScrapeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

func writeScrapeError(w http.ResponseWriter, err error) {
	if errors.Is(err, &apperrors.ErrNotFound{}) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// requestLogger logs one line per request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger := config.GetLogger()
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}
