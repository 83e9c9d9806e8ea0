// Package api exposes the session core to the presentation layer as a JSON
// HTTP API. Every response is a read-only snapshot; clients replace what they
// hold wholesale on each change.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/crimegrid/patrolboard/internal/ingest"
	"github.com/crimegrid/patrolboard/internal/session"
)

// Options tunes the HTTP boundary.
type Options struct {
	MaxUploadBytes int64      // hard cap on upload body size
	UploadRate     rate.Limit // uploads per second
	UploadBurst    int
	AllowedOrigins []string
}

const defaultMaxUploadBytes = 32 << 20

// Server binds a session holder to HTTP handlers.
type Server struct {
	holder        *session.Holder
	uploadLimiter *rate.Limiter
	maxUpload     int64
	origins       []string
}

// NewServer wires a server around the given session holder.
func NewServer(holder *session.Holder, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.UploadRate <= 0 {
		opts.UploadRate = rate.Limit(1)
	}
	if opts.UploadBurst <= 0 {
		opts.UploadBurst = 3
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		holder:        holder,
		uploadLimiter: rate.NewLimiter(opts.UploadRate, opts.UploadBurst),
		maxUpload:     opts.MaxUploadBytes,
		origins:       opts.AllowedOrigins,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/incidents", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, s.holder.Incidents())
		})
		r.Get("/units", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, s.holder.Units())
		})
		r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, s.holder.Stats())
		})
		r.Get("/insights", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, s.holder.Insights())
		})
		r.Get("/bounds", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, s.holder.Bounds())
		})
		r.Get("/meta", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, s.holder.Meta())
		})

		r.Post("/upload", s.handleUpload)
		r.Post("/reset", func(w http.ResponseWriter, _ *http.Request) {
			s.holder.Reset()
			respondJSON(w, http.StatusOK, s.holder.Meta())
		})
	})

	return r
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.uploadLimiter.Allow() {
		respondError(w, http.StatusTooManyRequests, "too many uploads, slow down")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds the %d byte limit", tooLarge.Limit))
			return
		}
		respondError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close() //nolint:errcheck

	if err := s.holder.Upload(r.Context(), header.Filename, file); err != nil {
		switch {
		case eris.Is(err, session.ErrUploadInFlight):
			respondError(w, http.StatusConflict, "an upload is already in progress")
		case eris.Is(err, ingest.ErrMalformedFile):
			respondError(w, http.StatusBadRequest, "file is not valid CSV or XLSX")
		case eris.Is(err, ingest.ErrEmptyDataset):
			respondError(w, http.StatusBadRequest, "no rows with valid coordinates found")
		default:
			zap.L().Error("api: upload failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, s.holder.Meta())
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
