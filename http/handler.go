package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pacbucket/pacbucket"
)

// Store is the read side of the object store the handler serves from.
type Store interface {
	Stat(ctx context.Context, key string) (pacbucket.ObjectInfo, error)
	ReadRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	CORS CORSConfig
}

// cacheControl is sent on every successful response. Package files are
// immutable once uploaded, so an hour of shared caching is safe.
const cacheControl = "public, max-age=3600"

// Handler provides the HTTP handlers serving repository objects.
type Handler struct {
	config HandlerConfig
	store  Store
}

// NewHandler creates a new Handler with the given configuration and store.
func NewHandler(config *HandlerConfig, store Store) *Handler {
	return &Handler{
		config: *config,
		store:  store,
	}
}

// Router returns an http.Handler serving GET for every path.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Get("/*", h.handleGet)

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	// The URL path arrives percent-decoded; stripping the leading slash
	// yields the storage key. An empty or otherwise bad key simply misses
	// the store.
	key := strings.TrimPrefix(r.URL.Path, "/")

	info, err := h.store.Stat(r.Context(), key)
	if err != nil {
		// Store failures are indistinguishable from missing objects at
		// this boundary, but operators still want to see them.
		if !errors.Is(err, pacbucket.ErrNotFound) {
			slog.Error("object lookup failed", "key", key, "err", err)
		}
		WriteNotFound(w)
		return
	}

	rng, ok := pacbucket.ParseRange(r.Header.Get("Range"))
	if !ok {
		h.serveFull(w, r, key, info)
		return
	}

	start, end, err := rng.Resolve(info.Size)
	if err != nil {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", info.Size))
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	body, err := h.store.ReadRange(r.Context(), key, start, end)
	if err != nil {
		slog.Error("range read failed", "key", key, "start", start, "end", end, "err", err)
		WriteNotFound(w)
		return
	}
	defer func() { _ = body.Close() }()

	setObjectHeaders(w, info.ContentType)
	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, info.Size))
	w.Header().Set("Content-Length", strconv.FormatInt(end-start+1, 10))
	w.WriteHeader(http.StatusPartialContent)

	_, _ = io.Copy(w, body)
}

func (h *Handler) serveFull(w http.ResponseWriter, r *http.Request, key string, info pacbucket.ObjectInfo) {
	if info.Size == 0 {
		setObjectHeaders(w, info.ContentType)
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusOK)
		return
	}

	body, err := h.store.ReadRange(r.Context(), key, 0, info.Size-1)
	if err != nil {
		slog.Error("object read failed", "key", key, "err", err)
		WriteNotFound(w)
		return
	}
	defer func() { _ = body.Close() }()

	setObjectHeaders(w, info.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.WriteHeader(http.StatusOK)

	_, _ = io.Copy(w, body)
}

func setObjectHeaders(w http.ResponseWriter, contentType string) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Accept-Ranges", "bytes")
}
