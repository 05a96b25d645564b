// Package api exposes the chat endpoint and read-only catalog routes over
// HTTP.
package api

import (
	"net/http"

	mw "elyubot/internal/api/middleware"
	"elyubot/internal/catalog"
	"elyubot/internal/chat"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options tunes the router's middleware.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires all routes and middleware.
func NewRouter(cat *catalog.Catalog, svc *chat.Service, logger *zap.Logger, opts Options) *chi.Mux {
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 20
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 10
	}

	h := newHandler(cat, svc, logger)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	r.Get("/health", h.health)

	r.Post("/chat", h.chat)

	r.Get("/products", h.products)
	r.Get("/products/municipality/{name}", h.productsByTown)
	r.Get("/stores", h.stores)
	r.Get("/municipalities", h.municipalities)
	r.Get("/highlights", h.highlights)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = encodeJSON(w, v)
}
