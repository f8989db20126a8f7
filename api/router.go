package api

import (
	"context"
	"net/http"

	"cardRevealServer/game"
	"cardRevealServer/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// HealthChecker is implemented by optional backing stores.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the components the HTTP surface exposes.
type Deps struct {
	Engine  *game.Engine
	WS      *ws.Handler
	Metrics http.Handler
	// Settings is nil when Redis is not configured.
	Settings    HealthChecker
	AllowOrigin string
}

// NewRouter mounts the websocket, REST and metrics endpoints.
func NewRouter(d Deps) chi.Router {
	h := &handlers{engine: d.Engine, ws: d.WS, settings: d.Settings}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// CORS middleware
	origin := d.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Handle("/ws", d.WS)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/state", h.state)
		r.Get("/paytable", h.payTable)
		r.Get("/rtp", h.rtp)
		r.Post("/action/{action}", h.action)
	})

	return r
}
