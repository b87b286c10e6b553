/*
Package handler provides the HTTP handlers and routing setup for the Pulse server.

This file defines the main Router, applying logging, CORS, and IP-based rate
limiting middleware before delegating requests to the API and event-stream
handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/codydotio/pulse/internal/pkg/auth/jwt"
	"github.com/codydotio/pulse/internal/pkg/limiter"
	"github.com/codydotio/pulse/internal/pkg/logx"
	"github.com/codydotio/pulse/internal/pkg/resp"
)

// Per-route rate limits, in events per second with burst capacity.
const (
	PulseRate     = 0.2
	PulseBurst    = 3
	ResonateRate  = 1.0
	ResonateBurst = 5
	StreamRate    = 0.2
	StreamBurst   = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global
// and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	pulseLimiter := limiter.NewIPRateLimiter(rate.Limit(PulseRate), PulseBurst)
	resonateLimiter := limiter.NewIPRateLimiter(rate.Limit(ResonateRate), ResonateBurst)
	streamLimiter := limiter.NewIPRateLimiter(rate.Limit(StreamRate), StreamBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Pulse Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Post("/verify", HandleVerify(deps))

		api.With(pulseLimiter.Middleware).Post("/pulse", HandleCreatePulse(deps))
		api.Get("/pulse", HandleGalaxy(deps))

		api.With(resonateLimiter.Middleware).Post("/resonate", HandleResonate(deps))

		api.Get("/feed", HandleFeed(deps))
		api.Get("/user/state", HandleUserState(deps))
		api.Get("/ai/insights", HandleInsights(deps))
	})

	r.Get("/ws/events", HandleEventStream(wsUpgrader, streamLimiter, deps))

	return r
}
