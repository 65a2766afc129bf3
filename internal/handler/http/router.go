package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bazaarly/sellerconsole/internal/auth"
	"github.com/bazaarly/sellerconsole/internal/event"
	"github.com/bazaarly/sellerconsole/internal/session"
	"github.com/bazaarly/sellerconsole/pkg/health"
	"github.com/bazaarly/sellerconsole/pkg/middleware"
)

// RouterConfig carries the collaborators and tunables the router needs.
type RouterConfig struct {
	Auth        *auth.Service
	Sessions    *session.Manager
	Events      *event.Producer
	Health      *health.Handler
	EnrichRPS   int
	EnrichBurst int
	Logger      *slog.Logger
}

// NewRouter creates a chi router with all seller console routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("seller-console"))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(cfg.Auth, cfg.Sessions, cfg.Logger)
	draftHandler := NewDraftHandler(cfg.Sessions, cfg.Logger)
	publishHandler := NewPublishHandler(cfg.Sessions, cfg.Logger)
	shopHandler := NewShopHandler(cfg.Sessions, cfg.Events, cfg.Logger)

	validate := middleware.TokenValidator(func(token string) (*middleware.Claims, error) {
		claims, err := cfg.Auth.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{SellerID: claims.SellerID, Email: claims.Email}, nil
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)

		// Everything else needs a seller token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(validate))

			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/logout", authHandler.Logout)

			// Working draft
			r.Get("/draft", draftHandler.Get)
			r.Patch("/draft", draftHandler.Update)
			r.Post("/draft/media", draftHandler.UploadMedia)
			r.Delete("/draft/media/{index}", draftHandler.RemoveMedia)
			r.Post("/draft/audio", draftHandler.UploadAudio)
			r.Post("/draft/save", draftHandler.Save)
			r.Post("/draft/reset", draftHandler.Reset)
			r.Get("/drafts", draftHandler.ListSaved)

			// Enrichment is the one unboundedly-latent external call;
			// rate-limit it per seller.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.EnrichRPS, cfg.EnrichBurst, cfg.Logger))
				r.Post("/draft/analyze", draftHandler.Analyze)
			})

			// Channel selection and publish
			r.Get("/channels", publishHandler.Channels)
			r.Get("/publish", publishHandler.State)
			r.Post("/publish/open", publishHandler.Open)
			r.Post("/publish/close", publishHandler.Close)
			r.Post("/publish/toggle/{id}", publishHandler.Toggle)
			r.Post("/publish/confirm", publishHandler.Confirm)

			// Inventory and orders
			r.Get("/inventory", shopHandler.Inventory)
			r.Get("/inventory/summary", shopHandler.Summary)
			r.Post("/inventory/{name}/toggle-stock", shopHandler.ToggleStock)
			r.Get("/orders", shopHandler.Orders)
			r.Get("/orders/detail", shopHandler.OpenedOrder)
			r.Get("/orders/{id}", shopHandler.Order)
			r.Post("/orders/{id}/open", shopHandler.OpenOrder)
			r.Post("/orders/back", shopHandler.Back)
		})
	})

	return r
}
