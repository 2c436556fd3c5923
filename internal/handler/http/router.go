package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/health"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/middleware"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/service"
)

// RouterConfig holds the dependencies and settings for the HTTP router.
type RouterConfig struct {
	WishlistService *service.WishlistService
	TokenIssuer     TokenIssuer
	TokenValidator  middleware.TokenValidator
	HealthHandler   *health.Handler
	CORS            middleware.CORSConfig
	Logger          *slog.Logger
}

// NewRouter creates a chi router with all wishlist service routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("wishlist"))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	sessionHandler := NewSessionHandler(cfg.TokenIssuer, cfg.Logger)
	wishlistHandler := NewWishlistHandler(cfg.WishlistService, cfg.Logger)

	// Session issuance is unauthenticated; everything under /wishlist
	// requires the bearer token it returns.
	r.Post("/api/v1/sessions", sessionHandler.Create)

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenValidator))

		r.Get("/", wishlistHandler.List)
		r.Post("/", wishlistHandler.Mutate)
		r.Delete("/", wishlistHandler.Clear)
	})

	return r
}
