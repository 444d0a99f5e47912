package api

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	customMiddleware "github.com/Jeffreasy/PasswordLab/internal/api/middleware"
	"github.com/Jeffreasy/PasswordLab/internal/demo"
	"github.com/Jeffreasy/PasswordLab/internal/hashing"
)

// ServerConfig holds the HTTP-layer settings.
type ServerConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	// TrustProxyHeaders derives the client IP from X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool

	// Registerer and Gatherer back /metrics. Nil selects the prometheus defaults.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Server bundles the router with the pieces cmd/api needs to run it.
type Server struct {
	Router    *chi.Mux
	Limiter   *customMiddleware.IPRateLimiter
	Algorithm hashing.Algorithm
}

// NewServer builds the router and registers HTTP metrics on cfg.Registerer.
func NewServer(cfg ServerConfig, service *demo.Service, algorithm hashing.Algorithm) (*Server, error) {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	httpMetrics, err := customMiddleware.NewHTTPMetrics(customMiddleware.HTTPMetricsOptions{
		Registerer: cfg.Registerer,
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// 0. Only behind a proxy that overwrites the forwarding headers
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}

	// 1. Correlation ID first so every later layer can log it
	r.Use(customMiddleware.RequestID)

	// 2. Sentry (must be before panic recovery to capture panics)
	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
	})
	r.Use(sentryHandler.Handle)

	// 3. Logger, recovery, metrics
	r.Use(customMiddleware.RequestLogger)
	r.Use(customMiddleware.PanicRecovery)
	r.Use(httpMetrics.Handler)

	// 4. Browser access for the demo frontend
	r.Use(customMiddleware.CORS(cfg.AllowedOrigins))

	limiter := customMiddleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	demoHandler := NewDemoHandler(service)

	s := &Server{
		Router:    r,
		Limiter:   limiter,
		Algorithm: algorithm,
	}

	r.Get("/health", s.HealthHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Post("/step1/unsalted", demoHandler.Unsalted)
		r.Post("/step2/salted-comparison", demoHandler.SaltedComparison)
		r.Post("/step3/adaptive", demoHandler.Adaptive)
		r.Post("/step3/bcrypt", demoHandler.Adaptive)
	})

	return s, nil
}
