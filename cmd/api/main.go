package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Jeffreasy/PasswordLab/internal/api"
	"github.com/Jeffreasy/PasswordLab/internal/config"
	"github.com/Jeffreasy/PasswordLab/internal/demo"
	"github.com/Jeffreasy/PasswordLab/internal/hashing"
	"github.com/Jeffreasy/PasswordLab/pkg/logger"
)

func main() {
	// 0. Load Configuration
	// Missing .env files are fine; production relies on real env vars.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg := config.Load()

	// 1. Setup Global Logger
	log := logger.Setup(cfg.Env, cfg.LogLevel)
	log.Info("application_startup", "env", cfg.Env)

	// 2. Setup Sentry
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 1.0,
			Environment:      cfg.Env,
		})
		if err != nil {
			log.Error("sentry_init_failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			log.Info("sentry_initialized")
		}
	} else {
		log.Warn("sentry_dsn_missing", "details", "skipping_init")
	}

	// 3. Build Hashing Engines
	// Out-of-range cost or salt settings are fatal at startup.
	if cfg.SaltLength > hashing.MaxSaltLength {
		log.Error("salt_length_invalid", "salt_length", cfg.SaltLength, "max", hashing.MaxSaltLength)
		os.Exit(1)
	}
	fast := hashing.NewFastHasher(hashing.NewSaltGenerator(cfg.SaltLength))

	algorithm, err := hashing.ParseAlgorithm(cfg.AdaptiveAlgorithm)
	if err != nil {
		log.Error("adaptive_algorithm_invalid", "error", err)
		os.Exit(1)
	}
	adaptive, err := hashing.NewAdaptiveHasher(hashing.AdaptiveOptions{
		Algorithm: algorithm,
		Cost:      cfg.BcryptCost,
		Argon2:    cfg.Argon2,
	})
	if err != nil {
		log.Error("adaptive_hasher_invalid", "error", err)
		os.Exit(1)
	}
	log.Info("hashing_configured",
		"salt_length", fast.Salts().Length(),
		"algorithm", algorithm,
		"bcrypt_cost", cfg.BcryptCost,
	)

	// 4. Demo Service
	demoMetrics, err := demo.NewMetrics(prometheus.DefaultRegisterer, "")
	if err != nil {
		log.Error("metrics_register_failed", "error", err)
		os.Exit(1)
	}
	service := demo.NewService(fast, adaptive, hashing.NewDictionaryAttack(nil),
		demo.WithMetrics(demoMetrics),
		demo.WithLogger(log),
	)

	if cfg.IsProduction() && slices.Contains(cfg.AllowedOrigins, "*") {
		log.Warn("cors_wildcard_in_production", "details", "set CORS_ALLOWED_ORIGINS")
	}

	// 5. Setup HTTP Server
	server, err := api.NewServer(api.ServerConfig{
		AllowedOrigins:    cfg.AllowedOrigins,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	}, service, algorithm)
	if err != nil {
		log.Error("server_init_failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go server.Limiter.Run(ctx, time.Minute)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		// Adaptive hashing at high cost can take seconds.
		WriteTimeout: 30 * time.Second,
	}

	// 6. Start Server with Graceful Shutdown
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("server_listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	// 7. Block for Shutdown Signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Error("server_startup_failed", "error", err)
		os.Exit(1)

	case sig := <-shutdown:
		log.Info("shutdown_signal_received", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful_shutdown_failed", "error", err)
			if err := srv.Close(); err != nil {
				log.Error("server_force_close_failed", "error", err)
			}
		}

		stop()
		log.Info("server_shutdown_complete")
	}
}
