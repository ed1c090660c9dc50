package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/satisfaction-feedback/internal/adapters/cache"
	"github.com/zatekoja/satisfaction-feedback/internal/adapters/database"
	"github.com/zatekoja/satisfaction-feedback/internal/adapters/identity"
	"github.com/zatekoja/satisfaction-feedback/internal/adapters/mirror"
	"github.com/zatekoja/satisfaction-feedback/internal/api/handlers"
	"github.com/zatekoja/satisfaction-feedback/internal/api/routes"
	"github.com/zatekoja/satisfaction-feedback/internal/application/services"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
	dbclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/database"
	firebaseclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/firebase"
	redisclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/redis"
	typesenseclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Log.Env, cfg.Log.Level)

	log.Info().
		Str("service", cfg.OTEL.ServiceName).
		Str("version", cfg.OTEL.ServiceVersion).
		Str("env", cfg.Log.Env).
		Msg("Starting feedback server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	loc, err := cfg.Locale.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve time zone")
	}
	clock := services.NewClock(time.Now, loc)
	locale := entities.LocaleFor(cfg.Locale.Language)

	// Record store
	db, err := dbclient.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database client")
	}
	defer db.Close()
	feedbackRepo := database.NewFeedbackAdapter(db)

	// Redis backs sessions and/or the mirror when either asks for it
	var redisClient *redisclient.Client
	if cfg.Session.Backend == "redis" || cfg.Mirror.Backend == "redis" {
		redisClient, err = redisclient.NewClient(&cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis client")
		}
		defer redisClient.Close()
	}

	// Firebase backs admin sign-in and/or the Firestore mirror
	var fb *firebaseclient.Client
	if cfg.Admin.IdentityProvider == "firebase" || cfg.Mirror.Backend == "firestore" {
		fb, err = firebaseclient.NewClient(ctx, &cfg.Firebase, cfg.Mirror.Backend == "firestore")
		if err != nil {
			log.Warn().Err(err).Msg("Firebase unavailable; admin sign-in and Firestore mirroring disabled")
		} else {
			defer fb.Close()
		}
	}

	var sessionCache providers.CacheProvider
	if redisClient != nil && cfg.Session.Backend == "redis" {
		sessionCache = cache.NewRedisAdapter(redisClient, "feedback:")
	} else {
		sessionCache = cache.NewMemoryAdapter(10 * time.Minute)
	}

	mirrorStore, err := openMirror(ctx, cfg, fb, redisClient)
	if err != nil {
		log.Warn().Err(err).Str("backend", cfg.Mirror.Backend).Msg("Mirror unavailable; feedback will be stored locally only")
	}
	notifier := services.NewMirrorNotifier(mirrorStore, cfg.Mirror.Timeout, metrics)

	var verifier providers.IdentityVerifier
	switch cfg.Admin.IdentityProvider {
	case "firebase":
		if fb != nil {
			verifier = identity.NewFirebaseVerifier(fb.Auth())
		}
	case "google":
		if cfg.Google.ClientID != "" {
			verifier = identity.NewGoogleVerifier(cfg.Google.ClientID)
		}
	}
	if verifier == nil {
		log.Warn().Str("provider", cfg.Admin.IdentityProvider).Msg("No identity verifier configured; admin login is disabled")
	}

	// Services
	feedbackService := services.NewFeedbackService(feedbackRepo, notifier, clock, locale, metrics)
	reportingService := services.NewReportingService(feedbackRepo, clock)
	statusService := services.NewStatusService(feedbackRepo, db, notifier, clock)
	exportService := services.NewExportService(feedbackRepo, clock, locale, metrics)
	sessionService := services.NewSessionService(
		sessionCache,
		verifier,
		services.SessionPolicy{
			AllowedEmails: cfg.Admin.Emails,
			AllowedDomain: cfg.Admin.EmailDomain,
			TTL:           cfg.Session.TTL,
		},
		loginConfig(cfg),
		clock,
	)

	// Handlers
	router := routes.NewRouter(
		handlers.NewFeedbackHandler(feedbackService),
		handlers.NewStatusHandler(statusService),
		handlers.NewAdminAuthHandler(sessionService, handlers.CookieSettings{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		}),
		handlers.NewReportHandler(reportingService),
		handlers.NewExportHandler(exportService),
		routes.Options{
			Sessions:       sessionService,
			CookieName:     cfg.Session.CookieName,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Metrics:        metrics,
		},
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	// Let in-flight mirror writes finish before the clients close
	notifier.Wait()

	log.Info().Msg("Server stopped")
}

// openMirror connects the configured mirror backend. A nil store means
// mirroring is off.
func openMirror(
	ctx context.Context,
	cfg *config.Config,
	fb *firebaseclient.Client,
	redisClient *redisclient.Client,
) (providers.MirrorStore, error) {
	var clients mirror.Clients

	switch cfg.Mirror.Backend {
	case "none":
		return nil, nil
	case "firestore":
		if fb != nil {
			clients.Firestore = fb.Firestore()
		}
	case "typesense":
		ts, err := typesenseclient.NewClient(&cfg.Typesense)
		if err != nil {
			return nil, err
		}
		if err := ts.InitFeedbackSchema(ctx, cfg.Mirror.Collection); err != nil {
			return nil, err
		}
		clients.Typesense = ts
	case "redis":
		if redisClient != nil {
			clients.Redis = redisClient.Client()
		}
	}

	return mirror.Select(cfg.Mirror.Backend, cfg.Mirror.Collection, clients)
}

func loginConfig(cfg *config.Config) entities.LoginConfig {
	web := cfg.Firebase.Web
	lc := entities.LoginConfig{
		Provider: cfg.Admin.IdentityProvider,
		Firebase: entities.IdentityWebConfig{
			APIKey:            web.APIKey,
			AuthDomain:        web.AuthDomain,
			ProjectID:         web.ProjectID,
			StorageBucket:     web.StorageBucket,
			MessagingSenderID: web.MessagingSenderID,
			AppID:             web.AppID,
			MeasurementID:     web.MeasurementID,
		},
	}
	if cfg.Admin.IdentityProvider == "google" {
		lc.GoogleClientID = cfg.Google.ClientID
	}
	return lc
}
