package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/satisfaction-feedback/internal/adapters/database"
	"github.com/zatekoja/satisfaction-feedback/internal/adapters/mirror"
	"github.com/zatekoja/satisfaction-feedback/internal/application/services"
	dbclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/database"
	firebaseclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/firebase"
	redisclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/redis"
	typesenseclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
)

// backfill replays stored feedback into the configured mirror backend,
// for example after the mirror was unreachable for a while.
func main() {
	var (
		workers    int
		maxRetries int
		sinceID    int64
	)

	flag.IntVar(&workers, "workers", 3, "Number of concurrent workers")
	flag.IntVar(&maxRetries, "max-retries", 3, "Max retries per entry")
	flag.Int64Var(&sinceID, "since-id", 0, "Only mirror entries with an id greater than this")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-backfill", cfg.Log.Env, cfg.Log.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := dbclient.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	var clients mirror.Clients
	switch cfg.Mirror.Backend {
	case "firestore":
		fb, err := firebaseclient.NewClient(ctx, &cfg.Firebase, true)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Firebase")
		}
		defer fb.Close()
		clients.Firestore = fb.Firestore()
	case "typesense":
		ts, err := typesenseclient.NewClient(&cfg.Typesense)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Typesense")
		}
		if err := ts.InitFeedbackSchema(ctx, cfg.Mirror.Collection); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure Typesense collection")
		}
		clients.Typesense = ts
	case "redis":
		rc, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis")
		}
		defer rc.Close()
		clients.Redis = rc.Client()
	default:
		log.Fatal().Str("backend", cfg.Mirror.Backend).Msg("MIRROR_BACKEND must name a mirror to backfill")
	}

	store, err := mirror.Select(cfg.Mirror.Backend, cfg.Mirror.Collection, clients)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build mirror store")
	}

	notifier := services.NewMirrorNotifier(store, cfg.Mirror.Timeout, nil)
	svc := services.NewMirrorBackfillService(database.NewFeedbackAdapter(db), notifier, workers, maxRetries)

	start := time.Now()
	log.Info().
		Int("workers", workers).
		Int64("since_id", sinceID).
		Str("backend", cfg.Mirror.Backend).
		Msg("Starting mirror backfill")

	summary, err := svc.BackfillSince(ctx, sinceID)
	if err != nil {
		log.Error().Err(err).Msg("Backfill failed")
	}

	if summary != nil {
		log.Info().
			Dur("elapsed", time.Since(start)).
			Int("total", summary.TotalProcessed).
			Int("success", summary.SuccessCount).
			Int("failed", summary.FailureCount).
			Msg("Backfill complete")
	}
}
