package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/satisfaction-feedback/internal/adapters/database"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	dbclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/database"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
)

// Weighted towards positive answers, roughly what a reception kiosk sees.
var levelWeights = []struct {
	level  entities.SatisfactionLevel
	weight int
}{
	{entities.SatisfactionVerySatisfied, 55},
	{entities.SatisfactionSatisfied, 30},
	{entities.SatisfactionDissatisfied, 15},
}

func main() {
	var (
		days   int
		perDay int
	)
	flag.IntVar(&days, "days", 30, "Number of past days to fill, today included")
	flag.IntVar(&perDay, "per-day", 40, "Average entries per day")
	flag.Parse()
	if days < 1 {
		days = 1
	}
	if perDay < 1 {
		perDay = 1
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-seed", cfg.Log.Env, cfg.Log.Level)

	loc, err := cfg.Locale.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve time zone")
	}
	locale := entities.LocaleFor(cfg.Locale.Language)

	client, err := dbclient.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer client.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, clearing feedback before seeding")
		if _, err := client.DB().ExecContext(ctx, "DELETE FROM "+dbclient.FeedbackTable); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset feedback table")
		}
	}

	repo := database.NewFeedbackAdapter(client)
	today := time.Now().In(loc)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(days - 1))

	var created, failed int
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		n := perDay/2 + rand.IntN(perDay+1)

		// Opening hours 08:00 to 18:00, in chronological order
		offsets := make([]int, n)
		for i := range offsets {
			offsets[i] = rand.IntN(10 * 60 * 60)
		}
		slices.Sort(offsets)

		for _, off := range offsets {
			ts := day.Add(8*time.Hour + time.Duration(off)*time.Second)
			if ts.After(today) {
				break
			}
			entry := &entities.FeedbackEntry{
				SatisfactionLevel: pickLevel(),
				Date:              ts.Format(entities.DateLayout),
				Time:              ts.Format(entities.TimeLayout),
				Weekday:           locale.WeekdayName(ts),
				CreatedAt:         ts,
			}
			if err := repo.Create(ctx, entry); err != nil {
				failed++
				log.Warn().Err(err).Str("date", entry.Date).Msg("Failed to create feedback")
				continue
			}
			created++
		}
	}

	log.Info().
		Int("days", days).
		Int("created", created).
		Int("failed", failed).
		Msg("Seeding completed")
}

func pickLevel() entities.SatisfactionLevel {
	total := 0
	for _, w := range levelWeights {
		total += w.weight
	}
	n := rand.IntN(total)
	for _, w := range levelWeights {
		if n < w.weight {
			return w.level
		}
		n -= w.weight
	}
	return entities.SatisfactionSatisfied
}
