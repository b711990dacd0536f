package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotels_api/internal/adapters/catalog"
	"hotels_api/internal/adapters/observability"
	"hotels_api/internal/app"
	"hotels_api/internal/shared"
	"hotels_api/internal/storage/sqlstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.MustLoad()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.CatalogBase).
		Int("workers", cfg.Workers).
		Int("properties", len(cfg.CatalogPropertyIDs)).
		Msg("ingestor starting")

	if len(cfg.CatalogPropertyIDs) == 0 {
		log.Fatal().Msg("CATALOG_PROPERTY_IDS is empty")
	}

	db, err := sqlstore.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if cfg.AutoMigrate {
		if err := sqlstore.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("auto-migrate failed")
		}
	}

	client, err := catalog.New(cfg.CatalogBase, cfg.CatalogKey, cfg.CatalogRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog client")
	}
	ing := app.NewIngestionService(client, sqlstore.New(db))

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, id := range cfg.CatalogPropertyIDs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("ingestion interrupted")
			break
		}

		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := ing.IngestHotel(ctx, hotelID); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", hotelID).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Int64("id", hotelID).Msg("ingest ok")
		}(id)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Error().Int64("failed", n).Msg("ingestion completed with failures")
		os.Exit(1)
	}
	log.Info().Msg("ingestion completed")
}
