// generate es el batch driver: una corrida recorre todas las mascotas y
// genera los eventos de cuidado pendientes. Pensado para cron.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"pet-care-scheduler/internal/adapters/catalog"
	pg "pet-care-scheduler/internal/adapters/storage/postgres"
	"pet-care-scheduler/internal/domain/careplan"
	"pet-care-scheduler/internal/platform/logger"
)

func main() {
	log := logger.NewFromEnv()

	data, err := catalog.LoadFromEnv()
	if err != nil {
		log.Error("invalid care catalog, refusing to run", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Error("DB_DSN is required", nil)
		os.Exit(1)
	}

	db, err := pg.Open(dsn)
	if err != nil {
		log.Error("cannot open database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	petsRepo := pg.NewPetsRepo(db)
	eventsRepo := pg.NewCareEventsRepo(db)

	gen := careplan.NewGenerator(data.Catalog, data.Classifier, petsRepo, eventsRepo, log)
	runner := careplan.NewRunner(gen, petsRepo, log, careplan.RunnerOptions{
		Concurrency:   envInt("GENERATE_CONCURRENCY", 4),
		RatePerMinute: envInt("GENERATE_RATE_PER_MINUTE", 0),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting care event generation run", map[string]any{
		"catalog_version": data.Catalog.Version(),
	})

	sum, err := runner.Run(ctx)
	if err != nil {
		log.Error("generation run aborted", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if sum.Failed > 0 {
		os.Exit(2)
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
