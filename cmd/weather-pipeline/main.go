package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/venueops/weather-pipeline/internal/config"
	"github.com/venueops/weather-pipeline/internal/db"
	"github.com/venueops/weather-pipeline/internal/httpapi"
	"github.com/venueops/weather-pipeline/internal/openmeteo"
	"github.com/venueops/weather-pipeline/internal/pipeline"
	"github.com/venueops/weather-pipeline/internal/venue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("db connection error: %v", err)
	}
	defer pool.Close()

	client := openmeteo.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.ArchiveURL)
	runner := pipeline.NewRunner(client, db.NewLoader(pool), venue.NewStaticResolver(cfg.VenueOverrides))

	srv := httpapi.New(cfg, runner)
	log.Printf("weather pipeline listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
