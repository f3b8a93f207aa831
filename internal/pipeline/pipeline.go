package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/venueops/weather-pipeline/internal/model"
	"github.com/venueops/weather-pipeline/internal/openmeteo"
)

// Extractor fetches the raw hourly archive for a coordinate pair over an
// inclusive date range.
type Extractor interface {
	FetchHourly(ctx context.Context, lat, lon float64, start, end time.Time) (openmeteo.ArchiveResponse, error)
}

// Loader persists observations tagged with a venue id and reports how many
// rows were written.
type Loader interface {
	Load(ctx context.Context, obs []model.Observation, venueID string) (int, error)
}

// Resolver maps a venue id to the coordinate pair used for extraction.
type Resolver interface {
	Resolve(venueID string) (lat, lon float64, err error)
}

// Runner executes the extract-transform-load sequence for one request.
type Runner struct {
	extractor Extractor
	loader    Loader
	resolver  Resolver
}

func NewRunner(extractor Extractor, loader Loader, resolver Resolver) *Runner {
	return &Runner{extractor: extractor, loader: loader, resolver: resolver}
}

// Run fetches, reshapes and persists hourly weather for one venue and date
// range, returning the number of rows written. Each call is one-shot and
// stateless; the first failing stage aborts the run and its error propagates
// unchanged.
func (r *Runner) Run(ctx context.Context, venueID string, start, end time.Time) (int, error) {
	lat, lon, err := r.resolver.Resolve(venueID)
	if err != nil {
		return 0, err
	}

	resp, err := r.extractor.FetchHourly(ctx, lat, lon, start, end)
	if err != nil {
		return 0, err
	}

	rows := Transform(resp)
	log.Printf("transformed %d observations for venue=%s", len(rows), venueID)

	count, err := r.loader.Load(ctx, rows, venueID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
