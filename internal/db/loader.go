package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/venueops/weather-pipeline/internal/model"
)

// Beginner is the slice of the pool the loader needs. *pgxpool.Pool and the
// test mock both satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// insertSQL is built once from the shared field vocabulary so the column
// list can never drift from the transformer's output fields.
var insertSQL = buildInsertSQL()

func buildInsertSQL() string {
	columns := append([]string{"venue_id", "timestamp"}, model.HourlyFields...)
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO weather_data (%s) VALUES (%s)",
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}

// Loader appends weather observations to the weather_data table.
type Loader struct {
	db Beginner
}

func NewLoader(db Beginner) *Loader {
	return &Loader{db: db}
}

// Load writes one row per observation inside a single transaction and
// returns the number of rows written. The batch is all-or-nothing: any
// failure rolls back every row of the call. Rows are appended as-is, with no
// conflict handling; re-loading the same range duplicates them.
func (l *Loader) Load(ctx context.Context, obs []model.Observation, venueID string) (int, error) {
	if len(obs) == 0 {
		return 0, nil
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op once committed

	batch := &pgx.Batch{}
	for _, o := range obs {
		args := make([]any, 0, 2+len(model.HourlyFields))
		args = append(args, venueID, o.Timestamp)
		for _, field := range model.HourlyFields {
			args = append(args, o.Values[field])
		}
		batch.Queue(insertSQL, args...)
	}

	res := tx.SendBatch(ctx, batch)
	for range obs {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return 0, fmt.Errorf("insert observation: %w", err)
		}
	}
	if err := res.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return len(obs), nil
}
