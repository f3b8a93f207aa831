package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venueops/weather-pipeline/internal/model"
	"github.com/venueops/weather-pipeline/internal/openmeteo"
	"github.com/venueops/weather-pipeline/internal/venue"
)

type stubExtractor struct {
	resp openmeteo.ArchiveResponse
	err  error

	gotLat, gotLon   float64
	gotStart, gotEnd time.Time
}

func (s *stubExtractor) FetchHourly(_ context.Context, lat, lon float64, start, end time.Time) (openmeteo.ArchiveResponse, error) {
	s.gotLat, s.gotLon = lat, lon
	s.gotStart, s.gotEnd = start, end
	return s.resp, s.err
}

type stubLoader struct {
	err   error
	calls int

	gotVenue string
	gotRows  []model.Observation
}

func (s *stubLoader) Load(_ context.Context, obs []model.Observation, venueID string) (int, error) {
	s.calls++
	s.gotVenue = venueID
	s.gotRows = obs
	if s.err != nil {
		return 0, s.err
	}
	return len(obs), nil
}

func archiveFixture() openmeteo.ArchiveResponse {
	return openmeteo.ArchiveResponse{
		Hourly: openmeteo.HourlySeries{
			Time: []string{"2024-01-01T00:00:00Z", "2024-01-01T01:00:00Z"},
			Series: map[string][]*float64{
				"temperature_2m": {f(5.0), f(6.0)},
			},
		},
	}
}

func TestRunnerHappyPath(t *testing.T) {
	extractor := &stubExtractor{resp: archiveFixture()}
	loader := &stubLoader{}
	runner := NewRunner(extractor, loader, venue.NewStaticResolver(nil))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	count, err := runner.Run(context.Background(), "v1", start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, venue.DefaultLatitude, extractor.gotLat)
	assert.Equal(t, venue.DefaultLongitude, extractor.gotLon)
	assert.Equal(t, start, extractor.gotStart)
	assert.Equal(t, end, extractor.gotEnd)

	assert.Equal(t, "v1", loader.gotVenue)
	require.Len(t, loader.gotRows, 2)
	assert.Equal(t, "2024-01-01T00:00:00Z", loader.gotRows[0].Timestamp)
}

func TestRunnerUsesVenueOverrides(t *testing.T) {
	extractor := &stubExtractor{resp: archiveFixture()}
	resolver := venue.NewStaticResolver(map[string]venue.Coordinates{
		"v2": {Lat: 51.5, Lon: -0.12},
	})
	runner := NewRunner(extractor, &stubLoader{}, resolver)

	_, err := runner.Run(context.Background(), "v2", time.Now(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 51.5, extractor.gotLat)
	assert.Equal(t, -0.12, extractor.gotLon)
}

func TestRunnerExtractorFailureAbortsBeforeLoad(t *testing.T) {
	fetchErr := &openmeteo.StatusError{Code: 503, Status: "503 Service Unavailable"}
	loader := &stubLoader{}
	runner := NewRunner(&stubExtractor{err: fetchErr}, loader, venue.NewStaticResolver(nil))

	count, err := runner.Run(context.Background(), "v1", time.Now(), time.Now())
	require.Error(t, err)
	assert.Zero(t, count)

	var statusErr *openmeteo.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 503, statusErr.Code)
	assert.Zero(t, loader.calls, "loader must not run after a fetch failure")
}

func TestRunnerLoaderFailurePropagates(t *testing.T) {
	loadErr := errors.New("commit transaction: connection reset")
	runner := NewRunner(&stubExtractor{resp: archiveFixture()}, &stubLoader{err: loadErr}, venue.NewStaticResolver(nil))

	count, err := runner.Run(context.Background(), "v1", time.Now(), time.Now())
	assert.Zero(t, count)
	assert.ErrorIs(t, err, loadErr)
}
