package pipeline

import (
	"github.com/venueops/weather-pipeline/internal/model"
	"github.com/venueops/weather-pipeline/internal/openmeteo"
)

// Transform reshapes the archive payload into one observation per element of
// the time axis, in source order. A field series that is missing or shorter
// than the time axis yields nil for the affected rows; an empty or absent
// time axis yields an empty slice. Never errors.
func Transform(resp openmeteo.ArchiveResponse) []model.Observation {
	hourly := resp.Hourly

	rows := make([]model.Observation, 0, len(hourly.Time))
	for i, ts := range hourly.Time {
		values := make(map[string]*float64, len(model.HourlyFields))
		for _, field := range model.HourlyFields {
			series := hourly.Series[field]
			if i < len(series) {
				values[field] = series[i]
			} else {
				values[field] = nil
			}
		}
		rows = append(rows, model.Observation{Timestamp: ts, Values: values})
	}

	return rows
}
