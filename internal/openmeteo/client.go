package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/venueops/weather-pipeline/internal/model"
)

// DefaultBaseURL is the Open-Meteo historical archive endpoint.
const DefaultBaseURL = "https://archive-api.open-meteo.com/v1/archive"

const dateLayout = "2006-01-02"

// StatusError reports a non-2xx response from the archive API. The run is
// aborted, never retried.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("archive API returned %s", e.Status)
}

// ArchiveResponse models the archive API payload. Top-level fields other
// than hourly are ignored.
type ArchiveResponse struct {
	Hourly HourlySeries `json:"hourly"`
}

// HourlySeries holds the parallel hourly arrays: a shared time axis plus one
// value series per measurement field, aligned by index to the time axis.
type HourlySeries struct {
	Time   []string
	Series map[string][]*float64
}

// UnmarshalJSON splits the hourly object into the time axis and the value
// series. JSON nulls decode to nil entries.
func (h *HourlySeries) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if msg, ok := raw["time"]; ok {
		if err := json.Unmarshal(msg, &h.Time); err != nil {
			return fmt.Errorf("decode time axis: %w", err)
		}
	}

	h.Series = make(map[string][]*float64, len(raw))
	for name, msg := range raw {
		if name == "time" {
			continue
		}
		var vals []*float64
		if err := json.Unmarshal(msg, &vals); err != nil {
			return fmt.Errorf("decode %s series: %w", name, err)
		}
		h.Series[name] = vals
	}

	return nil
}

// Client fetches historical hourly observations from the archive API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client. An empty baseURL selects the public archive
// endpoint.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// FetchHourly requests every field in model.HourlyFields for a coordinate
// pair over an inclusive date range, with timestamps interpreted in UTC.
func (c *Client) FetchHourly(ctx context.Context, lat, lon float64, start, end time.Time) (ArchiveResponse, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("start_date", start.Format(dateLayout))
	values.Set("end_date", end.Format(dateLayout))
	values.Set("hourly", strings.Join(model.HourlyFields, ","))
	values.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return ArchiveResponse{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ArchiveResponse{}, fmt.Errorf("request hourly archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ArchiveResponse{}, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var payload ArchiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ArchiveResponse{}, fmt.Errorf("decode payload: %w", err)
	}

	return payload, nil
}
