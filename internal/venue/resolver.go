package venue

import (
	"fmt"
	"strconv"
	"strings"
)

// Default coordinates stand in for venue geocoding until a real resolver
// exists; every venue without an override maps here (New York City).
const (
	DefaultLatitude  = 40.71
	DefaultLongitude = -74.01
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// StaticResolver maps venue ids to coordinates from a fixed table, falling
// back to the default pair for unknown venues.
type StaticResolver struct {
	fallback  Coordinates
	overrides map[string]Coordinates
}

func NewStaticResolver(overrides map[string]Coordinates) *StaticResolver {
	return &StaticResolver{
		fallback:  Coordinates{Lat: DefaultLatitude, Lon: DefaultLongitude},
		overrides: overrides,
	}
}

// Resolve returns the coordinate pair for a venue id. Unknown venues resolve
// to the default pair rather than failing.
func (r *StaticResolver) Resolve(venueID string) (float64, float64, error) {
	if c, ok := r.overrides[venueID]; ok {
		return c.Lat, c.Lon, nil
	}
	return r.fallback.Lat, r.fallback.Lon, nil
}

// ParseOverrides parses a "venue=lat,lon;venue2=lat,lon" string, the format
// of the VENUE_COORDS environment variable. Empty input yields an empty map.
func ParseOverrides(s string) (map[string]Coordinates, error) {
	overrides := make(map[string]Coordinates)
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, pair, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid venue override %q", entry)
		}
		latStr, lonStr, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("invalid coordinate pair %q", pair)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", entry, err)
		}

		overrides[strings.TrimSpace(id)] = Coordinates{Lat: lat, Lon: lon}
	}
	return overrides, nil
}
