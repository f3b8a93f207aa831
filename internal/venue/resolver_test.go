package venue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackToDefaultPair(t *testing.T) {
	resolver := NewStaticResolver(nil)

	lat, lon, err := resolver.Resolve("unknown-venue")
	require.NoError(t, err)
	assert.Equal(t, DefaultLatitude, lat)
	assert.Equal(t, DefaultLongitude, lon)
}

func TestResolveUsesOverride(t *testing.T) {
	resolver := NewStaticResolver(map[string]Coordinates{
		"v1": {Lat: 51.5, Lon: -0.12},
	})

	lat, lon, err := resolver.Resolve("v1")
	require.NoError(t, err)
	assert.Equal(t, 51.5, lat)
	assert.Equal(t, -0.12, lon)

	lat, _, err = resolver.Resolve("v2")
	require.NoError(t, err)
	assert.Equal(t, DefaultLatitude, lat)
}

func TestParseOverrides(t *testing.T) {
	overrides, err := ParseOverrides("v1=51.5,-0.12;v2=48.85,2.35")
	require.NoError(t, err)
	assert.Equal(t, map[string]Coordinates{
		"v1": {Lat: 51.5, Lon: -0.12},
		"v2": {Lat: 48.85, Lon: 2.35},
	}, overrides)
}

func TestParseOverridesEmpty(t *testing.T) {
	overrides, err := ParseOverrides("")
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestParseOverridesErrors(t *testing.T) {
	for _, input := range []string{"v1", "v1=51.5", "v1=abc,2.0", "v1=1.0,xyz"} {
		_, err := ParseOverrides(input)
		assert.Error(t, err, input)
	}
}
