package model

// HourlyFields is the ordered measurement vocabulary shared by the outbound
// archive request, the transformer's lookup keys, and the loader's column
// list. Keeping all three on this one list is what keeps the external
// contract from drifting.
var HourlyFields = []string{
	"temperature_2m",
	"precipitation",
	"snowfall",
	"cloudcover",
	"windspeed_10m",
	"relative_humidity_2m",
	"apparent_temperature",
	"precipitation_probability",
	"windgusts_10m",
	"pressure_msl",
	"wind_direction",
	"weathercode",
	"rain",
	"surface_pressure",
}

// Observation is one hourly weather record: the source's ISO-8601 timestamp
// string (passed through unparsed) plus one value per HourlyFields entry.
// A nil value means the source omitted that sample and is stored as NULL.
type Observation struct {
	Timestamp string
	Values    map[string]*float64
}
