package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/venueops/weather-pipeline/internal/venue"
)

const (
	defaultDBHost         = "localhost"
	defaultDBPort         = 5432
	defaultDBName         = "weather"
	defaultDBUser         = "weather_admin"
	defaultDBSSLMode      = "require"
	defaultPort           = 8080
	defaultRequestTimeout = 30 * time.Second
)

// Config holds environment-driven settings for the pipeline service. It is
// built once at startup and passed into constructors; nothing else reads the
// environment.
type Config struct {
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	Port           int
	ArchiveURL     string
	RequestTimeout time.Duration

	VenueOverrides map[string]venue.Coordinates
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		DBHost:         defaultDBHost,
		DBPort:         defaultDBPort,
		DBName:         defaultDBName,
		DBUser:         defaultDBUser,
		DBSSLMode:      defaultDBSSLMode,
		Port:           defaultPort,
		RequestTimeout: defaultRequestTimeout,
	}

	if v := strings.TrimSpace(os.Getenv("DB_HOST")); v != "" {
		cfg.DBHost = v
	}
	if v := strings.TrimSpace(os.Getenv("DB_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid DB_PORT: %s", v)
		}
		cfg.DBPort = port
	}
	if v := strings.TrimSpace(os.Getenv("DB_NAME")); v != "" {
		cfg.DBName = v
	}
	if v := strings.TrimSpace(os.Getenv("DB_USER")); v != "" {
		cfg.DBUser = v
	}
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	if v := strings.TrimSpace(os.Getenv("DB_SSLMODE")); v != "" {
		cfg.DBSSLMode = v
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", v)
		}
		cfg.Port = port
	}

	cfg.ArchiveURL = strings.TrimSpace(os.Getenv("ARCHIVE_URL"))

	if v := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	overrides, err := venue.ParseOverrides(os.Getenv("VENUE_COORDS"))
	if err != nil {
		return cfg, fmt.Errorf("invalid VENUE_COORDS: %w", err)
	}
	cfg.VenueOverrides = overrides

	return cfg, nil
}

// DatabaseURL renders the connection parameters as a postgres URL.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		if c.DBPassword != "" {
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		} else {
			u.User = url.User(c.DBUser)
		}
	}

	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
