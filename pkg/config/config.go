package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env    string
	Data   DataConfig
	Ingest IngestConfig
}

// DataConfig locates the static datasets the core reads and writes
type DataConfig struct {
	CitiesPath   string
	ListingsPath string
}

// IngestConfig holds ingestion pipeline defaults
type IngestConfig struct {
	PlaceholderImage string
	DefaultServiceID string
}

// Load loads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Data: DataConfig{
			CitiesPath:   getEnv("CITIES_DATASET_PATH", "data/cities-full.json"),
			ListingsPath: getEnv("LISTINGS_DB_PATH", "data/listings-db.json"),
		},
		Ingest: IngestConfig{
			PlaceholderImage: getEnv("PLACEHOLDER_IMAGE", "/images/placeholder-listing.jpg"),
			DefaultServiceID: getEnv("DEFAULT_SERVICE_ID", "laser"),
		},
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
