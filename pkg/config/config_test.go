package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "data/cities-full.json", cfg.Data.CitiesPath)
	assert.Equal(t, "data/listings-db.json", cfg.Data.ListingsPath)
	assert.Equal(t, "/images/placeholder-listing.jpg", cfg.Ingest.PlaceholderImage)
	assert.Equal(t, "laser", cfg.Ingest.DefaultServiceID)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LISTINGS_DB_PATH", "/srv/data/listings.json")
	t.Setenv("DEFAULT_SERVICE_ID", "cryo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/srv/data/listings.json", cfg.Data.ListingsPath)
	assert.Equal(t, "cryo", cfg.Ingest.DefaultServiceID)
}
