package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("UPSTREAM_API_URL", "https://sentry.example.com/api/0")
	t.Setenv("PORT", "9000")
	t.Setenv("UPSTREAM_TIMEOUT_SEC", "3")
	t.Setenv("UPSTREAM_RPS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "similar_trace", cfg.DBName)
	assert.Equal(t, "events", cfg.EventsCollection)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 20.0, cfg.UpstreamRPS, "invalid values fall back to the default")
	assert.Nil(t, cfg.RelativePeriods)
}

func validConfig() Config {
	return Config{
		Port:             "8080",
		MongoURI:         "mongodb://localhost:27017",
		DBName:           "similar_trace",
		EventsCollection: "events",
		UpstreamURL:      "https://sentry.example.com/api/0",
		UpstreamTimeout:  time.Second,
		UpstreamBurst:    1,
		ReadTimeout:      time.Second,
		WriteTimeout:     time.Second,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(validConfig()))

	cfg := validConfig()
	cfg.UpstreamURL = "not a url"
	cfg.Port = "http"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UpstreamURL")
	assert.Contains(t, err.Error(), "Port")

	cfg = validConfig()
	cfg.UpstreamBurst = 0
	assert.Error(t, Validate(cfg))
}

func TestLoadPeriods(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.yaml")
	require.NoError(t, os.WriteFile(path, []byte("relativePeriods:\n  2w: Last 2 weeks\n  6h: Last 6 hours\n"), 0o600))

	periods, err := LoadPeriods(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2w": "Last 2 weeks", "6h": "Last 6 hours"}, periods)
}

func TestLoadPeriodsErrors(t *testing.T) {
	periods, err := LoadPeriods("")
	require.NoError(t, err)
	assert.Nil(t, periods)

	_, err = LoadPeriods(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "periods.yaml")
	require.NoError(t, os.WriteFile(path, []byte("relativePeriods:\n  2w: \"\"\n"), 0o600))
	_, err = LoadPeriods(path)
	assert.Error(t, err)
}
