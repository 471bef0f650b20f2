package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)

	categories, err := cfg.Tracker.ReactionCategories()
	require.NoError(t, err)
	require.Len(t, categories, 8)
	assert.Equal(t, "Thumbs Up", categories[0].Name)
	assert.Equal(t, "👍", categories[0].Emoji)

	loc, err := cfg.Tracker.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", loc.String())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REACTION_CATEGORIES", "⭐:Star, Idea")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)

	categories, err := cfg.Tracker.ReactionCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Star", categories[0].Name)
	assert.Equal(t, "Idea", categories[1].Name)
	assert.Equal(t, "", categories[1].Emoji)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"empty categories", "REACTION_CATEGORIES", " , "},
		{"duplicate categories", "REACTION_CATEGORIES", "A,A"},
		{"unknown backend", "STORE_BACKEND", "sqlite"},
		{"bad timezone", "TIMEZONE", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}

func TestLoadTracker(t *testing.T) {
	// server settings are not read
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("TIMEZONE", "Europe/Berlin")

	tracker, err := LoadTracker()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", tracker.Timezone)

	t.Setenv("REACTION_CATEGORIES", ":")
	_, err = LoadTracker()
	assert.Error(t, err)
}
