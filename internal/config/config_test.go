package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, StorageMemory, cfg.Storage())
}

func TestLoadDatabaseURLWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/polls?sslmode=disable")
	t.Setenv("POSTGRES_HOST", "ignored")

	cfg := Load()
	assert.Equal(t, "postgres://u:p@db:5432/polls?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, StoragePostgres, cfg.Storage())
}

func TestLoadComposedPostgresURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_USER", "user")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "polls")

	cfg := Load()
	assert.Equal(t, "postgres://user:secret@db:5432/polls?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, StoragePostgres, cfg.Storage())
}
