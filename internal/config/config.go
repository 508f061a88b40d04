// Package config collects environment configuration for the server and jobs.
package config

import (
	"fmt"
	"os"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port        string
	DatabaseURL string
}

// Load reads configuration from the environment. DATABASE_URL wins; otherwise
// the URL is composed from the POSTGRES_* variables. An empty DatabaseURL
// selects the in-memory fallback store.
func Load() Config {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresURL()
	}
	return cfg
}

// Storage reports which backend this configuration selects.
func (c Config) Storage() string {
	if c.DatabaseURL == "" {
		return StorageMemory
	}
	return StoragePostgres
}

func postgresURL() string {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
