package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/quickpoll/api/internal/adapters/handler/http"
	"github.com/quickpoll/api/internal/adapters/repository/memory"
	"github.com/quickpoll/api/internal/adapters/repository/postgres"
	"github.com/quickpoll/api/internal/config"
	"github.com/quickpoll/api/internal/core/ports"
	"github.com/quickpoll/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}
	cfg := config.Load()

	store, cleanup, err := newStore(cfg)
	if err != nil {
		slog.Error("store initialization failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	service := services.NewPollService(store)
	pollHandler := handler.NewPollHandler(service)
	router := handler.NewHandler(pollHandler, cfg.Storage())

	server := &stdhttp.Server{Addr: ":" + cfg.Port, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "port", cfg.Port, "storage", cfg.Storage())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

// newStore selects the backend once at startup: postgres when a database is
// configured, otherwise the non-durable in-memory fallback.
func newStore(cfg config.Config) (ports.PollStore, func(), error) {
	if cfg.Storage() == config.StorageMemory {
		slog.Warn("no database configured, using in-memory storage; polls will not survive a restart")
		return memory.NewStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	return postgres.NewStore(db), func() { db.Close() }, nil
}
