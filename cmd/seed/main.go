package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/quickpoll/api/internal/adapters/repository/postgres"
	"github.com/quickpoll/api/internal/config"
	"github.com/quickpoll/api/internal/core/ports"
	"github.com/quickpoll/api/internal/core/services"
	"github.com/quickpoll/api/internal/identity"
)

// Development seeding job: creates a demo poll with a couple of votes through
// the regular service path, so the dedup and aggregation logic is exercised
// exactly as in production.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("a database configuration is required (DATABASE_URL or POSTGRES_* variables)")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	service := services.NewPollService(postgres.NewStore(db))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Seeding demo poll...")

	poll, err := service.Create(ctx, ports.CreatePollInput{
		Question: "Where should we go for lunch?",
		Options:  []string{"Pizza", "Tacos", "Sushi"},
	})
	if err != nil {
		log.Fatalf("Error creating demo poll: %v", err)
	}

	voters := []struct {
		fingerprint string
		address     string
		option      int
	}{
		{"seed-voter-1", "10.0.0.1", 0},
		{"seed-voter-2", "10.0.0.2", 1},
		{"seed-voter-3", "10.0.0.3", 0},
	}
	for _, v := range voters {
		_, err := service.CastVote(ctx, ports.CastVoteInput{
			Slug:        poll.Slug,
			OptionID:    poll.Options[v.option].ID,
			Fingerprint: v.fingerprint,
			IPHash:      identity.Hash(v.address),
		})
		if err != nil {
			log.Fatalf("Error casting seed vote: %v", err)
		}
	}

	fmt.Printf("Seeded poll %s with %d votes: /api/polls/%s\n", poll.ID, len(voters), poll.Slug)
}
