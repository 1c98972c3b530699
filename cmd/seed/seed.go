package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/contentcraft/contentcraft-api/internal/store/model"
	"github.com/contentcraft/contentcraft-api/internal/store/sqlite"
	"github.com/google/uuid"
)

// Seeds a handful of request logs so the history and stats endpoints have
// something to show during development.
func main() {
	repo, err := sqlite.NewSQLiteStorage("contentcraft.db")
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	ctx := context.Background()

	providers := []string{"gemini", "cloudflare", "openrouter"}
	operations := []string{"enhance", "generate", "query"}

	for i := 0; i < 30; i++ {
		entry := &model.RequestLog{
			ID:            uuid.New().String(),
			Provider:      providers[rand.Intn(len(providers))],
			Operation:     operations[rand.Intn(len(operations))],
			Model:         "gemini-2.5-pro",
			StatusCode:    200,
			PromptChars:   500 + rand.Intn(2000),
			ResponseChars: 1000 + rand.Intn(4000),
			LatencyMS:     int64(800 + rand.Intn(4000)),
			CreatedAt:     time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour),
		}
		if i%7 == 0 {
			entry.StatusCode = 502
			entry.ErrorCode = "provider_error"
		}
		if err := repo.Requests().Log(ctx, entry); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println("Seeded 30 request logs into contentcraft.db")
}
