package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/annihlj/AutomationFit/internal/cache"
	"github.com/annihlj/AutomationFit/internal/config"
	"github.com/annihlj/AutomationFit/internal/repository"
	"github.com/annihlj/AutomationFit/internal/seed"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	repo := repository.NewQuestionnaireRepo(db)

	seeded, err := repo.HasData(ctx)
	if err != nil {
		log.Fatalf("Failed to check existing data: %v", err)
	}
	if seeded {
		fmt.Println("Questionnaire data already present, nothing to do")
		return
	}

	data := seed.Data()
	if err := repo.SeedGraph(ctx, data); err != nil {
		log.Fatalf("Failed to seed questionnaire: %v", err)
	}

	// Drop any cached graph snapshot for this version. Best effort: a cold
	// or unreachable cache is not a seeding failure.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := cache.NewGraphCache(rdb).Delete(ctx, data.Version.ID); err != nil {
		log.Printf("Warning: could not invalidate graph cache: %v", err)
	}

	fmt.Printf("Seeded questionnaire '%s' (version %s) with %d dimensions, %d questions, %d option scores\n",
		data.Version.Name, data.Version.Version, len(data.Dimensions), len(data.Questions), len(data.Scores))
}
