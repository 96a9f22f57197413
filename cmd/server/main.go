package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/annihlj/AutomationFit/internal/cache"
	"github.com/annihlj/AutomationFit/internal/config"
	"github.com/annihlj/AutomationFit/internal/repository"
	"github.com/annihlj/AutomationFit/internal/service"
	"github.com/annihlj/AutomationFit/internal/transport/rest"
	"github.com/annihlj/AutomationFit/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// WebSocket hub for the live comparison feed
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Repositories
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	answerRepo := repository.NewAnswerRepo(mongoClient, db)
	resultRepo := repository.NewResultRepo(mongoClient, db)

	// Caches
	graphCache := cache.NewGraphCache(rdb)
	comparisonCache := cache.NewComparisonCache(rdb)

	// Services
	questionnaireSvc := service.NewQuestionnaireService(questionnaireRepo, graphCache)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, answerRepo, resultRepo, questionnaireSvc, comparisonCache)
	reportSvc := service.NewReportService(assessmentRepo, answerRepo, resultRepo, questionnaireSvc, comparisonCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)

	container := &rest.Container{
		QuestionnaireService: questionnaireSvc,
		AssessmentService:    assessmentSvc,
		ReportService:        reportSvc,
		WSHub:                wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  GET  /v1/questionnaire")
		log.Println("  POST/GET /v1/assessments")
		log.Println("  GET/PUT /v1/assessments/{id}")
		log.Println("  POST /v1/assessments/{id}/recompute")
		log.Println("  POST /v1/assessments/{id}/resolve")
		log.Println("  GET  /v1/assessments/{id}/metrics")
		log.Println("  GET  /v1/export/csv")
		log.Println("  WS   /v1/ws/comparison")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
