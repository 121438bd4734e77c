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

	rootcfg "mindpath/config"
	"mindpath/internal/cache"
	"mindpath/internal/config"
	"mindpath/internal/llm"
	"mindpath/internal/model"
	"mindpath/internal/repository"
	"mindpath/internal/service"
	"mindpath/internal/transport/rest"
	"mindpath/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := rootcfg.Load()

	// Load LLM config and log model settings
	llmConfig := config.DefaultLLMConfig()
	log.Printf("LLM Config:")
	log.Printf("  Leaf:       %s", llmConfig.Kind(model.KindLeaf).Model)
	log.Printf("  Group:      %s", llmConfig.Kind(model.KindGroupSynthesis).Model)
	log.Printf("  Overall:    %s", llmConfig.Kind(model.KindOverallSynthesis).Model)
	log.Printf("  Comparison: %s", llmConfig.Kind(model.KindComparisonSynthesis).Model)
	if llmConfig.IsEnabled() {
		log.Println("  API Key:    configured")
	} else {
		log.Println("  API Key:    NOT SET (every request will use the fallback generator)")
	}

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

	db := mongoClient.Database("mindpath")

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	fallbackRepo := repository.NewFallbackLogRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// Initialize caches
	insightCache := cache.NewInsightCache(rdb)

	// Initialize the insight pipeline
	catalog := model.DefaultCatalog()
	gateway := llm.NewOpenAIGateway(llmConfig.APIKey, llmConfig.BaseURL, time.Duration(llmConfig.TimeoutMS)*time.Millisecond)
	pipeline := service.NewTieredInsightPipeline(gateway, llmConfig, fallbackRepo)
	synthesizer := service.NewHierarchicalSynthesizer(pipeline, catalog)

	// Initialize services
	authSvc := service.NewAuthService()
	assessmentSvc := service.NewAssessmentService(catalog, pipeline, synthesizer, insightCache, reportRepo)
	monitorSvc := service.NewMonitorService(fallbackRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		MonitorService:    monitorSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/auth/student-token")
		log.Println("  POST /v1/assessments/{toolId}/students/{studentId}/items/{itemKey}")
		log.Println("  POST /v1/assessments/{toolId}/students/{studentId}/submit")
		log.Println("  GET  /v1/assessments/{toolId}/students/{studentId}/report")
		log.Println("  POST /v1/assessments/{toolId}/compare")
		log.Println("  GET  /v1/ops/fallbacks")
		log.Println("  WS   /v1/ws/assessments/{toolId}/students/{studentId}")
		log.Println("  WS   /v1/ws/monitor")

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
