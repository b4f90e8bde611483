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

	"feedbackpro/internal/cache"
	"feedbackpro/internal/config"
	"feedbackpro/internal/repository"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest"
	"feedbackpro/internal/transport/ws"
)

// @title FeedbackPro API
// @version 1.0
// @description Survey building, distribution, response collection and analytics
// @host localhost:8080
// @BasePath /v1
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

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
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
	accountRepo := repository.NewAccountRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	// Initialize caches
	summaryCache := cache.NewSummaryCache(rdb)
	countCache := cache.NewResponseCountCache(rdb)
	shareCache := cache.NewShareCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(accountRepo, cfg.JWTSecret)
	surveySvc := service.NewSurveyService(surveyRepo)
	builderSvc := service.NewBuilderService(surveyRepo)
	analyticsSvc := service.NewAnalyticsService(surveyRepo, responseRepo, summaryCache)
	analyzer := service.NewPlaceholderAnalyzer()
	responseSvc := service.NewResponseService(responseRepo, surveyRepo, countCache, summaryCache, analyzer)

	emailSender := service.NewHTTPEmailSender(cfg.EmailAPIURL, cfg.EmailAPIKey)
	smsSender := service.NewHTTPSMSSender(cfg.SMSAPIURL, cfg.SMSAPIKey)
	notificationSvc := service.NewNotificationService(emailSender, smsSender)
	distributionSvc := service.NewDistributionService(surveyRepo, shareCache, notificationSvc, cfg.PublicBaseURL, cfg.QRAPIBaseURL)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	responseSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:         authSvc,
		SurveyService:       surveySvc,
		BuilderService:      builderSvc,
		ResponseService:     responseSvc,
		AnalyticsService:    analyticsSvc,
		DistributionService: distributionSvc,
		CountCache:          countCache,
		WSHub:               wsHub,
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
		log.Println("  POST /v1/auth/register")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/surveys")
		log.Println("  GET  /v1/analytics/summary")
		log.Println("  POST /v1/surveys/{surveyId}/share")
		log.Println("  GET  /v1/public/{token}")
		log.Println("  POST /v1/public/{token}/responses")
		log.Println("  WS   /v1/ws/dashboard")

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
