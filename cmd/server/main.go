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

	"hydropoints/internal/app"
	"hydropoints/internal/cache"
	"hydropoints/internal/config"
	"hydropoints/internal/repository"
	"hydropoints/internal/service"
	"hydropoints/internal/transport/rest"
	"hydropoints/internal/transport/ws"
	"hydropoints/internal/trust"
)

// @title HydroPoints Trust API
// @version 1.0
// @description Behavioral trust scoring for the HydroPoints rewards app
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	thresholds := trust.DefaultThresholds()
	thresholds.WindowDays = cfg.WindowDays
	log.Printf("Trust engine: thresholds %s, %d-day window, staleness %dh",
		trust.ThresholdsVersion, thresholds.WindowDays, thresholds.StalenessHours)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	logRepo := repository.NewLogRepo(db)
	scanRepo := repository.NewScanRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	scoreRepo := repository.NewScoreRepo(db)
	sweepRepo := repository.NewSweepRepo(db)

	// Initialize cache
	scoreCache := cache.NewScoreCache(rdb, time.Duration(thresholds.StalenessHours)*time.Hour)

	// Initialize services
	engine := trust.NewEngine(thresholds, nil)
	authSvc := service.NewAuthService()
	userSvc := service.NewUserService(profileRepo, authSvc)
	logSvc := service.NewLogService(logRepo, scanRepo, scoreCache, thresholds.WindowDays)
	trustSvc := service.NewTrustService(logRepo, scanRepo, profileRepo, scoreRepo, scoreCache, engine)
	sweepSvc := service.NewSweepService(logRepo, sweepRepo, trustSvc, thresholds.WindowDays, cfg.SweepWorkers)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	trustSvc.SetBroadcaster(wsHub)
	sweepSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:  authSvc,
		UserService:  userSvc,
		LogService:   logSvc,
		TrustService: trustSvc,
		SweepService: sweepSvc,
		WSHub:        wsHub,
		App: &app.App{
			LogRepo:     logRepo,
			ScanRepo:    scanRepo,
			ProfileRepo: profileRepo,
			ScoreRepo:   scoreRepo,
			SweepRepo:   sweepRepo,
			ScoreCache:  scoreCache,
		},
		WindowDays: thresholds.WindowDays,
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
		log.Println("  POST /v1/users")
		log.Println("  POST/GET /v1/users/{id}/logs")
		log.Println("  POST /v1/users/{id}/scans")
		log.Println("  GET  /v1/users/{id}/trust")
		log.Println("  POST /v1/users/{id}/trust/recompute")
		log.Println("  GET  /v1/users/{id}/trust/governance")
		log.Println("  POST /v1/admin/sweep")
		log.Println("  WS  /v1/ws/users/{id}")
		log.Println("  WS  /v1/ws/admin")

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
