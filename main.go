// File: hairbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hairbook/config"
	"hairbook/cron"
	"hairbook/database"
	"hairbook/database/docstore"
	"hairbook/database/repository"
	"hairbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// openStore connects the Document Store backend named by DOC_STORE.
func openStore(ctx context.Context, logger *zap.Logger) docstore.Store {
	switch config.AppConfig.DocStore {
	case "firestore":
		client, err := database.InitFirestore()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize firestore: %v", err)
		}
		return docstore.NewFirestoreStore(client)
	case "memory":
		logger.Warn("main: using the in-memory document store, data is lost on restart")
		return docstore.NewMemoryStore()
	default:
		client, err := database.InitDB()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize mongo: %v", err)
		}
		store := docstore.NewMongoStore(client, config.AppConfig.DatabaseName)
		if err := repository.EnsureIndexes(ctx, store); err != nil {
			logger.Sugar().Fatalf("main: failed to create indexes: %v", err)
		}
		return store
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store := openStore(ctx, logger)
	defer store.Close(context.Background())

	var redisClients []*redis.Client
	var authCache *redis.Client
	if config.AppConfig.RevocationCache {
		client, err := utils.InitAuthCache()
		if err != nil {
			// The store stays authoritative for revocations.
			logger.Warn("main: revocation cache disabled", zap.Error(err))
		} else {
			authCache = client
			redisClients = append(redisClients, client)
		}
	}

	deps := appDeps{Store: store, AuthCache: authCache}
	var ratingQueue *cron.RecomputeQueue
	if config.AppConfig.RatingAsync {
		ratingQueue = cron.NewRecomputeQueue()
		defer ratingQueue.Close()
		deps.RatingQueue = ratingQueue
	}

	application, err := newApp(deps)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build services: %v", err)
	}

	if config.AppConfig.RatingAsync {
		worker := cron.InitRatingWorker(application.Rating)
		defer worker.Shutdown()
	}

	utils.StartHealthMonitor(ctx, store, redisClients, 30*time.Second)

	router := application.Router()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
