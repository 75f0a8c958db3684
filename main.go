package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-management/internal/config"
	"employee-management/internal/db"
	"employee-management/internal/handlers"
	"employee-management/internal/logging"
	"employee-management/internal/middleware"
	"employee-management/internal/repository"
	"employee-management/internal/router"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	repo, store, client := openStore(cfg, logger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(cfg.Origins()))
	router.Setup(r, repo, store, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("closing MongoDB client failed", "error", err)
		}
	}
}

// openStore returns the repository and health pinger for the configured
// driver. The MongoDB ping runs in the background; listening does not wait.
func openStore(cfg config.AppConfig, logger *slog.Logger) (repository.EmployeeRepository, handlers.Pinger, *mongo.Client) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on exit")
		return repository.NewMemoryRepository(), nil, nil
	}

	client, err := db.NewClient(cfg.MongoURI, cfg.ConnectTimeout)
	if err != nil {
		logger.Error("MongoDB connection error", "error", err)
		os.Exit(1)
	}
	repo := repository.NewMongoRepository(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection))
	db.Probe(client, cfg.ConnectTimeout, logger, repo.EnsureIndexes)
	return repo, db.Pinger{Client: client}, client
}
