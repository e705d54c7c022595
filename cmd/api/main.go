package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docuchat-ai/docuchat/internal/app"
	"github.com/docuchat-ai/docuchat/internal/config"
	"github.com/docuchat-ai/docuchat/internal/database"
	"github.com/docuchat-ai/docuchat/internal/server"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"github.com/gin-gonic/gin"
)

// Entry point for the API server.
// Wires configuration, storage, model clients and routes,
// then serves until interrupted.
func main() {
	// fetch cfg
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// load global logger
	logger := Logger.New(cfg.Debug)
	logger.Info("Logger initialized")
	// fetch database connection
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// handle migrations
	database.MigrateDB(db)
	// redis backs the pending-embeddings queue
	rc, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	application, err := app.NewApp(cfg, logger, db, rc)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}

	// compose router
	router := gin.New()
	server.InitializeRoutes(router, application.GetServerDependencies())

	// background embedding poller, stopped on shutdown
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	go application.BackfillPoller.Start(pollerCtx)

	// listen with graceful exit
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router.Handler(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server exiting %v", err)
		}
	}()
	logger.Infof("Listening on :%d", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopPoller()

	// 5 secs then cancel
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown err %v", err)
	}
	logger.Info("Shutdown system")
}
