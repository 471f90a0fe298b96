package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quillhub/quill/internal/api"
	"github.com/quillhub/quill/internal/config"
	"github.com/quillhub/quill/internal/loaders"
	"github.com/quillhub/quill/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Environment); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer utils.Zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := loaders.NewPostgresClient(ctx, cfg.DatabaseURL)
	if err != nil {
		utils.Zlog.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		utils.Zlog.Fatal("Failed to ensure schema", zap.Error(err))
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.RegisterRoutes(router, db, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		utils.Zlog.Info("Server listening",
			zap.String("port", cfg.ServerPort),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	utils.Zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
}
