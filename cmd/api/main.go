package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go-inventory-pos/internal/config"
	"go-inventory-pos/internal/logger"
	"go-inventory-pos/internal/router"
	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/database"
	"go-inventory-pos/pkg/jwt"
	"go-inventory-pos/pkg/webhook"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.LoadEnv()

	zapLog, err := logger.New(cfg.Logger, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLog.Sync()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, zapLog)
	if err != nil {
		zapLog.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLog.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zapLog)
	go wsHub.Run(ctx)

	verifier, err := webhook.NewVerifier(cfg.Webhook.SigningSecret, cfg.Webhook.Tolerance)
	if err != nil {
		zapLog.Fatal("invalid WEBHOOK_SIGNING_SECRET", zap.Error(err))
	}

	// 4. Setup Fiber
	app := router.NewApp(router.Deps{
		DB:           db,
		Log:          zapLog,
		Hub:          wsHub,
		Tokens:       jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		Verifier:     verifier,
		AllowOrigins: cfg.Server.AllowOrigin,
		RequestLog:   true,
	})

	// 5. Graceful Shutdown
	go func() {
		zapLog.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.AppEnv))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zapLog.Panic("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	zapLog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zapLog.Fatal("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	zapLog.Info("server exited")
}
