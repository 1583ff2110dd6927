// issue-token signs a bearer token for a user that already exists in the
// database, for calling the API locally without the identity provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go-inventory-pos/internal/config"
	"go-inventory-pos/internal/logger"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/database"
	"go-inventory-pos/pkg/jwt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	userID := flag.String("user", "", "user id (the identity provider id)")
	email := flag.String("email", "", "email, used to create the user when -create is set")
	name := flag.String("name", "", "display name, used with -create")
	create := flag.Bool("create", false, "create the user if it does not exist")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_TTL")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.LoadEnv()

	zapLog, err := logger.New(cfg.Logger, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLog.Sync()

	if *userID == "" {
		zapLog.Fatal("-user is required")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, zapLog)
	if err != nil {
		zapLog.Fatal("failed to connect database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 3. Find User
	users := repository.NewUserRepo(db)
	user, err := users.FindByID(ctx, *userID)
	if err != nil {
		if !*create {
			zapLog.Fatal("user not found", zap.String("user_id", *userID), zap.Error(err))
		}
		if err := database.Migrate(db); err != nil {
			zapLog.Fatal("failed to migrate database", zap.Error(err))
		}
		user = &model.User{ID: *userID, Email: *email, Name: *name}
		if err := users.Create(ctx, user); err != nil {
			zapLog.Fatal("failed to create user", zap.Error(err))
		}
		zapLog.Info("user created", zap.String("user_id", user.ID))
	}

	// 4. Sign
	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}
	token, err := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, lifetime).GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		zapLog.Fatal("failed to sign token", zap.Error(err))
	}

	fmt.Println(token)
}
