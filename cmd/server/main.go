package main

import (
	"log"

	"github.com/conftrack/paper-review-api/internal/config"
	"github.com/conftrack/paper-review-api/internal/database"
	"github.com/conftrack/paper-review-api/internal/handlers"
	"github.com/conftrack/paper-review-api/internal/logger"
	"github.com/conftrack/paper-review-api/internal/repository"
	"github.com/conftrack/paper-review-api/internal/router"
	"github.com/conftrack/paper-review-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	zapLogger.Info("database connection established", zap.String("driver", cfg.DBDriver))

	if err := database.Migrate(); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.SeedData {
		if err := database.Seed(database.GetDB(), zapLogger); err != nil {
			zapLogger.Fatal("failed to seed data", zap.Error(err))
		}
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tagRepo := repository.NewTagRepository(db)
	paperRepo := repository.NewPaperRepository(db)

	authService := services.NewAuthService(userRepo, roleRepo, zapLogger)
	paperService := services.NewPaperService(paperRepo, tagRepo, userRepo, zapLogger)

	authHandler := handlers.NewAuthHandler(authService)
	paperHandler := handlers.NewPaperHandler(paperService, authService)

	r := router.New(cfg, zapLogger, authHandler, paperHandler)

	addr := ":" + cfg.Port
	zapLogger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}
