package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	api "bikeshop-backend/internal/api/http"
	"bikeshop-backend/internal/config"
	"bikeshop-backend/internal/logger"
	"bikeshop-backend/internal/repository/postgres"
	"bikeshop-backend/internal/security"
	"bikeshop-backend/internal/service"
	"bikeshop-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Bikeshop Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Photo Storage
	backend, err := storage.NewLocalBackend(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize photo storage", "error", err)
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.Users(), tokenManager)
	userSvc := service.NewUserService(store.Users())
	bikeSvc := service.NewBikeService(store.Bikes())
	partSvc := service.NewPartService(store.Parts())
	txSvc := service.NewTransactionService(store)
	photoSvc := service.NewPhotoService(store.Bikes(), store.Parts(), backend)

	// Initialize Router
	router := api.NewRouter(api.Handlers{
		Auth:        api.NewAuthHandler(authSvc),
		Bike:        api.NewBikeHandler(bikeSvc),
		Part:        api.NewPartHandler(partSvc),
		Transaction: api.NewTransactionHandler(txSvc),
		User:        api.NewUserHandler(userSvc),
		Photo:       api.NewPhotoHandler(photoSvc, backend),
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
