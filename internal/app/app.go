package app

import (
	"context"
	"fmt"

	"capsule_backend/internal/config"
	"capsule_backend/internal/handlers"
	"capsule_backend/internal/logger"
	"capsule_backend/internal/middleware"
	"capsule_backend/internal/routes"
	"capsule_backend/internal/services"
	"capsule_backend/internal/storage"
	"capsule_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// Run loads configuration, wires the service graph and starts the server.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if err := validator.New().Validate(cfg); err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}

	ginRouter := SetupRouter(cfg)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the storage backend, the upload service and the gin
// engine with all routes registered.
func SetupRouter(cfg *config.Config) *gin.Engine {
	store, err := storage.NewStore(context.Background(), storage.Config{
		Type:               cfg.Storage.Type,
		BasePath:           cfg.Storage.BasePath,
		BaseURL:            cfg.Storage.BaseURL,
		ServiceAccountJSON: cfg.Drive.ServiceAccountJSON,
		ServiceAccountFile: cfg.Drive.ServiceAccountFile,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)
	if cfg.Storage.Type == "local" {
		logger.Warn("Local storage backend in use; uploads stay on this machine")
	}

	uploadService := services.NewUploadService(store, services.UploadConfig{
		FolderID:    cfg.Drive.FolderID,
		MaxFileMB:   cfg.Upload.MaxFileMB,
		MaxFiles:    cfg.Upload.MaxFiles,
		CallTimeout: cfg.Drive.Timeout,
	})
	logger.Debug("Upload service configured",
		"max_file_mb", cfg.Upload.MaxFileMB,
		"max_files", cfg.Upload.MaxFiles,
		"call_timeout", cfg.Drive.Timeout,
	)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.Upload.MaxFileMB)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, uploadHandler)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
	)

	// Parts beyond this spill to temp files; the service still reads each
	// part fully before any remote call.
	ginRouter.MaxMultipartMemory = 64 << 20

	ginRouter.LoadHTMLGlob("web/templates/*")

	return ginRouter
}
