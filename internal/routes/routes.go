package routes

import (
	"capsule_backend/internal/handlers"
	"capsule_backend/internal/logger"
	"capsule_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "capsule_backend/docs"
)

// RegisterRoutes wires all HTTP routes onto the engine.
func RegisterRoutes(ginRouter *gin.Engine, uploadHandler *handlers.UploadHandler) {
	uploadHandler.RegisterRoutes(ginRouter)

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ginRouter.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Resource not found."))
	})

	logger.Info("Routes registered", "swagger", "/swagger/index.html")
}
