package api

import (
	"github.com/gin-gonic/gin"
	"github.com/subhamroy/case-registry/internal/auth"
	"github.com/subhamroy/case-registry/internal/cases"
	"github.com/subhamroy/case-registry/internal/config"
	"github.com/subhamroy/case-registry/internal/database"
	"github.com/subhamroy/case-registry/internal/files"
	"github.com/subhamroy/case-registry/pkg/logger"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, store *cases.Store, storage *files.Storage, tokens *auth.Manager, logger *logger.Logger, cfg *config.Config) {
	// Create handlers
	h := NewHandlers(db, store, storage, tokens, logger, cfg)

	staff := requireRoles(tokens, database.UserRoleAdmin, database.UserRoleStaff)
	adminOnly := requireRoles(tokens, database.UserRoleAdmin)

	// Uploaded blobs are served read-only.
	router.Static("/uploads", cfg.UploadDir)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", h.HealthCheck)

		// User endpoints
		users := api.Group("/users")
		{
			users.POST("/register", h.Register)
			users.POST("/login", h.Login)
		}

		// Case endpoints; the list is public for the search page
		caseRoutes := api.Group("/cases")
		{
			caseRoutes.GET("", h.ListCases)
			caseRoutes.POST("", staff, h.CreateCase)
			caseRoutes.GET("/:id", staff, h.GetCase)
			caseRoutes.PUT("/:id", staff, h.UpdateCase)
			caseRoutes.DELETE("/:id", adminOnly, h.DeleteCase)
			caseRoutes.GET("/:id/pdf", staff, h.CasePDF)

			// Per-case file endpoints
			caseRoutes.GET("/:id/files", staff, h.ListFiles)
			caseRoutes.POST("/:id/files/upload", staff, h.UploadFile)
		}

		// File deletion by file id
		api.DELETE("/files/:fileId", staff, h.DeleteFile)
	}
}
