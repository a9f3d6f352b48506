package router

import (
	"time"

	"github.com/conftrack/paper-review-api/internal/config"
	"github.com/conftrack/paper-review-api/internal/handlers"
	"github.com/conftrack/paper-review-api/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New assembles the gin engine with CORS, request logging, and all routes.
func New(cfg *config.Config, logger *zap.Logger, authHandler *handlers.AuthHandler, paperHandler *handlers.PaperHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Paper Review API is running",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
		}

		papers := api.Group("/papers")
		{
			papers.POST("/create", paperHandler.CreatePaper)
			papers.POST("/publish/:paperId", paperHandler.PublishPaper)
			papers.GET("/search", paperHandler.SearchPapers)
			papers.GET("/published", paperHandler.GetPublishedPapers)
			papers.GET("/unpublished", paperHandler.GetUnpublishedPapers)
			papers.GET("/author/:username", paperHandler.GetPapersByAuthor)
			papers.GET("/committee/:username", paperHandler.GetPapersByCommittee)
			papers.GET("/all", paperHandler.GetAllPapers)
			papers.GET("/:id", paperHandler.GetPaper)
		}
	}

	return r
}
