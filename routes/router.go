package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkpress/config"
	"inkpress/controllers"
	"inkpress/middleware"
	"inkpress/repository"
	"inkpress/serializers"
	"inkpress/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	serializers.SetMediaBase(cfg.MediaBaseURL)

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.RequestID())
	// Count a view after each successful post detail read
	r.Use(middleware.PostViewCounter(db))

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	categories := repository.NewCategoryRepository(db)
	authors := repository.NewAuthorRepository(db)
	stats := repository.NewStatsRepository(db)

	authController := controllers.NewAuthController(authors, stats)
	postController := controllers.NewPostController(posts, comments, stats)
	categoryController := controllers.NewCategoryController(categories, posts, stats)
	authorController := controllers.NewAuthorController(authors, posts, stats)
	statsController := controllers.NewStatsController(stats)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	api.GET("/posts", postController.List)
	api.GET("/posts/:id", postController.Get)
	api.GET("/posts/:id/comments", postController.ListComments)
	api.GET("/categories", categoryController.List)
	api.GET("/categories/:id/posts", categoryController.ListPosts)
	api.GET("/categories/:id/statistics", categoryController.Statistics)
	api.GET("/authors", authorController.List)
	api.GET("/authors/:id/posts", authorController.ListPosts)
	api.GET("/statistics", statsController.Site)
	api.GET("/popular", postController.Popular)

	api.GET("/my-posts", middleware.AuthRequired(), postController.ListMine)

	writeGroup := api.Group("")
	writeGroup.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	writeGroup.POST("/posts", postController.Create)
	writeGroup.PUT("/posts/:id", postController.Update)
	writeGroup.POST("/posts/:id/comments", postController.CreateComment)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
