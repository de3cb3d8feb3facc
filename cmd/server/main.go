package main

import (
	"net/http"

	"pulsefeed/backend/internal/auth"
	"pulsefeed/backend/internal/config"
	"pulsefeed/backend/internal/database"
	"pulsefeed/backend/internal/feed"
	"pulsefeed/backend/internal/handler"
	"pulsefeed/backend/internal/hub"
	"pulsefeed/backend/internal/logger"
	"pulsefeed/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	// Swagger imports
	_ "pulsefeed/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
	logger.Init()
}

// @title           Pulsefeed API
// @version         1.0
// @description     This is the API for the Pulsefeed service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Wire the feed engine
	feedService := feed.NewService(
		repository.NewPostRepository(database.DB),
		repository.NewUserRepository(database.DB),
		repository.NewFollowRepository(database.DB),
		repository.NewReactionRepository(database.DB),
		repository.NewAttachmentRepository(database.DB),
		hub.GlobalHub,
	)
	handler.Setup(feedService)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Feed routes (anonymous reads allowed)
		feedRoutes := apiV1.Group("/feed")
		{
			feedRoutes.GET("", auth.OptionalAuthMiddleware(), handler.GetFeed)
			feedRoutes.GET("/count", auth.AuthMiddleware(), handler.GetFeedCount)
			feedRoutes.GET("/stream", auth.AuthMiddleware(), handler.StreamFeed)
		}

		// Post routes
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", handler.CreatePost)
			postRoutes.DELETE("/:id", handler.DeletePost)
			postRoutes.POST("/:id/react", handler.ReactToPost)
		}

		// User routes
		userRoutes := apiV1.Group("/users")
		{
			userRoutes.GET("/me", auth.AuthMiddleware(), handler.GetMe)
			userRoutes.GET("/me/following", auth.AuthMiddleware(), handler.GetFollowing)
			userRoutes.GET("/me/followers", auth.AuthMiddleware(), handler.GetFollowers)
			userRoutes.GET("/:username", handler.GetUserByUsername)
			userRoutes.GET("/:username/posts", auth.OptionalAuthMiddleware(), handler.GetUserPosts)
			userRoutes.POST("/:username/follow", auth.AuthMiddleware(), handler.FollowUser)
			userRoutes.POST("/:username/unfollow", auth.AuthMiddleware(), handler.UnfollowUser)
		}
	}

	logger.L.Info("server starting", zap.String("addr", config.AppConfig.ServerAddr))
	if err := router.Run(config.AppConfig.ServerAddr); err != nil {
		logger.L.Fatal("server exited", logger.Err(err))
	}
}
