package api

import (
	"net/http"

	authDelivery "photoblog-backend/internal/auth/delivery"
	authUsecasePkg "photoblog-backend/internal/auth/usecase"
	imageDelivery "photoblog-backend/internal/image/delivery"
	imageUsecasePkg "photoblog-backend/internal/image/usecase"
	postDelivery "photoblog-backend/internal/post/delivery"
	postUsecasePkg "photoblog-backend/internal/post/usecase"
	subDelivery "photoblog-backend/internal/subscription/delivery"
	subUsecasePkg "photoblog-backend/internal/subscription/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUsecase authUsecasePkg.AuthUsecase,
	postUsecase postUsecasePkg.PostUsecase,
	imageUsecase imageUsecasePkg.ImageUsecase,
	subUsecase subUsecasePkg.SubscriptionUsecase,
) {
	authHandler := authDelivery.NewAuthHandler(authUsecase)
	postHandler := postDelivery.NewPostHandler(postUsecase)
	imageHandler := imageDelivery.NewImageHandler(imageUsecase)
	subHandler := subDelivery.NewSubscriptionHandler(subUsecase)

	// Unsubscribe lands here from email links and renders a plain HTML page
	r.GET("/unsubscribe", subHandler.Unsubscribe)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Public blog routes
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPostByID)
		api.POST("/subscribe", subHandler.Subscribe)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", authDelivery.AuthMiddleware(authUsecase), authHandler.Verify)
		}

		// Admin routes (protected)
		admin := api.Group("/admin")
		admin.Use(authDelivery.AuthMiddleware(authUsecase))
		{
			admin.POST("/posts", postHandler.CreatePost)
			admin.PUT("/posts/:id", postHandler.UpdatePost)
			admin.DELETE("/posts/:id", postHandler.DeletePost)

			admin.POST("/images", imageHandler.UploadImage)
			admin.GET("/images", imageHandler.ListImages)
			admin.PUT("/images/:id", imageHandler.UpdateImage)
			admin.DELETE("/images/:id", imageHandler.DeleteImage)

			admin.GET("/subscribers", subHandler.ListSubscribers)
			admin.GET("/subscribers/stats", subHandler.GetStats)
			admin.GET("/subscribers/export", subHandler.ExportCSV)
			admin.DELETE("/subscribers/:id", subHandler.RemoveSubscriber)
		}
	}
}
