package api

import (
	authUsecasePkg "photoblog-backend/internal/auth/usecase"
	imageUsecasePkg "photoblog-backend/internal/image/usecase"
	postUsecasePkg "photoblog-backend/internal/post/usecase"
	subUsecasePkg "photoblog-backend/internal/subscription/usecase"
	"photoblog-backend/pkg/config"
	"photoblog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase  authUsecasePkg.AuthUsecase
	postUsecase  postUsecasePkg.PostUsecase
	imageUsecase imageUsecasePkg.ImageUsecase
	subUsecase   subUsecasePkg.SubscriptionUsecase
	config       *config.Config
	logger       logger.Logger
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	postUc postUsecasePkg.PostUsecase,
	imageUc imageUsecasePkg.ImageUsecase,
	subUc subUsecasePkg.SubscriptionUsecase,
	cfg *config.Config,
	log logger.Logger,
) *Handler {
	return &Handler{
		authUsecase:  authUc,
		postUsecase:  postUc,
		imageUsecase: imageUc,
		subUsecase:   subUc,
		config:       cfg,
		logger:       log,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Uploaded images are served straight off disk
	r.Static("/uploads", h.config.UploadDir)

	SetupRoutes(r, h.authUsecase, h.postUsecase, h.imageUsecase, h.subUsecase)

	h.logger.Info("server listening", map[string]interface{}{"addr": addr})
	return r.Run(addr)
}
