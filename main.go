package main

import (
	"log"
	"os"
	"time"

	api "photoblog-backend/cmd/api"
	authUsecase "photoblog-backend/internal/auth/usecase"
	imagedomain "photoblog-backend/internal/image/domain"
	imageRepo "photoblog-backend/internal/image/repository"
	imageUsecase "photoblog-backend/internal/image/usecase"
	"photoblog-backend/internal/notification"
	postdomain "photoblog-backend/internal/post/domain"
	postRepo "photoblog-backend/internal/post/repository"
	postUsecase "photoblog-backend/internal/post/usecase"
	subdomain "photoblog-backend/internal/subscription/domain"
	subRepo "photoblog-backend/internal/subscription/repository"
	subUsecase "photoblog-backend/internal/subscription/usecase"
	"photoblog-backend/pkg/config"
	"photoblog-backend/pkg/database"
	"photoblog-backend/pkg/logger"
	"photoblog-backend/pkg/resend"
	"photoblog-backend/pkg/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLogger := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&subdomain.Subscriber{}, &postdomain.BlogPost{}, &imagedomain.BlogImage{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Resend client is shared by the contact store and the notification transport
	var resendClient *resend.Client
	if cfg.ResendAPIKey != "" {
		resendClient = resend.NewClient(cfg.ResendAPIKey, appLogger)
	}

	// Select the subscriber backend
	var subscriberRepo subRepo.SubscriberRepository
	switch cfg.SubscriberBackend {
	case "resend":
		subscriberRepo = subRepo.NewResendSubscriberRepository(resendClient, cfg.ResendAudienceID)
		appLogger.Info("subscriber backend: resend audience", map[string]interface{}{
			"audience_id": cfg.ResendAudienceID,
		})
	default:
		subscriberRepo = subRepo.NewGormSubscriberRepository(db)
		appLogger.Info("subscriber backend: postgres", nil)
	}

	// Initialize repositories (dependency injection)
	postRepository := postRepo.NewGormPostRepository(db)
	imageRepository := imageRepo.NewGormImageRepository(db)

	// Image storage on local disk
	fileStore, err := storage.NewDiskStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize upload directory:", err)
	}

	// Notification pipeline
	var transport notification.Transport
	if resendClient != nil && cfg.FromAddress != "" {
		transport = notification.NewResendTransport(resendClient, cfg.FromAddress, cfg.ResendAudienceID)
	}
	dispatcher := notification.NewDispatcher(subscriberRepo, transport, notification.Config{
		From:       cfg.FromAddress,
		BaseURL:    cfg.BaseURL,
		BatchSize:  10,
		BatchDelay: time.Second,
		Broadcast:  cfg.SubscriberBackend == "resend" && cfg.ResendAudienceID != "",
	}, appLogger)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(cfg)
	subUsecaseInstance := subUsecase.NewSubscriptionUsecase(subscriberRepo, dispatcher, appLogger)
	postUsecaseInstance := postUsecase.NewPostUsecase(postRepository, subUsecaseInstance, appLogger)
	imageUsecaseInstance := imageUsecase.NewImageUsecase(imageRepository, fileStore, cfg.MaxUploadSizeMB, appLogger)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, postUsecaseInstance, imageUsecaseInstance, subUsecaseInstance, cfg, appLogger)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	if err := handler.Start(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
