package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"culturalstay/internal/config"
	"culturalstay/internal/handler"
	"culturalstay/internal/repository"
	"culturalstay/internal/services"
	"culturalstay/internal/utils"
	"culturalstay/internal/utils/push"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// 1. Контекст и shutdown-менеджер
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	// 2. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 3. Подключение к MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	// 4. Подключение к Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("Invalid Redis URL:", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return rdb.Close()
	})

	// 5. MinIO для фотографий хостов
	minioClient, err := utils.InitMinio(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey)
	if err != nil {
		log.Fatal("Failed to connect to MinIO:", err)
	}
	if err := utils.EnsureBucket(ctx, minioClient, cfg.MinioBucket); err != nil {
		log.Fatal("Failed to ensure MinIO bucket:", err)
	}

	// 6. FCM опционален: без креденшалов пуши просто не отправляются
	var fcmClient *push.FCMClient
	if cfg.FCMCredentials != "" {
		fcmClient, err = push.NewFCMClient(cfg.FCMCredentials)
		if err != nil {
			log.Fatal("Failed to init FCM client:", err)
		}
	}

	mailer := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail, cfg.FrontendURL)
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)

	// 7. Инициализация слоев
	userRepo := repository.NewUserRepository(db)
	hostRepo := repository.NewHostRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := services.NewNotificationService(notificationRepo, userRepo, mailer, fcmClient)
	authService := services.NewAuthService(userRepo, jwtUtil, rdb)
	hostService := services.NewHostService(hostRepo, userRepo, rdb, minioClient, cfg.MinioBucket, cfg.MinioEndpoint)
	bookingService := services.NewBookingService(bookingRepo, hostRepo, userRepo, notificationService, rdb)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo, hostRepo, notificationService)

	authHandler := handler.NewAuthHandler(authService)
	hostHandler := handler.NewHostHandler(hostService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// 8. Инициализация маршрутов
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authRequired := utils.AuthMiddleware(jwtUtil)
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authRequired, authHandler.Me)
		auth.PUT("/device-token", authRequired, authHandler.UpdateDeviceToken)
	}

	hosts := api.Group("/hosts")
	{
		hosts.GET("", hostHandler.Search)
		hosts.GET("/:id", hostHandler.GetByID)
		hosts.POST("", authRequired, hostHandler.Create)
		hosts.PUT("/:id", authRequired, hostHandler.Update)
		hosts.PUT("/:id/status", authRequired, utils.RequireRoles("admin"), hostHandler.UpdateStatus)
		hosts.POST("/:id/photos", authRequired, hostHandler.UploadPhotos)
		hosts.POST("/:id/experiences", authRequired, hostHandler.AddExperience)
		hosts.PUT("/:id/availability", authRequired, hostHandler.UpdateAvailability)
	}

	bookings := api.Group("/bookings", authRequired)
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.List)
		bookings.GET("/:id", bookingHandler.GetByID)
		bookings.PUT("/:id/status", bookingHandler.UpdateStatus)
		bookings.POST("/:id/cancel", bookingHandler.Cancel)
		bookings.POST("/:id/messages", bookingHandler.AddMessage)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/host/:hostId", reviewHandler.GetHostReviews)
		reviews.GET("/user/:userId", reviewHandler.GetUserReviews)
		reviews.POST("", authRequired, reviewHandler.Create)
		reviews.PUT("/:id", authRequired, reviewHandler.Update)
		reviews.POST("/:id/response", authRequired, reviewHandler.AddResponse)
		reviews.POST("/:id/helpful", authRequired, reviewHandler.MarkHelpful)
	}

	notifications := api.Group("/notifications", authRequired)
	{
		notifications.GET("", notificationHandler.List)
		notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
	}

	// 9. Запуск HTTP сервера
	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Println("CulturalStay API running on", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	// Ожидаем завершения
	select {}
}
