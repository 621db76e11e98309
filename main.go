// File: ceremo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ceremo/config"
	"ceremo/cron"
	"ceremo/database"
	availabilityRepo "ceremo/database/repository/availability"
	bookingRepoPkg "ceremo/database/repository/booking"
	completionRepo "ceremo/database/repository/completion"
	inquiryRepo "ceremo/database/repository/inquiry"
	paymentRepoPkg "ceremo/database/repository/payment"
	providerRepoPkg "ceremo/database/repository/provider"
	userRepoPkg "ceremo/database/repository/user"
	"ceremo/handlers"
	"ceremo/middleware"
	"ceremo/routes"
	"ceremo/services/availability"
	"ceremo/services/booking"
	"ceremo/services/notification"
	"ceremo/services/payment"
	"ceremo/services/realtime"
	"ceremo/services/tasks"
	"ceremo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	payRepo := paymentRepoPkg.NewMongoPaymentRepo()
	inqRepo := inquiryRepo.NewMongoInquiryRepo()
	complRepo := completionRepo.NewMongoCompletionRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(userRepo, provRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	changeFeed := realtime.NewRedisPublisher(utils.GetCacheClient())

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := tasks.NewAsynqReminderScheduler(asynqClient)

	availabilityService := availability.NewDefaultAvailabilityService(availRepo)

	bookingService := &booking.DefaultBookingService{
		Repo:            bookingRepo,
		InquiryRepo:     inqRepo,
		CompletionRepo:  complRepo,
		ProviderRepo:    provRepo,
		AvailabilitySvc: availabilityService,
		NotificationSvc: notificationService,
		Feed:            changeFeed,
		Reminders:       reminderScheduler,
	}

	paymentService := &payment.DefaultPaymentService{
		Repo:            payRepo,
		BookingRepo:     bookingRepo,
		NotificationSvc: notificationService,
		Feed:            changeFeed,
		Gateway:         payment.StripeGateway{},
	}

	// Background worker for pending-booking reminders.
	cron.InitReminderWorker(bookingRepo, notificationService)

	// Periodic dependency health checks behind /health.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingService, logger),
		Payment:      handlers.NewPaymentHandler(paymentService, logger),
		Availability: handlers.NewAvailabilityHandler(availabilityService, logger),
		Inquiry:      handlers.NewInquiryHandler(bookingService, logger),
		Provider:     handlers.NewProviderHandler(provRepo, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
