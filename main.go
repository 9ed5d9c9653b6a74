// File: repairdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repairdesk/config"
	"repairdesk/cron"
	"repairdesk/database"
	customerRepoPkg "repairdesk/database/repository/customer"
	ticketRepoPkg "repairdesk/database/repository/ticket"
	"repairdesk/handlers"
	"repairdesk/middleware"
	"repairdesk/routes"
	ai "repairdesk/services/intelligence"
	"repairdesk/services/notification"
	"repairdesk/services/storage"
	"repairdesk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize media storage: %v", err)
	}
	var mediaStore storage.MediaStore
	if cld != nil {
		mediaStore = storage.NewCloudinaryMediaStore(cld)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	ticketRepo := ticketRepoPkg.NewMongoTicketRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()

	// services.
	invoker, err := ai.NewGeminiInvoker(
		config.AppConfig.GeminiAPIKey,
		time.Duration(config.AppConfig.AIRequestTimeoutSec)*time.Second,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize model client: %v", err)
	}

	reconciler := &ai.Reconciler{
		Tickets:   ticketRepo,
		Customers: customerRepo,
	}

	chatSvc := &ai.DefaultChatService{
		Invoker:  invoker,
		Primary:  config.AppConfig.GeminiPrimaryModel,
		Fallback: config.AppConfig.GeminiFallbackModel,
		Policy: ai.RetryPolicy{
			MaxAttempts: config.AppConfig.AIMaxAttempts,
			Delays:      ai.ParseBackoffSchedule(config.AppConfig.AIBackoffSchedule),
		},
		Reconciler: reconciler,
		History:    ai.NewRedisHistoryStore(utils.GetCacheClient(), utils.ChatHistoryTTL),
		Media:      mediaStore,
		Notifier:   notification.NewFCMNotifier(),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		TicketRepo:   ticketRepo,
		CustomerRepo: customerRepo,

		ChatHandler:       handlers.ChatHandler(chatSvc),
		InspectHandler:    handlers.InspectHandler(chatSvc),
		TranscribeHandler: handlers.TranscribeHandler,

		ListTicketsHandler: handlers.ListTicketsHandler(ticketRepo),
		GetTicketHandler:   handlers.GetTicketHandler(ticketRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background purge of expired tickets and their media.
	cron.InitPurgeWorker(ticketRepo, mediaStore)

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
